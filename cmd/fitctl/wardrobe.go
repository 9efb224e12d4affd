package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yanqian/weatherfit/internal/domain/wardrobe"
)

func newWardrobeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wardrobe",
		Short: "Add, list and remove clothing items",
	}
	cmd.AddCommand(newWardrobeAddCmd(opts), newWardrobeListCmd(opts), newWardrobeRemoveCmd(opts))
	return cmd
}

func newWardrobeAddCmd(opts *rootOptions) *cobra.Command {
	var input wardrobe.ItemInput
	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Save a clothing item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := opts.openRepo(cmd.Context())
			if err != nil {
				return err
			}
			defer repo.Close()

			input.Name = args[0]
			item, err := wardrobe.NewService(repo, opts.logger(cmd)).Create(cmd.Context(), opts.userID, input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %d %s (%s, %s)\n", item.ID, item.Name, item.Category, item.Insulation)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&input.Category, "category", "", "top, bottom, outerwear, footwear or accessory")
	flags.StringVar(&input.Insulation, "insulation", "light", "light, medium or heavy")
	flags.StringVar(&input.Formality, "formality", "casual", "casual, business casual or formal")
	flags.BoolVar(&input.Waterproof, "waterproof", false, "Item keeps rain out")
	flags.BoolVar(&input.UVProtection, "uv", false, "Item blocks UV")
	flags.StringVar(&input.Color, "color", "", "Optional color")
	flags.StringVar(&input.Notes, "notes", "", "Optional notes")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func newWardrobeListCmd(opts *rootOptions) *cobra.Command {
	var req wardrobe.ListRequest
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := opts.openRepo(cmd.Context())
			if err != nil {
				return err
			}
			defer repo.Close()

			resp, err := wardrobe.NewService(repo, opts.logger(cmd)).List(cmd.Context(), opts.userID, req)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tINSULATION\tWATERPROOF\tUV\tFORMALITY")
			for _, item := range resp.Items {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%t\t%t\t%s\n",
					item.ID, item.Name, item.Category, item.Insulation, item.Waterproof, item.UVProtection, item.Formality)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&req.Category, "category", "", "Only list one category")
	cmd.Flags().StringVarP(&req.Query, "query", "q", "", "Match name, color or notes")
	return cmd
}

func newWardrobeRemoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a saved item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid item id %q", args[0])
			}
			repo, err := opts.openRepo(cmd.Context())
			if err != nil {
				return err
			}
			defer repo.Close()

			if err := wardrobe.NewService(repo, opts.logger(cmd)).Delete(cmd.Context(), opts.userID, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d\n", id)
			return nil
		},
	}
}
