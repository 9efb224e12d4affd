package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yanqian/weatherfit/internal/infra/wardroberepo"
)

type rootOptions struct {
	dbPath  string
	userID  int64
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "fitctl",
		Short:         "Manage a local wardrobe and preview weather-based outfits",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", "weatherfit.db", "Path to the sqlite wardrobe database")
	cmd.PersistentFlags().Int64Var(&opts.userID, "user", 1, "Wardrobe owner id")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output to stderr")

	cmd.AddCommand(
		newWardrobeCmd(opts),
		newSuggestCmd(opts),
		newAdviceCmd(),
	)
	return cmd
}

func (o *rootOptions) logger(cmd *cobra.Command) *slog.Logger {
	var w io.Writer = io.Discard
	if o.verbose {
		w = cmd.ErrOrStderr()
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func (o *rootOptions) openRepo(ctx context.Context) (*wardroberepo.SQLiteRepository, error) {
	return wardroberepo.OpenSQLite(ctx, o.dbPath)
}

var (
	headingColor  = color.New(color.FgCyan, color.Bold)
	itemColor     = color.New(color.FgGreen)
	optionalColor = color.New(color.FgHiBlack)
	gapColor      = color.New(color.FgYellow)
)

func init() {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		color.NoColor = true
	}
}
