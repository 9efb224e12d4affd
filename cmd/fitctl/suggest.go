package main

import (
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yanqian/weatherfit/internal/domain/forecast"
	"github.com/yanqian/weatherfit/internal/domain/outfit"
)

type weatherFlags struct {
	temp, precip, wind, humidity, uv float64
}

// snapshot treats flags the user did not pass as unknown readings.
func (f weatherFlags) snapshot(cmd *cobra.Command) outfit.Weather {
	w := outfit.UnknownWeather()
	if cmd.Flags().Changed("temp") {
		w.Temperature = f.temp
	}
	if cmd.Flags().Changed("uv") {
		w.UVIndex = f.uv
	}
	w.PrecipitationChance = f.precip
	w.WindSpeed = f.wind
	w.Humidity = f.humidity
	return w
}

func (f *weatherFlags) register(cmd *cobra.Command, withUV bool) {
	flags := cmd.Flags()
	flags.Float64Var(&f.temp, "temp", 0, "Temperature in °F")
	flags.Float64Var(&f.precip, "precip", 0, "Precipitation chance in percent")
	flags.Float64Var(&f.wind, "wind", 0, "Wind speed in mph")
	flags.Float64Var(&f.humidity, "humidity", 0, "Relative humidity in percent")
	if withUV {
		flags.Float64Var(&f.uv, "uv", 0, "UV index")
	}
}

func newSuggestCmd(opts *rootOptions) *cobra.Command {
	var (
		weather weatherFlags
		seed    uint64
	)
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest an outfit from the saved wardrobe",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := opts.openRepo(cmd.Context())
			if err != nil {
				return err
			}
			defer repo.Close()

			if !cmd.Flags().Changed("seed") {
				seed = rand.Uint64()
			}
			svc := outfit.NewSeededService(repo, seed, opts.logger(cmd))
			suggestion, err := svc.Suggest(cmd.Context(), opts.userID, weather.snapshot(cmd))
			if err != nil {
				return err
			}
			printSuggestion(cmd.OutOrStdout(), suggestion)
			return nil
		},
	}
	weather.register(cmd, true)
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for breaking ties between equally scored items")
	return cmd
}

func printSuggestion(w io.Writer, s outfit.Suggestion) {
	headingColor.Fprintf(w, "Outfit (target insulation: %s)\n", s.Context.TargetInsulation)
	if s.Context.Temperature != nil {
		fmt.Fprintf(w, "  temperature %s°F\n", strconv.FormatFloat(*s.Context.Temperature, 'f', -1, 64))
	}
	for _, entry := range s.Outfit {
		line := fmt.Sprintf("  %-10s %s", entry.Category, entry.Name)
		if entry.Optional {
			optionalColor.Fprintln(w, line+" (optional)")
		} else {
			itemColor.Fprintln(w, line)
		}
		if len(entry.Rationale) > 0 {
			fmt.Fprintf(w, "             %s\n", strings.Join(entry.Rationale, ", "))
		}
	}
	if len(s.Gaps) == 0 {
		return
	}
	headingColor.Fprintln(w, "Gaps")
	for _, gap := range s.Gaps {
		gapColor.Fprintf(w, "  - %s\n", gap)
	}
}

func newAdviceCmd() *cobra.Command {
	var weather weatherFlags
	cmd := &cobra.Command{
		Use:   "advice",
		Short: "Print general clothing advice for the given conditions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conditions := forecast.Conditions{
				Temperature:         weather.temp,
				Humidity:            weather.humidity,
				PrecipitationChance: weather.precip,
				WindSpeed:           weather.wind,
			}
			if !cmd.Flags().Changed("temp") {
				conditions.Temperature = math.NaN()
			}
			for _, line := range forecast.Advise(conditions) {
				fmt.Fprintf(cmd.OutOrStdout(), "- %s\n", line)
			}
			return nil
		},
	}
	weather.register(cmd, false)
	return cmd
}
