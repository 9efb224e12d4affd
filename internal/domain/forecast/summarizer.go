package forecast

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"
)

const hourLabelLayout = "3:04 PM"

// extreme tracks the index of the entry holding the most extreme known value.
type extreme struct {
	index int
	value float64
	known bool
}

func (e *extreme) offer(i int, v float64, better func(a, b float64) bool) {
	if math.IsNaN(v) {
		return
	}
	if !e.known || better(v, e.value) {
		e.index, e.value, e.known = i, v, true
	}
}

func (e extreme) reading() float64 {
	if !e.known {
		return 0
	}
	return e.value
}

func less(a, b float64) bool    { return a < b }
func greater(a, b float64) bool { return a > b }

// Summarizer condenses a forecast window into its extremes and highlights.
type Summarizer struct {
	loc    *time.Location
	logger *slog.Logger
}

// NewSummarizer formats hour labels in loc.
func NewSummarizer(loc *time.Location, logger *slog.Logger) Summarizer {
	if loc == nil {
		loc = time.UTC
	}
	return Summarizer{loc: loc, logger: logger}
}

// Summarize returns the coldest temperature and the highest humidity,
// precipitation and wind found in the window, each taken from its own hour.
// Unknown readings are skipped. An empty window yields zero values.
func (s Summarizer) Summarize(window []HourlyEntry) (Conditions, []string) {
	highlights := make([]string, 0)
	if len(window) == 0 {
		return Conditions{}, highlights
	}

	var coldest, warmest, wettest, windiest, humid extreme
	for i, entry := range window {
		coldest.offer(i, value(entry.Temperature), less)
		warmest.offer(i, value(entry.Temperature), greater)
		wettest.offer(i, value(entry.PrecipitationProbability), greater)
		windiest.offer(i, value(entry.WindSpeed), greater)
		humid.offer(i, value(entry.RelativeHumidity), greater)
	}

	summary := Conditions{
		Temperature:         coldest.reading(),
		Humidity:            humid.reading(),
		PrecipitationChance: wettest.reading(),
		WindSpeed:           windiest.reading(),
	}

	if wettest.known && summary.PrecipitationChance >= 30 {
		highlights = append(highlights, fmt.Sprintf("Rain expected around %s (%s%% chance).",
			s.hourLabel(window[wettest.index]), strconv.FormatFloat(summary.PrecipitationChance, 'f', -1, 64)))
	}
	if coldest.known && warmest.known {
		if swing := warmest.value - coldest.value; swing >= 12 {
			// Direction follows the hour order of the extremes: a morning peak
			// that falls into a cold evening reads "cooler" and names the
			// coldest hour, rather than always reporting the warm peak.
			trend, ref := "cooler", coldest.index
			if warmest.index > coldest.index {
				trend, ref = "warmer", warmest.index
			}
			highlights = append(highlights, fmt.Sprintf("Temperatures get %s near %s (swing of %d°F).",
				trend, s.hourLabel(window[ref]), int(math.Round(swing))))
		}
	}
	if windiest.known && summary.WindSpeed >= 20 {
		highlights = append(highlights, fmt.Sprintf("Wind picks up to %d mph around %s.",
			int(math.Round(summary.WindSpeed)), s.hourLabel(window[windiest.index])))
	}
	if humid.known && summary.Humidity >= 80 {
		highlights = append(highlights, fmt.Sprintf("Humidity spikes to %d%% near %s.",
			int(math.Round(summary.Humidity)), s.hourLabel(window[humid.index])))
	}
	return summary, highlights
}

// hourLabel renders "3:04 PM", falling back to the raw timestamp.
func (s Summarizer) hourLabel(entry HourlyEntry) string {
	ts, ok := entry.ParseTime(s.loc)
	if !ok {
		if s.logger != nil {
			s.logger.Warn("unable to format forecast hour", "time", entry.Time)
		}
		return entry.Time
	}
	return ts.In(s.loc).Format(hourLabelLayout)
}
