package outfit

import (
	"encoding/json"
	"math"

	"github.com/yanqian/weatherfit/internal/domain/wardrobe"
	"github.com/yanqian/weatherfit/pkg/util"
)

// Weather is a best-effort snapshot of current conditions. Temperature and
// UVIndex are NaN when unknown.
type Weather struct {
	Temperature         float64
	Humidity            float64
	PrecipitationChance float64
	WindSpeed           float64
	UVIndex             float64
}

// UnknownWeather returns a snapshot with no readings at all.
func UnknownWeather() Weather {
	return Weather{Temperature: math.NaN(), UVIndex: math.NaN()}
}

// UnmarshalJSON accepts both the short field names and the Open-Meteo ones,
// as numbers or numeric strings.
func (w *Weather) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*w = UnknownWeather()
	w.Temperature, _ = util.FirstFloat(fields, "temperature", "temperature_2m")
	w.UVIndex, _ = util.FirstFloat(fields, "uv_index", "uv")
	w.Humidity = orZero(util.FirstFloat(fields, "humidity", "relative_humidity_2m"))
	w.PrecipitationChance = orZero(util.FirstFloat(fields, "precipitation_chance", "precipitation_probability"))
	w.WindSpeed = orZero(util.FirstFloat(fields, "wind_speed", "wind_speed_10m"))
	return nil
}

func orZero(v float64, ok bool) float64 {
	if !ok {
		return 0
	}
	return v
}

// Needs are the clothing requirements derived from one weather snapshot.
type Needs struct {
	Temperature             float64
	TargetInsulation        wardrobe.Insulation
	RequireWaterproof       bool
	PreferWaterproof        bool
	PreferUVProtection      bool
	NeedsOuterwear          bool
	NeedsFootwearProtection bool
}

// Constraint is a hard rule an item must satisfy. Reason describes the unmet
// requirement when no item in the category passes.
type Constraint struct {
	Reason string
	Match  func(wardrobe.Item) bool
}

// Criteria steers filtering and scoring for a single category.
type Criteria struct {
	Category           wardrobe.Category
	Constraints        []Constraint
	PreferWaterproof   bool
	PreferUVProtection bool
	TargetInsulation   wardrobe.Insulation
	// PreferredFormality is empty unless a caller sets it; nothing derives it from weather.
	PreferredFormality wardrobe.Formality
}

// ScoredCandidate pairs an item with its score and the reasons behind it.
type ScoredCandidate struct {
	Item      wardrobe.Item
	Score     int
	Rationale []string
}

// Entry is one selected piece of the suggested outfit.
type Entry struct {
	ID           int64               `json:"id"`
	Name         string              `json:"name"`
	Category     wardrobe.Category   `json:"category"`
	Insulation   wardrobe.Insulation `json:"insulation_level"`
	Waterproof   bool                `json:"waterproof"`
	UVProtection bool                `json:"uv_protection"`
	Formality    wardrobe.Formality  `json:"formality"`
	Color        string              `json:"color,omitempty"`
	Notes        string              `json:"notes,omitempty"`
	Rationale    []string            `json:"rationale"`
	Optional     bool                `json:"optional,omitempty"`
}

// Context echoes the needs that drove a suggestion. Temperature is nil when unknown.
type Context struct {
	Temperature        *float64            `json:"temperature"`
	TargetInsulation   wardrobe.Insulation `json:"target_insulation"`
	RequireWaterproof  bool                `json:"require_waterproof"`
	PreferWaterproof   bool                `json:"prefer_waterproof"`
	PreferUVProtection bool                `json:"prefer_uv_protection"`
}

// Suggestion is the full outfit recommendation.
type Suggestion struct {
	Outfit  []Entry  `json:"outfit"`
	Gaps    []string `json:"gaps"`
	Context Context  `json:"context"`
}

// SuggestRequest is the HTTP payload. A missing weather object means no readings.
type SuggestRequest struct {
	Weather *Weather `json:"weather"`
}
