package forecast

import (
	"encoding/json"
	"errors"
	"math"
	"time"

	"github.com/yanqian/weatherfit/pkg/util"
)

// HourlyEntry is one hour of forecast data. Nil fields are unknown.
type HourlyEntry struct {
	Time                     string   `json:"time"`
	Temperature              *float64 `json:"temperature_2m,omitempty"`
	PrecipitationProbability *float64 `json:"precipitation_probability,omitempty"`
	RelativeHumidity         *float64 `json:"relative_humidity_2m,omitempty"`
	WindSpeed                *float64 `json:"wind_speed_10m,omitempty"`
}

var localLayouts = []string{"2006-01-02T15:04", "2006-01-02T15:04:05"}

// ParseTime interprets the timestamp. Zone-less values are read in loc.
func (e HourlyEntry) ParseTime(loc *time.Location) (time.Time, bool) {
	if ts, err := time.Parse(time.RFC3339, e.Time); err == nil {
		return ts, true
	}
	for _, layout := range localLayouts {
		if ts, err := time.ParseInLocation(layout, e.Time, loc); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// Forecast is the upstream payload the advice pipeline works from.
type Forecast struct {
	Current          json.RawMessage `json:"current,omitempty"`
	Hourly           []HourlyEntry   `json:"hourly"`
	Timezone         string          `json:"timezone,omitempty"`
	UTCOffsetSeconds int             `json:"utc_offset_seconds"`
}

// Location returns the fixed zone the hourly timestamps are expressed in.
func (f Forecast) Location() *time.Location {
	name := f.Timezone
	if name == "" {
		name = "UTC"
	}
	return time.FixedZone(name, f.UTCOffsetSeconds)
}

// Conditions is a simplified weather reading. It is both the advice input
// and the condensed forecast summary.
type Conditions struct {
	Temperature         float64 `json:"temperature"`
	Humidity            float64 `json:"humidity"`
	PrecipitationChance float64 `json:"precipitation_chance"`
	WindSpeed           float64 `json:"wind_speed"`
}

// UnmarshalJSON tolerates numeric strings; missing or garbage values become NaN
// so no advice threshold fires on them.
func (c *Conditions) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	c.Temperature, _ = util.FirstFloat(fields, "temperature", "temperature_2m")
	c.Humidity, _ = util.FirstFloat(fields, "humidity", "relative_humidity_2m")
	c.PrecipitationChance, _ = util.FirstFloat(fields, "precipitation_chance", "precipitation_probability")
	c.WindSpeed, _ = util.FirstFloat(fields, "wind_speed", "wind_speed_10m")
	return nil
}

// AdviceResponse is the simple advice payload.
type AdviceResponse struct {
	Recommendations []string `json:"recommendations"`
}

// HourlyRequest selects where to forecast. Without coordinates the user's
// default location is used.
type HourlyRequest struct {
	Latitude  *float64
	Longitude *float64
	Timezone  string
}

var errBadCoordinate = errors.New("latitude and longitude must be numbers")

// UnmarshalJSON accepts coordinates as numbers or numeric strings.
func (r *HourlyRequest) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*r = HourlyRequest{}
	for key, dst := range map[string]**float64{"latitude": &r.Latitude, "longitude": &r.Longitude} {
		raw, ok := fields[key]
		if !ok || string(raw) == "null" {
			continue
		}
		v, ok := util.LooseFloat(raw)
		if !ok {
			return errBadCoordinate
		}
		*dst = &v
	}
	if raw, ok := fields["timezone"]; ok && string(raw) != "null" {
		if err := json.Unmarshal(raw, &r.Timezone); err != nil {
			return err
		}
	}
	return nil
}

// Query is a resolved upstream request.
type Query struct {
	Latitude  float64
	Longitude float64
	Timezone  string
	Days      int
}

// HourlyResponse is the forecast-based advice payload.
type HourlyResponse struct {
	Current         json.RawMessage `json:"current"`
	Forecast        []HourlyEntry   `json:"forecast"`
	Recommendations []string        `json:"recommendations"`
	Changes         []string        `json:"changes"`
}

func value(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}
