package openmeteo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/retry"

	"github.com/yanqian/weatherfit/internal/domain/forecast"
)

const (
	defaultBaseURL = "https://api.open-meteo.com/v1/forecast"
	currentFields  = "temperature_2m,precipitation,wind_speed_10m,relative_humidity_2m,precipitation_probability"
	hourlyFields   = "temperature_2m,precipitation_probability,relative_humidity_2m,wind_speed_10m"
)

// Options tunes the client.
type Options struct {
	BaseURL       string
	Timeout       time.Duration
	RetryAttempts uint
	RetryDelay    time.Duration
}

// Client fetches hourly forecasts from Open-Meteo.
type Client struct {
	baseURL    string
	httpClient *http.Client
	attempts   uint
	delay      time.Duration
	logger     *slog.Logger
}

// NewClient builds an API client.
func NewClient(opts Options, logger *slog.Logger) *Client {
	base := strings.TrimSpace(opts.BaseURL)
	if base == "" {
		base = defaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.RetryAttempts == 0 {
		opts.RetryAttempts = 1
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 500 * time.Millisecond
	}
	return &Client{
		baseURL:    strings.TrimRight(base, "/"),
		httpClient: &http.Client{Timeout: opts.Timeout},
		attempts:   opts.RetryAttempts,
		delay:      opts.RetryDelay,
		logger:     logger.With("component", "openmeteo.client"),
	}
}

// Fetch retrieves current conditions and hourly data for the query.
func (c *Client) Fetch(ctx context.Context, q forecast.Query) (forecast.Forecast, error) {
	endpoint := c.baseURL + "?" + buildParams(q).Encode()

	var body []byte
	err := retry.Do(
		func() error {
			var err error
			body, err = c.get(ctx, endpoint)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.MaxDelay(10*time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Debug("retrying forecast request", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return forecast.Forecast{}, fmt.Errorf("fetch forecast: %w", err)
	}

	var raw apiResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return forecast.Forecast{}, fmt.Errorf("decode forecast response: %w", err)
	}
	return forecast.Forecast{
		Current:          raw.Current,
		Hourly:           raw.Hourly.entries(),
		Timezone:         raw.Timezone,
		UTCOffsetSeconds: raw.UTCOffsetSeconds,
	}, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, retry.Unrecoverable(fmt.Errorf("build forecast request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, retry.Unrecoverable(err)
		}
		return nil, fmt.Errorf("forecast request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		statusErr := fmt.Errorf("forecast request error: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(payload)))
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			return nil, statusErr
		}
		return nil, retry.Unrecoverable(statusErr)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read forecast response: %w", err)
	}
	return body, nil
}

func buildParams(q forecast.Query) url.Values {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(q.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(q.Longitude, 'f', -1, 64))
	params.Set("current", currentFields)
	params.Set("hourly", hourlyFields)
	params.Set("temperature_unit", "fahrenheit")
	params.Set("windspeed_unit", "mph")
	tz := q.Timezone
	if tz == "" {
		tz = "auto"
	}
	params.Set("timezone", tz)
	days := q.Days
	if days <= 0 {
		days = 2
	}
	params.Set("forecast_days", strconv.Itoa(days))
	return params
}

type apiResponse struct {
	Timezone         string          `json:"timezone"`
	UTCOffsetSeconds int             `json:"utc_offset_seconds"`
	Current          json.RawMessage `json:"current"`
	Hourly           hourlyArrays    `json:"hourly"`
}

// hourlyArrays is Open-Meteo's column layout; any column may be missing or hold nulls.
type hourlyArrays struct {
	Time                     []string   `json:"time"`
	Temperature              []*float64 `json:"temperature_2m"`
	PrecipitationProbability []*float64 `json:"precipitation_probability"`
	RelativeHumidity         []*float64 `json:"relative_humidity_2m"`
	WindSpeed                []*float64 `json:"wind_speed_10m"`
}

func (h hourlyArrays) entries() []forecast.HourlyEntry {
	out := make([]forecast.HourlyEntry, len(h.Time))
	for i, ts := range h.Time {
		out[i] = forecast.HourlyEntry{
			Time:                     ts,
			Temperature:              at(h.Temperature, i),
			PrecipitationProbability: at(h.PrecipitationProbability, i),
			RelativeHumidity:         at(h.RelativeHumidity, i),
			WindSpeed:                at(h.WindSpeed, i),
		}
	}
	return out
}

func at(values []*float64, i int) *float64 {
	if i < len(values) {
		return values[i]
	}
	return nil
}

var _ forecast.Client = (*Client)(nil)
