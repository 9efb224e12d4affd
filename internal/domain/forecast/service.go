package forecast

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/yanqian/weatherfit/internal/domain/location"
	apperrors "github.com/yanqian/weatherfit/pkg/errors"
	"github.com/yanqian/weatherfit/pkg/util"
)

// Client fetches hourly forecasts from an upstream provider.
type Client interface {
	Fetch(ctx context.Context, q Query) (Forecast, error)
}

// Store caches upstream forecasts.
type Store interface {
	Get(ctx context.Context, key string) (Forecast, bool, error)
	Save(ctx context.Context, key string, f Forecast, ttl time.Duration) error
}

// DefaultLocator resolves the user's default location.
type DefaultLocator interface {
	Default(ctx context.Context, userID int64) (location.Location, error)
}

// Config tunes the forecast service.
type Config struct {
	ForecastDays int
	CacheTTL     time.Duration
}

// Service produces clothing advice from conditions or a live forecast.
type Service interface {
	Recommend(ctx context.Context, c Conditions) AdviceResponse
	HourlyAdvice(ctx context.Context, userID int64, req HourlyRequest) (HourlyResponse, error)
}

type service struct {
	cfg       Config
	client    Client
	store     Store
	locations DefaultLocator
	logger    *slog.Logger
	now       func() time.Time
}

// NewService wires the forecast domain.
func NewService(cfg Config, client Client, store Store, locations DefaultLocator, logger *slog.Logger) Service {
	if cfg.ForecastDays <= 0 {
		cfg.ForecastDays = 2
	}
	return &service{
		cfg:       cfg,
		client:    client,
		store:     store,
		locations: locations,
		logger:    logger.With("component", "forecast.service"),
		now:       util.NowUTC,
	}
}

func (s *service) Recommend(_ context.Context, c Conditions) AdviceResponse {
	return AdviceResponse{Recommendations: Advise(c)}
}

func (s *service) HourlyAdvice(ctx context.Context, userID int64, req HourlyRequest) (HourlyResponse, error) {
	q, err := s.resolveQuery(ctx, userID, req)
	if err != nil {
		return HourlyResponse{}, err
	}
	f, err := s.fetch(ctx, q)
	if err != nil {
		return HourlyResponse{}, err
	}

	loc := f.Location()
	window := SelectWindow(f.Hourly, s.now().In(loc))
	resp := HourlyResponse{
		Current:         f.Current,
		Forecast:        window,
		Recommendations: []string{},
		Changes:         []string{},
	}
	if len(window) == 0 {
		return resp, nil
	}
	summary, highlights := NewSummarizer(loc, s.logger).Summarize(window)
	resp.Recommendations = Advise(summary)
	resp.Changes = highlights
	return resp, nil
}

func (s *service) resolveQuery(ctx context.Context, userID int64, req HourlyRequest) (Query, error) {
	q := Query{Timezone: strings.TrimSpace(req.Timezone), Days: s.cfg.ForecastDays}
	if q.Timezone == "" {
		q.Timezone = "auto"
	}
	switch {
	case req.Latitude != nil && req.Longitude != nil:
		q.Latitude, q.Longitude = *req.Latitude, *req.Longitude
	case req.Latitude == nil && req.Longitude == nil && s.locations != nil:
		def, err := s.locations.Default(ctx, userID)
		if err != nil {
			if apperrors.IsCode(err, apperrors.CodeNotFound) {
				return Query{}, apperrors.Wrap(apperrors.CodeInvalidInput, "latitude and longitude are required for hourly weather", nil)
			}
			return Query{}, err
		}
		q.Latitude, q.Longitude = def.Latitude, def.Longitude
	default:
		return Query{}, apperrors.Wrap(apperrors.CodeInvalidInput, "latitude and longitude are required for hourly weather", nil)
	}
	if err := location.ValidateCoordinates(q.Latitude, q.Longitude); err != nil {
		return Query{}, err
	}
	return q, nil
}

func (s *service) fetch(ctx context.Context, q Query) (Forecast, error) {
	key := CacheKey(q)
	if s.store != nil {
		cached, ok, err := s.store.Get(ctx, key)
		switch {
		case err != nil:
			s.logger.Warn("forecast cache read failed", "key", key, "error", err)
		case ok:
			s.logger.Debug("forecast cache hit", "key", key)
			return cached, nil
		}
	}

	f, err := s.client.Fetch(ctx, q)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return Forecast{}, err
		}
		return Forecast{}, apperrors.Wrap(apperrors.CodeForecast, "failed to fetch hourly forecast", err)
	}
	if s.store != nil && s.cfg.CacheTTL > 0 {
		if err := s.store.Save(ctx, key, f, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("forecast cache write failed", "key", key, "error", err)
		}
	}
	return f, nil
}

// CacheKey identifies a forecast by coordinates rounded to two decimals and timezone.
func CacheKey(q Query) string {
	return fmt.Sprintf("%.2f:%.2f:%s:%d", roundCoord(q.Latitude), roundCoord(q.Longitude), q.Timezone, q.Days)
}

func roundCoord(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		return 0 // avoid "-0.00"
	}
	return r
}
