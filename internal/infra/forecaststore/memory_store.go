package forecaststore

import (
	"context"
	"time"

	"github.com/maypok86/otter/v2"

	"github.com/yanqian/weatherfit/internal/domain/forecast"
)

type entry struct {
	forecast  forecast.Forecast
	expiresAt time.Time
}

// MemoryStore is an in-process forecast cache bounded by entry count.
type MemoryStore struct {
	cache *otter.Cache[string, entry]
	now   func() time.Time
}

// NewMemoryStore builds a cache holding at most maxEntries forecasts, each
// evicted no later than maxTTL after it was written.
func NewMemoryStore(maxEntries int, maxTTL time.Duration) *MemoryStore {
	if maxEntries <= 0 {
		maxEntries = 10_000
	}
	if maxTTL <= 0 {
		maxTTL = time.Hour
	}
	return &MemoryStore{
		cache: otter.Must(&otter.Options[string, entry]{
			MaximumSize:      maxEntries,
			InitialCapacity:  min(maxEntries, 1024),
			ExpiryCalculator: otter.ExpiryWriting[string, entry](maxTTL),
		}),
		now: time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (forecast.Forecast, bool, error) {
	e, ok := s.cache.GetIfPresent(key)
	if !ok {
		return forecast.Forecast{}, false, nil
	}
	if !e.expiresAt.IsZero() && s.now().After(e.expiresAt) {
		s.cache.Invalidate(key)
		return forecast.Forecast{}, false, nil
	}
	return e.forecast, true, nil
}

func (s *MemoryStore) Save(_ context.Context, key string, f forecast.Forecast, ttl time.Duration) error {
	e := entry{forecast: f}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}
	s.cache.Set(key, e)
	return nil
}

var _ forecast.Store = (*MemoryStore)(nil)
