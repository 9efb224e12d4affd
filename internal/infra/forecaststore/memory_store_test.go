package forecaststore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/weatherfit/internal/domain/forecast"
)

func TestMemoryStoreRoundTripAndExpiry(t *testing.T) {
	store := NewMemoryStore(16, time.Hour)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)

	f := forecast.Forecast{Timezone: "UTC", Hourly: []forecast.HourlyEntry{{Time: "2024-03-01T12:00"}}}
	require.NoError(t, store.Save(ctx, "k", f, time.Minute))

	got, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, f, got)

	now = now.Add(2 * time.Minute)
	_, ok, err = store.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)
}
