package http

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/weatherfit/internal/infra/config"
	apperrors "github.com/yanqian/weatherfit/pkg/errors"
)

func TestAsHTTPErrorMapsDomainCodes(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		code    string
		message string
	}{
		{apperrors.Wrap(apperrors.CodeInvalidInput, "bad temp", nil), http.StatusBadRequest, "invalid_input", "bad temp"},
		{apperrors.Wrap(apperrors.CodeInvalidToken, "token expired", nil), http.StatusUnauthorized, "invalid_token", "token expired"},
		{apperrors.Wrap(apperrors.CodeNotFound, "item not found", nil), http.StatusNotFound, "not_found", "item not found"},
		{apperrors.Wrap(apperrors.CodeUserExists, "taken", nil), http.StatusConflict, "user_exists", "taken"},
		{fmt.Errorf("suggest: %w", apperrors.Wrap(apperrors.CodeForecast, "upstream down", errors.New("timeout"))), http.StatusBadGateway, "forecast_error", "upstream down"},
		{apperrors.Wrap(apperrors.CodeWardrobe, "failed to list items", errors.New("db down")), http.StatusInternalServerError, "wardrobe_error", "failed to list items"},
		{errors.New("pq: connection refused"), http.StatusInternalServerError, "internal_error", "something went wrong"},
	}
	for _, tc := range cases {
		got := asHTTPError(tc.err)
		require.Equal(t, tc.status, got.Status, tc.err.Error())
		require.Equal(t, tc.code, got.Code)
		require.Equal(t, tc.message, got.Message)
		require.ErrorIs(t, got, tc.err)
	}

	explicit := NewHTTPError(http.StatusTooManyRequests, "rate_limit_exceeded", "too many requests", nil)
	require.Same(t, explicit, asHTTPError(explicit))
	require.Nil(t, asHTTPError(nil))
}

func TestErrorHandlingMiddlewareLogsRequestScope(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	router := gin.New()
	router.Use(requestID(), errorHandlingMiddleware(logger))
	router.GET("/fail", func(c *gin.Context) {
		c.Set(userIDKey, int64(42))
		abortWithError(c, apperrors.Wrap(apperrors.CodeNotFound, "location not found", nil))
	})

	req := httptest.NewRequest(http.MethodGet, "/fail", nil)
	req.Header.Set(requestIDHeader, "6f1c2d8e-7a4b-4c1d-9e2f-0a1b2c3d4e5f")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "location not found", decodeErrorBody(t, rec.Body.Bytes())["error"]["message"])
	require.Contains(t, logs.String(), `"request_id":"6f1c2d8e-7a4b-4c1d-9e2f-0a1b2c3d4e5f"`)
	require.Contains(t, logs.String(), `"user_id":42`)
	require.Contains(t, logs.String(), `"level":"WARN"`)
}

func TestIPRateLimiterRefillsOverTime(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	limiter := newIPRateLimiter(config.RateLimitConfig{Enabled: true, RequestsPerMinute: 6, Burst: 2}, func() time.Time { return now })

	_, ok := limiter.allow("10.0.0.1")
	require.True(t, ok)
	_, ok = limiter.allow("10.0.0.1")
	require.True(t, ok)
	wait, ok := limiter.allow("10.0.0.1")
	require.False(t, ok)
	require.Equal(t, 10*time.Second, wait)

	_, ok = limiter.allow("10.0.0.2")
	require.True(t, ok, "buckets are per address")

	now = now.Add(20 * time.Second)
	_, ok = limiter.allow("10.0.0.1")
	require.True(t, ok)

	now = now.Add(10 * time.Minute)
	_, ok = limiter.allow("10.0.0.3")
	require.True(t, ok)
	require.NotContains(t, limiter.visitors, "10.0.0.2", "idle buckets are evicted")
}
