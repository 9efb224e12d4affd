package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/weatherfit/internal/infra/config"
)

func retryConfig(attempts int, backoff time.Duration) config.RetryConfig {
	return config.RetryConfig{Enabled: true, MaxAttempts: attempts, BaseBackoff: backoff, Exclude: []string{"/skip"}}
}

// scriptedHandler answers with statuses[n] on the n-th call and echoes the body.
func scriptedHandler(calls *atomic.Int32, statuses ...int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := int(calls.Add(1)) - 1
		status := statuses[len(statuses)-1]
		if n < len(statuses) {
			status = statuses[n]
		}
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("X-Attempt", strconv.Itoa(n+1))
		w.WriteHeader(status)
		_, _ = w.Write(body)
	})
}

func TestWithRetryReplaysServerErrors(t *testing.T) {
	var calls atomic.Int32
	h := withRetry(scriptedHandler(&calls, http.StatusServiceUnavailable, http.StatusOK), retryConfig(3, time.Millisecond), newTestLogger())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/weather/forecast", strings.NewReader(`{"hours":6}`)))

	require.EqualValues(t, 2, calls.Load())
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, `{"hours":6}`, rec.Body.String())
	require.Equal(t, "2", rec.Header().Get("X-Attempt"))
}

func TestWithRetryCommitsLastFailure(t *testing.T) {
	var calls atomic.Int32
	h := withRetry(scriptedHandler(&calls, http.StatusBadGateway), retryConfig(3, time.Millisecond), newTestLogger())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/weather/forecast", strings.NewReader("{}")))

	require.EqualValues(t, 3, calls.Load())
	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.Equal(t, "3", rec.Header().Get("X-Attempt"))
}

func TestWithRetryStopsOnFinalStatuses(t *testing.T) {
	for _, status := range []int{http.StatusCreated, http.StatusBadRequest, http.StatusConflict, http.StatusNotImplemented} {
		var calls atomic.Int32
		h := withRetry(scriptedHandler(&calls, status), retryConfig(3, time.Millisecond), newTestLogger())

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/outfits/suggest", strings.NewReader("{}")))

		require.EqualValues(t, 1, calls.Load(), "status %d", status)
		require.Equal(t, status, rec.Code)
	}
}

func TestWithRetryPassesThroughUnreplayableRequests(t *testing.T) {
	var calls atomic.Int32
	h := withRetry(scriptedHandler(&calls, http.StatusInternalServerError), retryConfig(3, time.Millisecond), newTestLogger())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/wardrobe", nil))
	require.EqualValues(t, 1, calls.Load())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/skip", strings.NewReader("{}")))
	require.EqualValues(t, 2, calls.Load())
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestWithRetryHonoursCancellationDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	failThenCancel := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		cancel()
		w.WriteHeader(http.StatusInternalServerError)
	})
	h := withRetry(failThenCancel, retryConfig(5, time.Hour), newTestLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/weather/recommendation", strings.NewReader("{}")).WithContext(ctx)
	rec := httptest.NewRecorder()
	done := make(chan struct{})
	go func() {
		h.ServeHTTP(rec, req)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("retry kept waiting after the client went away")
	}
	require.EqualValues(t, 1, calls.Load())
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestWithRetrySkipsCancelledRequests(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	h := withRetry(scriptedHandler(&calls, http.StatusOK), retryConfig(3, time.Millisecond), newTestLogger())

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/outfits/suggest", strings.NewReader("{}")).WithContext(ctx))
	require.Zero(t, calls.Load())
}

func TestWithRetryKeepsRequestIDAcrossAttempts(t *testing.T) {
	var seen []string
	h := withRetry(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get(requestIDHeader))
		if len(seen) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
		}
	}), retryConfig(2, time.Millisecond), newTestLogger())

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/weather/forecast", strings.NewReader("{}")))

	require.Len(t, seen, 2)
	require.NotEmpty(t, seen[0])
	require.Equal(t, seen[0], seen[1])
}

func TestWithRetryRejectsOversizedBody(t *testing.T) {
	var calls atomic.Int32
	h := withRetry(scriptedHandler(&calls, http.StatusOK), retryConfig(2, time.Millisecond), newTestLogger())

	rec := httptest.NewRecorder()
	body := strings.NewReader(strings.Repeat("x", replayBodyLimit+1))
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/outfits/suggest", body))

	require.Zero(t, calls.Load())
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	require.Equal(t, "payload_too_large", decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])
}

func TestWithRetryDisabledReturnsHandler(t *testing.T) {
	var calls atomic.Int32
	next := scriptedHandler(&calls, http.StatusInternalServerError)
	h := withRetry(next, config.RetryConfig{Enabled: true, MaxAttempts: 1}, newTestLogger())

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/outfits/suggest", strings.NewReader("{}")))
	require.EqualValues(t, 1, calls.Load())
}
