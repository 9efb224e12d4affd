package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/weatherfit/internal/domain/auth"
	"github.com/yanqian/weatherfit/internal/domain/forecast"
	"github.com/yanqian/weatherfit/internal/domain/location"
	"github.com/yanqian/weatherfit/internal/domain/outfit"
	"github.com/yanqian/weatherfit/internal/domain/wardrobe"
	"github.com/yanqian/weatherfit/internal/infra/config"
	"github.com/yanqian/weatherfit/internal/infra/forecaststore"
	"github.com/yanqian/weatherfit/internal/infra/locationrepo"
	"github.com/yanqian/weatherfit/internal/infra/userrepo"
	"github.com/yanqian/weatherfit/internal/infra/wardroberepo"
)

type stubForecastClient struct {
	forecast forecast.Forecast
	err      error
}

func (s *stubForecastClient) Fetch(context.Context, forecast.Query) (forecast.Forecast, error) {
	return s.forecast, s.err
}

type routerUnderTest struct {
	server  *http.Server
	handler *Handler
	client  *stubForecastClient
}

func newRouterUnderTest(t *testing.T) *routerUnderTest {
	t.Helper()
	logger := newTestLogger()
	client := &stubForecastClient{}

	authSvc := auth.NewService(auth.Config{
		Secret:          "test-secret",
		TokenTTL:        time.Hour,
		RefreshTokenTTL: 2 * time.Hour,
	}, userrepo.NewMemoryRepository(), logger)
	items := wardroberepo.NewMemoryRepository()
	locationSvc := location.NewService(locationrepo.NewMemoryRepository(), logger)
	forecastSvc := forecast.NewService(
		forecast.Config{ForecastDays: 2, CacheTTL: time.Minute},
		client,
		forecaststore.NewMemoryStore(16, time.Minute),
		locationSvc,
		logger,
	)
	handler := NewHandler(
		authSvc,
		wardrobe.NewService(items, logger),
		locationSvc,
		outfit.NewService(items, logger),
		forecastSvc,
		logger,
	)
	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
	}
	return &routerUnderTest{server: NewRouter(cfg, handler), handler: handler, client: client}
}

func (r *routerUnderTest) do(method, path, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader = http.NoBody
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.server.Handler.ServeHTTP(rec, req)
	return rec
}

func (r *routerUnderTest) login(t *testing.T, username string) string {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"email":"%s@example.com","password":"correct-horse"}`, username, username)
	rec := r.do(http.MethodPost, "/api/v1/auth/register", "", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = r.do(http.MethodPost, "/api/v1/auth/login", "", fmt.Sprintf(`{"username":%q,"password":"correct-horse"}`, username))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp auth.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestRouter_Health(t *testing.T) {
	r := newRouterUnderTest(t)

	rec := r.do(http.MethodGet, "/healthz", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	require.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestRouter_RequiresBearerToken(t *testing.T) {
	r := newRouterUnderTest(t)

	rec := r.do(http.MethodGet, "/api/v1/wardrobe", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "unauthorized", decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])

	rec = r.do(http.MethodGet, "/api/v1/wardrobe", "not-a-jwt", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "invalid_token", decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])
}

func TestRouter_AuthFlow(t *testing.T) {
	r := newRouterUnderTest(t)
	token := r.login(t, "casey")

	rec := r.do(http.MethodGet, "/api/v1/auth/me", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var me auth.UserView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	require.Equal(t, "casey", me.Username)

	rec = r.do(http.MethodPost, "/api/v1/auth/register", "", `{"username":"casey","email":"other@example.com","password":"correct-horse"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "user_exists", decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])

	rec = r.do(http.MethodPost, "/api/v1/auth/login", "", `{"username":"casey","password":"wrong-password"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "invalid_credentials", decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])
}

func TestRouter_EmptyWardrobeReportsZeroTotal(t *testing.T) {
	r := newRouterUnderTest(t)
	token := r.login(t, "sasha")

	rec := r.do(http.MethodGet, "/api/v1/wardrobe", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"items":[],"total":0}`, rec.Body.String())

	rec = r.do(http.MethodGet, "/api/v1/wardrobe?page=1", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"items":[],"totalItems":0,"totalPages":0,"currentPage":1}`, rec.Body.String())
}

func TestRouter_WardrobeCRUD(t *testing.T) {
	r := newRouterUnderTest(t)
	token := r.login(t, "morgan")

	rec := r.do(http.MethodPost, "/api/v1/wardrobe", token,
		`{"name":"Rain Shell","category":"outerwear","insulation_level":"light","waterproof":true,"formality":"casual"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created wardrobe.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotZero(t, created.ID)

	path := fmt.Sprintf("/api/v1/wardrobe/%d", created.ID)
	rec = r.do(http.MethodPut, path, token,
		`{"name":"Rain Shell","category":"outerwear","insulation_level":"medium","waterproof":true,"formality":"casual"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated wardrobe.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.Equal(t, wardrobe.InsulationMedium, updated.Insulation)

	rec = r.do(http.MethodGet, "/api/v1/wardrobe?category=outerwear", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list wardrobe.ListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Items, 1)

	rec = r.do(http.MethodPost, "/api/v1/wardrobe", token, `{"name":"Cape","category":"cape","insulation_level":"light","formality":"casual"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "invalid_input", decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])

	rec = r.do(http.MethodGet, "/api/v1/wardrobe/abc", token, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = r.do(http.MethodDelete, path, token, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = r.do(http.MethodGet, path, token, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "not_found", decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])
}

func TestRouter_WardrobeIsScopedToCaller(t *testing.T) {
	r := newRouterUnderTest(t)
	owner := r.login(t, "owner")
	other := r.login(t, "other")

	rec := r.do(http.MethodPost, "/api/v1/wardrobe", owner, `{"name":"Tee","category":"top","insulation_level":"light","formality":"casual"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created wardrobe.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = r.do(http.MethodGet, fmt.Sprintf("/api/v1/wardrobe/%d", created.ID), other, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_Locations(t *testing.T) {
	r := newRouterUnderTest(t)
	token := r.login(t, "river")

	rec := r.do(http.MethodGet, "/api/v1/locations/default", token, "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = r.do(http.MethodPost, "/api/v1/locations", token, `{"name":"Home","latitude":40.71,"longitude":-74.0,"is_default":true}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = r.do(http.MethodGet, "/api/v1/locations/default", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var loc location.Location
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loc))
	require.Equal(t, "Home", loc.Name)
	require.True(t, loc.IsDefault)

	rec = r.do(http.MethodPost, "/api/v1/locations", token, `{"name":"Nowhere","latitude":123,"longitude":0}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_Recommendation(t *testing.T) {
	r := newRouterUnderTest(t)
	token := r.login(t, "sky")

	rec := r.do(http.MethodPost, "/api/v1/weather/recommendation", token, `{"temperature":40,"humidity":80,"precipitation_chance":60}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp forecast.AdviceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Recommendations, 3)
}

func TestRouter_ForecastUpstreamFailure(t *testing.T) {
	r := newRouterUnderTest(t)
	r.client.err = errors.New("connection refused")
	token := r.login(t, "storm")

	rec := r.do(http.MethodPost, "/api/v1/weather/forecast", token, `{"latitude":40.71,"longitude":-74.0}`)
	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.Equal(t, "forecast_error", decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])

	rec = r.do(http.MethodPost, "/api/v1/weather/forecast", token, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_SuggestOutfit(t *testing.T) {
	r := newRouterUnderTest(t)
	token := r.login(t, "sunny")

	for _, body := range []string{
		`{"name":"Linen Shirt","category":"top","insulation_level":"light","formality":"casual"}`,
		`{"name":"Chino Shorts","category":"bottom","insulation_level":"light","formality":"casual"}`,
	} {
		rec := r.do(http.MethodPost, "/api/v1/wardrobe", token, body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := r.do(http.MethodPost, "/api/v1/outfits/suggest", token, `{"weather":{"temperature":75,"precipitation_chance":0,"wind_speed":3,"uv_index":2}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var suggestion outfit.Suggestion
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &suggestion))
	require.Len(t, suggestion.Outfit, 2)
	require.Equal(t, "Linen Shirt", suggestion.Outfit[0].Name)
	require.Equal(t, "Chino Shorts", suggestion.Outfit[1].Name)
	require.Empty(t, suggestion.Gaps)
	require.Equal(t, wardrobe.InsulationLight, suggestion.Context.TargetInsulation)
}

func TestRouter_RateLimit(t *testing.T) {
	r := newRouterUnderTest(t)
	cfg := &config.Config{HTTP: config.HTTPConfig{
		Address:   ":0",
		RateLimit: config.RateLimitConfig{Enabled: true, RequestsPerMinute: 1, Burst: 1},
	}}
	r.server = NewRouter(cfg, r.handler)

	rec := r.do(http.MethodGet, "/healthz", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = r.do(http.MethodGet, "/healthz", "", "")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, "rate_limit_exceeded", decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])
	require.Equal(t, "60", rec.Header().Get("Retry-After"))
}

func TestRouter_PreflightShortCircuits(t *testing.T) {
	r := newRouterUnderTest(t)

	rec := r.do(http.MethodOptions, "/api/v1/wardrobe", "", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

func decodeErrorBody(t *testing.T, raw []byte) map[string]map[string]string {
	t.Helper()
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}
