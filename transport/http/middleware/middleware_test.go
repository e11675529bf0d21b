package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"studio/config"
	"studio/infras/jwt"
	otelMocks "studio/infras/otel/mocks"
	"studio/permissions"
	cacheMocks "studio/shared/cache/mocks"
	"studio/shared/constant"
	"studio/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const rules = `{
  "enforce": true,
  "endpoints": [
    { "method": "GET", "path": "/v1/services/", "public": true },
    { "method": "POST", "path": "/v1/bookings/", "roles": ["admin", "client"] },
    { "method": "PATCH", "path": "/v1/bookings/{id}/status", "roles": ["admin"] }
  ]
}`

func newRouter(t *testing.T) (http.Handler, jwt.JWT) {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.APIKey = "internal-key"
	cfg.JWT.AccessSecret = "secret"
	cfg.JWT.AccessExpireMin = 5

	table, err := permissions.Parse([]byte(rules))
	require.NoError(t, err)

	tokens := jwt.New(cfg)
	auth := middleware.NewAuthRoleMiddleware(tokens, otelMocks.NewOtel(), table, cfg)

	echoRole := func(writer http.ResponseWriter, request *http.Request) {
		role, _ := request.Context().Value(constant.ContextKeyUserRole).(string)
		_, _ = writer.Write([]byte(role))
	}

	router := chi.NewRouter()
	router.Use(auth.APIKey, auth.Auth, auth.RBAC)
	router.Get("/v1/services/", echoRole)
	router.Post("/v1/bookings/", echoRole)
	router.Patch("/v1/bookings/{id}/status", echoRole)

	return router, tokens
}

func serve(handler http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, nil)
	for key, value := range headers {
		request.Header.Set(key, value)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	return recorder
}

func bearer(t *testing.T, tokens jwt.JWT, role string) map[string]string {
	t.Helper()

	token, err := tokens.GenerateToken("user-1", "Ana", role)
	require.NoError(t, err)

	return map[string]string{constant.RequestHeaderAuthorization: "Bearer " + token}
}

func TestAuthRole(t *testing.T) {
	router, tokens := newRouter(t)

	tests := []struct {
		name     string
		method   string
		path     string
		headers  map[string]string
		wantCode int
		wantBody string
	}{
		{
			name:     "public route without token",
			method:   http.MethodGet,
			path:     "/v1/services/",
			wantCode: http.StatusOK,
		},
		{
			name:     "missing token",
			method:   http.MethodPost,
			path:     "/v1/bookings/",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "malformed header",
			method:   http.MethodPost,
			path:     "/v1/bookings/",
			headers:  map[string]string{constant.RequestHeaderAuthorization: "Token abc"},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "garbage token",
			method:   http.MethodPost,
			path:     "/v1/bookings/",
			headers:  map[string]string{constant.RequestHeaderAuthorization: "Bearer abc"},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "client books",
			method:   http.MethodPost,
			path:     "/v1/bookings/",
			headers:  bearer(t, tokens, constant.RoleClient),
			wantCode: http.StatusOK,
			wantBody: constant.RoleClient,
		},
		{
			name:     "client cannot change status",
			method:   http.MethodPatch,
			path:     "/v1/bookings/b-1/status",
			headers:  bearer(t, tokens, constant.RoleClient),
			wantCode: http.StatusForbidden,
		},
		{
			name:     "admin changes status",
			method:   http.MethodPatch,
			path:     "/v1/bookings/b-1/status",
			headers:  bearer(t, tokens, constant.RoleAdmin),
			wantCode: http.StatusOK,
			wantBody: constant.RoleAdmin,
		},
		{
			name:     "internal api key bypasses auth",
			method:   http.MethodPatch,
			path:     "/v1/bookings/b-1/status",
			headers:  map[string]string{constant.RequestHeaderAPIKey: "internal-key"},
			wantCode: http.StatusOK,
		},
		{
			name:     "wrong api key",
			method:   http.MethodPatch,
			path:     "/v1/bookings/b-1/status",
			headers:  map[string]string{constant.RequestHeaderAPIKey: "guess"},
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := serve(router, tt.method, tt.path, tt.headers)

			assert.Equal(t, tt.wantCode, recorder.Code)

			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, recorder.Body.String())
			}
		})
	}
}

func newLimited(t *testing.T, enable bool) (http.Handler, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	cache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = enable
	cfg.App.RateLimiter.MaxRequests = 2
	cfg.App.RateLimiter.WindowSeconds = 60

	app := middleware.NewAppMiddleware(otelMocks.NewOtel(), cfg, cache)
	ok := http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) { writer.WriteHeader(http.StatusOK) })

	return app.RateLimit()(ok), cache
}

func TestRateLimit(t *testing.T) {
	handler, cache := newLimited(t, true)

	gomock.InOrder(
		cache.EXPECT().Increment(gomock.Any(), "limiter:192.0.2.1", 60).Return(int64(2), nil),
		cache.EXPECT().Increment(gomock.Any(), "limiter:192.0.2.1", 60).Return(int64(3), nil),
	)

	recorder := serve(handler, http.MethodGet, "/v1/services/", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "0", recorder.Header().Get("X-RateLimit-Remaining"))

	recorder = serve(handler, http.MethodGet, "/v1/services/", nil)
	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
}

func TestRateLimit_CacheDown(t *testing.T) {
	handler, cache := newLimited(t, true)

	cache.EXPECT().Increment(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), errors.New("redis down"))

	assert.Equal(t, http.StatusOK, serve(handler, http.MethodGet, "/", nil).Code)
}

func TestRateLimit_Disabled(t *testing.T) {
	handler, _ := newLimited(t, false)

	assert.Equal(t, http.StatusOK, serve(handler, http.MethodGet, "/", nil).Code)
}

func TestTracing(t *testing.T) {
	app := middleware.NewAppMiddleware(otelMocks.NewOtel(), &config.Config{}, nil)

	var seen context.Context

	handler := app.Tracing(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = request.Context()

		writer.WriteHeader(http.StatusInternalServerError)
	}))

	recorder := serve(handler, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotNil(t, seen)
}
