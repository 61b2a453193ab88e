package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/serroba/shortify/internal/middleware"
	"github.com/serroba/shortify/internal/ratelimit"
	"github.com/serroba/shortify/internal/store"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func limitedAPI(t *testing.T, defaults []ratelimit.LimitConfig, metadata map[string]any) *chi.Mux {
	t.Helper()

	router := chi.NewMux()
	api := humachi.New(router, huma.DefaultConfig("Test", "1.0.0"))

	limiter := ratelimit.NewLimiter(store.NewRateLimitMemoryStore())
	api.UseMiddleware(middleware.RateLimiter(api, limiter, defaults, zap.NewNop()))

	huma.Register(api, huma.Operation{
		OperationID: "test",
		Method:      http.MethodGet,
		Path:        "/test",
		Metadata:    metadata,
	}, func(_ context.Context, _ *struct{}) (*testOutput, error) {
		return &testOutput{}, nil
	})

	return router
}

func get(router *chi.Mux, userAgent string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("User-Agent", userAgent)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestRateLimiter(t *testing.T) {
	defaults := []ratelimit.LimitConfig{
		{Window: time.Minute, Max: 2},
	}

	t.Run("allows requests under the default limit", func(t *testing.T) {
		router := limitedAPI(t, defaults, nil)

		assert.Equal(t, http.StatusOK, get(router, "agent").Code)
		assert.Equal(t, http.StatusOK, get(router, "agent").Code)
	})

	t.Run("returns 429 over the limit", func(t *testing.T) {
		router := limitedAPI(t, defaults, nil)

		get(router, "agent")
		get(router, "agent")

		resp := get(router, "agent")

		assert.Equal(t, http.StatusTooManyRequests, resp.Code)
		assert.Contains(t, resp.Body.String(), "rate limit exceeded")
	})

	t.Run("different clients are limited independently", func(t *testing.T) {
		router := limitedAPI(t, defaults, nil)

		get(router, "first-agent")
		get(router, "first-agent")

		assert.Equal(t, http.StatusOK, get(router, "second-agent").Code)
	})

	t.Run("endpoint metadata overrides the defaults", func(t *testing.T) {
		metadata := map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 1},
				},
			},
		}

		router := limitedAPI(t, defaults, metadata)

		assert.Equal(t, http.StatusOK, get(router, "agent").Code)
		assert.Equal(t, http.StatusTooManyRequests, get(router, "agent").Code)
	})

	t.Run("disabled endpoints are never limited", func(t *testing.T) {
		metadata := map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{Disabled: true},
		}

		router := limitedAPI(t, defaults, metadata)

		for i := 0; i < 10; i++ {
			assert.Equal(t, http.StatusOK, get(router, "agent").Code)
		}
	})
}
