package handlers

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortify/internal/ratelimit"
)

// RegisterRoutes registers all API routes with per-endpoint rate limit
// configuration.
func RegisterRoutes(
	api huma.API,
	urls *URLHandler,
	redirect *RedirectHandler,
	analytics *AnalyticsHandler,
	authHandler *AuthHandler,
) {
	writeLimits := ratelimit.EndpointConfig{
		Limits: []ratelimit.LimitConfig{
			{Window: time.Minute, Max: 10},
			{Window: time.Hour, Max: 100},
		},
	}

	huma.Register(api, huma.Operation{
		OperationID:   "create-url",
		Method:        http.MethodPost,
		Path:          "/api/urls",
		Summary:       "Create short URL",
		Description:   "Creates a shortened URL, optionally with a custom slug and expiry.",
		Tags:          []string{"URLs"},
		DefaultStatus: http.StatusCreated,
		Metadata:      map[string]any{ratelimit.MetadataKey: writeLimits},
	}, urls.CreateURL)

	huma.Register(api, huma.Operation{
		OperationID: "list-urls",
		Method:      http.MethodGet,
		Path:        "/api/urls",
		Summary:     "List my URLs",
		Tags:        []string{"URLs"},
	}, urls.ListURLs)

	huma.Register(api, huma.Operation{
		OperationID: "get-url",
		Method:      http.MethodGet,
		Path:        "/api/urls/{slug}",
		Summary:     "Get short URL",
		Description: "Returns one short URL. Only the creator may access it.",
		Tags:        []string{"URLs"},
	}, urls.GetURL)

	huma.Register(api, huma.Operation{
		OperationID: "update-url",
		Method:      http.MethodPatch,
		Path:        "/api/urls/{slug}",
		Summary:     "Update short URL",
		Description: "Updates the disabled flag or expiry. Only the creator may update.",
		Tags:        []string{"URLs"},
		Metadata:    map[string]any{ratelimit.MetadataKey: writeLimits},
	}, urls.UpdateURL)

	registerAnalytics(api, analytics)

	// GET /{slug} - Redirect to the target URL.
	// Relaxed limits for the high-traffic read path.
	huma.Register(api, huma.Operation{
		OperationID: "redirect",
		Method:      http.MethodGet,
		Path:        "/{slug}",
		Summary:     "Redirect to target URL",
		Tags:        []string{"Redirect"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 1000},
				},
			},
		},
	}, redirect.Redirect)

	huma.Register(api, huma.Operation{
		OperationID: "signup",
		Method:      http.MethodPost,
		Path:        "/auth/signup",
		Summary:     "Create account",
		Tags:        []string{"Auth"},
		Metadata:    map[string]any{ratelimit.MetadataKey: writeLimits},
	}, authHandler.Signup)

	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/auth/login",
		Summary:     "Log in",
		Tags:        []string{"Auth"},
		Metadata:    map[string]any{ratelimit.MetadataKey: writeLimits},
	}, authHandler.Login)

	huma.Register(api, huma.Operation{
		OperationID: "verify-email",
		Method:      http.MethodGet,
		Path:        "/auth/verify-email",
		Summary:     "Verify email address",
		Description: "Confirms the address using the token from the verification email.",
		Tags:        []string{"Auth"},
	}, authHandler.VerifyEmail)

	huma.Register(api, huma.Operation{
		OperationID: "forgot-password",
		Method:      http.MethodPost,
		Path:        "/auth/forgot-password",
		Summary:     "Request password reset",
		Tags:        []string{"Auth"},
		Metadata:    map[string]any{ratelimit.MetadataKey: writeLimits},
	}, authHandler.ForgotPassword)

	huma.Register(api, huma.Operation{
		OperationID: "reset-password",
		Method:      http.MethodPost,
		Path:        "/auth/reset-password",
		Summary:     "Reset password",
		Description: "Sets a new password using the token from the reset email.",
		Tags:        []string{"Auth"},
		Metadata:    map[string]any{ratelimit.MetadataKey: writeLimits},
	}, authHandler.ResetPassword)

	huma.Register(api, huma.Operation{
		OperationID: "logout",
		Method:      http.MethodPost,
		Path:        "/auth/logout",
		Summary:     "Log out",
		Tags:        []string{"Auth"},
	}, authHandler.Logout)

	huma.Register(api, huma.Operation{
		OperationID: "me",
		Method:      http.MethodGet,
		Path:        "/auth/me",
		Summary:     "Get current account",
		Tags:        []string{"Auth"},
	}, authHandler.Me)
}

// registerAnalytics registers the six analytics views. All of them are
// ownership-checked by the handler before touching the visit store.
func registerAnalytics(api huma.API, h *AnalyticsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "analytics-summary",
		Method:      http.MethodGet,
		Path:        "/api/urls/{slug}/analytics/summary",
		Summary:     "Analytics summary",
		Description: "Total clicks and approximate unique visitors for a slug.",
		Tags:        []string{"Analytics"},
	}, h.Summary)

	huma.Register(api, huma.Operation{
		OperationID: "analytics-timeseries",
		Method:      http.MethodGet,
		Path:        "/api/urls/{slug}/analytics/timeseries",
		Summary:     "Clicks per day",
		Tags:        []string{"Analytics"},
	}, h.TimeSeries)

	huma.Register(api, huma.Operation{
		OperationID: "analytics-referrers",
		Method:      http.MethodGet,
		Path:        "/api/urls/{slug}/analytics/referrers",
		Summary:     "Top referrers",
		Tags:        []string{"Analytics"},
	}, h.Referrers)

	huma.Register(api, huma.Operation{
		OperationID: "analytics-devices",
		Method:      http.MethodGet,
		Path:        "/api/urls/{slug}/analytics/devices",
		Summary:     "Clicks by device type",
		Tags:        []string{"Analytics"},
	}, h.Devices)

	huma.Register(api, huma.Operation{
		OperationID: "analytics-browsers",
		Method:      http.MethodGet,
		Path:        "/api/urls/{slug}/analytics/browsers",
		Summary:     "Clicks by browser",
		Tags:        []string{"Analytics"},
	}, h.Browsers)

	huma.Register(api, huma.Operation{
		OperationID: "analytics-os",
		Method:      http.MethodGet,
		Path:        "/api/urls/{slug}/analytics/os",
		Summary:     "Clicks by operating system",
		Tags:        []string{"Analytics"},
	}, h.OS)
}
