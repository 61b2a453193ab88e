package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortify/internal/ratelimit"
	"go.uber.org/zap"
)

// RateLimiter returns a Huma middleware that limits requests per client.
// Endpoints can override or disable the default limits via operation
// metadata under ratelimit.MetadataKey.
func RateLimiter(
	api huma.API,
	limiter *ratelimit.Limiter,
	defaults []ratelimit.LimitConfig,
	logger *zap.Logger,
) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		limits := defaults

		if cfg := endpointConfig(ctx); cfg != nil {
			if cfg.Disabled {
				next(ctx)

				return
			}

			if len(cfg.Limits) > 0 {
				limits = cfg.Limits
			}
		}

		// Counters are shared per route template, not per concrete path.
		key := clientKey(ctx) + ":" + operationPath(ctx)

		allowed, exceeded, err := limiter.Allow(ctx.Context(), key, limits)
		if err != nil {
			logger.Error("rate limit check failed",
				zap.String("path", operationPath(ctx)),
				zap.Error(err),
			)
			_ = huma.WriteErr(api, ctx, http.StatusInternalServerError, "internal server error", err)

			return
		}

		if !allowed {
			msg := "rate limit exceeded"
			if exceeded != nil {
				msg = fmt.Sprintf("rate limit exceeded: %d requests in %s",
					exceeded.Max, exceeded.Window)
				logger.Warn("rate limit exceeded",
					zap.String("path", operationPath(ctx)),
					zap.String("method", ctx.Method()),
					zap.Int64("max", exceeded.Max),
					zap.Duration("window", exceeded.Window),
					zap.String("client_ip", clientIP(ctx)),
				)
			}

			_ = huma.WriteErr(api, ctx, http.StatusTooManyRequests, msg)

			return
		}

		next(ctx)
	}
}

func endpointConfig(ctx huma.Context) *ratelimit.EndpointConfig {
	op := ctx.Operation()
	if op == nil || op.Metadata == nil {
		return nil
	}

	cfg, ok := op.Metadata[ratelimit.MetadataKey].(ratelimit.EndpointConfig)
	if !ok {
		return nil
	}

	return &cfg
}

func operationPath(ctx huma.Context) string {
	if op := ctx.Operation(); op != nil {
		return op.Path
	}

	return ""
}

// clientKey generates a rate limit key from client IP and User-Agent.
func clientKey(ctx huma.Context) string {
	hash := sha256.Sum256([]byte(clientIP(ctx) + "|" + ctx.Header("User-Agent")))

	return hex.EncodeToString(hash[:])
}
