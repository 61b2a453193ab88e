package ratelimit

import (
	"context"
	"time"
)

// MetadataKey is the key used to store rate limit config in operation metadata.
const MetadataKey = "rateLimit"

// LimitConfig is one window/max pair.
type LimitConfig struct {
	Window time.Duration
	Max    int64
}

// EndpointConfig defines per-endpoint rate limit configuration. It can
// be attached to Huma operations via the Metadata field. When Limits is
// empty the middleware's default limits apply.
type EndpointConfig struct {
	Limits []LimitConfig

	// Disabled skips rate limiting entirely for this endpoint.
	Disabled bool
}

// Limiter checks whether a request from a client key is allowed under a
// set of limits.
type Limiter struct {
	store Store
}

// NewLimiter creates a limiter over the given store.
func NewLimiter(store Store) *Limiter {
	return &Limiter{store: store}
}

// Allow records the request against every limit and reports whether all
// of them permit it. The exceeded limit is returned when denied.
func (l *Limiter) Allow(ctx context.Context, key string, limits []LimitConfig) (bool, *LimitConfig, error) {
	for _, limit := range limits {
		// Independent counters per window length.
		windowKey := key + ":" + limit.Window.String()

		count, err := l.store.Record(ctx, windowKey, limit.Window)
		if err != nil {
			return false, nil, err
		}

		if count > limit.Max {
			exceeded := limit

			return false, &exceeded, nil
		}
	}

	return true, nil, nil
}
