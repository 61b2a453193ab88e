package auth

import (
	"context"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
)

// SessionCookie is the cookie carrying the session token.
const SessionCookie = "auth_token"

type callerKey struct{}

// ContextWithCaller adds an authenticated caller ID to the context.
func ContextWithCaller(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, callerKey{}, userID)
}

// CallerFromContext extracts the authenticated caller ID, if any.
// A nil result means the request is unauthenticated.
func CallerFromContext(ctx context.Context) *uuid.UUID {
	if id, ok := ctx.Value(callerKey{}).(uuid.UUID); ok {
		return &id
	}

	return nil
}

// Identity is a middleware that resolves the caller's identity from the
// session cookie or a bearer token. Requests without a valid token pass
// through unauthenticated; operations requiring identity reject them
// downstream.
func Identity(manager *TokenManager) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		raw := tokenFromRequest(ctx)
		if raw != "" {
			if userID, err := manager.Verify(raw); err == nil {
				newCtx := ContextWithCaller(ctx.Context(), userID)
				ctx = huma.WithContext(ctx, newCtx)
			}
		}

		next(ctx)
	}
}

func tokenFromRequest(ctx huma.Context) string {
	if cookie, err := huma.ReadCookie(ctx, SessionCookie); err == nil && cookie != nil {
		return cookie.Value
	}

	if header := ctx.Header("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	return ""
}
