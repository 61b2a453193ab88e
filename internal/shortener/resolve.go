package shortener

import (
	"context"
	"time"
)

// Resolve looks up a slug and validates it for redirection.
// It returns ErrNotFound for unknown slugs, ErrDisabled for disabled URLs,
// and ErrExpired when the expiry is strictly in the past. A URL whose
// expiry equals now is still valid.
func Resolve(ctx context.Context, directory Directory, slug string, now time.Time) (*URL, error) {
	url, err := directory.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if url.Disabled {
		return nil, ErrDisabled
	}

	if url.ExpiresAt != nil && now.After(*url.ExpiresAt) {
		return nil, ErrExpired
	}

	return url, nil
}
