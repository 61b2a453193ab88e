package shortener

import (
	"context"

	"github.com/google/uuid"
)

// Directory defines the interface for URL storage and lookup.
type Directory interface {
	// Save stores a new URL. Returns ErrSlugTaken if the slug is already registered.
	Save(ctx context.Context, url *URL) error

	// FindBySlug resolves a slug to its URL record. Returns ErrNotFound if unknown.
	FindBySlug(ctx context.Context, slug string) (*URL, error)

	// FindByCreator lists URLs created by a user, newest first.
	FindByCreator(ctx context.Context, creatorID uuid.UUID) ([]*URL, error)

	// Update persists lifecycle changes (disabled flag and expiry).
	Update(ctx context.Context, url *URL) error
}

// SlugGenerator generates short, URL-safe slugs.
type SlugGenerator func() string
