package analytics

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/serroba/shortify/internal/shortener"
)

var (
	// ErrUnauthenticated is returned when no caller identity is present.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrNoOwner is returned for anonymously created URLs, which have no
	// analytics access for anyone.
	ErrNoOwner = errors.New("url has no owner")
	// ErrForbidden is returned when the caller is not the URL's creator.
	ErrForbidden = errors.New("caller does not own url")
)

// Guard authorizes access to a slug's analytics against its recorded
// creator. Every analytics view goes through the same check.
type Guard struct {
	directory shortener.Directory
}

// NewGuard creates a new ownership guard.
func NewGuard(directory shortener.Directory) *Guard {
	return &Guard{directory: directory}
}

// Authorize checks that the caller owns the URL behind slug and returns
// the URL record. It is read-only. callerID is nil for unauthenticated
// callers.
func (g *Guard) Authorize(ctx context.Context, slug string, callerID *uuid.UUID) (*shortener.URL, error) {
	url, err := g.directory.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if callerID == nil {
		return nil, ErrUnauthenticated
	}

	if url.CreatorID == nil {
		return nil, ErrNoOwner
	}

	if *url.CreatorID != *callerID {
		return nil, ErrForbidden
	}

	return url, nil
}
