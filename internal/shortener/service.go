package shortener

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// slugAttempts bounds the number of generated slugs tried before giving up.
const slugAttempts = 5

// CreateParams holds the input for creating a short URL.
type CreateParams struct {
	LongURL    string
	Title      string
	CustomSlug string
	ExpiresAt  *time.Time
	CreatorID  *uuid.UUID
}

// UpdateParams holds the mutable lifecycle fields of a URL.
// Nil fields are left unchanged.
type UpdateParams struct {
	Disabled  *bool
	ExpiresAt *time.Time
}

// Service implements URL creation and lifecycle operations over a Directory.
type Service struct {
	directory    Directory
	generateSlug SlugGenerator
}

// NewService creates a new shortener service.
func NewService(directory Directory, generator SlugGenerator) *Service {
	return &Service{
		directory:    directory,
		generateSlug: generator,
	}
}

// Create registers a new short URL. When CustomSlug is set it must be unused;
// otherwise slugs are generated until an unused one is found.
func (s *Service) Create(ctx context.Context, params CreateParams) (*URL, error) {
	slug := params.CustomSlug
	if slug != "" {
		if _, err := s.directory.FindBySlug(ctx, slug); err == nil {
			return nil, ErrSlugTaken
		} else if !errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("check slug: %w", err)
		}
	}

	url := &URL{
		ID:        uuid.New(),
		Slug:      slug,
		LongURL:   params.LongURL,
		Title:     params.Title,
		CreatedAt: time.Now().UTC(),
		ExpiresAt: params.ExpiresAt,
		CreatorID: params.CreatorID,
	}

	if slug != "" {
		if err := s.directory.Save(ctx, url); err != nil {
			return nil, err
		}

		return url, nil
	}

	// Generated slugs may collide; retry with a fresh slug on conflict.
	for i := 0; i < slugAttempts; i++ {
		url.Slug = s.generateSlug()

		err := s.directory.Save(ctx, url)
		if err == nil {
			return url, nil
		}

		if !errors.Is(err, ErrSlugTaken) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("generate slug: %w", ErrSlugTaken)
}

// ListByCreator returns the URLs created by a user, newest first.
func (s *Service) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]*URL, error) {
	return s.directory.FindByCreator(ctx, creatorID)
}

// Update applies lifecycle changes to a URL that has already been
// authorized for the caller.
func (s *Service) Update(ctx context.Context, url *URL, params UpdateParams) (*URL, error) {
	if params.Disabled != nil {
		url.Disabled = *params.Disabled
	}

	if params.ExpiresAt != nil {
		url.ExpiresAt = params.ExpiresAt
	}

	if err := s.directory.Update(ctx, url); err != nil {
		return nil, err
	}

	return url, nil
}
