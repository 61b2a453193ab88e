package shortener

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no URL exists for a slug.
	ErrNotFound = errors.New("url not found")
	// ErrSlugTaken is returned when a slug is already registered.
	ErrSlugTaken = errors.New("slug already exists")
	// ErrDisabled is returned when resolving a disabled URL.
	ErrDisabled = errors.New("url is disabled")
	// ErrExpired is returned when resolving a URL past its expiry.
	ErrExpired = errors.New("url has expired")
)

// URL represents a shortened URL entity.
type URL struct {
	ID        uuid.UUID
	Slug      string
	LongURL   string
	Title     string
	CreatedAt time.Time
	ExpiresAt *time.Time // nil means the URL never expires
	Disabled  bool
	CreatorID *uuid.UUID // nil means the URL was created anonymously
}

// OwnedBy reports whether the URL was created by the given user.
func (u *URL) OwnedBy(userID uuid.UUID) bool {
	return u.CreatorID != nil && *u.CreatorID == userID
}
