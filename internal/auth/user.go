package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when an email is already registered.
	ErrEmailTaken = errors.New("email already registered")
)

// User represents a registered account. Accounts start unverified and
// must confirm their email before they can log in.
type User struct {
	ID           uuid.UUID
	Email        string
	Username     string
	PasswordHash string
	CreatedAt    time.Time

	Verified              bool
	VerificationToken     *string
	VerificationExpiresAt *time.Time
	ResetToken            *string
	ResetExpiresAt        *time.Time
}

// Users defines the interface for user storage.
type Users interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByVerificationToken and FindByResetToken look up the holder of
	// a single-use email token. Checking expiry is the caller's concern.
	FindByVerificationToken(ctx context.Context, token string) (*User, error)
	FindByResetToken(ctx context.Context, token string) (*User, error)

	// Update persists changes to an existing user.
	Update(ctx context.Context, user *User) error
}
