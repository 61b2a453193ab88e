package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/shortify/internal/auth"
)

// PostgresUsers is a PostgreSQL implementation of auth.Users.
type PostgresUsers struct {
	pool *pgxpool.Pool
}

// NewPostgresUsers creates a new PostgreSQL-backed user store.
func NewPostgresUsers(pool *pgxpool.Pool) *PostgresUsers {
	return &PostgresUsers{pool: pool}
}

func (p *PostgresUsers) Create(ctx context.Context, user *auth.User) error {
	query := `
		INSERT INTO users (
			id, email, username, password_hash, created_at,
			verified, verification_token, verification_expires_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := p.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.Username,
		user.PasswordHash,
		user.CreatedAt,
		user.Verified,
		user.VerificationToken,
		user.VerificationExpiresAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return auth.ErrEmailTaken
		}

		return err
	}

	return nil
}

func (p *PostgresUsers) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	return p.findOne(ctx, `WHERE email = $1`, email)
}

func (p *PostgresUsers) FindByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	return p.findOne(ctx, `WHERE id = $1`, id)
}

func (p *PostgresUsers) FindByVerificationToken(ctx context.Context, token string) (*auth.User, error) {
	return p.findOne(ctx, `WHERE verification_token = $1`, token)
}

func (p *PostgresUsers) FindByResetToken(ctx context.Context, token string) (*auth.User, error) {
	return p.findOne(ctx, `WHERE reset_token = $1`, token)
}

func (p *PostgresUsers) Update(ctx context.Context, user *auth.User) error {
	query := `
		UPDATE users
		SET password_hash = $2,
		    verified = $3,
		    verification_token = $4,
		    verification_expires_at = $5,
		    reset_token = $6,
		    reset_expires_at = $7
		WHERE id = $1
	`

	tag, err := p.pool.Exec(ctx, query,
		user.ID,
		user.PasswordHash,
		user.Verified,
		user.VerificationToken,
		user.VerificationExpiresAt,
		user.ResetToken,
		user.ResetExpiresAt,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return auth.ErrUserNotFound
	}

	return nil
}

func (p *PostgresUsers) findOne(ctx context.Context, where string, arg any) (*auth.User, error) {
	query := `
		SELECT id, email, username, password_hash, created_at,
		       verified, verification_token, verification_expires_at,
		       reset_token, reset_expires_at
		FROM users ` + where

	var user auth.User

	err := p.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.Verified,
		&user.VerificationToken,
		&user.VerificationExpiresAt,
		&user.ResetToken,
		&user.ResetExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, auth.ErrUserNotFound
		}

		return nil, err
	}

	return &user, nil
}

// Compile-time check.
var _ auth.Users = (*PostgresUsers)(nil)
