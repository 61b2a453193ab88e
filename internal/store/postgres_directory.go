package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/shortify/internal/shortener"
)

// PostgresDirectory is a PostgreSQL implementation of shortener.Directory.
type PostgresDirectory struct {
	pool *pgxpool.Pool
}

// NewPostgresDirectory creates a new PostgreSQL-backed URL directory.
func NewPostgresDirectory(pool *pgxpool.Pool) *PostgresDirectory {
	return &PostgresDirectory{pool: pool}
}

func (p *PostgresDirectory) Save(ctx context.Context, url *shortener.URL) error {
	query := `
		INSERT INTO urls (id, slug, long_url, title, created_at, expires_at, disabled, creator_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := p.pool.Exec(ctx, query,
		url.ID,
		url.Slug,
		url.LongURL,
		nullableString(url.Title),
		url.CreatedAt,
		url.ExpiresAt,
		url.Disabled,
		url.CreatorID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return shortener.ErrSlugTaken
		}

		return err
	}

	return nil
}

func (p *PostgresDirectory) FindBySlug(ctx context.Context, slug string) (*shortener.URL, error) {
	query := `
		SELECT id, slug, long_url, title, created_at, expires_at, disabled, creator_id
		FROM urls
		WHERE slug = $1
	`

	url, err := scanURL(p.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortener.ErrNotFound
		}

		return nil, err
	}

	return url, nil
}

func (p *PostgresDirectory) FindByCreator(ctx context.Context, creatorID uuid.UUID) ([]*shortener.URL, error) {
	query := `
		SELECT id, slug, long_url, title, created_at, expires_at, disabled, creator_id
		FROM urls
		WHERE creator_id = $1
		ORDER BY created_at DESC
	`

	rows, err := p.pool.Query(ctx, query, creatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var urls []*shortener.URL

	for rows.Next() {
		url, err := scanURL(rows)
		if err != nil {
			return nil, err
		}

		urls = append(urls, url)
	}

	return urls, rows.Err()
}

func (p *PostgresDirectory) Update(ctx context.Context, url *shortener.URL) error {
	query := `
		UPDATE urls
		SET disabled = $2, expires_at = $3
		WHERE id = $1
	`

	tag, err := p.pool.Exec(ctx, query, url.ID, url.Disabled, url.ExpiresAt)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return shortener.ErrNotFound
	}

	return nil
}

func scanURL(row pgx.Row) (*shortener.URL, error) {
	var (
		url   shortener.URL
		title *string
	)

	err := row.Scan(
		&url.ID,
		&url.Slug,
		&url.LongURL,
		&title,
		&url.CreatedAt,
		&url.ExpiresAt,
		&url.Disabled,
		&url.CreatorID,
	)
	if err != nil {
		return nil, err
	}

	url.Title = stringValue(title)

	return &url, nil
}

// Compile-time check.
var _ shortener.Directory = (*PostgresDirectory)(nil)
