package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/shortify/internal/visits"
)

// groupColumns whitelists the visit columns exposed for grouping.
var groupColumns = map[visits.Field]string{
	visits.FieldReferrer: "referrer",
	visits.FieldDevice:   "device_type",
	visits.FieldBrowser:  "browser",
	visits.FieldOS:       "os",
}

// PostgresVisitStore is a PostgreSQL implementation of visits.Store.
// Visits are append-only; all reads aggregate with SQL.
type PostgresVisitStore struct {
	pool *pgxpool.Pool
}

// NewPostgresVisitStore creates a new PostgreSQL-backed visit store.
func NewPostgresVisitStore(pool *pgxpool.Pool) *PostgresVisitStore {
	return &PostgresVisitStore{pool: pool}
}

func (p *PostgresVisitStore) Append(ctx context.Context, visit *visits.Visit) error {
	query := `
		INSERT INTO visits (id, url_id, slug, created_at, ip_address, referrer, user_agent, browser, os, device_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := p.pool.Exec(ctx, query,
		visit.ID,
		visit.URLID,
		visit.Slug,
		visit.CreatedAt,
		nullableString(visit.IPAddress),
		nullableString(visit.Referrer),
		nullableString(visit.UserAgent),
		nullableString(visit.Browser),
		nullableString(visit.OS),
		visit.DeviceType,
	)

	return err
}

func (p *PostgresVisitStore) CountBySlug(ctx context.Context, slug string) (int64, error) {
	var count int64

	err := p.pool.QueryRow(ctx,
		`SELECT count(*) FROM visits WHERE slug = $1`, slug,
	).Scan(&count)

	return count, err
}

func (p *PostgresVisitStore) CountDistinctVisitors(ctx context.Context, slug string) (int64, error) {
	// NULLs compare equal under DISTINCT, matching the grouping semantics
	// of the in-memory store.
	query := `
		SELECT count(*)
		FROM (
			SELECT DISTINCT ip_address, user_agent
			FROM visits
			WHERE slug = $1
		) AS pairs
	`

	var count int64

	err := p.pool.QueryRow(ctx, query, slug).Scan(&count)

	return count, err
}

func (p *PostgresVisitStore) CountByDay(ctx context.Context, slug string) ([]visits.DayCount, error) {
	query := `
		SELECT to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day, count(*)
		FROM visits
		WHERE slug = $1
		GROUP BY day
		ORDER BY day
	`

	rows, err := p.pool.Query(ctx, query, slug)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var series []visits.DayCount

	for rows.Next() {
		var point visits.DayCount

		if err := rows.Scan(&point.Date, &point.Count); err != nil {
			return nil, err
		}

		series = append(series, point)
	}

	return series, rows.Err()
}

func (p *PostgresVisitStore) CountByField(ctx context.Context, slug string, field visits.Field) ([]visits.FieldCount, error) {
	column, ok := groupColumns[field]
	if !ok {
		return nil, fmt.Errorf("unknown visit field: %s", field)
	}

	query := fmt.Sprintf(
		`SELECT %s, count(*) FROM visits WHERE slug = $1 GROUP BY %s`,
		column, column,
	)

	if field == visits.FieldReferrer {
		// Ties broken by value for a deterministic order; the contract
		// only requires some stable order.
		query += fmt.Sprintf(
			` ORDER BY count(*) DESC, %s ASC NULLS LAST LIMIT %d`,
			column, visits.ReferrerLimit,
		)
	}

	rows, err := p.pool.Query(ctx, query, slug)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []visits.FieldCount

	for rows.Next() {
		var group visits.FieldCount

		if err := rows.Scan(&group.Value, &group.Count); err != nil {
			return nil, err
		}

		groups = append(groups, group)
	}

	return groups, rows.Err()
}

// Compile-time check.
var _ visits.Store = (*PostgresVisitStore)(nil)
