package visits

import "context"

// ReferrerLimit caps the number of referrer groups returned by CountByField.
const ReferrerLimit = 10

// Store defines the interface for visit persistence and aggregation.
// Appends and reads may run concurrently; a read is not required to see
// a visit appended concurrently with it.
type Store interface {
	// Append stores a visit. Visits are never updated or deleted.
	Append(ctx context.Context, visit *Visit) error

	// CountBySlug returns the total number of visits for a slug.
	CountBySlug(ctx context.Context, slug string) (int64, error)

	// CountDistinctVisitors returns the number of distinct
	// (ip address, user agent) pairs among a slug's visits.
	CountDistinctVisitors(ctx context.Context, slug string) (int64, error)

	// CountByDay groups a slug's visits by UTC calendar day, ascending.
	// Days without visits are omitted.
	CountByDay(ctx context.Context, slug string) ([]DayCount, error)

	// CountByField groups a slug's visits by the given field.
	// For FieldReferrer the result is ordered by count descending and
	// truncated to ReferrerLimit entries; other fields have no
	// guaranteed order.
	CountByField(ctx context.Context, slug string, field Field) ([]FieldCount, error)
}
