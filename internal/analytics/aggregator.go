// Package analytics computes ownership-gated aggregate views over
// recorded visits.
package analytics

import (
	"context"
	"fmt"

	"github.com/serroba/shortify/internal/visits"
)

// Summary holds the headline counters for one slug.
//
// UniqueVisitors counts distinct (ip address, user agent) pairs. This is
// a deliberate approximation of unique humans: the same IP with two user
// agents counts twice, and visitors behind shared IPs are under-counted.
// The approximation is part of the contract and must not be replaced by
// IP-only or cookie-based uniqueness.
type Summary struct {
	TotalClicks    int64
	UniqueVisitors int64
}

// Aggregator computes read-only analytics views over the visit store,
// scoped to a single slug. Views share no state and are safe to run
// concurrently with each other and with ingest appends.
type Aggregator struct {
	store visits.Store
}

// NewAggregator creates a new analytics aggregator.
func NewAggregator(store visits.Store) *Aggregator {
	return &Aggregator{store: store}
}

// Summary returns total clicks and the unique-visitor approximation.
func (a *Aggregator) Summary(ctx context.Context, slug string) (*Summary, error) {
	total, err := a.store.CountBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("count clicks: %w", err)
	}

	uniques, err := a.store.CountDistinctVisitors(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("count unique visitors: %w", err)
	}

	return &Summary{
		TotalClicks:    total,
		UniqueVisitors: uniques,
	}, nil
}

// TimeSeries returns per-day visit counts, ascending by UTC day.
// Days with zero visits are omitted; callers must not assume the
// series is contiguous.
func (a *Aggregator) TimeSeries(ctx context.Context, slug string) ([]visits.DayCount, error) {
	series, err := a.store.CountByDay(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("count by day: %w", err)
	}

	return series, nil
}

// Referrers returns the top referrers by visit count, descending,
// truncated to the ten largest groups. A nil value represents visits
// without a referrer.
func (a *Aggregator) Referrers(ctx context.Context, slug string) ([]visits.FieldCount, error) {
	return a.countByField(ctx, slug, visits.FieldReferrer)
}

// Devices returns visit counts grouped by device type.
func (a *Aggregator) Devices(ctx context.Context, slug string) ([]visits.FieldCount, error) {
	return a.countByField(ctx, slug, visits.FieldDevice)
}

// Browsers returns visit counts grouped by browser name.
func (a *Aggregator) Browsers(ctx context.Context, slug string) ([]visits.FieldCount, error) {
	return a.countByField(ctx, slug, visits.FieldBrowser)
}

// OS returns visit counts grouped by operating system name.
func (a *Aggregator) OS(ctx context.Context, slug string) ([]visits.FieldCount, error) {
	return a.countByField(ctx, slug, visits.FieldOS)
}

func (a *Aggregator) countByField(ctx context.Context, slug string, field visits.Field) ([]visits.FieldCount, error) {
	groups, err := a.store.CountByField(ctx, slug, field)
	if err != nil {
		return nil, fmt.Errorf("count by %s: %w", field, err)
	}

	return groups, nil
}
