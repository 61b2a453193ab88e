package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/serroba/shortify/internal/visits"
)

// MemoryVisitStore is an in-memory implementation of visits.Store with
// the same aggregation semantics as the Postgres store.
type MemoryVisitStore struct {
	mu     sync.RWMutex
	visits []*visits.Visit
}

// NewMemoryVisitStore creates a new in-memory visit store.
func NewMemoryVisitStore() *MemoryVisitStore {
	return &MemoryVisitStore{}
}

func (m *MemoryVisitStore) Append(_ context.Context, visit *visits.Visit) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	clone := *visit
	m.visits = append(m.visits, &clone)

	return nil
}

func (m *MemoryVisitStore) CountBySlug(_ context.Context, slug string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var count int64

	for _, visit := range m.visits {
		if visit.Slug == slug {
			count++
		}
	}

	return count, nil
}

func (m *MemoryVisitStore) CountDistinctVisitors(_ context.Context, slug string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	pairs := make(map[string]struct{})

	for _, visit := range m.visits {
		if visit.Slug == slug {
			pairs[visit.IPAddress+"|"+visit.UserAgent] = struct{}{}
		}
	}

	return int64(len(pairs)), nil
}

func (m *MemoryVisitStore) CountByDay(_ context.Context, slug string) ([]visits.DayCount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := make(map[string]int64)

	for _, visit := range m.visits {
		if visit.Slug == slug {
			counts[visit.CreatedAt.UTC().Format("2006-01-02")]++
		}
	}

	series := make([]visits.DayCount, 0, len(counts))

	for day, count := range counts {
		series = append(series, visits.DayCount{Date: day, Count: count})
	}

	sort.Slice(series, func(i, j int) bool {
		return series[i].Date < series[j].Date
	})

	return series, nil
}

func (m *MemoryVisitStore) CountByField(_ context.Context, slug string, field visits.Field) ([]visits.FieldCount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	type group struct {
		value *string
		count int64
	}

	// Preserve first-seen order so referrer ties have a stable order.
	var order []string

	groups := make(map[string]*group)

	for _, visit := range m.visits {
		if visit.Slug != slug {
			continue
		}

		value, err := fieldValue(visit, field)
		if err != nil {
			return nil, err
		}

		key := "\x00"
		if value != nil {
			key = "v" + *value
		}

		g, ok := groups[key]
		if !ok {
			g = &group{value: value}
			groups[key] = g
			order = append(order, key)
		}

		g.count++
	}

	result := make([]visits.FieldCount, 0, len(order))

	for _, key := range order {
		result = append(result, visits.FieldCount{
			Value: groups[key].value,
			Count: groups[key].count,
		})
	}

	if field == visits.FieldReferrer {
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Count > result[j].Count
		})

		if len(result) > visits.ReferrerLimit {
			result = result[:visits.ReferrerLimit]
		}
	}

	return result, nil
}

func fieldValue(visit *visits.Visit, field visits.Field) (*string, error) {
	var raw string

	switch field {
	case visits.FieldReferrer:
		raw = visit.Referrer
	case visits.FieldDevice:
		raw = visit.DeviceType
	case visits.FieldBrowser:
		raw = visit.Browser
	case visits.FieldOS:
		raw = visit.OS
	default:
		return nil, fmt.Errorf("unknown visit field: %s", field)
	}

	if raw == "" {
		return nil, nil
	}

	return &raw, nil
}

// Compile-time check.
var _ visits.Store = (*MemoryVisitStore)(nil)
