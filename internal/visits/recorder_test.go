package visits_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/serroba/shortify/internal/store"
	"github.com/serroba/shortify/internal/useragent"
	"github.com/serroba/shortify/internal/visits"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type failingStore struct {
	visits.Store
	err error
}

func (f *failingStore) Append(_ context.Context, _ *visits.Visit) error {
	return f.err
}

func TestRecorderHandle(t *testing.T) {
	occurredAt := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	event := &visits.Event{
		URLID:      uuid.New(),
		Slug:       "abc123",
		IPAddress:  "203.0.113.7",
		Referrer:   "https://news.example.com",
		UserAgent:  "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
		OccurredAt: occurredAt,
	}

	t.Run("appends a visit with parsed user agent", func(t *testing.T) {
		visitStore := store.NewMemoryVisitStore()
		recorder := visits.NewRecorder(visitStore, useragent.Parse, zap.NewNop())

		err := recorder.Handle(context.Background(), event)

		require.NoError(t, err)

		count, err := visitStore.CountBySlug(context.Background(), "abc123")
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		groups, err := visitStore.CountByField(context.Background(), "abc123", visits.FieldDevice)
		require.NoError(t, err)
		require.Len(t, groups, 1)
		require.NotNil(t, groups[0].Value)
		assert.Equal(t, useragent.DeviceMobile, *groups[0].Value)
	})

	t.Run("keeps the event timestamp", func(t *testing.T) {
		visitStore := store.NewMemoryVisitStore()
		recorder := visits.NewRecorder(visitStore, useragent.Parse, zap.NewNop())

		require.NoError(t, recorder.Handle(context.Background(), event))

		series, err := visitStore.CountByDay(context.Background(), "abc123")
		require.NoError(t, err)
		require.Len(t, series, 1)
		assert.Equal(t, "2025-06-15", series[0].Date)
	})

	t.Run("parses the user agent exactly once", func(t *testing.T) {
		visitStore := store.NewMemoryVisitStore()

		calls := 0
		parse := func(raw string) useragent.Snapshot {
			calls++

			return useragent.Parse(raw)
		}

		recorder := visits.NewRecorder(visitStore, parse, zap.NewNop())

		require.NoError(t, recorder.Handle(context.Background(), event))
		assert.Equal(t, 1, calls)
	})

	t.Run("propagates store errors", func(t *testing.T) {
		storeErr := errors.New("connection lost")
		recorder := visits.NewRecorder(&failingStore{err: storeErr}, useragent.Parse, zap.NewNop())

		err := recorder.Handle(context.Background(), event)

		assert.ErrorIs(t, err, storeErr)
	})
}
