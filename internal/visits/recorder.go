package visits

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/serroba/shortify/internal/useragent"
	"go.uber.org/zap"
)

// Recorder derives Visit records from redirect events and appends them
// to the store. It is used as the handler for TopicVisitRecorded.
type Recorder struct {
	store  Store
	parse  useragent.ParseFunc
	logger *zap.Logger
}

// NewRecorder creates a new visit recorder.
func NewRecorder(store Store, parse useragent.ParseFunc, logger *zap.Logger) *Recorder {
	return &Recorder{
		store:  store,
		parse:  parse,
		logger: logger,
	}
}

// Handle derives a Visit from the event and appends it. The user agent
// is parsed exactly once per event.
func (r *Recorder) Handle(ctx context.Context, event *Event) error {
	snapshot := r.parse(event.UserAgent)

	visit := &Visit{
		ID:         uuid.New(),
		URLID:      event.URLID,
		Slug:       event.Slug,
		CreatedAt:  event.OccurredAt,
		IPAddress:  event.IPAddress,
		Referrer:   event.Referrer,
		UserAgent:  event.UserAgent,
		Browser:    snapshot.Browser,
		OS:         snapshot.OS,
		DeviceType: snapshot.DeviceType,
	}

	if err := r.store.Append(ctx, visit); err != nil {
		return fmt.Errorf("append visit: %w", err)
	}

	r.logger.Debug("visit recorded",
		zap.String("slug", visit.Slug),
		zap.String("deviceType", visit.DeviceType),
	)

	return nil
}
