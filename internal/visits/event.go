package visits

import (
	"time"

	"github.com/google/uuid"
)

// TopicVisitRecorded is the topic visit events are published on.
const TopicVisitRecorded = "visit.recorded"

// Event is the wire event emitted by the redirect path after a redirect
// has been decided. User-agent parsing happens at consumption, not here.
type Event struct {
	URLID      uuid.UUID `json:"urlId"`
	Slug       string    `json:"slug"`
	IPAddress  string    `json:"ipAddress"`
	Referrer   string    `json:"referrer,omitempty"`
	UserAgent  string    `json:"userAgent"`
	OccurredAt time.Time `json:"occurredAt"`
}
