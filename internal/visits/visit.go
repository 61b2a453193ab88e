package visits

import (
	"time"

	"github.com/google/uuid"
)

// Visit is one recorded redirect event. Visits are append-only and
// immutable once stored.
type Visit struct {
	ID        uuid.UUID
	URLID     uuid.UUID
	Slug      string // denormalized from the URL; primary query key
	CreatedAt time.Time
	IPAddress string
	Referrer  string
	UserAgent string

	// Derived from UserAgent at ingest time.
	Browser    string
	OS         string
	DeviceType string
}

// DayCount is the number of visits on one UTC calendar day.
type DayCount struct {
	Date  string // "YYYY-MM-DD"
	Count int64
}

// FieldCount is the number of visits sharing one value of a grouped field.
// Value is nil when the field was absent on the visit.
type FieldCount struct {
	Value *string
	Count int64
}

// Field names a groupable visit attribute.
type Field string

const (
	FieldReferrer Field = "referrer"
	FieldDevice   Field = "device_type"
	FieldBrowser  Field = "browser"
	FieldOS       Field = "os"
)
