// Package maintenance holds the maintenance catalog, the per-bike history and
// the status/alert computation that the page view, the interactive summary
// send and the batch notifier all share.
package maintenance

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Status classifies how due a maintenance task is.
type Status string

const (
	// StatusNone means no record exists for the (bike, type) pair. A task
	// with no history is never alerted.
	StatusNone Status = "none"
	StatusOK   Status = "ok"
	StatusSoon Status = "soon"
	StatusOverdue Status = "overdue"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

// Type is a named, user-shared definition of a recurring maintenance task.
// Managed by operators; the engine only ever reads it.
type Type struct {
	ID uuid.UUID
	// Name is the unique display label records are matched against.
	Name string
	// DefaultIntervalDays is the recommended days between performances.
	// Absent (or zero) means the type is never scheduled or alerted.
	DefaultIntervalDays *int `db:"default_interval_days"`
	DefaultIntervalKm   *int `db:"default_interval_km"`
}

// Record is one performed instance of a maintenance task on one bike.
type Record struct {
	ID     uuid.UUID
	BikeID uuid.UUID `db:"bike_id"`
	// TypeName is free text matched against Type.Name. It is deliberately
	// not a foreign key: a record may reference a type that no longer
	// exists, or be entirely custom.
	TypeName string `db:"type_name"`
	// PerformedAt is a calendar date; any time component is ignored.
	PerformedAt time.Time `db:"performed_at"`
	OdometerKm  *int      `db:"odometer_km"`
	CostCents   *int      `db:"cost_cents"`
	Notes       string
	CreatedAt   time.Time `db:"created_at"`
}
