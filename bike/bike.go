// Package bike
package bike

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Bike is a bicycle registered by a single user. Parts and maintenance
// records hang off it.
type Bike struct {
	// ID is an internal identifier for a bike
	ID uuid.UUID
	// UserID is the owner. Every read and write is scoped to it.
	UserID uuid.UUID `db:"user_id"`

	// Name is a free-form label, used when brand/model are empty.
	Name  string
	Brand string
	Model string

	CreatedAt time.Time `db:"created_at"`
}

// DisplayName is the user-facing name: "Brand Model" when either is set,
// otherwise the free-form name, otherwise a generic label.
func (b Bike) DisplayName() string {
	bm := strings.TrimSpace(strings.TrimSpace(b.Brand) + " " + strings.TrimSpace(b.Model))
	if bm != "" {
		return bm
	}
	if strings.TrimSpace(b.Name) != "" {
		return b.Name
	}
	return "Unnamed bike"
}
