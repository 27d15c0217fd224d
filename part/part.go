// Package part holds the component inventory attached to bikes: parts with a
// weight and an optional category, plus the derived weight breakdown.
package part

import (
	"time"

	"github.com/google/uuid"
)

// Category is a shared label for grouping parts (e.g. "Drivetrain").
type Category struct {
	ID   uuid.UUID
	Name string
}

// Part is one component fitted to one bike.
type Part struct {
	ID     uuid.UUID
	BikeID uuid.UUID `db:"bike_id"`
	// CategoryID is optional; uncategorised parts still count towards the
	// total weight.
	CategoryID   *uuid.UUID `db:"category_id"`
	CategoryName *string    `db:"category_name"`
	Name         string
	WeightGrams  int       `db:"weight_grams"`
	CreatedAt    time.Time `db:"created_at"`
}
