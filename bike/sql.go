package bike

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("bike not found")

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// GetBikesByUser fetches all bikes owned by a user, oldest first.
func (r *Repository) GetBikesByUser(ctx context.Context, userID uuid.UUID) ([]Bike, error) {
	var bikes []Bike
	err := r.db.SelectContext(ctx, &bikes, getBikesByUser, userID)
	return bikes, err
}

const getBikesByUser = `SELECT * FROM bikes WHERE user_id = $1 ORDER BY created_at ASC`

// GetBike fetches a bike by ID, scoped to its owner. A bike belonging to
// another user is indistinguishable from a missing one.
func (r *Repository) GetBike(ctx context.Context, id, userID uuid.UUID) (Bike, error) {
	var b Bike
	err := r.db.GetContext(ctx, &b, getBike, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return b, ErrNotFound
	}
	return b, err
}

const getBike = `SELECT * FROM bikes WHERE id = $1 AND user_id = $2`

func (r *Repository) Create(ctx context.Context, b *Bike) error {
	return r.db.GetContext(ctx, b, createBike, b.ID, b.UserID, b.Name, b.Brand, b.Model)
}

const createBike = `
INSERT INTO bikes (id, user_id, name, brand, model, created_at)
VALUES ($1, $2, $3, $4, $5, now())
RETURNING *
`

func (r *Repository) Update(ctx context.Context, b *Bike) error {
	err := r.db.GetContext(ctx, b, updateBike, b.ID, b.UserID, b.Name, b.Brand, b.Model)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

const updateBike = `
UPDATE bikes SET name = $3, brand = $4, model = $5
WHERE id = $1 AND user_id = $2
RETURNING *
`

func (r *Repository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, deleteBike, id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

const deleteBike = `DELETE FROM bikes WHERE id = $1 AND user_id = $2`
