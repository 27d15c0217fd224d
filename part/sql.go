package part

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var (
	ErrNotFound         = errors.New("part not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryInUse    = errors.New("category still referenced by parts")
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// GetPartsByBike fetches all parts on a bike with their category names joined in.
func (r *Repository) GetPartsByBike(ctx context.Context, bikeID uuid.UUID) ([]Part, error) {
	var parts []Part
	err := r.db.SelectContext(ctx, &parts, getPartsByBike, bikeID)
	return parts, err
}

const getPartsByBike = `
SELECT p.*, c.name AS category_name
FROM parts p
LEFT JOIN part_categories c ON p.category_id = c.id
WHERE p.bike_id = $1
ORDER BY p.created_at ASC
`

// GetPart fetches a part, scoped to the owning user via the bike join.
func (r *Repository) GetPart(ctx context.Context, id, userID uuid.UUID) (Part, error) {
	var p Part
	err := r.db.GetContext(ctx, &p, getPart, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrNotFound
	}
	return p, err
}

const getPart = `
SELECT p.*, c.name AS category_name
FROM parts p
JOIN bikes b ON p.bike_id = b.id
LEFT JOIN part_categories c ON p.category_id = c.id
WHERE p.id = $1 AND b.user_id = $2
`

func (r *Repository) Create(ctx context.Context, p *Part) error {
	return r.db.GetContext(ctx, p, createPart, p.ID, p.BikeID, p.CategoryID, p.Name, p.WeightGrams)
}

const createPart = `
INSERT INTO parts (id, bike_id, category_id, name, weight_grams, created_at)
VALUES ($1, $2, $3, $4, $5, now())
RETURNING *
`

func (r *Repository) Update(ctx context.Context, p *Part, userID uuid.UUID) error {
	err := r.db.GetContext(ctx, p, updatePart, p.ID, userID, p.CategoryID, p.Name, p.WeightGrams)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

const updatePart = `
UPDATE parts SET category_id = $3, name = $4, weight_grams = $5
FROM bikes b
WHERE parts.id = $1 AND parts.bike_id = b.id AND b.user_id = $2
RETURNING parts.*
`

func (r *Repository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, deletePart, id, userID)
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

const deletePart = `
DELETE FROM parts USING bikes b
WHERE parts.id = $1 AND parts.bike_id = b.id AND b.user_id = $2
`

func (r *Repository) GetCategories(ctx context.Context) ([]Category, error) {
	var cats []Category
	err := r.db.SelectContext(ctx, &cats, getCategories)
	return cats, err
}

const getCategories = `SELECT * FROM part_categories ORDER BY name ASC`

func (r *Repository) CreateCategory(ctx context.Context, c *Category) error {
	return r.db.GetContext(ctx, c, createCategory, c.ID, c.Name)
}

const createCategory = `INSERT INTO part_categories (id, name) VALUES ($1, $2) RETURNING *`

func (r *Repository) UpdateCategory(ctx context.Context, c *Category) error {
	err := r.db.GetContext(ctx, c, updateCategory, c.ID, c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrCategoryNotFound
	}
	return err
}

const updateCategory = `UPDATE part_categories SET name = $2 WHERE id = $1 RETURNING *`

// DeleteCategory removes an unused category. Categories still referenced by
// parts are refused rather than cascading.
func (r *Repository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var inUse bool
	err = tx.GetContext(ctx, &inUse, categoryInUse, id)
	if err != nil {
		return err
	}
	if inUse {
		return ErrCategoryInUse
	}

	res, err := tx.ExecContext(ctx, deleteCategory, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCategoryNotFound
	}

	return tx.Commit()
}

const categoryInUse = `SELECT EXISTS (SELECT 1 FROM parts WHERE category_id = $1)`
const deleteCategory = `DELETE FROM part_categories WHERE id = $1`
