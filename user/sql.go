package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("user not found")

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetUserByAuth0ID(ctx context.Context, auth0ID string) (*User, error) {
	var u User
	err := r.db.GetContext(ctx, &u, getUserByAuth0IDQuery, auth0ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, err
	}
	return &u, nil
}

const getUserByAuth0IDQuery = "SELECT * FROM users WHERE auth0_id = $1"

func (r *Repository) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	err := r.db.GetContext(ctx, &u, getUserQuery, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

const getUserQuery = "SELECT * FROM users WHERE id = $1"

// UpsertUser creates the user on first login and refreshes email/name on
// subsequent ones.
func (r *Repository) UpsertUser(ctx context.Context, auth0ID, email, name string) (*User, error) {
	var u User
	err := r.db.GetContext(ctx, &u, upsertUserQuery, uuid.New(), auth0ID, email, name)
	return &u, err
}

const upsertUserQuery = `
INSERT INTO users (id, auth0_id, email, name, created_at)
VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), now())
ON CONFLICT (auth0_id) DO UPDATE
SET email = COALESCE(NULLIF(excluded.email, ''), users.email),
    name  = COALESCE(NULLIF(excluded.name, ''), users.name)
RETURNING *
`

// ListUsers fetches every registered user. Used by the batch summary run.
func (r *Repository) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	err := r.db.SelectContext(ctx, &users, listUsersQuery)
	return users, err
}

const listUsersQuery = "SELECT * FROM users ORDER BY created_at ASC"
