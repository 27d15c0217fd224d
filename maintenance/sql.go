package maintenance

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var (
	ErrTypeNotFound   = errors.New("maintenance type not found")
	ErrRecordNotFound = errors.New("maintenance record not found")
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// GetTypes fetches the full maintenance type catalog. The catalog is shared
// across users.
func (r *Repository) GetTypes(ctx context.Context) ([]Type, error) {
	var types []Type
	err := r.db.SelectContext(ctx, &types, getTypes)
	return types, err
}

const getTypes = `SELECT * FROM maintenance_types ORDER BY name ASC`

func (r *Repository) GetType(ctx context.Context, id uuid.UUID) (Type, error) {
	var t Type
	err := r.db.GetContext(ctx, &t, getType, id)
	if errors.Is(err, sql.ErrNoRows) {
		return t, ErrTypeNotFound
	}
	return t, err
}

const getType = `SELECT * FROM maintenance_types WHERE id = $1`

func (r *Repository) CreateType(ctx context.Context, t *Type) error {
	return r.db.GetContext(ctx, t, createType, t.ID, t.Name, t.DefaultIntervalDays, t.DefaultIntervalKm)
}

const createType = `
INSERT INTO maintenance_types (id, name, default_interval_days, default_interval_km)
VALUES ($1, $2, $3, $4)
RETURNING *
`

func (r *Repository) UpdateType(ctx context.Context, t *Type) error {
	err := r.db.GetContext(ctx, t, updateType, t.ID, t.Name, t.DefaultIntervalDays, t.DefaultIntervalKm)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrTypeNotFound
	}
	return err
}

const updateType = `
UPDATE maintenance_types SET name = $2, default_interval_days = $3, default_interval_km = $4
WHERE id = $1
RETURNING *
`

// GetRecordsByBikes fetches all records for a set of bikes, newest first.
// The alert computation selects per-pair maxima itself, but newest-first is
// what every listing surface wants.
func (r *Repository) GetRecordsByBikes(ctx context.Context, bikeIDs []uuid.UUID) ([]Record, error) {
	if len(bikeIDs) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(getRecordsByBikes, bikeIDs)
	if err != nil {
		return nil, err
	}
	query = r.db.Rebind(query)

	var records []Record
	err = r.db.SelectContext(ctx, &records, query, args...)
	return records, err
}

const getRecordsByBikes = `
SELECT * FROM maintenance_records
WHERE bike_id IN (?)
ORDER BY performed_at DESC, created_at DESC, id DESC
`

func (r *Repository) GetRecordsByBike(ctx context.Context, bikeID uuid.UUID) ([]Record, error) {
	var records []Record
	err := r.db.SelectContext(ctx, &records, getRecordsByBike, bikeID)
	return records, err
}

const getRecordsByBike = `
SELECT * FROM maintenance_records
WHERE bike_id = $1
ORDER BY performed_at DESC, created_at DESC, id DESC
`

func (r *Repository) CreateRecord(ctx context.Context, rec *Record) error {
	return r.db.GetContext(ctx, rec, createRecord,
		rec.ID, rec.BikeID, rec.TypeName, rec.PerformedAt, rec.OdometerKm, rec.CostCents, rec.Notes)
}

const createRecord = `
INSERT INTO maintenance_records (id, bike_id, type_name, performed_at, odometer_km, cost_cents, notes, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now())
RETURNING *
`

// UpdateRecord rewrites a record, scoped to the owning user via the bike join.
func (r *Repository) UpdateRecord(ctx context.Context, rec *Record, userID uuid.UUID) error {
	err := r.db.GetContext(ctx, rec, updateRecord,
		rec.ID, userID, rec.TypeName, rec.PerformedAt, rec.OdometerKm, rec.CostCents, rec.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRecordNotFound
	}
	return err
}

const updateRecord = `
UPDATE maintenance_records SET type_name = $3, performed_at = $4, odometer_km = $5, cost_cents = $6, notes = $7
FROM bikes b
WHERE maintenance_records.id = $1 AND maintenance_records.bike_id = b.id AND b.user_id = $2
RETURNING maintenance_records.*
`

func (r *Repository) DeleteRecord(ctx context.Context, id, userID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, deleteRecord, id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRecordNotFound
	}
	return nil
}

const deleteRecord = `
DELETE FROM maintenance_records USING bikes b
WHERE maintenance_records.id = $1 AND maintenance_records.bike_id = b.id AND b.user_id = $2
`

// GetPreferences fetches a user's explicit notification overrides keyed by
// type ID. Types without a row are absent from the map, which downstream
// treats as opted in.
func (r *Repository) GetPreferences(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]bool, error) {
	var rows []struct {
		TypeID      uuid.UUID `db:"type_id"`
		NotifyEmail bool      `db:"notify_email"`
	}
	err := r.db.SelectContext(ctx, &rows, getPreferences, userID)
	if err != nil {
		return nil, err
	}

	prefs := make(map[uuid.UUID]bool, len(rows))
	for _, row := range rows {
		prefs[row.TypeID] = row.NotifyEmail
	}
	return prefs, nil
}

const getPreferences = `SELECT type_id, notify_email FROM notification_preferences WHERE user_id = $1`

// UpsertPreference writes one (user, type) override.
func (r *Repository) UpsertPreference(ctx context.Context, userID, typeID uuid.UUID, notifyEmail bool) error {
	_, err := r.db.ExecContext(ctx, upsertPreference, userID, typeID, notifyEmail)
	return err
}

const upsertPreference = `
INSERT INTO notification_preferences (user_id, type_id, notify_email)
VALUES ($1, $2, $3)
ON CONFLICT (user_id, type_id) DO UPDATE SET notify_email = excluded.notify_email
`

// DeletePreference removes an override, restoring the opted-in default.
func (r *Repository) DeletePreference(ctx context.Context, userID, typeID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, deletePreference, userID, typeID)
	return err
}

const deletePreference = `DELETE FROM notification_preferences WHERE user_id = $1 AND type_id = $2`
