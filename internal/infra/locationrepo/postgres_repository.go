package locationrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/weatherfit/internal/domain/location"
)

const locationColumns = `id, user_id, name, city, latitude, longitude, is_default, created_at, updated_at`

// PostgresRepository persists locations in Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a location and demotes the previous default in one transaction.
func (r *PostgresRepository) Create(ctx context.Context, loc location.Location) (location.Location, error) {
	var created location.Location
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			INSERT INTO locations (user_id, name, city, latitude, longitude, is_default)
			VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)
			RETURNING `+locationColumns,
			loc.UserID, loc.Name, loc.City, loc.Latitude, loc.Longitude, loc.IsDefault)
		var err error
		if created, err = scanLocation(row); err != nil {
			return err
		}
		return clearDefaults(ctx, tx, created)
	})
	return created, err
}

// Update rewrites a location and demotes the previous default in one transaction.
func (r *PostgresRepository) Update(ctx context.Context, loc location.Location) (location.Location, error) {
	var updated location.Location
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			UPDATE locations
			SET name = $3, city = NULLIF($4, ''), latitude = $5, longitude = $6, is_default = $7, updated_at = now()
			WHERE id = $1 AND user_id = $2
			RETURNING `+locationColumns,
			loc.ID, loc.UserID, loc.Name, loc.City, loc.Latitude, loc.Longitude, loc.IsDefault)
		var err error
		if updated, err = scanLocation(row); err != nil {
			return err
		}
		return clearDefaults(ctx, tx, updated)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return location.Location{}, location.ErrNotFound
	}
	return updated, err
}

// Delete removes a user's location.
func (r *PostgresRepository) Delete(ctx context.Context, userID, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM locations WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return location.ErrNotFound
	}
	return nil
}

// Get fetches one location.
func (r *PostgresRepository) Get(ctx context.Context, userID, id int64) (location.Location, error) {
	return r.one(ctx, `SELECT `+locationColumns+` FROM locations WHERE id = $1 AND user_id = $2`, id, userID)
}

// Default returns the user's default location.
func (r *PostgresRepository) Default(ctx context.Context, userID int64) (location.Location, error) {
	return r.one(ctx, `SELECT `+locationColumns+` FROM locations WHERE user_id = $1 AND is_default LIMIT 1`, userID)
}

// List returns the user's locations ordered by ID.
func (r *PostgresRepository) List(ctx context.Context, userID int64) ([]location.Location, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+locationColumns+` FROM locations WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]location.Location, 0)
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, loc)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) one(ctx context.Context, sql string, args ...any) (location.Location, error) {
	loc, err := scanLocation(r.pool.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return location.Location{}, location.ErrNotFound
	}
	return loc, err
}

func clearDefaults(ctx context.Context, tx pgx.Tx, loc location.Location) error {
	if !loc.IsDefault {
		return nil
	}
	_, err := tx.Exec(ctx, `UPDATE locations SET is_default = false WHERE user_id = $1 AND id <> $2 AND is_default`, loc.UserID, loc.ID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLocation(row rowScanner) (location.Location, error) {
	var (
		loc              location.Location
		city             *string
		created, updated time.Time
	)
	if err := row.Scan(&loc.ID, &loc.UserID, &loc.Name, &city, &loc.Latitude, &loc.Longitude, &loc.IsDefault, &created, &updated); err != nil {
		return location.Location{}, err
	}
	if city != nil {
		loc.City = *city
	}
	loc.CreatedAt = created.UTC()
	loc.UpdatedAt = updated.UTC()
	return loc, nil
}

var _ location.Repository = (*PostgresRepository)(nil)
