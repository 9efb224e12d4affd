package wardroberepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/yanqian/weatherfit/internal/domain/wardrobe"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS clothing_items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	name TEXT NOT NULL,
	category TEXT NOT NULL CHECK (category IN ('top', 'bottom', 'outerwear', 'footwear', 'accessory')),
	insulation_level TEXT NOT NULL CHECK (insulation_level IN ('light', 'medium', 'heavy')),
	waterproof INTEGER NOT NULL DEFAULT 0,
	uv_protection INTEGER NOT NULL DEFAULT 0,
	formality TEXT NOT NULL CHECK (formality IN ('casual', 'business casual', 'formal')),
	color TEXT,
	notes TEXT,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_clothing_items_user ON clothing_items (user_id, category);
`

// SQLiteRepository persists wardrobe items in a local SQLite file.
type SQLiteRepository struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and applies the schema.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite serializes writers; one connection keeps them queued in-process.
	db.SetMaxOpenConns(1)
	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite %s: %w", pragma, err)
		}
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// Close releases the database handle.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Create inserts a new row.
func (r *SQLiteRepository) Create(ctx context.Context, item wardrobe.Item) (wardrobe.Item, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO clothing_items (user_id, name, category, insulation_level, waterproof, uv_protection, formality, color, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NULLIF(?, ''), NULLIF(?, ''), ?, ?)`,
		item.UserID, item.Name, string(item.Category), string(item.Insulation), item.Waterproof, item.UVProtection, string(item.Formality), item.Color, item.Notes,
		now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano))
	if err != nil {
		return wardrobe.Item{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return wardrobe.Item{}, err
	}
	item.ID = id
	item.CreatedAt = now
	item.UpdatedAt = now
	return item, nil
}

// Update rewrites a user's item.
func (r *SQLiteRepository) Update(ctx context.Context, item wardrobe.Item) (wardrobe.Item, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		UPDATE clothing_items
		SET name = ?, category = ?, insulation_level = ?, waterproof = ?, uv_protection = ?, formality = ?,
		    color = NULLIF(?, ''), notes = NULLIF(?, ''), updated_at = ?
		WHERE id = ? AND user_id = ?`,
		item.Name, string(item.Category), string(item.Insulation), item.Waterproof, item.UVProtection, string(item.Formality), item.Color, item.Notes,
		now.Format(time.RFC3339Nano), item.ID, item.UserID)
	if err != nil {
		return wardrobe.Item{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return wardrobe.Item{}, err
	} else if n == 0 {
		return wardrobe.Item{}, wardrobe.ErrNotFound
	}
	return r.Get(ctx, item.UserID, item.ID)
}

// Delete removes a user's item.
func (r *SQLiteRepository) Delete(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clothing_items WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return wardrobe.ErrNotFound
	}
	return nil
}

// Get fetches one item.
func (r *SQLiteRepository) Get(ctx context.Context, userID, id int64) (wardrobe.Item, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM clothing_items WHERE id = ? AND user_id = ?`, id, userID)
	item, err := scanSQLiteItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return wardrobe.Item{}, wardrobe.ErrNotFound
	}
	return item, err
}

// List returns a filtered page plus the total match count.
func (r *SQLiteRepository) List(ctx context.Context, userID int64, filter wardrobe.Filter) ([]wardrobe.Item, int, error) {
	where, args := buildWhere(userID, filter, numbered)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM clothing_items WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	query := `SELECT ` + itemColumns + ` FROM clothing_items WHERE ` + where + ` ORDER BY id`
	if filter.Limit > 0 {
		args = append(args, filter.Limit, filter.Offset)
		query += fmt.Sprintf(" LIMIT ?%d OFFSET ?%d", len(args)-1, len(args))
	}
	items, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListAll returns every item for the user.
func (r *SQLiteRepository) ListAll(ctx context.Context, userID int64) ([]wardrobe.Item, error) {
	return r.query(ctx, `SELECT `+itemColumns+` FROM clothing_items WHERE user_id = ? ORDER BY id`, userID)
}

func (r *SQLiteRepository) query(ctx context.Context, query string, args ...any) ([]wardrobe.Item, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]wardrobe.Item, 0)
	for rows.Next() {
		item, err := scanSQLiteItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func numbered(n int) string { return fmt.Sprintf("?%d", n) }

func scanSQLiteItem(row rowScanner) (wardrobe.Item, error) {
	var (
		item                            wardrobe.Item
		category, insulation, formality string
		color, notes                    sql.NullString
		created, updated                string
	)
	if err := row.Scan(&item.ID, &item.UserID, &item.Name, &category, &insulation, &item.Waterproof, &item.UVProtection, &formality, &color, &notes, &created, &updated); err != nil {
		return wardrobe.Item{}, err
	}
	item.Category = wardrobe.Category(category)
	item.Insulation = wardrobe.Insulation(insulation)
	item.Formality = wardrobe.Formality(formality)
	item.Color = color.String
	item.Notes = notes.String
	item.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	item.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
	return item, nil
}

var _ wardrobe.Repository = (*SQLiteRepository)(nil)
