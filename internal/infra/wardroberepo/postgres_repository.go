package wardroberepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/weatherfit/internal/domain/wardrobe"
)

const itemColumns = `id, user_id, name, category, insulation_level, waterproof, uv_protection, formality, color, notes, created_at, updated_at`

// PostgresRepository persists wardrobe items in Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a new clothing_items row.
func (r *PostgresRepository) Create(ctx context.Context, item wardrobe.Item) (wardrobe.Item, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO clothing_items (user_id, name, category, insulation_level, waterproof, uv_protection, formality, color, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), NULLIF($9, ''))
		RETURNING `+itemColumns,
		item.UserID, item.Name, string(item.Category), string(item.Insulation), item.Waterproof, item.UVProtection, string(item.Formality), item.Color, item.Notes)
	return scanItem(row)
}

// Update rewrites a user's item.
func (r *PostgresRepository) Update(ctx context.Context, item wardrobe.Item) (wardrobe.Item, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE clothing_items
		SET name = $3, category = $4, insulation_level = $5, waterproof = $6, uv_protection = $7,
		    formality = $8, color = NULLIF($9, ''), notes = NULLIF($10, ''), updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING `+itemColumns,
		item.ID, item.UserID, item.Name, string(item.Category), string(item.Insulation), item.Waterproof, item.UVProtection, string(item.Formality), item.Color, item.Notes)
	updated, err := scanItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return wardrobe.Item{}, wardrobe.ErrNotFound
	}
	return updated, err
}

// Delete removes a user's item.
func (r *PostgresRepository) Delete(ctx context.Context, userID, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clothing_items WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return wardrobe.ErrNotFound
	}
	return nil
}

// Get fetches by primary key within the user's wardrobe.
func (r *PostgresRepository) Get(ctx context.Context, userID, id int64) (wardrobe.Item, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+itemColumns+` FROM clothing_items WHERE id = $1 AND user_id = $2`, id, userID)
	item, err := scanItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return wardrobe.Item{}, wardrobe.ErrNotFound
	}
	return item, err
}

// List returns a filtered page plus the total match count.
func (r *PostgresRepository) List(ctx context.Context, userID int64, filter wardrobe.Filter) ([]wardrobe.Item, int, error) {
	where, args := buildWhere(userID, filter, dollar)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM clothing_items WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + itemColumns + ` FROM clothing_items WHERE ` + where + ` ORDER BY id`
	if filter.Limit > 0 {
		args = append(args, filter.Limit, filter.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}
	items, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListAll returns every item for the user.
func (r *PostgresRepository) ListAll(ctx context.Context, userID int64) ([]wardrobe.Item, error) {
	return r.query(ctx, `SELECT `+itemColumns+` FROM clothing_items WHERE user_id = $1 ORDER BY id`, userID)
}

func (r *PostgresRepository) query(ctx context.Context, sql string, args ...any) ([]wardrobe.Item, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]wardrobe.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func dollar(n int) string { return fmt.Sprintf("$%d", n) }

// buildWhere renders the filter using numbered placeholders from ph.
func buildWhere(userID int64, filter wardrobe.Filter, ph func(int) string) (string, []any) {
	args := []any{userID}
	clauses := []string{"user_id = " + ph(1)}
	if filter.Category != "" {
		args = append(args, string(filter.Category))
		clauses = append(clauses, "category = "+ph(len(args)))
	}
	if filter.Query != "" {
		args = append(args, "%"+strings.ToLower(filter.Query)+"%")
		p := ph(len(args))
		clauses = append(clauses, "(lower(name) LIKE "+p+" OR lower(coalesce(color, '')) LIKE "+p+" OR lower(coalesce(notes, '')) LIKE "+p+")")
	}
	return strings.Join(clauses, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (wardrobe.Item, error) {
	var (
		item                            wardrobe.Item
		category, insulation, formality string
		color, notes                    *string
		created, updated                time.Time
	)
	if err := row.Scan(&item.ID, &item.UserID, &item.Name, &category, &insulation, &item.Waterproof, &item.UVProtection, &formality, &color, &notes, &created, &updated); err != nil {
		return wardrobe.Item{}, err
	}
	item.Category = wardrobe.Category(category)
	item.Insulation = wardrobe.Insulation(insulation)
	item.Formality = wardrobe.Formality(formality)
	if color != nil {
		item.Color = *color
	}
	if notes != nil {
		item.Notes = *notes
	}
	item.CreatedAt = created.UTC()
	item.UpdatedAt = updated.UTC()
	return item, nil
}

var _ wardrobe.Repository = (*PostgresRepository)(nil)
