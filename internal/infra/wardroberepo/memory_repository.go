package wardroberepo

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/yanqian/weatherfit/internal/domain/wardrobe"
)

// MemoryRepository provides an in-memory wardrobe store for tests/dev.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[int64]wardrobe.Item
	seq   int64
}

// NewMemoryRepository constructs a new in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[int64]wardrobe.Item)}
}

// Create stores the item and assigns an ID.
func (r *MemoryRepository) Create(_ context.Context, item wardrobe.Item) (wardrobe.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	now := time.Now().UTC()
	item.ID = r.seq
	item.CreatedAt = now
	item.UpdatedAt = now
	r.items[item.ID] = item
	return item, nil
}

// Update replaces a user's item.
func (r *MemoryRepository) Update(_ context.Context, item wardrobe.Item) (wardrobe.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[item.ID]
	if !ok || existing.UserID != item.UserID {
		return wardrobe.Item{}, wardrobe.ErrNotFound
	}
	item.CreatedAt = existing.CreatedAt
	item.UpdatedAt = time.Now().UTC()
	r.items[item.ID] = item
	return item, nil
}

// Delete removes a user's item.
func (r *MemoryRepository) Delete(_ context.Context, userID, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[id]
	if !ok || existing.UserID != userID {
		return wardrobe.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

// Get fetches one item.
func (r *MemoryRepository) Get(_ context.Context, userID, id int64) (wardrobe.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok || item.UserID != userID {
		return wardrobe.Item{}, wardrobe.ErrNotFound
	}
	return item, nil
}

// List returns items ordered by ID.
func (r *MemoryRepository) List(_ context.Context, userID int64, filter wardrobe.Filter) ([]wardrobe.Item, int, error) {
	matches := r.userItems(userID, func(item wardrobe.Item) bool {
		return matchesFilter(item, filter)
	})
	total := len(matches)
	if filter.Offset >= total {
		if filter.Limit > 0 {
			return []wardrobe.Item{}, total, nil
		}
		filter.Offset = 0
	}
	end := total
	if filter.Limit > 0 && filter.Offset+filter.Limit < end {
		end = filter.Offset + filter.Limit
	}
	return matches[filter.Offset:end], total, nil
}

// ListAll returns every item for the user.
func (r *MemoryRepository) ListAll(_ context.Context, userID int64) ([]wardrobe.Item, error) {
	return r.userItems(userID, nil), nil
}

func (r *MemoryRepository) userItems(userID int64, keep func(wardrobe.Item) bool) []wardrobe.Item {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]wardrobe.Item, 0)
	for _, item := range r.items {
		if item.UserID != userID {
			continue
		}
		if keep != nil && !keep(item) {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func matchesFilter(item wardrobe.Item, filter wardrobe.Filter) bool {
	if filter.Category != "" && item.Category != filter.Category {
		return false
	}
	if filter.Query == "" {
		return true
	}
	q := strings.ToLower(filter.Query)
	for _, field := range []string{item.Name, item.Color, item.Notes} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

var _ wardrobe.Repository = (*MemoryRepository)(nil)
