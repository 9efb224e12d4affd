package locationrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/yanqian/weatherfit/internal/domain/location"
)

// MemoryRepository keeps locations in process for tests/dev.
type MemoryRepository struct {
	mu   sync.RWMutex
	locs map[int64]location.Location
	seq  int64
}

// NewMemoryRepository constructs an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{locs: make(map[int64]location.Location)}
}

// Create stores a location, clearing other defaults when needed.
func (r *MemoryRepository) Create(_ context.Context, loc location.Location) (location.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	now := time.Now().UTC()
	loc.ID = r.seq
	loc.CreatedAt = now
	loc.UpdatedAt = now
	r.locs[loc.ID] = loc
	if loc.IsDefault {
		r.clearDefaults(loc.UserID, loc.ID)
	}
	return loc, nil
}

// Update rewrites a user's location.
func (r *MemoryRepository) Update(_ context.Context, loc location.Location) (location.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.locs[loc.ID]
	if !ok || existing.UserID != loc.UserID {
		return location.Location{}, location.ErrNotFound
	}
	loc.CreatedAt = existing.CreatedAt
	loc.UpdatedAt = time.Now().UTC()
	r.locs[loc.ID] = loc
	if loc.IsDefault {
		r.clearDefaults(loc.UserID, loc.ID)
	}
	return loc, nil
}

// Delete removes a user's location.
func (r *MemoryRepository) Delete(_ context.Context, userID, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.locs[id]
	if !ok || existing.UserID != userID {
		return location.ErrNotFound
	}
	delete(r.locs, id)
	return nil
}

// Get fetches one location.
func (r *MemoryRepository) Get(_ context.Context, userID, id int64) (location.Location, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	loc, ok := r.locs[id]
	if !ok || loc.UserID != userID {
		return location.Location{}, location.ErrNotFound
	}
	return loc, nil
}

// List returns the user's locations ordered by ID.
func (r *MemoryRepository) List(_ context.Context, userID int64) ([]location.Location, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]location.Location, 0)
	for _, loc := range r.locs {
		if loc.UserID == userID {
			out = append(out, loc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Default returns the user's default location.
func (r *MemoryRepository) Default(_ context.Context, userID int64) (location.Location, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, loc := range r.locs {
		if loc.UserID == userID && loc.IsDefault {
			return loc, nil
		}
	}
	return location.Location{}, location.ErrNotFound
}

func (r *MemoryRepository) clearDefaults(userID, keepID int64) {
	for id, loc := range r.locs {
		if loc.UserID == userID && id != keepID && loc.IsDefault {
			loc.IsDefault = false
			r.locs[id] = loc
		}
	}
}

var _ location.Repository = (*MemoryRepository)(nil)
