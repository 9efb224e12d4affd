package location

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a location does not exist for the user.
var ErrNotFound = errors.New("location not found")

// Location is a saved place a user forecasts for.
type Location struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	City      string    `json:"city,omitempty"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Input is the create/update payload.
type Input struct {
	Name      string   `json:"name"`
	City      string   `json:"city"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	IsDefault bool     `json:"is_default"`
}

// Repository persists locations. Saving a default location clears the flag
// on the user's other locations in the same operation.
type Repository interface {
	Create(ctx context.Context, loc Location) (Location, error)
	Update(ctx context.Context, loc Location) (Location, error)
	Delete(ctx context.Context, userID, id int64) error
	Get(ctx context.Context, userID, id int64) (Location, error)
	List(ctx context.Context, userID int64) ([]Location, error)
	Default(ctx context.Context, userID int64) (Location, error)
}
