package wardrobe

import (
	"context"
	"errors"
)

// ErrNotFound is returned when an item does not exist for the user.
var ErrNotFound = errors.New("wardrobe item not found")

// Repository abstracts wardrobe persistence. Every call is scoped to one user.
type Repository interface {
	Create(ctx context.Context, item Item) (Item, error)
	Update(ctx context.Context, item Item) (Item, error)
	Delete(ctx context.Context, userID, id int64) error
	Get(ctx context.Context, userID, id int64) (Item, error)
	// List returns one page of matches plus the total match count.
	List(ctx context.Context, userID int64, filter Filter) ([]Item, int, error)
	ListAll(ctx context.Context, userID int64) ([]Item, error)
}
