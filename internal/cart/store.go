package cart

import (
	"context"

	"poppes-store/internal/model"
)

// Store is the durable slot a cart persists to. One key holds the whole
// serialised line-item collection; every successful mutation rewrites it
// in full.
type Store interface {
	// Load reads the line items stored under key. A missing slot is not
	// an error: Load returns (nil, nil).
	Load(ctx context.Context, key string) ([]model.CartItem, error)

	// Save replaces the slot contents under key with items.
	Save(ctx context.Context, key string, items []model.CartItem) error

	// Delete removes the slot entry for key. Deleting an absent slot is
	// a no-op.
	Delete(ctx context.Context, key string) error
}
