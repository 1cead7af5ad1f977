package repository

import (
	"context"

	"poppes-store/internal/model"

	"github.com/google/uuid"
)

// SortField names a catalogue column the product list can be ordered by.
type SortField string

const (
	SortByCreatedAt SortField = "created_at"
	SortByName      SortField = "name"
	SortByPrice     SortField = "price"
)

// ListOptions controls catalogue queries: stock filtering, ordering and
// result count.
type ListOptions struct {
	InStockOnly bool
	SortBy      SortField
	SortDesc    bool
	Limit       int
	Offset      int
}

// ProductRepository defines the interface for catalogue data access.
type ProductRepository interface {
	// List retrieves products according to opts.
	List(ctx context.Context, opts ListOptions) ([]model.Product, error)

	// GetByID retrieves a single product by its ID. A missing product
	// returns (nil, nil).
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// Create inserts a new product record.
	Create(ctx context.Context, p *model.Product) error

	// Update overwrites an existing product record. Last write wins; no
	// optimistic-concurrency check is applied.
	Update(ctx context.Context, p *model.Product) error

	// Delete removes a product record.
	Delete(ctx context.Context, id string) error
}

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// Create inserts a new order with its item snapshot.
	Create(ctx context.Context, order *model.Order) error

	// GetByID retrieves an order by its ID. A missing order returns
	// (nil, nil).
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// ListByUser retrieves a user's orders, newest first.
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)

	// ListAll retrieves all orders, newest first, with pagination.
	ListAll(ctx context.Context, limit, offset int) ([]model.Order, error)

	// UpdateStatus moves an order to a new lifecycle stage.
	UpdateStatus(ctx context.Context, id uuid.UUID, s model.OrderStatus) error
}

// UserRepository defines the interface for identity records.
type UserRepository interface {
	// Create inserts a new user.
	Create(ctx context.Context, u *model.User) error

	// GetByEmail retrieves a user by email. A missing user returns
	// (nil, nil).
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// GetByID retrieves a user by ID. A missing user returns (nil, nil).
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}
