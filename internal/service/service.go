package service

import (
	"context"
	"io"

	"poppes-store/internal/cart"
	"poppes-store/internal/model"
	"poppes-store/internal/repository"

	"github.com/google/uuid"
)

// ProductService defines operations for catalogue browsing and admin
// product management.
type ProductService interface {
	// Browse retrieves products according to the list options.
	Browse(ctx context.Context, opts repository.ListOptions) ([]model.Product, error)

	// Featured retrieves a short in-stock selection for the home view.
	Featured(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a single product by ID. A missing product
	// returns (nil, nil).
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// Create adds a new product to the catalogue (admin).
	Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error)

	// Update overwrites a product's fields (admin). Last write wins.
	Update(ctx context.Context, id string, req *model.ProductRequest) (*model.Product, error)

	// Delete removes a product from the catalogue (admin).
	Delete(ctx context.Context, id string) error

	// AttachImage uploads an image for the product and stores its URL
	// on the record (admin).
	AttachImage(ctx context.Context, id, filename string, r io.Reader, size int64, contentType string) (*model.Product, error)
}

// CartView is the cart as presented to the client: the ordered lines,
// the unit count and the derived money values.
type CartView struct {
	Items []model.CartItem `json:"items"`
	Count int              `json:"count"`
	cart.Totals
}

// CartService defines the session-scoped cart operations. Every call
// restores the cart from its durable slot, applies the mutation and
// persists the result before returning.
type CartService interface {
	// Get returns the current cart contents and totals.
	Get(ctx context.Context, key string) (*CartView, error)

	// AddItem puts quantity units of a product into the cart,
	// snapshotting the product and enforcing the stock bound.
	AddItem(ctx context.Context, key, productID string, quantity int) (*CartView, cart.AddOutcome, error)

	// UpdateItem sets a line's quantity exactly; zero or less removes
	// the line.
	UpdateItem(ctx context.Context, key, productID string, quantity int) (*CartView, error)

	// RemoveItem deletes a line. Absent lines are a no-op.
	RemoveItem(ctx context.Context, key, productID string) (*CartView, error)

	// Clear empties the cart and removes its slot entry.
	Clear(ctx context.Context, key string) error
}

// OrderService defines checkout, order tracking and admin order
// management.
type OrderService interface {
	// Checkout snapshots the cart behind cartKey into a new pending
	// order for userID and clears the cart on success. The cart is left
	// untouched when the order store rejects the write.
	Checkout(ctx context.Context, cartKey string, info model.CustomerInfo, userID string) (*model.Order, error)

	// GetByID retrieves an order by ID. A missing order returns
	// (nil, nil).
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// ListByUser retrieves a user's orders, newest first.
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)

	// ListAll retrieves all orders, newest first (admin).
	ListAll(ctx context.Context, limit, offset int) ([]model.Order, error)

	// UpdateStatus moves an order to a new lifecycle stage (admin).
	UpdateStatus(ctx context.Context, id uuid.UUID, s model.OrderStatus) error
}

// Claims is the verified identity carried by a session token.
type Claims struct {
	UserID string
	Email  string
	Role   model.Role
}

// IsAdmin reports whether the identity carries the admin role.
func (c *Claims) IsAdmin() bool {
	return c != nil && c.Role == model.RoleAdmin
}

// AuthService defines the identity provider: account registration,
// credential checks and session token handling.
type AuthService interface {
	// Register creates a customer account and returns a signed session
	// token for it.
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)

	// Login verifies credentials and returns a signed session token.
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)

	// Verify parses and validates a session token.
	Verify(token string) (*Claims, error)

	// GetUser retrieves the identity record behind a set of claims.
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
}
