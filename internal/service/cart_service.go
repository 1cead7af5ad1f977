package service

import (
	"context"
	"fmt"

	"poppes-store/internal/cart"
	"poppes-store/internal/model"
	"poppes-store/internal/repository"

	"github.com/rs/zerolog"
)

// cartService implements CartService. Each operation builds a cart engine
// bound to the session's slot key, restores it, applies the mutation and
// returns the resulting view.
type cartService struct {
	products repository.ProductRepository
	store    cart.Store
	logger   zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(products repository.ProductRepository, store cart.Store, logger zerolog.Logger) CartService {
	return &cartService{
		products: products,
		store:    store,
		logger:   logger.With().Str("service", "cart").Logger(),
	}
}

// Get returns the current cart contents and totals.
func (s *cartService) Get(ctx context.Context, key string) (*CartView, error) {
	c, err := s.restore(ctx, key)
	if err != nil {
		return nil, err
	}
	return view(c), nil
}

// AddItem puts quantity units of a product into the cart.
func (s *cartService) AddItem(ctx context.Context, key, productID string, quantity int) (*CartView, cart.AddOutcome, error) {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to look up product: %w", err)
	}
	if p == nil {
		return nil, "", model.ErrProductNotFound
	}

	c, err := s.restore(ctx, key)
	if err != nil {
		return nil, "", err
	}

	outcome, err := c.Add(ctx, *p, quantity)
	if err != nil {
		return nil, "", err
	}

	return view(c), outcome, nil
}

// UpdateItem sets a line's quantity exactly; zero or less removes it.
func (s *cartService) UpdateItem(ctx context.Context, key, productID string, quantity int) (*CartView, error) {
	c, err := s.restore(ctx, key)
	if err != nil {
		return nil, err
	}

	if err := c.UpdateQuantity(ctx, productID, quantity); err != nil {
		return nil, err
	}

	return view(c), nil
}

// RemoveItem deletes a line. Absent lines are a no-op.
func (s *cartService) RemoveItem(ctx context.Context, key, productID string) (*CartView, error) {
	c, err := s.restore(ctx, key)
	if err != nil {
		return nil, err
	}

	if err := c.Remove(ctx, productID); err != nil {
		return nil, err
	}

	return view(c), nil
}

// Clear empties the cart and removes its slot entry.
func (s *cartService) Clear(ctx context.Context, key string) error {
	c, err := s.restore(ctx, key)
	if err != nil {
		return err
	}
	return c.Clear(ctx)
}

// restore builds a cart engine for key with its slot contents loaded.
func (s *cartService) restore(ctx context.Context, key string) (*cart.Cart, error) {
	c := cart.New(key, s.store, s.logger)
	if err := c.Restore(ctx); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to restore cart")
		return nil, err
	}
	return c, nil
}

// view derives the client-facing cart representation.
func view(c *cart.Cart) *CartView {
	items := c.Items()
	if items == nil {
		items = []model.CartItem{}
	}
	return &CartView{
		Items:  items,
		Count:  c.Count(),
		Totals: cart.ComputeTotals(items),
	}
}
