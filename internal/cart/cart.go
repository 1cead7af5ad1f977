package cart

import (
	"context"
	"fmt"

	"poppes-store/internal/model"

	"github.com/rs/zerolog"
)

// AddOutcome tells the caller whether an Add created a new line or merged
// into an existing one, so the right message can be surfaced.
type AddOutcome string

const (
	OutcomeAdded   AddOutcome = "added"
	OutcomeUpdated AddOutcome = "updated"
)

// Cart is an insertion-ordered collection of line items, unique by product
// id, bound to one durable slot key. It is not safe for concurrent use;
// each cart instance serves a single request.
type Cart struct {
	key    string
	items  []model.CartItem
	store  Store
	logger zerolog.Logger
}

// New creates an empty cart bound to the slot identified by key.
func New(key string, store Store, logger zerolog.Logger) *Cart {
	return &Cart{
		key:    key,
		store:  store,
		logger: logger.With().Str("component", "cart").Logger(),
	}
}

// Restore loads the cart's line items from its slot. A missing slot
// leaves the cart empty.
func (c *Cart) Restore(ctx context.Context) error {
	items, err := c.store.Load(ctx, c.key)
	if err != nil {
		return fmt.Errorf("failed to restore cart: %w", err)
	}
	c.items = items
	return nil
}

// Add puts quantity units of product into the cart. If a line for the
// product already exists the quantity stacks onto it; otherwise a new
// line is appended. The resulting line quantity may never exceed the
// product's available stock. Rejected adds change nothing and persist
// nothing.
func (c *Cart) Add(ctx context.Context, p model.Product, quantity int) (AddOutcome, error) {
	if quantity <= 0 {
		return "", model.ErrInvalidQuantity
	}

	if !p.InStock {
		c.logger.Debug().Str("product_id", p.ID).Msg("rejected add: product out of stock")
		return "", model.ErrOutOfStock
	}

	idx := c.indexOf(p.ID)

	requested := quantity
	if idx >= 0 {
		requested += c.items[idx].Quantity
	}

	if requested > p.Quantity {
		c.logger.Debug().
			Str("product_id", p.ID).
			Int("requested", requested).
			Int("stock", p.Quantity).
			Msg("rejected add: insufficient stock")
		return "", model.ErrInsufficientStock
	}

	outcome := OutcomeAdded
	if idx >= 0 {
		updated := c.items[idx]
		updated.Quantity = requested
		if err := c.persistWith(ctx, idx, updated); err != nil {
			return "", err
		}
		outcome = OutcomeUpdated
	} else {
		line := model.SnapshotItem(p, quantity)
		next := append(c.copyItems(), line)
		if err := c.store.Save(ctx, c.key, next); err != nil {
			return "", err
		}
		c.items = next
	}

	c.logger.Debug().
		Str("product_id", p.ID).
		Str("outcome", string(outcome)).
		Int("quantity", quantity).
		Msg("cart add")

	return outcome, nil
}

// UpdateQuantity sets the quantity of an existing line exactly. A
// quantity of zero or less removes the line. The new quantity may not
// exceed the stock recorded when the product was added.
func (c *Cart) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity <= 0 {
		return c.Remove(ctx, productID)
	}

	idx := c.indexOf(productID)
	if idx < 0 {
		return model.ErrProductNotFound
	}

	if quantity > c.items[idx].Stock {
		c.logger.Debug().
			Str("product_id", productID).
			Int("requested", quantity).
			Int("stock", c.items[idx].Stock).
			Msg("rejected update: insufficient stock")
		return model.ErrInsufficientStock
	}

	updated := c.items[idx]
	updated.Quantity = quantity
	return c.persistWith(ctx, idx, updated)
}

// Remove deletes the line for productID. Removing an absent product is a
// no-op and does not touch the slot.
func (c *Cart) Remove(ctx context.Context, productID string) error {
	idx := c.indexOf(productID)
	if idx < 0 {
		return nil
	}

	next := make([]model.CartItem, 0, len(c.items)-1)
	next = append(next, c.items[:idx]...)
	next = append(next, c.items[idx+1:]...)

	if err := c.store.Save(ctx, c.key, next); err != nil {
		return err
	}
	c.items = next

	c.logger.Debug().Str("product_id", productID).Msg("cart line removed")
	return nil
}

// Clear empties the cart and deletes its slot entry.
func (c *Cart) Clear(ctx context.Context) error {
	if err := c.store.Delete(ctx, c.key); err != nil {
		return err
	}
	c.items = nil

	c.logger.Debug().Msg("cart cleared")
	return nil
}

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []model.CartItem {
	return c.copyItems()
}

// Count returns the total number of units across all lines.
func (c *Cart) Count() int {
	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

// Subtotal returns the sum of price times quantity across all lines.
func (c *Cart) Subtotal() float64 {
	subtotal := 0.0
	for _, item := range c.items {
		subtotal += item.LineTotal()
	}
	return subtotal
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.items)
}

// persistWith saves the cart with the line at idx replaced, applying the
// in-memory change only after the slot write succeeds.
func (c *Cart) persistWith(ctx context.Context, idx int, line model.CartItem) error {
	next := c.copyItems()
	next[idx] = line

	if err := c.store.Save(ctx, c.key, next); err != nil {
		return err
	}
	c.items = next
	return nil
}

func (c *Cart) indexOf(productID string) int {
	for i, item := range c.items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) copyItems() []model.CartItem {
	out := make([]model.CartItem, len(c.items))
	copy(out, c.items)
	return out
}
