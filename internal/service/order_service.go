package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"poppes-store/internal/cart"
	"poppes-store/internal/model"
	"poppes-store/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orders repository.OrderRepository
	store  cart.Store
	logger zerolog.Logger

	// inflight tracks cart keys with a checkout currently running, so a
	// second click cannot create a duplicate order while the first
	// submission is still with the store.
	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewOrderService creates a new order service.
func NewOrderService(orders repository.OrderRepository, store cart.Store, logger zerolog.Logger) OrderService {
	return &orderService{
		orders:   orders,
		store:    store,
		logger:   logger.With().Str("service", "order").Logger(),
		inflight: make(map[string]struct{}),
	}
}

// Checkout snapshots the cart behind cartKey into a new pending order.
// On success the cart is cleared; on failure it is left intact so the
// user can retry the same submission.
func (s *orderService) Checkout(ctx context.Context, cartKey string, info model.CustomerInfo, userID string) (*model.Order, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}

	if !s.begin(cartKey) {
		s.logger.Warn().Str("cart_key", cartKey).Msg("rejected concurrent checkout")
		return nil, model.ErrCheckoutInFlight
	}
	defer s.end(cartKey)

	c := cart.New(cartKey, s.store, s.logger)
	if err := c.Restore(ctx); err != nil {
		return nil, fmt.Errorf("failed to load cart for checkout: %w", err)
	}

	items := c.Items()
	if len(items) == 0 {
		return nil, model.ErrEmptyCart
	}

	if userID == "" {
		userID = model.GuestUserID
	}

	totals := cart.ComputeTotals(items)
	now := time.Now()

	order := &model.Order{
		ID:           uuid.New(),
		UserID:       userID,
		Items:        items,
		Total:        totals.Total,
		Status:       model.StatusPending,
		CustomerInfo: info,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("failed to persist order, cart preserved")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// The order exists; a failure to clear the cart must not fail the
	// checkout.
	if err := c.Clear(ctx); err != nil {
		s.logger.Warn().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("order created but cart could not be cleared")
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("user_id", userID).
		Int("item_count", len(items)).
		Float64("total", order.Total).
		Msg("order placed")

	return order, nil
}

// GetByID retrieves an order by ID.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

// ListByUser retrieves a user's orders, newest first.
func (s *orderService) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// ListAll retrieves all orders, newest first.
func (s *orderService) ListAll(ctx context.Context, limit, offset int) ([]model.Order, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.orders.ListAll(ctx, limit, offset)
}

// UpdateStatus moves an order to a new lifecycle stage.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error {
	if !status.Valid() {
		return model.ErrInvalidStatus
	}

	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Str("status", string(status)).
		Msg("order status updated")

	return nil
}

// begin marks a checkout as running for key. It reports false when one is
// already in flight.
func (s *orderService) begin(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inflight[key]; busy {
		return false
	}
	s.inflight[key] = struct{}{}
	return true
}

// end releases the in-flight marker for key.
func (s *orderService) end(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, key)
}
