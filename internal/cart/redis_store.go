package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"poppes-store/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// SlotTTL is how long an untouched cart slot survives before Redis drops
// it. Every Save resets the clock.
const SlotTTL = 30 * 24 * time.Hour

const keyPrefix = "cart:"

// redisStore implements Store with one JSON-serialised value per session
// key.
type redisStore struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewRedisStore creates a Redis-backed cart store.
func NewRedisStore(client *redis.Client, logger zerolog.Logger) Store {
	return &redisStore{
		client: client,
		logger: logger.With().Str("component", "cart-store").Logger(),
	}
}

// Load reads the line items stored under key.
func (s *redisStore) Load(ctx context.Context, key string) ([]model.CartItem, error) {
	data, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		s.logger.Error().Err(err).Str("key", key).Msg("failed to load cart slot")
		return nil, fmt.Errorf("failed to load cart slot: %w", err)
	}

	var items []model.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to decode cart slot")
		return nil, fmt.Errorf("failed to decode cart slot: %w", err)
	}

	return items, nil
}

// Save replaces the slot contents under key.
func (s *redisStore) Save(ctx context.Context, key string, items []model.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode cart slot: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+key, data, SlotTTL).Err(); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to save cart slot")
		return fmt.Errorf("failed to save cart slot: %w", err)
	}

	s.logger.Debug().Str("key", key).Int("items", len(items)).Msg("cart slot saved")
	return nil
}

// Delete removes the slot entry for key.
func (s *redisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to delete cart slot")
		return fmt.Errorf("failed to delete cart slot: %w", err)
	}
	return nil
}
