package cart

import (
	"context"
	"sync"

	"poppes-store/internal/model"
)

// memoryStore implements Store with an in-process map. It backs tests and
// deployments without Redis; carts do not survive a restart.
type memoryStore struct {
	mu    sync.RWMutex
	slots map[string][]model.CartItem
}

// NewMemoryStore creates a new in-memory cart store.
func NewMemoryStore() Store {
	return &memoryStore{
		slots: make(map[string][]model.CartItem),
	}
}

// Load reads the line items stored under key.
func (s *memoryStore) Load(ctx context.Context, key string) ([]model.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items, ok := s.slots[key]
	if !ok {
		return nil, nil
	}

	out := make([]model.CartItem, len(items))
	copy(out, items)
	return out, nil
}

// Save replaces the slot contents under key.
func (s *memoryStore) Save(ctx context.Context, key string, items []model.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]model.CartItem, len(items))
	copy(stored, items)
	s.slots[key] = stored
	return nil
}

// Delete removes the slot entry for key.
func (s *memoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.slots, key)
	return nil
}
