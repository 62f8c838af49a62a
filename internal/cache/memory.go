package cache

import (
	"context"
	"sync"

	"github.com/razat249/tabletop-reboxing/internal/domain"
)

// MemoryPersistence keeps carts in process memory. Used when no Redis is
// configured and in tests.
type MemoryPersistence struct {
	mu    sync.RWMutex
	carts map[string][]domain.CartItem
}

func NewMemoryPersistence() *MemoryPersistence {
	return &MemoryPersistence{carts: make(map[string][]domain.CartItem)}
}

func (m *MemoryPersistence) Get(_ context.Context, sessionID string) ([]domain.CartItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items, ok := m.carts[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]domain.CartItem, len(items))
	copy(out, items)
	return out, nil
}

func (m *MemoryPersistence) Set(_ context.Context, sessionID string, items []domain.CartItem) error {
	saved := make([]domain.CartItem, len(items))
	copy(saved, items)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[sessionID] = saved
	return nil
}

func (m *MemoryPersistence) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, sessionID)
	return nil
}
