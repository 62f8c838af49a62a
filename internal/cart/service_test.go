package cart

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/razat249/tabletop-reboxing/internal/cache"
	"github.com/razat249/tabletop-reboxing/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPersistence struct {
	m        sync.Mutex
	saved    map[string][]domain.CartItem
	getErr   error
	setErr   error
	setCalls int
}

func newMockPersistence() *mockPersistence {
	return &mockPersistence{saved: make(map[string][]domain.CartItem)}
}

func (m *mockPersistence) Get(_ context.Context, sessionID string) ([]domain.CartItem, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	items, ok := m.saved[sessionID]
	if !ok {
		return nil, cache.ErrNotFound
	}
	return items, nil
}

func (m *mockPersistence) Set(_ context.Context, sessionID string, items []domain.CartItem) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.setCalls++
	if m.setErr != nil {
		return m.setErr
	}
	m.saved[sessionID] = items
	return nil
}

func (m *mockPersistence) Delete(_ context.Context, sessionID string) error {
	m.m.Lock()
	defer m.m.Unlock()
	delete(m.saved, sessionID)
	return nil
}

func TestService_RestoresSavedCart(t *testing.T) {
	persistence := newMockPersistence()
	persistence.saved["s1"] = []domain.CartItem{meeple(2)}

	svc := NewService(persistence)
	store := svc.Cart(context.Background(), "s1")

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestService_SameStoreAcrossCalls(t *testing.T) {
	svc := NewService(newMockPersistence())
	ctx := context.Background()

	a := svc.Cart(ctx, "s1")
	b := svc.Cart(ctx, "s1")
	assert.Same(t, a, b)

	other := svc.Cart(ctx, "s2")
	assert.NotSame(t, a, other)
}

func TestService_MutationsPersist(t *testing.T) {
	persistence := newMockPersistence()
	svc := NewService(persistence)
	ctx := context.Background()

	svc.AddItem(ctx, "s1", meeple(1), 2)
	assert.Equal(t, 2, persistence.saved["s1"][0].Quantity)

	svc.SetQuantity(ctx, "s1", "meeple-set", 5)
	assert.Equal(t, 5, persistence.saved["s1"][0].Quantity)

	svc.RemoveItem(ctx, "s1", "meeple-set")
	assert.Empty(t, persistence.saved["s1"])

	svc.AddItem(ctx, "s1", diceTray(1), 1)
	svc.Clear(ctx, "s1")
	_, ok := persistence.saved["s1"]
	assert.False(t, ok)
}

func TestService_PersistFailureDoesNotLoseCart(t *testing.T) {
	persistence := newMockPersistence()
	persistence.setErr = errors.New("redis down")

	svc := NewService(persistence)
	ctx := context.Background()

	items := svc.AddItem(ctx, "s1", meeple(1), 1)

	// The mutation survives in memory even though the save failed.
	require.Len(t, items, 1)
	assert.Equal(t, 1, svc.Cart(ctx, "s1").ItemCount())
	assert.Equal(t, 1, persistence.setCalls)
}

func TestService_RestoreFailureYieldsEmptyCart(t *testing.T) {
	persistence := newMockPersistence()
	persistence.getErr = errors.New("redis down")

	svc := NewService(persistence)
	store := svc.Cart(context.Background(), "s1")

	assert.Empty(t, store.Items())
}

func TestService_ConcurrentFirstTouch(t *testing.T) {
	persistence := newMockPersistence()
	persistence.saved["s1"] = []domain.CartItem{meeple(1)}
	svc := NewService(persistence)

	const n = 16
	stores := make([]*Store, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			stores[i] = svc.Cart(context.Background(), "s1")
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		assert.Same(t, stores[0], stores[i])
	}
}
