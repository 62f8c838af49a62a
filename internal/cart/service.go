package cart

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/razat249/tabletop-reboxing/internal/cache"
	"github.com/razat249/tabletop-reboxing/internal/domain"
	"golang.org/x/sync/singleflight"
)

// Service hands out one Store per buyer session and mirrors every mutation
// into the persistence slot. Persistence is best-effort: a failed save is
// logged and the in-memory cart stays authoritative for the session.
type Service struct {
	persistence cache.CartPersistence

	mu   sync.RWMutex
	live map[string]*Store
	sfg  singleflight.Group // Prevents duplicate restores of the same session
}

func NewService(persistence cache.CartPersistence) *Service {
	return &Service{
		persistence: persistence,
		live:        make(map[string]*Store),
	}
}

// Cart returns the live store for the session, restoring it from the
// persistence slot on first touch.
func (s *Service) Cart(ctx context.Context, sessionID string) *Store {
	s.mu.RLock()
	store, ok := s.live[sessionID]
	s.mu.RUnlock()
	if ok {
		return store
	}

	v, _, _ := s.sfg.Do(sessionID, func() (interface{}, error) {
		// Re-check under the write lock: another call may have won the race
		// between the read above and this singleflight execution.
		s.mu.Lock()
		if existing, ok := s.live[sessionID]; ok {
			s.mu.Unlock()
			return existing, nil
		}
		s.mu.Unlock()

		items, err := s.persistence.Get(ctx, sessionID)
		if err != nil && !errors.Is(err, cache.ErrNotFound) {
			log.Printf("cart restore error for session %s: %v", sessionID, err)
		}
		restored := Restore(items)

		s.mu.Lock()
		s.live[sessionID] = restored
		s.mu.Unlock()
		return restored, nil
	})

	return v.(*Store)
}

func (s *Service) AddItem(ctx context.Context, sessionID string, item domain.CartItem, delta int) []domain.CartItem {
	store := s.Cart(ctx, sessionID)
	store.AddItem(item, delta)
	s.persist(sessionID, store)
	return store.Items()
}

func (s *Service) SetQuantity(ctx context.Context, sessionID, productID string, quantity int) []domain.CartItem {
	store := s.Cart(ctx, sessionID)
	store.SetQuantity(productID, quantity)
	s.persist(sessionID, store)
	return store.Items()
}

func (s *Service) RemoveItem(ctx context.Context, sessionID, productID string) []domain.CartItem {
	store := s.Cart(ctx, sessionID)
	store.RemoveItem(productID)
	s.persist(sessionID, store)
	return store.Items()
}

func (s *Service) Clear(ctx context.Context, sessionID string) {
	store := s.Cart(ctx, sessionID)
	store.Clear()

	persistCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.persistence.Delete(persistCtx, sessionID); err != nil {
		log.Printf("cart delete error for session %s: %v", sessionID, err)
	}
}

func (s *Service) persist(sessionID string, store *Store) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.persistence.Set(ctx, sessionID, store.Items()); err != nil {
		log.Printf("cart persist error for session %s: %v", sessionID, err)
	}
}
