package cart

import (
	"sync"

	"github.com/razat249/tabletop-reboxing/internal/domain"
)

// Store is the single source of truth for one buyer session's cart. Lines
// keep insertion order, and there is never more than one line per product id.
// Every operation is total: bad quantities are clamped, unknown ids are
// ignored, nothing returns an error.
type Store struct {
	mu    sync.Mutex
	items []domain.CartItem
}

func NewStore() *Store {
	return &Store{}
}

// Restore builds a store from a previously persisted line list, dropping any
// rows that could not hold an item (zero or negative quantity).
func Restore(items []domain.CartItem) *Store {
	s := &Store{items: make([]domain.CartItem, 0, len(items))}
	for _, item := range items {
		if item.Quantity >= 1 {
			s.items = append(s.items, item)
		}
	}
	return s
}

// AddItem merges the item into the cart. An existing line for the same
// product id has its quantity increased by delta; otherwise a new line is
// appended with quantity delta. Delta is clamped to at least 1, so this call
// can never decrease a quantity.
func (s *Store) AddItem(item domain.CartItem, delta int) {
	if delta < 1 {
		delta = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == item.ProductID {
			s.items[i].Quantity += delta
			return
		}
	}

	item.Quantity = delta
	s.items = append(s.items, item)
}

// RemoveItem deletes the line entirely regardless of quantity. No-op if the
// product is not in the cart.
func (s *Store) RemoveItem(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(productID)
}

// SetQuantity sets the line's quantity to an absolute value. A quantity of
// zero or less removes the line; a zero-quantity row never persists. No-op if
// the product is not in the cart.
func (s *Store) SetQuantity(productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.remove(productID)
		return
	}

	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = quantity
			return
		}
	}
}

// remove must be called with the lock held.
func (s *Store) remove(productID string) {
	for i, item := range s.items {
		if item.ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart. Used after successful order placement.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// Items returns a copy of the lines in display order.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// Subtotal is recomputed from the current lines on every call, never cached.
func (s *Store) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, item := range s.items {
		total += item.LineTotal()
	}
	return total
}

// ItemCount is the sum of quantities across lines, used for the cart badge.
// It differs from the number of lines.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}
