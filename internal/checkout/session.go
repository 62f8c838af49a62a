package checkout

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/razat249/tabletop-reboxing/internal/cart"
	"github.com/razat249/tabletop-reboxing/internal/domain"
	"github.com/razat249/tabletop-reboxing/internal/notify"
	"github.com/razat249/tabletop-reboxing/internal/pricing"
)

// Session drives one buyer's checkout through
// Filling -> AwaitingPayment -> Placed, with an explicit cancel edge back
// from AwaitingPayment. The cart snapshot is frozen at form submission, so a
// buyer editing the cart in another tab mid-checkout cannot change what the
// payment step shows.
type Session struct {
	mu sync.Mutex

	id       string
	status   domain.CheckoutStatus
	customer domain.Customer
	snapshot *domain.OrderSnapshot
	order    *domain.Order

	carts    *cart.Service
	rules    pricing.Rules
	notifier notify.Notifier

	orderPrefix     string
	dispatchTimeout time.Duration
}

// Submit validates the contact form and freezes the cart snapshot, moving the
// session to AwaitingPayment. No order id exists yet; the buyer has only
// declared intent.
func (s *Session) Submit(ctx context.Context, form domain.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !domain.CanTransitionTo(s.status, domain.CheckoutStatusAwaitingPayment) {
		return ErrIllegalTransition
	}

	if missing := missingFields(form); len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}

	items := s.carts.Cart(ctx, s.id).Items()
	if len(items) == 0 {
		return ErrEmptyCart
	}

	var subtotal float64
	for _, item := range items {
		subtotal += item.LineTotal()
	}
	quote := s.rules.Quote(subtotal)

	s.customer = form
	s.snapshot = &domain.OrderSnapshot{
		Items:      items,
		Subtotal:   quote.Subtotal,
		Shipping:   quote.Shipping,
		GrandTotal: quote.GrandTotal,
		CapturedAt: time.Now(),
	}
	s.status = domain.CheckoutStatusAwaitingPayment
	return nil
}

// ConfirmPayment is called when the buyer claims the UPI payment was sent.
// It generates the order id, clears the cart and dispatches the notification
// best-effort. A dispatch failure is logged and never blocks the transition;
// an unexpected panic while assembling the order leaves the session in
// AwaitingPayment with the cart intact.
func (s *Session) ConfirmPayment(ctx context.Context) (*domain.Order, error) {
	placed, payload, err := s.place(ctx)
	if err != nil {
		return nil, err
	}

	// Dispatch runs after the lock is released: the transition is already
	// committed and visible, so a slow transport cannot stall other calls
	// into this session.
	s.dispatch(payload)
	return placed, nil
}

func (s *Session) place(ctx context.Context) (order *domain.Order, payload notify.Payload, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !domain.CanTransitionTo(s.status, domain.CheckoutStatusPlaced) || s.snapshot == nil {
		return nil, notify.Payload{}, ErrIllegalTransition
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("confirm payment failed for session %s: %v", s.id, r)
			order, payload, err = nil, notify.Payload{}, ErrConfirmFailed
		}
	}()

	now := time.Now()
	placed := &domain.Order{
		OrderID:    GenerateOrderID(s.orderPrefix, now),
		Customer:   s.customer,
		Items:      s.snapshot.Items,
		Subtotal:   s.snapshot.Subtotal,
		Shipping:   s.snapshot.Shipping,
		GrandTotal: s.snapshot.GrandTotal,
		PlacedAt:   now,
	}

	payload = notify.BuildPayload(placed)

	// The transition commits here. Everything after is best-effort.
	s.order = placed
	s.status = domain.CheckoutStatusPlaced
	s.carts.Clear(ctx, s.id)
	return placed, payload, nil
}

// dispatch makes the single notification attempt. Failures and panics stay
// inside: the order is already placed and the business fulfils it manually.
func (s *Session) dispatch(payload notify.Payload) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("order %s notification dispatch panicked: %v", payload.OrderID, r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), s.dispatchTimeout)
	defer cancel()
	if err := s.notifier.Dispatch(ctx, payload); err != nil {
		log.Printf("order %s notification dispatch failed (order still placed): %v", payload.OrderID, err)
	}
}

// Cancel backs out of the payment step. The snapshot is discarded, the cart
// is untouched and no order id was ever generated.
func (s *Session) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != domain.CheckoutStatusAwaitingPayment {
		return ErrIllegalTransition
	}

	s.snapshot = nil
	s.status = domain.CheckoutStatusFilling
	return nil
}

func (s *Session) Status() domain.CheckoutStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Snapshot returns a copy of the frozen cart, or nil outside the payment
// step.
func (s *Session) Snapshot() *domain.OrderSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot == nil {
		return nil
	}
	snap := *s.snapshot
	snap.Items = make([]domain.CartItem, len(s.snapshot.Items))
	copy(snap.Items, s.snapshot.Items)
	return &snap
}

// Order returns the placed order, or nil before placement.
func (s *Session) Order() *domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order
}

func missingFields(form domain.Customer) []string {
	required := []struct {
		name  string
		value string
	}{
		{"firstName", form.FirstName},
		{"lastName", form.LastName},
		{"email", form.Email},
		{"address", form.Address},
		{"city", form.City},
		{"state", form.State},
		{"zipCode", form.ZipCode},
	}

	var missing []string
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}
