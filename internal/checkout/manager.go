package checkout

import (
	"sync"
	"time"

	"github.com/razat249/tabletop-reboxing/internal/cart"
	"github.com/razat249/tabletop-reboxing/internal/domain"
	"github.com/razat249/tabletop-reboxing/internal/notify"
	"github.com/razat249/tabletop-reboxing/internal/pricing"
)

const (
	defaultOrderPrefix     = "TRB"
	defaultDispatchTimeout = 10 * time.Second
)

// Manager hands out one checkout Session per buyer session id. Placed is
// terminal: once a session's order is placed, the next call starts a fresh
// session in Filling (over the now-empty cart).
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	carts    *cart.Service
	rules    pricing.Rules
	notifier notify.Notifier

	orderPrefix     string
	dispatchTimeout time.Duration
}

func NewManager(carts *cart.Service, rules pricing.Rules, notifier notify.Notifier) *Manager {
	return &Manager{
		sessions:        make(map[string]*Session),
		carts:           carts,
		rules:           rules,
		notifier:        notifier,
		orderPrefix:     defaultOrderPrefix,
		dispatchTimeout: defaultDispatchTimeout,
	}
}

func (m *Manager) Session(sessionID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[sessionID]; ok && !s.Status().IsTerminal() {
		return s
	}

	s := &Session{
		id:              sessionID,
		status:          domain.CheckoutStatusFilling,
		carts:           m.carts,
		rules:           m.rules,
		notifier:        m.notifier,
		orderPrefix:     m.orderPrefix,
		dispatchTimeout: m.dispatchTimeout,
	}
	m.sessions[sessionID] = s
	return s
}
