package cache

import (
	"context"
	"errors"

	"github.com/razat249/tabletop-reboxing/internal/domain"
)

// CartPersistence is the key-value slot a cart is saved to between page
// loads. Implementations store the serialized line list under the session id.
type CartPersistence interface {
	Get(ctx context.Context, sessionID string) ([]domain.CartItem, error)
	Set(ctx context.Context, sessionID string, items []domain.CartItem) error
	Delete(ctx context.Context, sessionID string) error
}

var ErrNotFound = errors.New("no saved cart for session")
