// Package notify formats placed orders into notification payloads and sends
// them over whatever transports are configured. Dispatch is best-effort by
// contract: the checkout flow logs failures and moves on, because the
// business fulfils orders manually either way.
package notify

import (
	"context"
	"errors"
	"log"
)

// Notifier delivers one order payload over a transport. Implementations make
// a single attempt; retry policy is deliberately absent.
type Notifier interface {
	Dispatch(ctx context.Context, p Payload) error
}

// Multi fans a payload out to every configured transport. Each transport gets
// its attempt even if an earlier one failed.
type Multi []Notifier

func (m Multi) Dispatch(ctx context.Context, p Payload) error {
	var errs []error
	for _, n := range m {
		if err := n.Dispatch(ctx, p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogNotifier is the fallback when no real transport is configured: the order
// lands in the process log so it is at least visible to the operator.
type LogNotifier struct{}

func (LogNotifier) Dispatch(_ context.Context, p Payload) error {
	log.Printf("order %s placed: %s, %s, total %s", p.OrderID, p.CustomerName, p.CustomerEmail, p.OrderTotal)
	return nil
}
