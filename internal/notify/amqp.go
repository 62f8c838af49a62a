package notify

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	// OrderPlacedQueue is declared at startup so publishing never fails due
	// to missing infra.
	OrderPlacedQueue = "storefront.order.placed"
)

// AMQPNotifier publishes the order payload to a queue for whatever fulfilment
// tooling listens on the other side.
type AMQPNotifier struct {
	ch *amqp.Channel
}

func NewAMQPNotifier(conn *amqp.Connection) (*AMQPNotifier, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(OrderPlacedQueue, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare %s: %w", OrderPlacedQueue, err)
	}

	return &AMQPNotifier{ch: ch}, nil
}

func (n *AMQPNotifier) Close() error {
	return n.ch.Close()
}

func (n *AMQPNotifier) Dispatch(ctx context.Context, p Payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal order payload: %w", err)
	}

	err = n.ch.PublishWithContext(ctx, "", OrderPlacedQueue, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		return fmt.Errorf("publish order %s: %w", p.OrderID, err)
	}
	return nil
}
