package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/razat249/tabletop-reboxing/internal/domain"
	"github.com/redis/go-redis/v9"
)

// cartTTL keeps abandoned carts around long enough for a buyer to come back,
// without holding them forever.
const cartTTL = 30 * 24 * time.Hour

func NewRedisPersistence(client *redis.Client) *RedisPersistence {
	return &RedisPersistence{
		client: client,
		ttl:    cartTTL,
	}
}

type RedisPersistence struct {
	client *redis.Client
	ttl    time.Duration
}

func (r *RedisPersistence) Get(ctx context.Context, sessionID string) ([]domain.CartItem, error) {
	data, err := r.client.Get(ctx, cartKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var items []domain.CartItem
	if err2 := json.Unmarshal(data, &items); err2 != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err2)
	}

	return items, nil
}

func (r *RedisPersistence) Set(ctx context.Context, sessionID string, items []domain.CartItem) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	if err := r.client.Set(ctx, cartKey(sessionID), payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisPersistence) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}
