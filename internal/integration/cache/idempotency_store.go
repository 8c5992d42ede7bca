// Package cache implements application adapters backed by Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bizledger/backend/internal/application/adapter"
)

const (
	keyPrefix    = "idempotency:"
	pendingValue = "pending"
)

// idempotencyStore implements the adapter.IdempotencyStore interface.
type idempotencyStore struct {
	client redis.Cmdable
}

// NewIdempotencyStore creates a new Redis-backed idempotency store.
func NewIdempotencyStore(client redis.Cmdable) adapter.IdempotencyStore {
	return &idempotencyStore{
		client: client,
	}
}

// Reserve claims key for an in-flight request.
func (s *idempotencyStore) Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, keyPrefix+key, pendingValue, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to reserve idempotency key: %w", err)
	}
	return ok, nil
}

// Load returns the stored response for key, or nil while the request is in flight or unknown.
func (s *idempotencyStore) Load(ctx context.Context, key string) (*adapter.StoredResponse, error) {
	value, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load idempotency key: %w", err)
	}
	if string(value) == pendingValue {
		return nil, nil
	}

	var response adapter.StoredResponse
	if err := json.Unmarshal(value, &response); err != nil {
		return nil, fmt.Errorf("failed to decode stored response: %w", err)
	}
	return &response, nil
}

// Save stores the final response for key.
func (s *idempotencyStore) Save(ctx context.Context, key string, response *adapter.StoredResponse, ttl time.Duration) error {
	value, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("failed to encode stored response: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save idempotency key: %w", err)
	}
	return nil
}

// Release drops a reservation.
func (s *idempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to release idempotency key: %w", err)
	}
	return nil
}
