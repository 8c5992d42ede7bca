package adapter

import (
	"context"
	"time"
)

// StoredResponse is a response captured for an idempotency key.
type StoredResponse struct {
	StatusCode  int    `json:"status_code"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// IdempotencyStore keeps responses of mutating requests keyed by client-supplied keys.
type IdempotencyStore interface {
	// Reserve claims key for an in-flight request. Returns false if the key is already
	// reserved or completed.
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Load returns the stored response for key, or nil while the request is still in flight.
	Load(ctx context.Context, key string) (*StoredResponse, error)

	// Save stores the final response for key.
	Save(ctx context.Context, key string, response *StoredResponse, ttl time.Duration) error

	// Release drops a reservation so the request can be retried.
	Release(ctx context.Context, key string) error
}
