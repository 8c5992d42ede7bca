// Package adapter defines the ports the ledger use cases and HTTP layer depend on.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Principal is the ledger owner a bearer token speaks for. Every document read
// or written through the API is scoped to Principal.UserID.
type Principal struct {
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// TokenService issues and verifies bearer tokens for ledger owners.
type TokenService interface {
	// IssueAccessToken signs a token for p. A non-positive ttl uses the service default.
	IssueAccessToken(ctx context.Context, p Principal, ttl time.Duration) (string, error)

	// VerifyAccessToken returns the principal of a valid access token.
	VerifyAccessToken(ctx context.Context, token string) (*Principal, error)
}
