package adapter

import "github.com/google/uuid"

// NumberGenerator produces candidate human-readable document numbers.
type NumberGenerator interface {
	// Candidate returns a fresh number with the given prefix. It may already be taken.
	Candidate(prefix string, userID uuid.UUID) string

	// MaxAttempts bounds the candidates one document creation may try, counting
	// numbers found taken on lookup and numbers lost to a concurrent insert alike.
	MaxAttempts() int
}
