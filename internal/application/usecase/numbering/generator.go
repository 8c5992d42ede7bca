// Package numbering generates human-readable document numbers.
package numbering

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"
)

// DefaultMaxAttempts is how many candidates are tried before giving up.
const DefaultMaxAttempts = 5

// Document number prefixes.
const (
	PrefixInvoice  = "INV"
	PrefixSale     = "RCT"
	PrefixPurchase = "PUR"
	PrefixLoan     = "LN"
)

// EntropySource returns a random value in [0, 1000000).
type EntropySource func() int

// Generator produces candidate numbers. It does not reserve them; two concurrent
// requests may pick the same candidate and one of them will then fail on the
// unique index.
type Generator struct {
	maxAttempts int
	entropy     EntropySource
}

// NewGenerator creates a Generator. A non-positive maxAttempts falls back to the default.
func NewGenerator(maxAttempts int) *Generator {
	return NewGeneratorWithEntropy(maxAttempts, func() int { return rand.Intn(1000000) })
}

// NewGeneratorWithEntropy creates a Generator with an explicit entropy source.
func NewGeneratorWithEntropy(maxAttempts int, entropy EntropySource) *Generator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Generator{
		maxAttempts: maxAttempts,
		entropy:     entropy,
	}
}

// Format builds a number from the prefix, the user id and an entropy value.
func Format(prefix string, userID uuid.UUID, entropy int) string {
	userTag := strings.ToUpper(strings.ReplaceAll(userID.String(), "-", "")[:4])
	return fmt.Sprintf("%s-%s-%06d", prefix, userTag, entropy%1000000)
}

// Candidate returns a fresh number for the user. It may already be taken.
func (g *Generator) Candidate(prefix string, userID uuid.UUID) string {
	return Format(prefix, userID, g.entropy())
}

// MaxAttempts is how many candidates one document creation may try.
func (g *Generator) MaxAttempts() int {
	return g.maxAttempts
}
