package numbering

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func sequence(values ...int) EntropySource {
	i := 0
	return func() int {
		v := values[i%len(values)]
		i++
		return v
	}
}

func TestFormat(t *testing.T) {
	userID := uuid.MustParse("ab12cd34-0000-0000-0000-000000000000")

	assert.Equal(t, "INV-AB12-000042", Format(PrefixInvoice, userID, 42))
	assert.Equal(t, "LN-AB12-999999", Format(PrefixLoan, userID, 999999))
	assert.Equal(t, "RCT-AB12-000001", Format(PrefixSale, userID, 1000001))
}

func TestGenerator(t *testing.T) {
	userID := uuid.MustParse("0f9e8d7c-0000-0000-0000-000000000000")

	t.Run("candidates draw from the entropy source", func(t *testing.T) {
		g := NewGeneratorWithEntropy(3, sequence(1, 2))

		assert.Equal(t, "RCT-0F9E-000001", g.Candidate(PrefixSale, userID))
		assert.Equal(t, "RCT-0F9E-000002", g.Candidate(PrefixSale, userID))
		assert.Equal(t, 3, g.MaxAttempts())
	})

	t.Run("random candidates are well formed", func(t *testing.T) {
		g := NewGenerator(DefaultMaxAttempts)
		for i := 0; i < 20; i++ {
			assert.Regexp(t, `^PUR-0F9E-\d{6}$`, g.Candidate(PrefixPurchase, userID))
		}
	})

	t.Run("non-positive attempts use the default", func(t *testing.T) {
		assert.Equal(t, DefaultMaxAttempts, NewGenerator(0).MaxAttempts())
		assert.Equal(t, DefaultMaxAttempts, NewGenerator(-2).MaxAttempts())
	})
}
