package error

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLedgerError(t *testing.T) {
	t.Run("unwraps to the sentinel", func(t *testing.T) {
		err := NewLedgerError(KindStateConflict, ErrCodeAmountExceedsBalance, "amount exceeds the remaining 10.00", ErrAmountExceedsBalance)
		wrapped := fmt.Errorf("apply payment: %w", err)

		assert.ErrorIs(t, wrapped, ErrAmountExceedsBalance)
		assert.Equal(t, KindStateConflict, KindOf(wrapped))
		assert.Equal(t, "amount exceeds the remaining 10.00: "+ErrAmountExceedsBalance.Error(), err.Error())
	})

	t.Run("message only", func(t *testing.T) {
		err := NewValidationError(ErrCodeInvalidAmount, "amount", "amount must be greater than zero", nil)
		assert.Equal(t, "amount must be greater than zero", err.Error())
		assert.Equal(t, "amount", err.Field)
		assert.False(t, err.Retryable())
	})

	t.Run("store failures are retryable", func(t *testing.T) {
		err := NewTransactionFailure(errors.New("connection reset"))
		assert.True(t, err.Retryable())
		assert.Equal(t, ErrCodeTransactionFailed, err.Code)
	})

	t.Run("plain errors have no kind", func(t *testing.T) {
		assert.Empty(t, KindOf(errors.New("boom")))
		assert.Empty(t, KindOf(nil))
	})
}
