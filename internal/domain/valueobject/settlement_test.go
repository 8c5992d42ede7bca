package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/bizledger/backend/internal/domain/error"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeSettlement(t *testing.T) {
	tests := []struct {
		name    string
		total   string
		paid    string
		balance string
		status  PaymentStatus
	}{
		{"nothing paid", "100.00", "0", "100.00", PaymentStatusUnpaid},
		{"partially paid", "100.00", "40.00", "60.00", PaymentStatusPartiallyPaid},
		{"fully paid", "100.00", "100.00", "0", PaymentStatusPaid},
		{"overpaid clamps balance", "100.00", "120.00", "0", PaymentStatusPaid},
		{"zero total with nothing paid", "0", "0", "0", PaymentStatusUnpaid},
		{"rounds inputs", "99.999", "0.004", "100.00", PaymentStatusUnpaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ComputeSettlement(d(tt.total), d(tt.paid))
			assert.True(t, s.Balance.Equal(d(tt.balance)), "balance %s", s.Balance)
			assert.Equal(t, tt.status, s.Status)
		})
	}
}

func TestApplyStandardPayment(t *testing.T) {
	current := ComputeSettlement(d("1000.00"), d("400.00"))

	t.Run("adds to the paid amount", func(t *testing.T) {
		next, err := ApplyStandardPayment(current, d("250.00"))
		require.NoError(t, err)
		assert.True(t, next.AmountPaid.Equal(d("650.00")))
		assert.True(t, next.Balance.Equal(d("350.00")))
		assert.Equal(t, PaymentStatusPartiallyPaid, next.Status)
	})

	t.Run("exact balance settles the document", func(t *testing.T) {
		next, err := ApplyStandardPayment(current, d("600.00"))
		require.NoError(t, err)
		assert.True(t, next.Balance.IsZero())
		assert.Equal(t, PaymentStatusPaid, next.Status)
	})

	t.Run("overpayment is rejected not clamped", func(t *testing.T) {
		next, err := ApplyStandardPayment(current, d("600.01"))
		assert.ErrorIs(t, err, domainerror.ErrAmountExceedsBalance)
		assert.Equal(t, current, next)
	})

	t.Run("non-positive amount is invalid", func(t *testing.T) {
		_, err := ApplyStandardPayment(current, decimal.Zero)
		assert.ErrorIs(t, err, domainerror.ErrInvalidAmount)
		_, err = ApplyStandardPayment(current, d("-5"))
		assert.ErrorIs(t, err, domainerror.ErrInvalidAmount)
	})

	t.Run("settled document rejects payments", func(t *testing.T) {
		settled := ComputeSettlement(d("100.00"), d("100.00"))
		_, err := ApplyStandardPayment(settled, d("1.00"))
		assert.ErrorIs(t, err, domainerror.ErrAlreadySettled)
	})
}

func TestSettleFromPayments(t *testing.T) {
	s, err := SettleFromPayments(d("300.00"), []decimal.Decimal{d("100.00"), d("50.50")})
	require.NoError(t, err)
	assert.True(t, s.AmountPaid.Equal(d("150.50")))
	assert.True(t, s.Balance.Equal(d("149.50")))

	_, err = SettleFromPayments(d("300.00"), []decimal.Decimal{d("200.00"), d("100.01")})
	assert.ErrorIs(t, err, domainerror.ErrAmountExceedsBalance)

	s, err = SettleFromPayments(d("300.00"), nil)
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusUnpaid, s.Status)
}

func TestRemainingCapacity(t *testing.T) {
	assert.True(t, RemainingCapacity(d("500.00"), []decimal.Decimal{d("100.00"), d("150.00")}).Equal(d("250.00")))
	assert.True(t, RemainingCapacity(d("500.00"), []decimal.Decimal{d("600.00")}).IsZero())
}
