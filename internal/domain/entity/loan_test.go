package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/bizledger/backend/internal/domain/error"
	"github.com/bizledger/backend/internal/domain/valueobject"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestLoan(loanType LoanType, principal string) *Loan {
	return NewLoan(uuid.New(), "LN-0001", loanType, "Acme Capital", dec(principal), dec("10"), dec("25.00"),
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), nil, "")
}

func TestNewLoan(t *testing.T) {
	loan := newTestLoan(LoanTypePayable, "1000.00")

	assert.Equal(t, LoanStatusActive, loan.Status)
	assert.True(t, loan.CurrentBalance.Equal(dec("1000.00")))
	// principal + charges + 10% simple interest
	assert.True(t, loan.TotalAmount.Equal(dec("1125.00")), "total %s", loan.TotalAmount)
	assert.Equal(t, valueobject.PayableExpense, loan.InterestKind())
	assert.Equal(t, valueobject.PayableIncome, newTestLoan(LoanTypeReceivable, "1").InterestKind())
}

func TestLoan_ApplyPayment(t *testing.T) {
	t.Run("principal only", func(t *testing.T) {
		loan := newTestLoan(LoanTypeReceivable, "1000.00")
		split, err := loan.ApplyPayment(dec("400.00"))
		require.NoError(t, err)
		assert.True(t, split.Principal.Equal(dec("400.00")))
		assert.True(t, split.Interest.IsZero())
		assert.True(t, loan.CurrentBalance.Equal(dec("600.00")))
		assert.True(t, loan.TotalPaid.Equal(dec("400.00")))
		assert.Equal(t, LoanStatusActive, loan.Status)
	})

	t.Run("overpayment becomes interest and pays off the loan", func(t *testing.T) {
		loan := newTestLoan(LoanTypeReceivable, "1000.00")
		split, err := loan.ApplyPayment(dec("1080.00"))
		require.NoError(t, err)
		assert.True(t, split.Principal.Equal(dec("1000.00")))
		assert.True(t, split.Interest.Equal(dec("80.00")))
		assert.True(t, loan.CurrentBalance.IsZero())
		assert.True(t, loan.TotalInterestPaid.Equal(dec("80.00")))
		assert.Equal(t, LoanStatusPaidOff, loan.Status)
	})

	t.Run("paid off loan takes pure interest", func(t *testing.T) {
		loan := newTestLoan(LoanTypeReceivable, "100.00")
		_, err := loan.ApplyPayment(dec("100.00"))
		require.NoError(t, err)

		split, err := loan.ApplyPayment(dec("15.00"))
		require.NoError(t, err)
		assert.True(t, split.Principal.IsZero())
		assert.True(t, split.Interest.Equal(dec("15.00")))
		assert.True(t, loan.TotalPaid.Equal(dec("100.00")))
	})

	t.Run("terminal loan rejects payments", func(t *testing.T) {
		loan := newTestLoan(LoanTypePayable, "500.00")
		require.NoError(t, loan.ChangeStatus(LoanStatusWrittenOff))

		_, err := loan.ApplyPayment(dec("10.00"))
		assert.ErrorIs(t, err, domainerror.ErrTerminalState)
		assert.Equal(t, "cannot add payment to a written off loan", loan.TerminalStateMessage())
	})

	t.Run("non-positive amount", func(t *testing.T) {
		loan := newTestLoan(LoanTypePayable, "500.00")
		_, err := loan.ApplyPayment(decimal.Zero)
		assert.ErrorIs(t, err, domainerror.ErrInvalidAmount)
	})
}

func TestLoan_Resettle(t *testing.T) {
	loan := newTestLoan(LoanTypeReceivable, "1000.00")
	_, err := loan.ApplyPayment(dec("1000.00"))
	require.NoError(t, err)

	require.NoError(t, loan.Resettle([]decimal.Decimal{dec("700.00")}, []decimal.Decimal{dec("20.00")}))
	assert.True(t, loan.CurrentBalance.Equal(dec("300.00")))
	assert.True(t, loan.TotalInterestPaid.Equal(dec("20.00")))
	assert.Equal(t, LoanStatusActive, loan.Status)

	err = loan.Resettle([]decimal.Decimal{dec("1000.01")}, nil)
	assert.ErrorIs(t, err, domainerror.ErrAmountExceedsBalance)
}

func TestLoan_ChangeStatus(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(l *Loan)
		target  LoanStatus
		want    LoanStatus
		wantErr bool
	}{
		{"write off active loan", nil, LoanStatusWrittenOff, LoanStatusWrittenOff, false},
		{"default active loan", nil, LoanStatusDefaulted, LoanStatusDefaulted, false},
		{"reinstate written off loan", func(l *Loan) { l.Status = LoanStatusWrittenOff }, LoanStatusActive, LoanStatusActive, false},
		{"cannot jump between terminal states", func(l *Loan) { l.Status = LoanStatusDefaulted }, LoanStatusWrittenOff, LoanStatusDefaulted, true},
		{"cannot mark outstanding loan paid off", nil, LoanStatusPaidOff, LoanStatusActive, true},
		{"unknown status", nil, LoanStatus("CLOSED"), LoanStatusActive, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loan := newTestLoan(LoanTypePayable, "500.00")
			if tt.prepare != nil {
				tt.prepare(loan)
			}
			err := loan.ChangeStatus(tt.target)
			if tt.wantErr {
				assert.ErrorIs(t, err, domainerror.ErrInvalidStatusTransition)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, loan.Status)
		})
	}
}

func TestInterestRecord(t *testing.T) {
	loan := newTestLoan(LoanTypeReceivable, "1000.00")
	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	record := NewInterestRecord(loan, dec("12.50"), date)
	record.Accumulate(dec("7.505"))
	assert.True(t, record.Amount.Equal(dec("20.01")))
	assert.Equal(t, valueobject.IncomeRef(record.ID), record.Ref())

	income := record.ToIncomeRecord(loan.Number)
	assert.Equal(t, LoanInterestCategory, income.Category)
	assert.Equal(t, "Interest on loan LN-0001", income.Description)
	require.NotNil(t, income.LinkedLoanID)
	assert.Equal(t, loan.ID, *income.LinkedLoanID)

	back := InterestFromIncome(income)
	assert.Equal(t, record.ID, back.ID)
	assert.Equal(t, loan.ID, back.LoanID)
	assert.True(t, back.Amount.Equal(record.Amount))
}
