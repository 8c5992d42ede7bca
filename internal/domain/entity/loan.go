package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/bizledger/backend/internal/domain/error"
	"github.com/bizledger/backend/internal/domain/valueobject"
)

// LoanType tells whether the business lent or borrowed the money.
type LoanType string

const (
	// LoanTypeReceivable is money lent out; interest received is income.
	LoanTypeReceivable LoanType = "RECEIVABLE"
	// LoanTypePayable is money borrowed; interest paid is an expense.
	LoanTypePayable LoanType = "PAYABLE"
)

// LoanStatus represents the lifecycle state of a loan.
type LoanStatus string

const (
	LoanStatusActive     LoanStatus = "ACTIVE"
	LoanStatusPaidOff    LoanStatus = "PAID_OFF"
	LoanStatusWrittenOff LoanStatus = "WRITTEN_OFF"
	LoanStatusDefaulted  LoanStatus = "DEFAULTED"
)

// IsTerminal reports whether the loan no longer accepts payments.
func (s LoanStatus) IsTerminal() bool {
	return s == LoanStatusWrittenOff || s == LoanStatusDefaulted
}

// IsValid reports whether s is a known loan status.
func (s LoanStatus) IsValid() bool {
	switch s {
	case LoanStatusActive, LoanStatusPaidOff, LoanStatusWrittenOff, LoanStatusDefaulted:
		return true
	}
	return false
}

// IsValid reports whether t is a known loan type.
func (t LoanType) IsValid() bool {
	return t == LoanTypeReceivable || t == LoanTypePayable
}

// Loan represents money lent or borrowed. CurrentBalance tracks outstanding principal
// only; interest is accumulated separately in TotalInterestPaid and the interest record.
type Loan struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	Number            string
	Type              LoanType
	CounterpartyName  string
	PrincipalAmount   decimal.Decimal
	InterestRate      decimal.Decimal // Simple interest, percent of principal
	Charges           decimal.Decimal
	TotalAmount       decimal.Decimal
	TotalPaid         decimal.Decimal // Principal repaid
	TotalInterestPaid decimal.Decimal
	CurrentBalance    decimal.Decimal
	Status            LoanStatus
	StartDate         time.Time
	DueDate           *time.Time
	Notes             string
	Version           int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewLoan creates a new active Loan entity.
func NewLoan(
	userID uuid.UUID,
	number string,
	loanType LoanType,
	counterpartyName string,
	principal decimal.Decimal,
	interestRate decimal.Decimal,
	charges decimal.Decimal,
	startDate time.Time,
	dueDate *time.Time,
	notes string,
) *Loan {
	now := time.Now().UTC()
	principal = valueobject.Round2(principal)
	charges = valueobject.Round2(charges)

	return &Loan{
		ID:                uuid.New(),
		UserID:            userID,
		Number:            number,
		Type:              loanType,
		CounterpartyName:  counterpartyName,
		PrincipalAmount:   principal,
		InterestRate:      interestRate,
		Charges:           charges,
		TotalAmount:       valueobject.SumMoney(principal, charges, ExpectedInterest(principal, interestRate)),
		TotalPaid:         decimal.Zero,
		TotalInterestPaid: decimal.Zero,
		CurrentBalance:    principal,
		Status:            LoanStatusActive,
		StartDate:         startDate,
		DueDate:           dueDate,
		Notes:             notes,
		Version:           1,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// ExpectedInterest is the simple interest a loan is expected to carry.
func ExpectedInterest(principal, ratePercent decimal.Decimal) decimal.Decimal {
	return valueobject.Round2(principal.Mul(ratePercent).Div(decimal.NewFromInt(100)))
}

// TerminalStateMessage is the message returned when a payment targets a closed loan.
func (l *Loan) TerminalStateMessage() string {
	return fmt.Sprintf("cannot add payment to a %s loan", strings.ToLower(strings.ReplaceAll(string(l.Status), "_", " ")))
}

// ApplyPayment splits a payment into principal and interest and updates the loan.
func (l *Loan) ApplyPayment(amount decimal.Decimal) (valueobject.LoanSplit, error) {
	amount = valueobject.Round2(amount)
	if !amount.IsPositive() {
		return valueobject.LoanSplit{}, domainerror.ErrInvalidAmount
	}
	if l.Status.IsTerminal() {
		return valueobject.LoanSplit{}, domainerror.ErrTerminalState
	}

	split := valueobject.SplitLoanPayment(l.CurrentBalance, amount)
	l.TotalPaid = valueobject.AddMoney(l.TotalPaid, split.Principal)
	l.TotalInterestPaid = valueobject.AddMoney(l.TotalInterestPaid, split.Interest)
	l.CurrentBalance = valueobject.MaxZero(valueobject.SubMoney(l.CurrentBalance, split.Principal))
	l.Status = l.derivedStatus()
	l.UpdatedAt = time.Now().UTC()

	return split, nil
}

// Resettle recomputes the loan from the full set of principal and interest payments.
func (l *Loan) Resettle(principalAmounts, interestAmounts []decimal.Decimal) error {
	totalPaid := valueobject.SumMoney(principalAmounts...)
	if totalPaid.GreaterThan(l.PrincipalAmount) {
		return domainerror.ErrAmountExceedsBalance
	}

	l.TotalPaid = totalPaid
	l.TotalInterestPaid = valueobject.SumMoney(interestAmounts...)
	l.CurrentBalance = valueobject.MaxZero(valueobject.SubMoney(l.PrincipalAmount, totalPaid))
	if !l.Status.IsTerminal() {
		l.Status = l.derivedStatus()
	}
	l.UpdatedAt = time.Now().UTC()
	return nil
}

// ChangeStatus writes off, defaults or reinstates the loan. Reinstating restores
// the status implied by the outstanding balance.
func (l *Loan) ChangeStatus(target LoanStatus) error {
	if !target.IsValid() {
		return domainerror.ErrInvalidStatusTransition
	}
	if target.IsTerminal() {
		if l.Status.IsTerminal() && l.Status != target {
			return domainerror.ErrInvalidStatusTransition
		}
		l.Status = target
	} else {
		derived := l.derivedStatus()
		if target != derived {
			return domainerror.ErrInvalidStatusTransition
		}
		l.Status = derived
	}
	l.UpdatedAt = time.Now().UTC()
	return nil
}

// InterestKind is the kind of record that accumulates this loan's interest.
func (l *Loan) InterestKind() valueobject.PayableKind {
	if l.Type == LoanTypePayable {
		return valueobject.PayableExpense
	}
	return valueobject.PayableIncome
}

// Ref returns the payable reference of the loan.
func (l *Loan) Ref() valueobject.PayableRef {
	return valueobject.LoanRef(l.ID)
}

func (l *Loan) derivedStatus() LoanStatus {
	if l.CurrentBalance.IsPositive() {
		return LoanStatusActive
	}
	return LoanStatusPaidOff
}
