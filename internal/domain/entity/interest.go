package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bizledger/backend/internal/domain/valueobject"
)

// LoanInterestCategory tags income and expense records that accumulate loan interest.
const LoanInterestCategory = "LOAN_INTEREST"

// IncomeRecord represents money earned outside of sales, such as interest on a loan.
type IncomeRecord struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Category     string
	Description  string
	GrossAmount  decimal.Decimal
	LinkedLoanID *uuid.UUID
	IncomeDate   time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Expense represents money spent outside of purchases, such as interest on a loan.
type Expense struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Category     string
	Description  string
	Amount       decimal.Decimal
	LinkedLoanID *uuid.UUID
	ExpenseDate  time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// InterestRecord is the single running interest total of a loan, backed by either
// an IncomeRecord (receivable loans) or an Expense (payable loans).
type InterestRecord struct {
	Kind   valueobject.PayableKind
	ID     uuid.UUID
	UserID uuid.UUID
	LoanID uuid.UUID
	Amount decimal.Decimal
	Date   time.Time
}

// NewInterestRecord starts the interest record of a loan.
func NewInterestRecord(loan *Loan, amount decimal.Decimal, date time.Time) *InterestRecord {
	return &InterestRecord{
		Kind:   loan.InterestKind(),
		ID:     uuid.New(),
		UserID: loan.UserID,
		LoanID: loan.ID,
		Amount: valueobject.Round2(amount),
		Date:   date,
	}
}

// Accumulate adds interest to the running total.
func (r *InterestRecord) Accumulate(amount decimal.Decimal) {
	r.Amount = valueobject.AddMoney(r.Amount, amount)
}

// Ref returns the payable reference of the record.
func (r *InterestRecord) Ref() valueobject.PayableRef {
	if r.Kind == valueobject.PayableExpense {
		return valueobject.ExpenseRef(r.ID)
	}
	return valueobject.IncomeRef(r.ID)
}

// Description is the human-readable label stored on the backing record.
func (r *InterestRecord) Description(loanNumber string) string {
	return "Interest on loan " + loanNumber
}

// ToIncomeRecord converts the interest record into its income representation.
func (r *InterestRecord) ToIncomeRecord(loanNumber string) *IncomeRecord {
	now := time.Now().UTC()
	loanID := r.LoanID
	return &IncomeRecord{
		ID:           r.ID,
		UserID:       r.UserID,
		Category:     LoanInterestCategory,
		Description:  r.Description(loanNumber),
		GrossAmount:  r.Amount,
		LinkedLoanID: &loanID,
		IncomeDate:   r.Date,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// ToExpense converts the interest record into its expense representation.
func (r *InterestRecord) ToExpense(loanNumber string) *Expense {
	now := time.Now().UTC()
	loanID := r.LoanID
	return &Expense{
		ID:           r.ID,
		UserID:       r.UserID,
		Category:     LoanInterestCategory,
		Description:  r.Description(loanNumber),
		Amount:       r.Amount,
		LinkedLoanID: &loanID,
		ExpenseDate:  r.Date,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// InterestFromIncome builds the interest view of an income record.
func InterestFromIncome(income *IncomeRecord) *InterestRecord {
	record := &InterestRecord{
		Kind:   valueobject.PayableIncome,
		ID:     income.ID,
		UserID: income.UserID,
		Amount: income.GrossAmount,
		Date:   income.IncomeDate,
	}
	if income.LinkedLoanID != nil {
		record.LoanID = *income.LinkedLoanID
	}
	return record
}

// InterestFromExpense builds the interest view of an expense.
func InterestFromExpense(expense *Expense) *InterestRecord {
	record := &InterestRecord{
		Kind:   valueobject.PayableExpense,
		ID:     expense.ID,
		UserID: expense.UserID,
		Amount: expense.Amount,
		Date:   expense.ExpenseDate,
	}
	if expense.LinkedLoanID != nil {
		record.LoanID = *expense.LinkedLoanID
	}
	return record
}
