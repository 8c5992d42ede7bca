package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/bizledger/backend/internal/domain/entity"
	"github.com/bizledger/backend/internal/domain/valueobject"
)

// PaymentRepository defines the interface for payment record persistence operations.
type PaymentRepository interface {
	// Create creates a new payment record.
	Create(ctx context.Context, payment *entity.PaymentRecord) error

	// FindByID retrieves a payment record by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.PaymentRecord, error)

	// FindByPayable retrieves all payments against one payable record, newest first.
	FindByPayable(ctx context.Context, ref valueobject.PayableRef) ([]*entity.PaymentRecord, error)

	// Update stores the editable fields of a payment record.
	Update(ctx context.Context, payment *entity.PaymentRecord) error

	// Delete removes a payment record.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByPayable removes every payment against one payable record.
	// Returns the count of deleted payments.
	DeleteByPayable(ctx context.Context, ref valueobject.PayableRef) (int64, error)
}

// IncomeRepository defines the interface for income record persistence operations.
type IncomeRepository interface {
	// Create creates a new income record.
	Create(ctx context.Context, income *entity.IncomeRecord) error

	// FindByID retrieves an income record by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.IncomeRecord, error)

	// FindByLoan retrieves the income record of a loan in the given category.
	// Returns domainerror.ErrInterestRecordNotFound when none exists.
	FindByLoan(ctx context.Context, userID, loanID uuid.UUID, category string) (*entity.IncomeRecord, error)

	// UpdateAmount stores the gross amount of an income record.
	UpdateAmount(ctx context.Context, income *entity.IncomeRecord) error

	// Delete removes an income record.
	Delete(ctx context.Context, id uuid.UUID) error
}

// ExpenseRepository defines the interface for expense persistence operations.
type ExpenseRepository interface {
	// Create creates a new expense.
	Create(ctx context.Context, expense *entity.Expense) error

	// FindByID retrieves an expense by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error)

	// FindByLoan retrieves the expense of a loan in the given category.
	// Returns domainerror.ErrInterestRecordNotFound when none exists.
	FindByLoan(ctx context.Context, userID, loanID uuid.UUID, category string) (*entity.Expense, error)

	// UpdateAmount stores the amount of an expense.
	UpdateAmount(ctx context.Context, expense *entity.Expense) error

	// Delete removes an expense.
	Delete(ctx context.Context, id uuid.UUID) error
}
