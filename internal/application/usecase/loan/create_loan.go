// Package loan contains loan-related use cases.
package loan

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/application/usecase/document"
	"github.com/bizledger/backend/internal/application/usecase/numbering"
	"github.com/bizledger/backend/internal/domain/entity"
	domainerror "github.com/bizledger/backend/internal/domain/error"
	"github.com/bizledger/backend/internal/domain/valueobject"
)

// MaxInterestRate is the highest accepted simple interest rate, in percent.
var MaxInterestRate = decimal.NewFromInt(1000)

// CreateLoanInput represents the input for loan creation.
type CreateLoanInput struct {
	UserID           uuid.UUID
	Type             entity.LoanType
	CounterpartyName string
	PrincipalAmount  decimal.Decimal
	InterestRate     decimal.Decimal
	Charges          decimal.Decimal
	StartDate        time.Time
	DueDate          *time.Time
	Notes            string
}

// CreateLoanOutput represents the output of loan creation.
type CreateLoanOutput struct {
	Loan *entity.Loan
}

// CreateLoanUseCase handles loan creation logic.
type CreateLoanUseCase struct {
	store   adapter.LedgerStore
	numbers adapter.NumberGenerator
}

// NewCreateLoanUseCase creates a new CreateLoanUseCase instance.
func NewCreateLoanUseCase(store adapter.LedgerStore, numbers adapter.NumberGenerator) *CreateLoanUseCase {
	return &CreateLoanUseCase{
		store:   store,
		numbers: numbers,
	}
}

// Execute performs the loan creation.
func (uc *CreateLoanUseCase) Execute(ctx context.Context, input CreateLoanInput) (*CreateLoanOutput, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	loan := entity.NewLoan(
		input.UserID,
		"",
		input.Type,
		input.CounterpartyName,
		input.PrincipalAmount,
		input.InterestRate,
		input.Charges,
		input.StartDate,
		input.DueDate,
		input.Notes,
	)

	repos := uc.store.Repositories()
	_, err := document.CreateNumbered(ctx, uc.numbers, numbering.PrefixLoan, input.UserID, repos.Loans.ExistsByNumber,
		func(ctx context.Context, number string) error {
			loan.Number = number
			return repos.Loans.Create(ctx, loan)
		},
	)
	if err != nil {
		return nil, err
	}

	slog.Info("Loan created",
		"user_id", input.UserID,
		"loan_id", loan.ID,
		"number", loan.Number,
		"type", loan.Type,
	)

	return &CreateLoanOutput{Loan: loan}, nil
}

func (input CreateLoanInput) validate() error {
	if !input.Type.IsValid() {
		return loanTermsError("type", "loan type must be RECEIVABLE or PAYABLE")
	}
	if err := document.ValidateParty("counterparty_name", input.CounterpartyName, input.Notes); err != nil {
		return err
	}
	if err := document.ValidateDate("start_date", input.StartDate); err != nil {
		return err
	}
	if input.DueDate != nil && input.DueDate.Before(input.StartDate) {
		return loanTermsError("due_date", "due date must not be before the start date")
	}
	if !input.PrincipalAmount.IsPositive() || !valueobject.HasAtMostTwoPlaces(input.PrincipalAmount) {
		return loanTermsError("principal_amount", "principal must be greater than zero with at most 2 decimal places")
	}
	if input.InterestRate.IsNegative() || input.InterestRate.GreaterThan(MaxInterestRate) {
		return loanTermsError("interest_rate", "interest rate must be between 0 and 1000 percent")
	}
	if input.Charges.IsNegative() || !valueobject.HasAtMostTwoPlaces(input.Charges) {
		return loanTermsError("charges", "charges must be a non-negative amount with at most 2 decimal places")
	}
	return nil
}

func loanTermsError(field, message string) error {
	return domainerror.NewValidationError(domainerror.ErrCodeInvalidLoanTerms, field, message, nil)
}
