package loan

import (
	"context"

	"github.com/google/uuid"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/application/usecase/document"
	"github.com/bizledger/backend/internal/domain/entity"
	domainerror "github.com/bizledger/backend/internal/domain/error"
)

// GetLoanInput represents the input for fetching a loan.
type GetLoanInput struct {
	UserID uuid.UUID
	LoanID uuid.UUID
}

// GetLoanOutput is a loan with its running interest record, if any.
type GetLoanOutput struct {
	Loan           *entity.Loan
	InterestRecord *entity.InterestRecord
}

// GetLoanUseCase handles fetching a single loan.
type GetLoanUseCase struct {
	store adapter.LedgerStore
}

// NewGetLoanUseCase creates a new GetLoanUseCase instance.
func NewGetLoanUseCase(store adapter.LedgerStore) *GetLoanUseCase {
	return &GetLoanUseCase{
		store: store,
	}
}

// Execute returns the loan if it belongs to the user.
func (uc *GetLoanUseCase) Execute(ctx context.Context, input GetLoanInput) (*GetLoanOutput, error) {
	repos := uc.store.Repositories()

	loan, err := repos.Loans.FindByID(ctx, input.LoanID)
	if err != nil {
		return nil, document.LookupFailure(err)
	}
	if loan.UserID != input.UserID {
		return nil, document.NotFound()
	}

	interest, err := document.FindInterestRecord(ctx, repos, loan)
	if err != nil {
		return nil, domainerror.NewTransactionFailure(err)
	}
	return &GetLoanOutput{Loan: loan, InterestRecord: interest}, nil
}

// ListLoansUseCase handles listing a user's loans.
type ListLoansUseCase struct {
	loanRepo adapter.LoanRepository
}

// NewListLoansUseCase creates a new ListLoansUseCase instance.
func NewListLoansUseCase(loanRepo adapter.LoanRepository) *ListLoansUseCase {
	return &ListLoansUseCase{
		loanRepo: loanRepo,
	}
}

// Execute returns every loan of the user.
func (uc *ListLoansUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]*entity.Loan, error) {
	loans, err := uc.loanRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, domainerror.NewTransactionFailure(err)
	}
	return loans, nil
}
