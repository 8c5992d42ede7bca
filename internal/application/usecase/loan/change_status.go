package loan

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/application/usecase/document"
	"github.com/bizledger/backend/internal/domain/entity"
	domainerror "github.com/bizledger/backend/internal/domain/error"
)

// ChangeStatusInput represents the input for changing a loan's status.
type ChangeStatusInput struct {
	UserID uuid.UUID
	LoanID uuid.UUID
	Status entity.LoanStatus
}

// ChangeStatusUseCase handles writing off, defaulting and reinstating loans.
type ChangeStatusUseCase struct {
	loanRepo adapter.LoanRepository
}

// NewChangeStatusUseCase creates a new ChangeStatusUseCase instance.
func NewChangeStatusUseCase(loanRepo adapter.LoanRepository) *ChangeStatusUseCase {
	return &ChangeStatusUseCase{
		loanRepo: loanRepo,
	}
}

// Execute applies the status change.
func (uc *ChangeStatusUseCase) Execute(ctx context.Context, input ChangeStatusInput) (*entity.Loan, error) {
	if !input.Status.IsValid() {
		return nil, domainerror.NewValidationError(
			domainerror.ErrCodeInvalidLoanTerms,
			"status",
			"status must be one of ACTIVE, PAID_OFF, WRITTEN_OFF, DEFAULTED",
			domainerror.ErrInvalidStatusTransition,
		)
	}

	loan, err := uc.loanRepo.FindByID(ctx, input.LoanID)
	if err != nil {
		return nil, document.LookupFailure(err)
	}
	if loan.UserID != input.UserID {
		return nil, document.NotFound()
	}

	previous := loan.Status
	if err := loan.ChangeStatus(input.Status); err != nil {
		if errors.Is(err, domainerror.ErrInvalidStatusTransition) {
			return nil, domainerror.NewLedgerError(
				domainerror.KindStateConflict,
				domainerror.ErrCodeInvalidStatusTransition,
				"cannot change loan status from "+string(previous)+" to "+string(input.Status),
				err,
			)
		}
		return nil, err
	}

	if err := uc.loanRepo.UpdateBalance(ctx, loan); err != nil {
		return nil, document.StoreFailure(err)
	}

	slog.Info("Loan status changed",
		"user_id", input.UserID,
		"loan_id", loan.ID,
		"from", previous,
		"to", loan.Status,
	)
	return loan, nil
}
