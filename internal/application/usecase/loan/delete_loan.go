package loan

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/application/usecase/document"
	"github.com/bizledger/backend/internal/domain/valueobject"
)

// DeleteLoanInput represents the input for loan deletion.
type DeleteLoanInput struct {
	UserID uuid.UUID
	LoanID uuid.UUID
}

// DeleteLoanUseCase handles loan deletion. The loan's payments, its interest record
// and the interest payments go with it.
type DeleteLoanUseCase struct {
	store adapter.LedgerStore
}

// NewDeleteLoanUseCase creates a new DeleteLoanUseCase instance.
func NewDeleteLoanUseCase(store adapter.LedgerStore) *DeleteLoanUseCase {
	return &DeleteLoanUseCase{
		store: store,
	}
}

// Execute performs the loan deletion.
func (uc *DeleteLoanUseCase) Execute(ctx context.Context, input DeleteLoanInput) error {
	repos := uc.store.Repositories()

	loan, err := repos.Loans.FindByID(ctx, input.LoanID)
	if err != nil {
		return document.LookupFailure(err)
	}
	if loan.UserID != input.UserID {
		return document.NotFound()
	}

	var removed int64
	err = uc.store.WithinTransaction(ctx, func(ctx context.Context, tx adapter.LedgerRepositories) error {
		interest, err := document.FindInterestRecord(ctx, tx, loan)
		if err != nil {
			return fmt.Errorf("failed to find interest record: %w", err)
		}
		if interest != nil {
			n, err := tx.Payments.DeleteByPayable(ctx, interest.Ref())
			if err != nil {
				return fmt.Errorf("failed to delete interest payments: %w", err)
			}
			removed += n
			if interest.Kind == valueobject.PayableExpense {
				err = tx.Expenses.Delete(ctx, interest.ID)
			} else {
				err = tx.Incomes.Delete(ctx, interest.ID)
			}
			if err != nil {
				return fmt.Errorf("failed to delete interest record: %w", err)
			}
		}

		n, err := tx.Payments.DeleteByPayable(ctx, loan.Ref())
		if err != nil {
			return fmt.Errorf("failed to delete loan payments: %w", err)
		}
		removed += n

		if err := tx.Loans.Delete(ctx, loan.ID); err != nil {
			return fmt.Errorf("failed to delete loan: %w", err)
		}
		return nil
	})
	if err != nil {
		return document.StoreFailure(err)
	}

	slog.Info("Loan deleted",
		"user_id", input.UserID,
		"loan_id", loan.ID,
		"number", loan.Number,
		"payments_removed", removed,
	)
	return nil
}
