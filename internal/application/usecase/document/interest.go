package document

import (
	"context"
	"errors"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/domain/entity"
	domainerror "github.com/bizledger/backend/internal/domain/error"
	"github.com/bizledger/backend/internal/domain/valueobject"
)

// FindInterestRecord loads the running interest record of a loan. It returns nil
// without error when the loan has not accrued interest yet.
func FindInterestRecord(ctx context.Context, repos adapter.LedgerRepositories, loan *entity.Loan) (*entity.InterestRecord, error) {
	if loan.InterestKind() == valueobject.PayableExpense {
		expense, err := repos.Expenses.FindByLoan(ctx, loan.UserID, loan.ID, entity.LoanInterestCategory)
		if errors.Is(err, domainerror.ErrInterestRecordNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return entity.InterestFromExpense(expense), nil
	}

	income, err := repos.Incomes.FindByLoan(ctx, loan.UserID, loan.ID, entity.LoanInterestCategory)
	if errors.Is(err, domainerror.ErrInterestRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entity.InterestFromIncome(income), nil
}
