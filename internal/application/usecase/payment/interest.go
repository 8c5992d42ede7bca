package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/application/usecase/document"
	"github.com/bizledger/backend/internal/domain/entity"
	domainerror "github.com/bizledger/backend/internal/domain/error"
	"github.com/bizledger/backend/internal/domain/valueobject"
)

// findInterestRecord loads the running interest record of a loan, or nil when it has none.
func findInterestRecord(ctx context.Context, repos adapter.LedgerRepositories, loan *entity.Loan) (*entity.InterestRecord, error) {
	return document.FindInterestRecord(ctx, repos, loan)
}

// findInterestByRef loads an interest record by the payable reference of one of its payments.
func findInterestByRef(ctx context.Context, repos adapter.LedgerRepositories, ref valueobject.PayableRef) (*entity.InterestRecord, error) {
	switch ref.Kind() {
	case valueobject.PayableIncome:
		income, err := repos.Incomes.FindByID(ctx, ref.ID())
		if err != nil {
			return nil, err
		}
		return entity.InterestFromIncome(income), nil
	case valueobject.PayableExpense:
		expense, err := repos.Expenses.FindByID(ctx, ref.ID())
		if err != nil {
			return nil, err
		}
		return entity.InterestFromExpense(expense), nil
	}
	return nil, fmt.Errorf("%w: %s", domainerror.ErrInvalidDocumentType, ref)
}

// accrueInterest adds interest to the loan's running record, creating it on the
// first interest payment. Must run inside the ledger transaction.
func accrueInterest(
	ctx context.Context,
	tx adapter.LedgerRepositories,
	loan *entity.Loan,
	amount decimal.Decimal,
	date time.Time,
) (*entity.InterestRecord, error) {
	record, err := findInterestRecord(ctx, tx, loan)
	if err != nil {
		return nil, fmt.Errorf("failed to find interest record: %w", err)
	}

	if record == nil {
		record = entity.NewInterestRecord(loan, amount, date)
		if record.Kind == valueobject.PayableExpense {
			err = tx.Expenses.Create(ctx, record.ToExpense(loan.Number))
		} else {
			err = tx.Incomes.Create(ctx, record.ToIncomeRecord(loan.Number))
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create interest record: %w", err)
		}
		return record, nil
	}

	record.Accumulate(amount)
	if err := saveInterestAmount(ctx, tx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// saveInterestAmount stores the running total of an existing interest record.
func saveInterestAmount(ctx context.Context, tx adapter.LedgerRepositories, record *entity.InterestRecord) error {
	now := time.Now().UTC()
	var err error
	if record.Kind == valueobject.PayableExpense {
		err = tx.Expenses.UpdateAmount(ctx, &entity.Expense{ID: record.ID, Amount: record.Amount, UpdatedAt: now})
	} else {
		err = tx.Incomes.UpdateAmount(ctx, &entity.IncomeRecord{ID: record.ID, GrossAmount: record.Amount, UpdatedAt: now})
	}
	if err != nil {
		return fmt.Errorf("failed to update interest record: %w", err)
	}
	return nil
}

// deleteInterestRecord removes an interest record that no longer has payments.
func deleteInterestRecord(ctx context.Context, tx adapter.LedgerRepositories, record *entity.InterestRecord) error {
	var err error
	if record.Kind == valueobject.PayableExpense {
		err = tx.Expenses.Delete(ctx, record.ID)
	} else {
		err = tx.Incomes.Delete(ctx, record.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to delete interest record: %w", err)
	}
	return nil
}

// loanLedger is a loan together with every payment recorded against it.
type loanLedger struct {
	loan             *entity.Loan
	principal        []*entity.PaymentRecord
	interest         *entity.InterestRecord
	interestPayments []*entity.PaymentRecord
}

func loadLoanLedger(ctx context.Context, repos adapter.LedgerRepositories, loan *entity.Loan) (*loanLedger, error) {
	principal, err := repos.Payments.FindByPayable(ctx, loan.Ref())
	if err != nil {
		return nil, fmt.Errorf("failed to list loan payments: %w", err)
	}

	ledger := &loanLedger{loan: loan, principal: principal}

	ledger.interest, err = findInterestRecord(ctx, repos, loan)
	if err != nil {
		return nil, fmt.Errorf("failed to find interest record: %w", err)
	}
	if ledger.interest != nil {
		ledger.interestPayments, err = repos.Payments.FindByPayable(ctx, ledger.interest.Ref())
		if err != nil {
			return nil, fmt.Errorf("failed to list interest payments: %w", err)
		}
	}
	return ledger, nil
}

// resettle recomputes the loan and its interest total with replaced substituted
// and removedID dropped from the recorded payments.
func (l *loanLedger) resettle(replaced *entity.PaymentRecord, removedID uuid.UUID) error {
	var principalReplaced, interestReplaced *entity.PaymentRecord
	if replaced != nil {
		if replaced.Payable.Kind() == valueobject.PayableLoan {
			principalReplaced = replaced
		} else {
			interestReplaced = replaced
		}
	}

	principalAmounts := amountsAfter(l.principal, principalReplaced, removedID)
	var interestAmounts []decimal.Decimal
	if l.interest != nil {
		interestAmounts = amountsAfter(l.interestPayments, interestReplaced, removedID)
		l.interest.Amount = valueobject.SumMoney(interestAmounts...)
	}

	return l.loan.Resettle(principalAmounts, interestAmounts)
}

// principalCapacity is the most principal a single payment may carry next to the
// other recorded principal payments.
func (l *loanLedger) principalCapacity(excludeID uuid.UUID) decimal.Decimal {
	return valueobject.RemainingCapacity(l.loan.PrincipalAmount, entity.PaymentAmounts(l.principal, excludeID))
}

// interestEmptied reports whether the interest record lost its last payment.
func (l *loanLedger) interestEmptied(removedID uuid.UUID) bool {
	if l.interest == nil {
		return false
	}
	for _, p := range l.interestPayments {
		if p.ID != removedID {
			return false
		}
	}
	return true
}

// persist writes the loan balance and the interest total. Must run inside the ledger transaction.
func (l *loanLedger) persist(ctx context.Context, tx adapter.LedgerRepositories, removedID uuid.UUID) error {
	if err := tx.Loans.UpdateBalance(ctx, l.loan); err != nil {
		return fmt.Errorf("failed to update loan: %w", err)
	}
	if l.interest == nil {
		return nil
	}
	if l.interestEmptied(removedID) {
		return deleteInterestRecord(ctx, tx, l.interest)
	}
	return saveInterestAmount(ctx, tx, l.interest)
}
