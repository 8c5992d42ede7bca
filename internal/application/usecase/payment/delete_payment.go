package payment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/domain/entity"
	domainerror "github.com/bizledger/backend/internal/domain/error"
	"github.com/bizledger/backend/internal/domain/valueobject"
)

// DeletePaymentInput represents the input for removing a recorded payment.
type DeletePaymentInput struct {
	UserID    uuid.UUID
	PaymentID uuid.UUID
}

// DeletePaymentOutput represents the output of removing a payment.
type DeletePaymentOutput struct {
	Document       *DocumentOutput
	InterestRecord *entity.InterestRecord // Nil when the loan's interest record was removed
}

// DeletePaymentUseCase handles removing a payment and resettling what it paid.
type DeletePaymentUseCase struct {
	store            adapter.LedgerStore
	conflictAttempts int
}

// NewDeletePaymentUseCase creates a new DeletePaymentUseCase instance.
func NewDeletePaymentUseCase(store adapter.LedgerStore, conflictAttempts int) *DeletePaymentUseCase {
	return &DeletePaymentUseCase{
		store:            store,
		conflictAttempts: conflictAttempts,
	}
}

// Execute removes the payment and recomputes the affected document from the remaining payments.
func (uc *DeletePaymentUseCase) Execute(ctx context.Context, input DeletePaymentInput) (*DeletePaymentOutput, error) {
	output, err := retryOnConflict(ctx, uc.conflictAttempts, "delete_payment", func() (*DeletePaymentOutput, error) {
		return uc.delete(ctx, input)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Payment deleted",
		"user_id", input.UserID,
		"payment_id", input.PaymentID,
		"document", output.Document.Kind,
		"document_id", output.Document.ID,
	)
	return output, nil
}

func (uc *DeletePaymentUseCase) delete(ctx context.Context, input DeletePaymentInput) (*DeletePaymentOutput, error) {
	repos := uc.store.Repositories()

	payment, err := repos.Payments.FindByID(ctx, input.PaymentID)
	if err != nil {
		return nil, lookupFailure(err, paymentNotFound)
	}
	if payment.UserID != input.UserID {
		return nil, paymentNotFound()
	}

	switch payment.Payable.Kind() {
	case valueobject.PayableSale:
		return uc.deleteSalePayment(ctx, repos, payment)
	case valueobject.PayablePurchase:
		return uc.deletePurchasePayment(ctx, repos, payment)
	case valueobject.PayableLoan:
		loan, err := repos.Loans.FindByID(ctx, payment.Payable.ID())
		if err != nil {
			return nil, lookupFailure(err, documentNotFound)
		}
		return uc.deleteLoanPayment(ctx, repos, loan, payment)
	default:
		record, err := findInterestByRef(ctx, repos, payment.Payable)
		if err != nil {
			return nil, lookupFailure(err, documentNotFound)
		}
		loan, err := repos.Loans.FindByID(ctx, record.LoanID)
		if err != nil {
			return nil, lookupFailure(err, documentNotFound)
		}
		return uc.deleteLoanPayment(ctx, repos, loan, payment)
	}
}

func (uc *DeletePaymentUseCase) deleteSalePayment(ctx context.Context, repos adapter.LedgerRepositories, payment *entity.PaymentRecord) (*DeletePaymentOutput, error) {
	sale, err := repos.Sales.FindByID(ctx, payment.Payable.ID())
	if err != nil {
		return nil, lookupFailure(err, documentNotFound)
	}
	payments, err := repos.Payments.FindByPayable(ctx, sale.Ref())
	if err != nil {
		return nil, domainerror.NewTransactionFailure(err)
	}
	if err := sale.Resettle(amountsAfter(payments, nil, payment.ID)); err != nil {
		return nil, settlementFailure(err)
	}

	invoice, err := linkedInvoice(ctx, repos, sale)
	if err != nil {
		return nil, err
	}

	err = uc.store.WithinTransaction(ctx, func(ctx context.Context, tx adapter.LedgerRepositories) error {
		if err := tx.Payments.Delete(ctx, payment.ID); err != nil {
			return fmt.Errorf("failed to delete payment: %w", err)
		}
		if err := tx.Sales.UpdateSettlement(ctx, sale); err != nil {
			return fmt.Errorf("failed to update sale: %w", err)
		}
		return syncInvoice(ctx, tx, invoice, sale)
	})
	if err != nil {
		return nil, storeFailure(err)
	}

	return &DeletePaymentOutput{Document: saleOutput(sale)}, nil
}

func (uc *DeletePaymentUseCase) deletePurchasePayment(ctx context.Context, repos adapter.LedgerRepositories, payment *entity.PaymentRecord) (*DeletePaymentOutput, error) {
	purchase, err := repos.Purchases.FindByID(ctx, payment.Payable.ID())
	if err != nil {
		return nil, lookupFailure(err, documentNotFound)
	}
	payments, err := repos.Payments.FindByPayable(ctx, purchase.Ref())
	if err != nil {
		return nil, domainerror.NewTransactionFailure(err)
	}
	if err := purchase.Resettle(amountsAfter(payments, nil, payment.ID)); err != nil {
		return nil, settlementFailure(err)
	}

	err = uc.store.WithinTransaction(ctx, func(ctx context.Context, tx adapter.LedgerRepositories) error {
		if err := tx.Payments.Delete(ctx, payment.ID); err != nil {
			return fmt.Errorf("failed to delete payment: %w", err)
		}
		if err := tx.Purchases.UpdateSettlement(ctx, purchase); err != nil {
			return fmt.Errorf("failed to update purchase: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, storeFailure(err)
	}

	return &DeletePaymentOutput{Document: purchaseOutput(purchase)}, nil
}

func (uc *DeletePaymentUseCase) deleteLoanPayment(
	ctx context.Context,
	repos adapter.LedgerRepositories,
	loan *entity.Loan,
	payment *entity.PaymentRecord,
) (*DeletePaymentOutput, error) {
	if loan.Status.IsTerminal() {
		return nil, domainerror.NewLedgerError(
			domainerror.KindStateConflict,
			domainerror.ErrCodeTerminalState,
			"cannot change payments of a closed loan",
			domainerror.ErrTerminalState,
		)
	}

	ledger, err := loadLoanLedger(ctx, repos, loan)
	if err != nil {
		return nil, domainerror.NewTransactionFailure(err)
	}
	if err := ledger.resettle(nil, payment.ID); err != nil {
		return nil, settlementFailure(err)
	}

	err = uc.store.WithinTransaction(ctx, func(ctx context.Context, tx adapter.LedgerRepositories) error {
		if err := tx.Payments.Delete(ctx, payment.ID); err != nil {
			return fmt.Errorf("failed to delete payment: %w", err)
		}
		return ledger.persist(ctx, tx, payment.ID)
	})
	if err != nil {
		return nil, storeFailure(err)
	}

	output := &DeletePaymentOutput{Document: loanOutput(loan)}
	if !ledger.interestEmptied(payment.ID) {
		output.InterestRecord = ledger.interest
	}
	return output, nil
}
