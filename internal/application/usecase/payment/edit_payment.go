package payment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/domain/entity"
	domainerror "github.com/bizledger/backend/internal/domain/error"
	"github.com/bizledger/backend/internal/domain/valueobject"
)

// EditPaymentInput represents the input for changing a recorded payment.
// Nil fields are left unchanged.
type EditPaymentInput struct {
	UserID      uuid.UUID
	PaymentID   uuid.UUID
	Amount      *decimal.Decimal
	Method      *entity.PaymentMethod
	PaymentDate *time.Time
	Reference   *string
	Notes       *string
}

// EditPaymentOutput represents the output of changing a payment.
type EditPaymentOutput struct {
	Payment        *entity.PaymentRecord
	Document       *DocumentOutput
	InterestRecord *entity.InterestRecord
}

// EditPaymentUseCase handles changing a payment and resettling what it paid.
type EditPaymentUseCase struct {
	store            adapter.LedgerStore
	conflictAttempts int
}

// NewEditPaymentUseCase creates a new EditPaymentUseCase instance.
func NewEditPaymentUseCase(store adapter.LedgerStore, conflictAttempts int) *EditPaymentUseCase {
	return &EditPaymentUseCase{
		store:            store,
		conflictAttempts: conflictAttempts,
	}
}

// Execute validates the changes and recomputes the affected document from its payments.
func (uc *EditPaymentUseCase) Execute(ctx context.Context, input EditPaymentInput) (*EditPaymentOutput, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	output, err := retryOnConflict(ctx, uc.conflictAttempts, "edit_payment", func() (*EditPaymentOutput, error) {
		return uc.edit(ctx, input)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Payment edited",
		"user_id", input.UserID,
		"payment_id", input.PaymentID,
		"payable", output.Payment.Payable.String(),
	)
	return output, nil
}

func (input EditPaymentInput) validate() error {
	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return err
		}
	}
	if input.Method != nil {
		if err := validateMethod(*input.Method); err != nil {
			return err
		}
	}
	if input.PaymentDate != nil && input.PaymentDate.IsZero() {
		return domainerror.NewValidationError(
			domainerror.ErrCodeInvalidPaymentDate,
			"payment_date",
			"payment date must not be empty",
			nil,
		)
	}
	var reference, notes string
	if input.Reference != nil {
		reference = *input.Reference
	}
	if input.Notes != nil {
		notes = *input.Notes
	}
	return validateText(reference, notes)
}

func (input EditPaymentInput) applyTo(payment *entity.PaymentRecord) *entity.PaymentRecord {
	updated := *payment
	if input.Amount != nil {
		updated.Amount = valueobject.Round2(*input.Amount)
	}
	if input.Method != nil {
		updated.Method = *input.Method
	}
	if input.PaymentDate != nil {
		updated.PaymentDate = *input.PaymentDate
	}
	if input.Reference != nil {
		updated.Reference = *input.Reference
	}
	if input.Notes != nil {
		updated.Notes = *input.Notes
	}
	updated.UpdatedAt = time.Now().UTC()
	return &updated
}

func (uc *EditPaymentUseCase) edit(ctx context.Context, input EditPaymentInput) (*EditPaymentOutput, error) {
	repos := uc.store.Repositories()

	payment, err := repos.Payments.FindByID(ctx, input.PaymentID)
	if err != nil {
		return nil, lookupFailure(err, paymentNotFound)
	}
	if payment.UserID != input.UserID {
		return nil, paymentNotFound()
	}

	updated := input.applyTo(payment)

	switch payment.Payable.Kind() {
	case valueobject.PayableSale:
		return uc.editSalePayment(ctx, repos, updated)
	case valueobject.PayablePurchase:
		return uc.editPurchasePayment(ctx, repos, updated)
	case valueobject.PayableLoan:
		loan, err := repos.Loans.FindByID(ctx, payment.Payable.ID())
		if err != nil {
			return nil, lookupFailure(err, documentNotFound)
		}
		return uc.editLoanPayment(ctx, repos, loan, updated)
	default:
		record, err := findInterestByRef(ctx, repos, payment.Payable)
		if err != nil {
			return nil, lookupFailure(err, documentNotFound)
		}
		loan, err := repos.Loans.FindByID(ctx, record.LoanID)
		if err != nil {
			return nil, lookupFailure(err, documentNotFound)
		}
		return uc.editLoanPayment(ctx, repos, loan, updated)
	}
}

func (uc *EditPaymentUseCase) editSalePayment(ctx context.Context, repos adapter.LedgerRepositories, updated *entity.PaymentRecord) (*EditPaymentOutput, error) {
	sale, err := repos.Sales.FindByID(ctx, updated.Payable.ID())
	if err != nil {
		return nil, lookupFailure(err, documentNotFound)
	}
	payments, err := repos.Payments.FindByPayable(ctx, sale.Ref())
	if err != nil {
		return nil, domainerror.NewTransactionFailure(err)
	}

	if err := checkCapacity(sale.TotalAmount, payments, updated); err != nil {
		return nil, err
	}
	if err := sale.Resettle(amountsAfter(payments, updated, uuid.Nil)); err != nil {
		return nil, settlementFailure(err)
	}

	invoice, err := linkedInvoice(ctx, repos, sale)
	if err != nil {
		return nil, err
	}

	err = uc.store.WithinTransaction(ctx, func(ctx context.Context, tx adapter.LedgerRepositories) error {
		if err := tx.Payments.Update(ctx, updated); err != nil {
			return fmt.Errorf("failed to update payment: %w", err)
		}
		if err := tx.Sales.UpdateSettlement(ctx, sale); err != nil {
			return fmt.Errorf("failed to update sale: %w", err)
		}
		return syncInvoice(ctx, tx, invoice, sale)
	})
	if err != nil {
		return nil, storeFailure(err)
	}

	return &EditPaymentOutput{Payment: updated, Document: saleOutput(sale)}, nil
}

func (uc *EditPaymentUseCase) editPurchasePayment(ctx context.Context, repos adapter.LedgerRepositories, updated *entity.PaymentRecord) (*EditPaymentOutput, error) {
	purchase, err := repos.Purchases.FindByID(ctx, updated.Payable.ID())
	if err != nil {
		return nil, lookupFailure(err, documentNotFound)
	}
	payments, err := repos.Payments.FindByPayable(ctx, purchase.Ref())
	if err != nil {
		return nil, domainerror.NewTransactionFailure(err)
	}

	if err := checkCapacity(purchase.TotalAmount, payments, updated); err != nil {
		return nil, err
	}
	if err := purchase.Resettle(amountsAfter(payments, updated, uuid.Nil)); err != nil {
		return nil, settlementFailure(err)
	}

	err = uc.store.WithinTransaction(ctx, func(ctx context.Context, tx adapter.LedgerRepositories) error {
		if err := tx.Payments.Update(ctx, updated); err != nil {
			return fmt.Errorf("failed to update payment: %w", err)
		}
		if err := tx.Purchases.UpdateSettlement(ctx, purchase); err != nil {
			return fmt.Errorf("failed to update purchase: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, storeFailure(err)
	}

	return &EditPaymentOutput{Payment: updated, Document: purchaseOutput(purchase)}, nil
}

func (uc *EditPaymentUseCase) editLoanPayment(
	ctx context.Context,
	repos adapter.LedgerRepositories,
	loan *entity.Loan,
	updated *entity.PaymentRecord,
) (*EditPaymentOutput, error) {
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

	if updated.Payable.Kind() == valueobject.PayableLoan {
		if updated.Amount.GreaterThan(ledger.principalCapacity(updated.ID)) {
			return nil, exceedsCapacity(ledger.principalCapacity(updated.ID))
		}
	}
	if err := ledger.resettle(updated, uuid.Nil); err != nil {
		return nil, settlementFailure(err)
	}

	err = uc.store.WithinTransaction(ctx, func(ctx context.Context, tx adapter.LedgerRepositories) error {
		if err := tx.Payments.Update(ctx, updated); err != nil {
			return fmt.Errorf("failed to update payment: %w", err)
		}
		return ledger.persist(ctx, tx, uuid.Nil)
	})
	if err != nil {
		return nil, storeFailure(err)
	}

	return &EditPaymentOutput{
		Payment:        updated,
		Document:       loanOutput(loan),
		InterestRecord: ledger.interest,
	}, nil
}

// checkCapacity rejects an edited amount larger than what the other payments leave open.
func checkCapacity(total decimal.Decimal, payments []*entity.PaymentRecord, updated *entity.PaymentRecord) error {
	capacity := valueobject.RemainingCapacity(total, entity.PaymentAmounts(payments, updated.ID))
	if updated.Amount.GreaterThan(capacity) {
		return exceedsCapacity(capacity)
	}
	return nil
}

func exceedsCapacity(capacity decimal.Decimal) error {
	return domainerror.NewLedgerError(
		domainerror.KindStateConflict,
		domainerror.ErrCodeAmountExceedsBalance,
		fmt.Sprintf("amount exceeds the remaining %s", capacity.StringFixed(valueobject.MoneyPlaces)),
		domainerror.ErrAmountExceedsBalance,
	)
}
