package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/domain/entity"
	domainerror "github.com/bizledger/backend/internal/domain/error"
	"github.com/bizledger/backend/internal/domain/valueobject"
)

// ApplyPaymentInput represents the input for recording a payment against a document.
type ApplyPaymentInput struct {
	UserID       uuid.UUID
	DocumentKind valueobject.PayableKind
	DocumentID   uuid.UUID
	PaymentFields
}

// ApplyPaymentOutput represents the output of recording a payment.
type ApplyPaymentOutput struct {
	Document       *DocumentOutput
	Payments       []*entity.PaymentRecord
	Split          *valueobject.LoanSplit  // Loans only
	InterestRecord *entity.InterestRecord // Set when part of a loan payment was interest
}

// ApplyPaymentUseCase handles recording payments against sales, purchases and loans.
type ApplyPaymentUseCase struct {
	store            adapter.LedgerStore
	conflictAttempts int
}

// NewApplyPaymentUseCase creates a new ApplyPaymentUseCase instance.
func NewApplyPaymentUseCase(store adapter.LedgerStore, conflictAttempts int) *ApplyPaymentUseCase {
	return &ApplyPaymentUseCase{
		store:            store,
		conflictAttempts: conflictAttempts,
	}
}

// Execute validates the payment and applies it to the target document atomically.
func (uc *ApplyPaymentUseCase) Execute(ctx context.Context, input ApplyPaymentInput) (*ApplyPaymentOutput, error) {
	if err := input.PaymentFields.validate(); err != nil {
		return nil, err
	}

	ref, err := valueobject.NewPayableRef(input.DocumentKind, input.DocumentID)
	if err != nil || !ref.Kind().IsDocument() {
		return nil, domainerror.NewValidationError(
			domainerror.ErrCodeInvalidDocumentType,
			"document_type",
			"payments can only be applied to sales, purchases and loans",
			domainerror.ErrInvalidDocumentType,
		)
	}

	output, err := retryOnConflict(ctx, uc.conflictAttempts, "apply_payment", func() (*ApplyPaymentOutput, error) {
		switch ref.Kind() {
		case valueobject.PayableSale:
			return uc.applyToSale(ctx, input)
		case valueobject.PayablePurchase:
			return uc.applyToPurchase(ctx, input)
		default:
			return uc.applyToLoan(ctx, input)
		}
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Payment applied",
		"user_id", input.UserID,
		"document", ref.String(),
		"amount", input.Amount.StringFixed(valueobject.MoneyPlaces),
		"status", output.Document.Status,
	)
	return output, nil
}

func (uc *ApplyPaymentUseCase) applyToSale(ctx context.Context, input ApplyPaymentInput) (*ApplyPaymentOutput, error) {
	repos := uc.store.Repositories()

	sale, err := repos.Sales.FindByID(ctx, input.DocumentID)
	if err != nil {
		return nil, lookupFailure(err, documentNotFound)
	}
	if sale.UserID != input.UserID {
		return nil, documentNotFound()
	}

	if err := sale.ApplyPayment(input.Amount); err != nil {
		return nil, settlementFailure(err)
	}

	invoice, err := linkedInvoice(ctx, repos, sale)
	if err != nil {
		return nil, err
	}

	payment := input.record(input.UserID, uuid.New(), sale.Ref(), input.Amount)

	err = uc.store.WithinTransaction(ctx, func(ctx context.Context, tx adapter.LedgerRepositories) error {
		if err := tx.Payments.Create(ctx, payment); err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}
		if err := tx.Sales.UpdateSettlement(ctx, sale); err != nil {
			return fmt.Errorf("failed to update sale: %w", err)
		}
		return syncInvoice(ctx, tx, invoice, sale)
	})
	if err != nil {
		return nil, storeFailure(err)
	}

	return &ApplyPaymentOutput{
		Document: saleOutput(sale),
		Payments: []*entity.PaymentRecord{payment},
	}, nil
}

func (uc *ApplyPaymentUseCase) applyToPurchase(ctx context.Context, input ApplyPaymentInput) (*ApplyPaymentOutput, error) {
	repos := uc.store.Repositories()

	purchase, err := repos.Purchases.FindByID(ctx, input.DocumentID)
	if err != nil {
		return nil, lookupFailure(err, documentNotFound)
	}
	if purchase.UserID != input.UserID {
		return nil, documentNotFound()
	}

	if err := purchase.ApplyPayment(input.Amount); err != nil {
		return nil, settlementFailure(err)
	}

	payment := input.record(input.UserID, uuid.New(), purchase.Ref(), input.Amount)

	err = uc.store.WithinTransaction(ctx, func(ctx context.Context, tx adapter.LedgerRepositories) error {
		if err := tx.Payments.Create(ctx, payment); err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}
		if err := tx.Purchases.UpdateSettlement(ctx, purchase); err != nil {
			return fmt.Errorf("failed to update purchase: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, storeFailure(err)
	}

	return &ApplyPaymentOutput{
		Document: purchaseOutput(purchase),
		Payments: []*entity.PaymentRecord{payment},
	}, nil
}

func (uc *ApplyPaymentUseCase) applyToLoan(ctx context.Context, input ApplyPaymentInput) (*ApplyPaymentOutput, error) {
	repos := uc.store.Repositories()

	loan, err := repos.Loans.FindByID(ctx, input.DocumentID)
	if err != nil {
		return nil, lookupFailure(err, documentNotFound)
	}
	if loan.UserID != input.UserID {
		return nil, documentNotFound()
	}
	if loan.Status.IsTerminal() {
		return nil, terminalLoan(loan)
	}

	split, err := loan.ApplyPayment(input.Amount)
	if err != nil {
		return nil, settlementFailure(err)
	}

	groupID := uuid.New()
	output := &ApplyPaymentOutput{Split: &split}

	var principalPayment *entity.PaymentRecord
	if split.HasPrincipal() {
		principalPayment = input.record(input.UserID, groupID, loan.Ref(), split.Principal)
	}

	err = uc.store.WithinTransaction(ctx, func(ctx context.Context, tx adapter.LedgerRepositories) error {
		output.Payments = nil
		output.InterestRecord = nil

		if principalPayment != nil {
			if err := tx.Payments.Create(ctx, principalPayment); err != nil {
				return fmt.Errorf("failed to create payment: %w", err)
			}
			output.Payments = append(output.Payments, principalPayment)
		}
		if err := tx.Loans.UpdateBalance(ctx, loan); err != nil {
			return fmt.Errorf("failed to update loan: %w", err)
		}
		if !split.HasInterest() {
			return nil
		}

		record, err := accrueInterest(ctx, tx, loan, split.Interest, input.PaymentDate)
		if err != nil {
			return err
		}
		interestPayment := input.record(input.UserID, groupID, record.Ref(), split.Interest)
		if err := tx.Payments.Create(ctx, interestPayment); err != nil {
			return fmt.Errorf("failed to create interest payment: %w", err)
		}
		output.Payments = append(output.Payments, interestPayment)
		output.InterestRecord = record
		return nil
	})
	if err != nil {
		return nil, storeFailure(err)
	}

	output.Document = loanOutput(loan)
	return output, nil
}

// linkedInvoice loads the invoice a sale was converted from, if any.
func linkedInvoice(ctx context.Context, repos adapter.LedgerRepositories, sale *entity.Sale) (*entity.Invoice, error) {
	if sale.InvoiceID == nil {
		return nil, nil
	}
	invoice, err := repos.Invoices.FindByID(ctx, *sale.InvoiceID)
	if err != nil {
		if errors.Is(err, domainerror.ErrDocumentNotFound) {
			return nil, nil
		}
		return nil, domainerror.NewTransactionFailure(err)
	}
	return invoice, nil
}

// syncInvoice mirrors the sale settlement onto its invoice. Must run inside the ledger transaction.
func syncInvoice(ctx context.Context, tx adapter.LedgerRepositories, invoice *entity.Invoice, sale *entity.Sale) error {
	if invoice == nil {
		return nil
	}
	invoice.SyncWithSale(sale)
	if err := tx.Invoices.UpdateSettlement(ctx, invoice); err != nil {
		return fmt.Errorf("failed to update invoice: %w", err)
	}
	return nil
}
