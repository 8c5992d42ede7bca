package payment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/application/usecase/document"
	"github.com/bizledger/backend/internal/application/usecase/numbering"
	"github.com/bizledger/backend/internal/domain/entity"
	domainerror "github.com/bizledger/backend/internal/domain/error"
)

// ConvertInvoiceInput represents the input for converting an invoice into a sale.
// A zero Amount is only accepted on the first conversion and records no payment.
type ConvertInvoiceInput struct {
	UserID    uuid.UUID
	InvoiceID uuid.UUID
	PaymentFields
}

// ConvertInvoiceOutput represents the output of an invoice conversion.
type ConvertInvoiceOutput struct {
	Invoice *entity.Invoice
	Sale    *entity.Sale
	Payment *entity.PaymentRecord // Nil when no amount was paid
	Created bool                  // True when this call created the sale
}

// ConvertInvoiceUseCase handles turning an invoice into a sale and recording payments through it.
type ConvertInvoiceUseCase struct {
	store            adapter.LedgerStore
	numbers          adapter.NumberGenerator
	conflictAttempts int
}

// NewConvertInvoiceUseCase creates a new ConvertInvoiceUseCase instance.
func NewConvertInvoiceUseCase(store adapter.LedgerStore, numbers adapter.NumberGenerator, conflictAttempts int) *ConvertInvoiceUseCase {
	return &ConvertInvoiceUseCase{
		store:            store,
		numbers:          numbers,
		conflictAttempts: conflictAttempts,
	}
}

// Execute converts the invoice on first call and applies the payment to the linked sale after that.
func (uc *ConvertInvoiceUseCase) Execute(ctx context.Context, input ConvertInvoiceInput) (*ConvertInvoiceOutput, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	output, err := retryOnConflict(ctx, uc.conflictAttempts, "convert_invoice", func() (*ConvertInvoiceOutput, error) {
		return uc.convert(ctx, input)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Invoice converted",
		"user_id", input.UserID,
		"invoice_id", input.InvoiceID,
		"sale_id", output.Sale.ID,
		"created", output.Created,
		"invoice_status", output.Invoice.Status,
	)
	return output, nil
}

func (input ConvertInvoiceInput) validate() error {
	if input.Amount.IsZero() {
		return validateText(input.Reference, input.Notes)
	}
	if input.Amount.IsNegative() {
		return domainerror.NewValidationError(
			domainerror.ErrCodeInvalidAmount,
			"amount",
			"amount must not be negative",
			domainerror.ErrInvalidAmount,
		)
	}
	return input.PaymentFields.validate()
}

func (uc *ConvertInvoiceUseCase) convert(ctx context.Context, input ConvertInvoiceInput) (*ConvertInvoiceOutput, error) {
	repos := uc.store.Repositories()

	invoice, err := repos.Invoices.FindByID(ctx, input.InvoiceID)
	if err != nil {
		return nil, lookupFailure(err, documentNotFound)
	}
	if invoice.UserID != input.UserID {
		return nil, documentNotFound()
	}

	if !invoice.IsConverted() {
		return uc.firstConversion(ctx, repos, invoice, input)
	}
	return uc.followUpPayment(ctx, repos, invoice, input)
}

func (uc *ConvertInvoiceUseCase) firstConversion(
	ctx context.Context,
	repos adapter.LedgerRepositories,
	invoice *entity.Invoice,
	input ConvertInvoiceInput,
) (*ConvertInvoiceOutput, error) {
	if input.Amount.GreaterThan(invoice.TotalAmount) {
		return nil, domainerror.NewLedgerError(
			domainerror.KindStateConflict,
			domainerror.ErrCodeAmountExceedsBalance,
			"amount exceeds the invoice total",
			domainerror.ErrAmountExceedsBalance,
		)
	}

	saleDate := input.PaymentDate
	if saleDate.IsZero() {
		saleDate = time.Now().UTC()
	}

	var (
		converted *entity.Invoice
		sale      *entity.Sale
		payment   *entity.PaymentRecord
	)
	// A sale number lost to a concurrent insert rolls the transaction back and
	// is retried with a fresh candidate.
	_, err := document.CreateNumbered(ctx, uc.numbers, numbering.PrefixSale, input.UserID, repos.Sales.ExistsByNumber,
		func(ctx context.Context, number string) error {
			attempt := *invoice
			converted = &attempt
			sale = invoice.ToSale(number, saleDate)
			payment = nil
			if input.Amount.IsPositive() {
				if err := sale.ApplyPayment(input.Amount); err != nil {
					return settlementFailure(err)
				}
				payment = input.record(input.UserID, uuid.New(), sale.Ref(), input.Amount)
			}

			return uc.store.WithinTransaction(ctx, func(ctx context.Context, tx adapter.LedgerRepositories) error {
				if err := tx.Sales.Create(ctx, sale); err != nil {
					return fmt.Errorf("failed to create sale: %w", err)
				}
				if payment != nil {
					if err := tx.Payments.Create(ctx, payment); err != nil {
						return fmt.Errorf("failed to create payment: %w", err)
					}
				}
				return syncInvoice(ctx, tx, converted, sale)
			})
		},
	)
	if err != nil {
		return nil, err
	}

	return &ConvertInvoiceOutput{
		Invoice: converted,
		Sale:    sale,
		Payment: payment,
		Created: true,
	}, nil
}

func (uc *ConvertInvoiceUseCase) followUpPayment(
	ctx context.Context,
	repos adapter.LedgerRepositories,
	invoice *entity.Invoice,
	input ConvertInvoiceInput,
) (*ConvertInvoiceOutput, error) {
	sale, err := repos.Sales.FindByID(ctx, *invoice.SaleID)
	if err != nil {
		return nil, lookupFailure(err, documentNotFound)
	}
	if sale.IsSettled() {
		return nil, domainerror.NewLedgerError(
			domainerror.KindStateConflict,
			domainerror.ErrCodeInvoiceFullyPaid,
			"invoice is already fully paid",
			domainerror.ErrAlreadySettled,
		)
	}
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewValidationError(
			domainerror.ErrCodeInvalidAmount,
			"amount",
			"amount must be greater than zero for a converted invoice",
			domainerror.ErrInvalidAmount,
		)
	}

	if err := sale.ApplyPayment(input.Amount); err != nil {
		return nil, settlementFailure(err)
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

	return &ConvertInvoiceOutput{
		Invoice: invoice,
		Sale:    sale,
		Payment: payment,
	}, nil
}
