package invoice

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/application/usecase/document"
)

// DeleteInvoiceInput represents the input for invoice deletion.
type DeleteInvoiceInput struct {
	UserID    uuid.UUID
	InvoiceID uuid.UUID
}

// DeleteInvoiceUseCase handles invoice deletion. A sale converted from the invoice
// is kept, together with its payments, and loses its link to the invoice.
type DeleteInvoiceUseCase struct {
	store adapter.LedgerStore
}

// NewDeleteInvoiceUseCase creates a new DeleteInvoiceUseCase instance.
func NewDeleteInvoiceUseCase(store adapter.LedgerStore) *DeleteInvoiceUseCase {
	return &DeleteInvoiceUseCase{
		store: store,
	}
}

// Execute performs the invoice deletion.
func (uc *DeleteInvoiceUseCase) Execute(ctx context.Context, input DeleteInvoiceInput) error {
	repos := uc.store.Repositories()

	invoice, err := repos.Invoices.FindByID(ctx, input.InvoiceID)
	if err != nil {
		return document.LookupFailure(err)
	}
	if invoice.UserID != input.UserID {
		return document.NotFound()
	}

	err = uc.store.WithinTransaction(ctx, func(ctx context.Context, tx adapter.LedgerRepositories) error {
		if invoice.SaleID != nil {
			sale, err := tx.Sales.FindByID(ctx, *invoice.SaleID)
			if err != nil {
				return fmt.Errorf("failed to find converted sale: %w", err)
			}
			sale.InvoiceID = nil
			if err := tx.Sales.UpdateSettlement(ctx, sale); err != nil {
				return fmt.Errorf("failed to unlink sale: %w", err)
			}
		}
		if err := tx.Invoices.Delete(ctx, invoice.ID); err != nil {
			return fmt.Errorf("failed to delete invoice: %w", err)
		}
		return nil
	})
	if err != nil {
		return document.StoreFailure(err)
	}

	slog.Info("Invoice deleted",
		"user_id", input.UserID,
		"invoice_id", invoice.ID,
		"number", invoice.Number,
	)
	return nil
}
