package sale

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/application/usecase/document"
	domainerror "github.com/bizledger/backend/internal/domain/error"
)

// DeleteSaleInput represents the input for sale deletion.
type DeleteSaleInput struct {
	UserID uuid.UUID
	SaleID uuid.UUID
}

// DeleteSaleUseCase handles sale deletion. Payments of the sale are removed with it
// and an invoice it was converted from goes back to unpaid.
type DeleteSaleUseCase struct {
	store adapter.LedgerStore
}

// NewDeleteSaleUseCase creates a new DeleteSaleUseCase instance.
func NewDeleteSaleUseCase(store adapter.LedgerStore) *DeleteSaleUseCase {
	return &DeleteSaleUseCase{
		store: store,
	}
}

// Execute performs the sale deletion.
func (uc *DeleteSaleUseCase) Execute(ctx context.Context, input DeleteSaleInput) error {
	repos := uc.store.Repositories()

	sale, err := repos.Sales.FindByID(ctx, input.SaleID)
	if err != nil {
		return document.LookupFailure(err)
	}
	if sale.UserID != input.UserID {
		return document.NotFound()
	}

	var removed int64
	err = uc.store.WithinTransaction(ctx, func(ctx context.Context, tx adapter.LedgerRepositories) error {
		if sale.InvoiceID != nil {
			invoice, err := tx.Invoices.FindByID(ctx, *sale.InvoiceID)
			switch {
			case errors.Is(err, domainerror.ErrDocumentNotFound):
			case err != nil:
				return fmt.Errorf("failed to find source invoice: %w", err)
			default:
				invoice.Unlink()
				if err := tx.Invoices.UpdateSettlement(ctx, invoice); err != nil {
					return fmt.Errorf("failed to revert invoice: %w", err)
				}
			}
		}

		var err error
		removed, err = tx.Payments.DeleteByPayable(ctx, sale.Ref())
		if err != nil {
			return fmt.Errorf("failed to delete sale payments: %w", err)
		}
		if err := tx.Sales.Delete(ctx, sale.ID); err != nil {
			return fmt.Errorf("failed to delete sale: %w", err)
		}
		return nil
	})
	if err != nil {
		return document.StoreFailure(err)
	}

	slog.Info("Sale deleted",
		"user_id", input.UserID,
		"sale_id", sale.ID,
		"number", sale.Number,
		"payments_removed", removed,
	)
	return nil
}
