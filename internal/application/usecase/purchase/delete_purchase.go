package purchase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/application/usecase/document"
)

// DeletePurchaseInput represents the input for purchase deletion.
type DeletePurchaseInput struct {
	UserID     uuid.UUID
	PurchaseID uuid.UUID
}

// DeletePurchaseUseCase handles purchase deletion. Payments of the purchase are removed with it.
type DeletePurchaseUseCase struct {
	store adapter.LedgerStore
}

// NewDeletePurchaseUseCase creates a new DeletePurchaseUseCase instance.
func NewDeletePurchaseUseCase(store adapter.LedgerStore) *DeletePurchaseUseCase {
	return &DeletePurchaseUseCase{
		store: store,
	}
}

// Execute performs the purchase deletion.
func (uc *DeletePurchaseUseCase) Execute(ctx context.Context, input DeletePurchaseInput) error {
	repos := uc.store.Repositories()

	purchase, err := repos.Purchases.FindByID(ctx, input.PurchaseID)
	if err != nil {
		return document.LookupFailure(err)
	}
	if purchase.UserID != input.UserID {
		return document.NotFound()
	}

	var removed int64
	err = uc.store.WithinTransaction(ctx, func(ctx context.Context, tx adapter.LedgerRepositories) error {
		var err error
		removed, err = tx.Payments.DeleteByPayable(ctx, purchase.Ref())
		if err != nil {
			return fmt.Errorf("failed to delete purchase payments: %w", err)
		}
		if err := tx.Purchases.Delete(ctx, purchase.ID); err != nil {
			return fmt.Errorf("failed to delete purchase: %w", err)
		}
		return nil
	})
	if err != nil {
		return document.StoreFailure(err)
	}

	slog.Info("Purchase deleted",
		"user_id", input.UserID,
		"purchase_id", purchase.ID,
		"number", purchase.Number,
		"payments_removed", removed,
	)
	return nil
}
