// Package purchase contains purchase-related use cases.
package purchase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/application/usecase/document"
	"github.com/bizledger/backend/internal/application/usecase/numbering"
	"github.com/bizledger/backend/internal/domain/entity"
)

// CreatePurchaseInput represents the input for purchase creation.
type CreatePurchaseInput struct {
	UserID       uuid.UUID
	SupplierName string
	PurchaseDate time.Time
	Items        []document.LineItemInput
	Discount     decimal.Decimal
	Tax          decimal.Decimal
	Notes        string
}

// CreatePurchaseOutput represents the output of purchase creation.
type CreatePurchaseOutput struct {
	Purchase *entity.Purchase
}

// CreatePurchaseUseCase handles purchase creation logic.
type CreatePurchaseUseCase struct {
	store   adapter.LedgerStore
	numbers adapter.NumberGenerator
}

// NewCreatePurchaseUseCase creates a new CreatePurchaseUseCase instance.
func NewCreatePurchaseUseCase(store adapter.LedgerStore, numbers adapter.NumberGenerator) *CreatePurchaseUseCase {
	return &CreatePurchaseUseCase{
		store:   store,
		numbers: numbers,
	}
}

// Execute performs the purchase creation. New purchases start unpaid.
func (uc *CreatePurchaseUseCase) Execute(ctx context.Context, input CreatePurchaseInput) (*CreatePurchaseOutput, error) {
	if err := document.ValidateParty("supplier_name", input.SupplierName, input.Notes); err != nil {
		return nil, err
	}
	if err := document.ValidateDate("purchase_date", input.PurchaseDate); err != nil {
		return nil, err
	}

	items, err := document.BuildLineItems(input.Items)
	if err != nil {
		return nil, err
	}
	if err := document.ValidateAdjustments(items, input.Discount, input.Tax); err != nil {
		return nil, err
	}

	purchase := entity.NewPurchase(input.UserID, "", input.SupplierName, input.PurchaseDate, items, input.Discount, input.Tax, input.Notes)

	repos := uc.store.Repositories()
	_, err = document.CreateNumbered(ctx, uc.numbers, numbering.PrefixPurchase, input.UserID, repos.Purchases.ExistsByNumber,
		func(ctx context.Context, number string) error {
			purchase.Number = number
			return repos.Purchases.Create(ctx, purchase)
		},
	)
	if err != nil {
		return nil, err
	}

	slog.Info("Purchase created",
		"user_id", input.UserID,
		"purchase_id", purchase.ID,
		"number", purchase.Number,
		"total", purchase.TotalAmount.StringFixed(2),
	)

	return &CreatePurchaseOutput{Purchase: purchase}, nil
}
