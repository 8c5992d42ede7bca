// Package sale contains sale-related use cases.
package sale

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

// CreateSaleInput represents the input for sale creation.
type CreateSaleInput struct {
	UserID       uuid.UUID
	CustomerName string
	SaleDate     time.Time
	Items        []document.LineItemInput
	Discount     decimal.Decimal
	Tax          decimal.Decimal
	Notes        string
}

// CreateSaleOutput represents the output of sale creation.
type CreateSaleOutput struct {
	Sale *entity.Sale
}

// CreateSaleUseCase handles sale creation logic.
type CreateSaleUseCase struct {
	store   adapter.LedgerStore
	numbers adapter.NumberGenerator
}

// NewCreateSaleUseCase creates a new CreateSaleUseCase instance.
func NewCreateSaleUseCase(store adapter.LedgerStore, numbers adapter.NumberGenerator) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		store:   store,
		numbers: numbers,
	}
}

// Execute performs the sale creation. New sales start unpaid.
func (uc *CreateSaleUseCase) Execute(ctx context.Context, input CreateSaleInput) (*CreateSaleOutput, error) {
	if err := document.ValidateParty("customer_name", input.CustomerName, input.Notes); err != nil {
		return nil, err
	}
	if err := document.ValidateDate("sale_date", input.SaleDate); err != nil {
		return nil, err
	}

	items, err := document.BuildLineItems(input.Items)
	if err != nil {
		return nil, err
	}
	if err := document.ValidateAdjustments(items, input.Discount, input.Tax); err != nil {
		return nil, err
	}

	sale := entity.NewSale(input.UserID, "", input.CustomerName, input.SaleDate, items, input.Discount, input.Tax, input.Notes)

	repos := uc.store.Repositories()
	_, err = document.CreateNumbered(ctx, uc.numbers, numbering.PrefixSale, input.UserID, repos.Sales.ExistsByNumber,
		func(ctx context.Context, number string) error {
			sale.Number = number
			return repos.Sales.Create(ctx, sale)
		},
	)
	if err != nil {
		return nil, err
	}

	slog.Info("Sale created",
		"user_id", input.UserID,
		"sale_id", sale.ID,
		"number", sale.Number,
		"total", sale.TotalAmount.StringFixed(2),
	)

	return &CreateSaleOutput{Sale: sale}, nil
}
