package sale

import (
	"context"

	"github.com/google/uuid"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/application/usecase/document"
	"github.com/bizledger/backend/internal/domain/entity"
	domainerror "github.com/bizledger/backend/internal/domain/error"
)

// GetSaleInput represents the input for fetching a sale.
type GetSaleInput struct {
	UserID uuid.UUID
	SaleID uuid.UUID
}

// GetSaleUseCase handles fetching a single sale.
type GetSaleUseCase struct {
	saleRepo adapter.SaleRepository
}

// NewGetSaleUseCase creates a new GetSaleUseCase instance.
func NewGetSaleUseCase(saleRepo adapter.SaleRepository) *GetSaleUseCase {
	return &GetSaleUseCase{
		saleRepo: saleRepo,
	}
}

// Execute returns the sale if it belongs to the user.
func (uc *GetSaleUseCase) Execute(ctx context.Context, input GetSaleInput) (*entity.Sale, error) {
	sale, err := uc.saleRepo.FindByID(ctx, input.SaleID)
	if err != nil {
		return nil, document.LookupFailure(err)
	}
	if sale.UserID != input.UserID {
		return nil, document.NotFound()
	}
	return sale, nil
}

// ListSalesUseCase handles listing a user's sales.
type ListSalesUseCase struct {
	saleRepo adapter.SaleRepository
}

// NewListSalesUseCase creates a new ListSalesUseCase instance.
func NewListSalesUseCase(saleRepo adapter.SaleRepository) *ListSalesUseCase {
	return &ListSalesUseCase{
		saleRepo: saleRepo,
	}
}

// Execute returns every sale of the user.
func (uc *ListSalesUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]*entity.Sale, error) {
	sales, err := uc.saleRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, domainerror.NewTransactionFailure(err)
	}
	return sales, nil
}
