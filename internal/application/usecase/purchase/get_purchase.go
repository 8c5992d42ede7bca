package purchase

import (
	"context"

	"github.com/google/uuid"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/application/usecase/document"
	"github.com/bizledger/backend/internal/domain/entity"
	domainerror "github.com/bizledger/backend/internal/domain/error"
)

// GetPurchaseInput represents the input for fetching a purchase.
type GetPurchaseInput struct {
	UserID     uuid.UUID
	PurchaseID uuid.UUID
}

// GetPurchaseUseCase handles fetching a single purchase.
type GetPurchaseUseCase struct {
	purchaseRepo adapter.PurchaseRepository
}

// NewGetPurchaseUseCase creates a new GetPurchaseUseCase instance.
func NewGetPurchaseUseCase(purchaseRepo adapter.PurchaseRepository) *GetPurchaseUseCase {
	return &GetPurchaseUseCase{
		purchaseRepo: purchaseRepo,
	}
}

// Execute returns the purchase if it belongs to the user.
func (uc *GetPurchaseUseCase) Execute(ctx context.Context, input GetPurchaseInput) (*entity.Purchase, error) {
	purchase, err := uc.purchaseRepo.FindByID(ctx, input.PurchaseID)
	if err != nil {
		return nil, document.LookupFailure(err)
	}
	if purchase.UserID != input.UserID {
		return nil, document.NotFound()
	}
	return purchase, nil
}

// ListPurchasesUseCase handles listing a user's purchases.
type ListPurchasesUseCase struct {
	purchaseRepo adapter.PurchaseRepository
}

// NewListPurchasesUseCase creates a new ListPurchasesUseCase instance.
func NewListPurchasesUseCase(purchaseRepo adapter.PurchaseRepository) *ListPurchasesUseCase {
	return &ListPurchasesUseCase{
		purchaseRepo: purchaseRepo,
	}
}

// Execute returns every purchase of the user.
func (uc *ListPurchasesUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]*entity.Purchase, error) {
	purchases, err := uc.purchaseRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, domainerror.NewTransactionFailure(err)
	}
	return purchases, nil
}
