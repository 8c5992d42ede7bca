package purchase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizledger/backend/internal/application/usecase/document"
	"github.com/bizledger/backend/internal/application/usecase/numbering"
	"github.com/bizledger/backend/internal/application/usecase/payment"
	"github.com/bizledger/backend/internal/application/usecase/purchase"
	"github.com/bizledger/backend/internal/domain/entity"
	domainerror "github.com/bizledger/backend/internal/domain/error"
	"github.com/bizledger/backend/internal/domain/valueobject"
	"github.com/bizledger/backend/internal/integration/persistence/persistencetest"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestPurchaseLifecycle(t *testing.T) {
	ctx := context.Background()
	store, db := persistencetest.NewStore(t)
	userID := uuid.New()
	boughtOn := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	created, err := purchase.NewCreatePurchaseUseCase(store, numbering.NewGenerator(numbering.DefaultMaxAttempts)).
		Execute(ctx, purchase.CreatePurchaseInput{
			UserID:       userID,
			SupplierName: "Initech",
			PurchaseDate: boughtOn,
			Items: []document.LineItemInput{
				{Description: "Paper", Quantity: dec("10"), UnitPrice: dec("4.50")},
				{Description: "Toner", Quantity: dec("2"), UnitPrice: dec("60.00")},
			},
			Discount: dec("15.00"),
		})
	require.NoError(t, err)
	p := created.Purchase
	assert.Regexp(t, `^PUR-[0-9A-F]{4}-\d{6}$`, p.Number)
	assert.True(t, p.TotalAmount.Equal(dec("150.00")), p.TotalAmount.String())

	_, err = purchase.NewCreatePurchaseUseCase(store, numbering.NewGenerator(numbering.DefaultMaxAttempts)).
		Execute(ctx, purchase.CreatePurchaseInput{UserID: userID, PurchaseDate: boughtOn})
	assert.Equal(t, domainerror.KindValidationFailed, domainerror.KindOf(err))

	_, err = payment.NewApplyPaymentUseCase(store, 3).Execute(ctx, payment.ApplyPaymentInput{
		UserID:       userID,
		DocumentKind: valueobject.PayablePurchase,
		DocumentID:   p.ID,
		PaymentFields: payment.PaymentFields{
			Amount:      dec("50.00"),
			Method:      entity.PaymentMethodBankTransfer,
			PaymentDate: boughtOn,
		},
	})
	require.NoError(t, err)

	got, err := purchase.NewGetPurchaseUseCase(store.Repositories().Purchases).
		Execute(ctx, purchase.GetPurchaseInput{UserID: userID, PurchaseID: p.ID})
	require.NoError(t, err)
	assert.Equal(t, valueobject.PaymentStatusPartiallyPaid, got.Status)
	assert.True(t, got.Balance.Equal(dec("100.00")))

	list, err := purchase.NewListPurchasesUseCase(store.Repositories().Purchases).Execute(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	del := purchase.NewDeletePurchaseUseCase(store)
	err = del.Execute(ctx, purchase.DeletePurchaseInput{UserID: uuid.New(), PurchaseID: p.ID})
	assert.Equal(t, domainerror.KindNotFound, domainerror.KindOf(err))

	require.NoError(t, del.Execute(ctx, purchase.DeletePurchaseInput{UserID: userID, PurchaseID: p.ID}))

	var remaining int64
	require.NoError(t, db.Table("payments").Count(&remaining).Error)
	assert.Zero(t, remaining)
}
