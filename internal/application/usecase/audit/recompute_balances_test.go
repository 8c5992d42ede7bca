package audit_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizledger/backend/internal/application/usecase/audit"
	"github.com/bizledger/backend/internal/application/usecase/payment"
	"github.com/bizledger/backend/internal/domain/entity"
	"github.com/bizledger/backend/internal/domain/valueobject"
	"github.com/bizledger/backend/internal/integration/persistence/persistencetest"
)

var day = time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRecomputeBalances(t *testing.T) {
	ctx := context.Background()
	store, db := persistencetest.NewStore(t)
	repos := store.Repositories()
	userID := uuid.New()

	items := []entity.LineItem{entity.NewLineItem("Consulting", decimal.NewFromInt(3), dec("100.00"))}
	sale := entity.NewSale(userID, "RCT-0001-000001", "Globex", day, items, decimal.Zero, decimal.Zero, "")
	require.NoError(t, repos.Sales.Create(ctx, sale))
	purchase := entity.NewPurchase(userID, "PUR-0001-000001", "Initech", day, items, decimal.Zero, decimal.Zero, "")
	require.NoError(t, repos.Purchases.Create(ctx, purchase))
	loan := entity.NewLoan(userID, "LN-0001-000001", entity.LoanTypeReceivable, "Acme", dec("100.00"), decimal.Zero, decimal.Zero, day, nil, "")
	require.NoError(t, repos.Loans.Create(ctx, loan))

	apply := payment.NewApplyPaymentUseCase(store, 3)
	pay := func(kind valueobject.PayableKind, id uuid.UUID, amount string) {
		_, err := apply.Execute(ctx, payment.ApplyPaymentInput{
			UserID:       userID,
			DocumentKind: kind,
			DocumentID:   id,
			PaymentFields: payment.PaymentFields{
				Amount:      dec(amount),
				Method:      entity.PaymentMethodCash,
				PaymentDate: day,
			},
		})
		require.NoError(t, err)
	}
	pay(valueobject.PayableSale, sale.ID, "100.00")
	pay(valueobject.PayablePurchase, purchase.ID, "300.00")
	pay(valueobject.PayableLoan, loan.ID, "130.00")

	uc := audit.NewRecomputeBalancesUseCase(store)

	t.Run("consistent ledger reports no drift", func(t *testing.T) {
		out, err := uc.Execute(ctx, audit.RecomputeBalancesInput{UserID: userID})
		require.NoError(t, err)
		assert.Equal(t, 3, out.Checked)
		assert.Empty(t, out.Drifts)
	})

	require.NoError(t, db.Table("sales").Where("id = ?", sale.ID).
		Updates(map[string]any{"amount_paid": dec("250.00"), "balance": dec("50.00")}).Error)
	require.NoError(t, db.Table("loans").Where("id = ?", loan.ID).
		Update("total_interest_paid", decimal.Zero).Error)

	t.Run("reports drift without touching documents", func(t *testing.T) {
		out, err := uc.Execute(ctx, audit.RecomputeBalancesInput{UserID: userID})
		require.NoError(t, err)
		require.Len(t, out.Drifts, 2)

		assert.Equal(t, valueobject.PayableSale, out.Drifts[0].Kind)
		assert.True(t, out.Drifts[0].StoredPaid.Equal(dec("250.00")))
		assert.True(t, out.Drifts[0].RecomputedPaid.Equal(dec("100.00")))
		assert.False(t, out.Drifts[0].Fixed)
		assert.Equal(t, valueobject.PayableLoan, out.Drifts[1].Kind)

		stored, err := repos.Sales.FindByID(ctx, sale.ID)
		require.NoError(t, err)
		assert.True(t, stored.AmountPaid.Equal(dec("250.00")))
	})

	t.Run("fix repairs drifted documents", func(t *testing.T) {
		out, err := uc.Execute(ctx, audit.RecomputeBalancesInput{UserID: userID, Fix: true})
		require.NoError(t, err)
		require.Len(t, out.Drifts, 2)
		for _, drift := range out.Drifts {
			assert.True(t, drift.Fixed, "drift %s: %s", drift.Number, drift.Error)
		}

		stored, err := repos.Sales.FindByID(ctx, sale.ID)
		require.NoError(t, err)
		assert.True(t, stored.AmountPaid.Equal(dec("100.00")))
		assert.True(t, stored.Balance.Equal(dec("200.00")))
		assert.Equal(t, valueobject.PaymentStatusPartiallyPaid, stored.Status)

		storedLoan, err := repos.Loans.FindByID(ctx, loan.ID)
		require.NoError(t, err)
		assert.True(t, storedLoan.TotalInterestPaid.Equal(dec("30.00")))
		assert.Equal(t, entity.LoanStatusPaidOff, storedLoan.Status)

		again, err := uc.Execute(ctx, audit.RecomputeBalancesInput{UserID: userID})
		require.NoError(t, err)
		assert.Empty(t, again.Drifts)
	})

	t.Run("other users are not audited", func(t *testing.T) {
		out, err := uc.Execute(ctx, audit.RecomputeBalancesInput{UserID: uuid.New()})
		require.NoError(t, err)
		assert.Zero(t, out.Checked)
	})
}
