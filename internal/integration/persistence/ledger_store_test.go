package persistence_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/domain/entity"
	domainerror "github.com/bizledger/backend/internal/domain/error"
	"github.com/bizledger/backend/internal/domain/valueobject"
	"github.com/bizledger/backend/internal/integration/persistence/persistencetest"
)

var day = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func newSale(userID uuid.UUID, number, total string) *entity.Sale {
	items := []entity.LineItem{entity.NewLineItem("Consulting", decimal.NewFromInt(1), decimal.RequireFromString(total))}
	return entity.NewSale(userID, number, "Globex", day, items, decimal.Zero, decimal.Zero, "")
}

func TestSaleRepository_RoundTrip(t *testing.T) {
	store, _ := persistencetest.NewStore(t)
	repos := store.Repositories()
	ctx := context.Background()

	sale := newSale(uuid.New(), "RCT-2026-000001", "250.50")
	require.NoError(t, repos.Sales.Create(ctx, sale))

	stored, err := repos.Sales.FindByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, sale.Number, stored.Number)
	assert.True(t, stored.TotalAmount.Equal(decimal.RequireFromString("250.50")))
	assert.Equal(t, valueobject.PaymentStatusUnpaid, stored.Status)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, "Consulting", stored.Items[0].Description)

	exists, err := repos.Sales.ExistsByNumber(ctx, sale.UserID, sale.Number)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repos.Sales.ExistsByNumber(ctx, uuid.New(), sale.Number)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repos.Sales.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerror.ErrDocumentNotFound)
}

func TestSaleRepository_DuplicateNumber(t *testing.T) {
	store, _ := persistencetest.NewStore(t)
	repos := store.Repositories()
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, repos.Sales.Create(ctx, newSale(userID, "RCT-2026-000007", "10.00")))

	err := repos.Sales.Create(ctx, newSale(userID, "RCT-2026-000007", "20.00"))
	assert.ErrorIs(t, err, domainerror.ErrDuplicateNumber)

	require.NoError(t, repos.Sales.Create(ctx, newSale(uuid.New(), "RCT-2026-000007", "20.00")))
}

func TestSaleRepository_UpdateSettlementChecksVersion(t *testing.T) {
	store, _ := persistencetest.NewStore(t)
	repos := store.Repositories()
	ctx := context.Background()

	sale := newSale(uuid.New(), "RCT-2026-000002", "100.00")
	require.NoError(t, repos.Sales.Create(ctx, sale))

	stale, err := repos.Sales.FindByID(ctx, sale.ID)
	require.NoError(t, err)

	require.NoError(t, sale.ApplyPayment(decimal.RequireFromString("40.00")))
	require.NoError(t, repos.Sales.UpdateSettlement(ctx, sale))
	assert.Equal(t, int64(2), sale.Version)

	require.NoError(t, stale.ApplyPayment(decimal.RequireFromString("70.00")))
	err = repos.Sales.UpdateSettlement(ctx, stale)
	assert.ErrorIs(t, err, domainerror.ErrVersionConflict)

	stored, err := repos.Sales.FindByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.True(t, stored.AmountPaid.Equal(decimal.RequireFromString("40.00")))
	assert.Equal(t, valueobject.PaymentStatusPartiallyPaid, stored.Status)
}

func TestLedgerStore_WithinTransactionRollsBack(t *testing.T) {
	store, db := persistencetest.NewStore(t)
	ctx := context.Background()
	userID := uuid.New()
	sale := newSale(userID, "RCT-2026-000003", "50.00")
	boom := errors.New("boom")

	err := store.WithinTransaction(ctx, func(ctx context.Context, tx adapter.LedgerRepositories) error {
		if err := tx.Sales.Create(ctx, sale); err != nil {
			return err
		}
		payment := entity.NewPaymentRecord(userID, uuid.New(), sale.Ref(), decimal.RequireFromString("5.00"),
			entity.PaymentMethodCash, day, "", "")
		if err := tx.Payments.Create(ctx, payment); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var sales, payments int64
	require.NoError(t, db.Table("sales").Count(&sales).Error)
	require.NoError(t, db.Table("payments").Count(&payments).Error)
	assert.Zero(t, sales)
	assert.Zero(t, payments)
}

func TestLedgerStore_WithinTransactionCommits(t *testing.T) {
	store, _ := persistencetest.NewStore(t)
	ctx := context.Background()
	sale := newSale(uuid.New(), "RCT-2026-000004", "50.00")

	err := store.WithinTransaction(ctx, func(ctx context.Context, tx adapter.LedgerRepositories) error {
		return tx.Sales.Create(ctx, sale)
	})
	require.NoError(t, err)

	_, err = store.Repositories().Sales.FindByID(ctx, sale.ID)
	assert.NoError(t, err)
}

func TestPaymentRepository_FindByPayable(t *testing.T) {
	store, _ := persistencetest.NewStore(t)
	repos := store.Repositories()
	ctx := context.Background()
	userID := uuid.New()

	sale := newSale(userID, "RCT-2026-000005", "300.00")
	require.NoError(t, repos.Sales.Create(ctx, sale))

	older := entity.NewPaymentRecord(userID, uuid.New(), sale.Ref(), decimal.RequireFromString("10.00"),
		entity.PaymentMethodCash, day, "A", "")
	newer := entity.NewPaymentRecord(userID, uuid.New(), sale.Ref(), decimal.RequireFromString("20.00"),
		entity.PaymentMethodCard, day.AddDate(0, 0, 3), "B", "")
	require.NoError(t, repos.Payments.Create(ctx, older))
	require.NoError(t, repos.Payments.Create(ctx, newer))

	payments, err := repos.Payments.FindByPayable(ctx, sale.Ref())
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, newer.ID, payments[0].ID)
	assert.Equal(t, valueobject.PayableSale, payments[0].Payable.Kind())
	assert.Equal(t, sale.ID, payments[0].Payable.ID())

	none, err := repos.Payments.FindByPayable(ctx, valueobject.PurchaseRef(sale.ID))
	require.NoError(t, err)
	assert.Empty(t, none)

	removed, err := repos.Payments.DeleteByPayable(ctx, sale.Ref())
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	assert.ErrorIs(t, repos.Payments.Delete(ctx, older.ID), domainerror.ErrPaymentNotFound)
}

func TestInterestRepositories_FindByLoan(t *testing.T) {
	store, _ := persistencetest.NewStore(t)
	repos := store.Repositories()
	ctx := context.Background()
	userID := uuid.New()

	loan := entity.NewLoan(userID, "LN-2026-000001", entity.LoanTypeReceivable, "Acme",
		decimal.RequireFromString("1000.00"), decimal.Zero, decimal.Zero, day, nil, "")
	require.NoError(t, repos.Loans.Create(ctx, loan))

	_, err := repos.Incomes.FindByLoan(ctx, userID, loan.ID, entity.LoanInterestCategory)
	assert.ErrorIs(t, err, domainerror.ErrInterestRecordNotFound)

	record := entity.NewInterestRecord(loan, decimal.RequireFromString("12.50"), day)
	require.NoError(t, repos.Incomes.Create(ctx, record.ToIncomeRecord(loan.Number)))

	income, err := repos.Incomes.FindByLoan(ctx, userID, loan.ID, entity.LoanInterestCategory)
	require.NoError(t, err)
	assert.True(t, income.GrossAmount.Equal(decimal.RequireFromString("12.50")))
	require.NotNil(t, income.LinkedLoanID)
	assert.Equal(t, loan.ID, *income.LinkedLoanID)

	err = repos.Incomes.Create(ctx, entity.NewInterestRecord(loan, decimal.NewFromInt(1), day).ToIncomeRecord(loan.Number))
	assert.Error(t, err)
}
