package payment_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/application/usecase/payment"
	"github.com/bizledger/backend/internal/domain/entity"
	domainerror "github.com/bizledger/backend/internal/domain/error"
	"github.com/bizledger/backend/internal/integration/persistence/persistencetest"
)

var paymentDate = time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// fixture seeds documents for one user into a private in-memory ledger.
type fixture struct {
	ctx    context.Context
	store  adapter.LedgerStore
	repos  adapter.LedgerRepositories
	db     *gorm.DB
	userID uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store, db := persistencetest.NewStore(t)
	return &fixture{
		ctx:    context.Background(),
		store:  store,
		repos:  store.Repositories(),
		db:     db,
		userID: uuid.New(),
	}
}

func number(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

func items(total string) []entity.LineItem {
	return []entity.LineItem{entity.NewLineItem("Services", decimal.NewFromInt(1), dec(total))}
}

func (f *fixture) sale(t *testing.T, total string) *entity.Sale {
	t.Helper()
	sale := entity.NewSale(f.userID, number("RCT"), "Globex", paymentDate, items(total), decimal.Zero, decimal.Zero, "")
	require.NoError(t, f.repos.Sales.Create(f.ctx, sale))
	return sale
}

func (f *fixture) purchase(t *testing.T, total string) *entity.Purchase {
	t.Helper()
	purchase := entity.NewPurchase(f.userID, number("PUR"), "Initech", paymentDate, items(total), decimal.Zero, decimal.Zero, "")
	require.NoError(t, f.repos.Purchases.Create(f.ctx, purchase))
	return purchase
}

func (f *fixture) loan(t *testing.T, loanType entity.LoanType, principal string) *entity.Loan {
	t.Helper()
	loan := entity.NewLoan(f.userID, number("LN"), loanType, "Acme Capital", dec(principal), decimal.Zero, decimal.Zero, paymentDate, nil, "")
	require.NoError(t, f.repos.Loans.Create(f.ctx, loan))
	return loan
}

func (f *fixture) invoice(t *testing.T, total string) *entity.Invoice {
	t.Helper()
	invoice := entity.NewInvoice(f.userID, number("INV"), "Globex", "billing@globex.test", paymentDate, nil, items(total), decimal.Zero, decimal.Zero, "")
	require.NoError(t, f.repos.Invoices.Create(f.ctx, invoice))
	return invoice
}

func (f *fixture) reloadSale(t *testing.T, id uuid.UUID) *entity.Sale {
	t.Helper()
	sale, err := f.repos.Sales.FindByID(f.ctx, id)
	require.NoError(t, err)
	return sale
}

func (f *fixture) reloadLoan(t *testing.T, id uuid.UUID) *entity.Loan {
	t.Helper()
	loan, err := f.repos.Loans.FindByID(f.ctx, id)
	require.NoError(t, err)
	return loan
}

func (f *fixture) count(t *testing.T, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Table(table).Count(&n).Error)
	return n
}

func fields(amount string) payment.PaymentFields {
	return payment.PaymentFields{
		Amount:      dec(amount),
		Method:      entity.PaymentMethodBankTransfer,
		PaymentDate: paymentDate,
		Reference:   "TX-1",
	}
}

func assertKind(t *testing.T, err error, kind domainerror.ErrorKind) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, kind, domainerror.KindOf(err), "error: %v", err)
}

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(dec(want)), "want %s, got %s", want, got.StringFixed(2))
}
