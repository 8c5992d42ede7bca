package payment_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/application/usecase/payment"
	domainerror "github.com/bizledger/backend/internal/domain/error"
	"github.com/bizledger/backend/internal/domain/valueobject"
	"github.com/bizledger/backend/internal/integration/persistence/model"
)

// interleavedStore runs beforeTx ahead of every transaction, standing in for a
// concurrent request that commits between an operation's reads and its writes.
type interleavedStore struct {
	adapter.LedgerStore
	beforeTx func()
}

func (s *interleavedStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos adapter.LedgerRepositories) error) error {
	if s.beforeTx != nil {
		s.beforeTx()
	}
	return s.LedgerStore.WithinTransaction(ctx, fn)
}

// staleNumberStore reports every sale number as free, so a taken number is
// only discovered by the insert.
type staleNumberStore struct {
	adapter.LedgerStore
}

func (s staleNumberStore) Repositories() adapter.LedgerRepositories {
	repos := s.LedgerStore.Repositories()
	repos.Sales = staleSales{repos.Sales}
	return repos
}

type staleSales struct {
	adapter.SaleRepository
}

func (staleSales) ExistsByNumber(context.Context, uuid.UUID, string) (bool, error) {
	return false, nil
}

// fixedNumbers hands out the given sale numbers in order, repeating the last.
type fixedNumbers struct {
	numbers []string
	calls   int
}

func (n *fixedNumbers) Candidate(string, uuid.UUID) string {
	i := min(n.calls, len(n.numbers)-1)
	n.calls++
	return n.numbers[i]
}

func (n *fixedNumbers) MaxAttempts() int {
	return 3
}

func TestConvertInvoice_SaleNumberTakenOnInsert(t *testing.T) {
	f := newFixture(t)
	existing := f.sale(t, "50.00")
	store := staleNumberStore{f.store}

	t.Run("retries with a fresh number", func(t *testing.T) {
		invoice := f.invoice(t, "200.00")
		numbers := &fixedNumbers{numbers: []string{existing.Number, "RCT-FRESH-000001"}}

		out, err := payment.NewConvertInvoiceUseCase(store, numbers, 3).Execute(f.ctx, payment.ConvertInvoiceInput{
			UserID: f.userID, InvoiceID: invoice.ID, PaymentFields: fields("80.00"),
		})
		require.NoError(t, err)
		assert.Equal(t, 2, numbers.calls)
		assert.Equal(t, "RCT-FRESH-000001", out.Sale.Number)
		assertAmount(t, "120.00", out.Invoice.Balance)

		stored, err := f.repos.Invoices.FindByID(f.ctx, invoice.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.SaleID)
		assert.Equal(t, out.Sale.ID, *stored.SaleID)
		assert.Equal(t, out.Invoice.Version, stored.Version)
	})

	t.Run("gives up after the attempt budget", func(t *testing.T) {
		invoice := f.invoice(t, "200.00")
		numbers := &fixedNumbers{numbers: []string{existing.Number}}
		paymentsBefore := f.count(t, "payments")

		_, err := payment.NewConvertInvoiceUseCase(store, numbers, 3).Execute(f.ctx, payment.ConvertInvoiceInput{
			UserID: f.userID, InvoiceID: invoice.ID, PaymentFields: fields("80.00"),
		})
		assertKind(t, err, domainerror.KindNumberGenerationExhausted)
		assert.Equal(t, 3, numbers.calls)

		stored, err := f.repos.Invoices.FindByID(f.ctx, invoice.ID)
		require.NoError(t, err)
		assert.Nil(t, stored.SaleID)
		assert.Equal(t, paymentsBefore, f.count(t, "payments"))
	})
}

func TestPaymentRemovedConcurrently(t *testing.T) {
	f := newFixture(t)

	removeBeforeTx := func(t *testing.T, id uuid.UUID) *interleavedStore {
		return &interleavedStore{LedgerStore: f.store, beforeTx: func() {
			require.NoError(t, f.db.Where("id = ?", id).Delete(&model.PaymentModel{}).Error)
		}}
	}

	t.Run("delete reports the payment as not found", func(t *testing.T) {
		sale := f.sale(t, "500.00")
		paid := applyTo(t, f, valueobject.PayableSale, sale.ID, "300.00").Payments[0]

		_, err := payment.NewDeletePaymentUseCase(removeBeforeTx(t, paid.ID), 3).Execute(f.ctx, payment.DeletePaymentInput{
			UserID: f.userID, PaymentID: paid.ID,
		})
		assertKind(t, err, domainerror.KindNotFound)
		var ledgerErr *domainerror.LedgerError
		require.ErrorAs(t, err, &ledgerErr)
		assert.Equal(t, domainerror.ErrCodePaymentNotFound, ledgerErr.Code)
		assert.False(t, ledgerErr.Retryable())
	})

	t.Run("edit reports the payment as not found", func(t *testing.T) {
		sale := f.sale(t, "500.00")
		paid := applyTo(t, f, valueobject.PayableSale, sale.ID, "300.00").Payments[0]

		_, err := payment.NewEditPaymentUseCase(removeBeforeTx(t, paid.ID), 3).Execute(f.ctx, payment.EditPaymentInput{
			UserID: f.userID, PaymentID: paid.ID, Amount: ptr(dec("200.00")),
		})
		assertKind(t, err, domainerror.KindNotFound)
	})
}
