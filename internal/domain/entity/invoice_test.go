package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizledger/backend/internal/domain/valueobject"
)

func newTestInvoice() *Invoice {
	items := []LineItem{
		NewLineItem("Consulting", dec("3"), dec("150.00")),
		NewLineItem("Travel", dec("1"), dec("49.995")),
	}
	return NewInvoice(uuid.New(), "INV-0001", "Globex", "ap@globex.test",
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), nil, items, dec("10.00"), dec("5.00"), "")
}

func TestDocumentTotal(t *testing.T) {
	invoice := newTestInvoice()

	assert.True(t, invoice.Items[1].UnitPrice.Equal(dec("50.00")))
	// 450.00 + 50.00 - 10.00 + 5.00
	assert.True(t, invoice.TotalAmount.Equal(dec("495.00")), "total %s", invoice.TotalAmount)
	assert.True(t, invoice.Balance.Equal(invoice.TotalAmount))
	assert.Equal(t, InvoiceStatusUnpaid, invoice.Status)
}

func TestInvoice_ToSale(t *testing.T) {
	invoice := newTestInvoice()
	saleDate := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	sale := invoice.ToSale("RCT-0001", saleDate)

	require.NotNil(t, sale.InvoiceID)
	assert.Equal(t, invoice.ID, *sale.InvoiceID)
	assert.Equal(t, invoice.CustomerName, sale.CustomerName)
	assert.True(t, sale.TotalAmount.Equal(invoice.TotalAmount))
	assert.Equal(t, valueobject.PaymentStatusUnpaid, sale.Status)
	require.Len(t, sale.Items, len(invoice.Items))
	for i := range sale.Items {
		assert.NotEqual(t, invoice.Items[i].ID, sale.Items[i].ID)
		assert.True(t, sale.Items[i].Total.Equal(invoice.Items[i].Total))
	}
}

func TestInvoice_SyncWithSale(t *testing.T) {
	invoice := newTestInvoice()
	sale := invoice.ToSale("RCT-0001", invoice.IssueDate)

	require.NoError(t, sale.ApplyPayment(dec("200.00")))
	invoice.SyncWithSale(sale)
	assert.Equal(t, InvoiceStatusConverted, invoice.Status)
	assert.True(t, invoice.AmountPaid.Equal(dec("200.00")))
	assert.True(t, invoice.Balance.Equal(dec("295.00")))
	assert.True(t, invoice.IsConverted())

	require.NoError(t, sale.ApplyPayment(dec("295.00")))
	invoice.SyncWithSale(sale)
	assert.Equal(t, InvoiceStatusPaid, invoice.Status)
	assert.True(t, invoice.Balance.IsZero())

	invoice.Unlink()
	assert.False(t, invoice.IsConverted())
	assert.Equal(t, InvoiceStatusUnpaid, invoice.Status)
	assert.True(t, invoice.AmountPaid.IsZero())
	assert.True(t, invoice.Balance.Equal(invoice.TotalAmount))
}

func TestSale_Resettle(t *testing.T) {
	sale := NewSale(uuid.New(), "RCT-0002", "Initech", time.Now().UTC(),
		[]LineItem{NewLineItem("Widget", dec("10"), dec("10.00"))}, decimal.Zero, decimal.Zero, "")

	require.NoError(t, sale.Resettle([]decimal.Decimal{dec("60.00"), dec("40.00")}))
	assert.Equal(t, valueobject.PaymentStatusPaid, sale.Status)

	assert.Error(t, sale.Resettle([]decimal.Decimal{dec("100.01")}))
	assert.Equal(t, valueobject.PaymentStatusPaid, sale.Status)
}

func TestPaymentAmounts(t *testing.T) {
	ref := valueobject.SaleRef(uuid.New())
	a := NewPaymentRecord(uuid.New(), uuid.New(), ref, dec("10.00"), PaymentMethodCash, time.Now(), "", "")
	b := NewPaymentRecord(uuid.New(), uuid.New(), ref, dec("20.00"), PaymentMethodCard, time.Now(), "", "")

	amounts := PaymentAmounts([]*PaymentRecord{a, b}, a.ID)
	require.Len(t, amounts, 1)
	assert.True(t, amounts[0].Equal(dec("20.00")))

	assert.True(t, PaymentMethodMobileMoney.IsValid())
	assert.False(t, PaymentMethod("BARTER").IsValid())
}
