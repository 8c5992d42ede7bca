package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bizledger/backend/internal/domain/valueobject"
)

// InvoiceStatus represents the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusUnpaid    InvoiceStatus = "UNPAID"
	InvoiceStatusConverted InvoiceStatus = "CONVERTED"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
)

// Invoice represents a bill sent to a customer. Payments are collected through the
// sale it converts into; the invoice mirrors that sale's paid amount and balance.
type Invoice struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Number        string
	CustomerName  string
	CustomerEmail string
	IssueDate     time.Time
	DueDate       *time.Time
	Items         []LineItem
	Discount      decimal.Decimal
	Tax           decimal.Decimal
	TotalAmount   decimal.Decimal
	AmountPaid    decimal.Decimal
	Balance       decimal.Decimal
	Status        InvoiceStatus
	SaleID        *uuid.UUID
	Notes         string
	Version       int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewInvoice creates a new unpaid Invoice entity.
func NewInvoice(
	userID uuid.UUID,
	number string,
	customerName string,
	customerEmail string,
	issueDate time.Time,
	dueDate *time.Time,
	items []LineItem,
	discount decimal.Decimal,
	tax decimal.Decimal,
	notes string,
) *Invoice {
	now := time.Now().UTC()
	total := DocumentTotal(items, discount, tax)

	return &Invoice{
		ID:            uuid.New(),
		UserID:        userID,
		Number:        number,
		CustomerName:  customerName,
		CustomerEmail: customerEmail,
		IssueDate:     issueDate,
		DueDate:       dueDate,
		Items:         items,
		Discount:      valueobject.Round2(discount),
		Tax:           valueobject.Round2(tax),
		TotalAmount:   total,
		AmountPaid:    decimal.Zero,
		Balance:       total,
		Status:        InvoiceStatusUnpaid,
		Notes:         notes,
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// IsConverted reports whether the invoice already has a linked sale.
func (i *Invoice) IsConverted() bool {
	return i.SaleID != nil
}

// ToSale builds the sale an invoice converts into, copying customer, items and amounts.
func (i *Invoice) ToSale(number string, saleDate time.Time) *Sale {
	sale := NewSale(i.UserID, number, i.CustomerName, saleDate, CopyLineItems(i.Items), i.Discount, i.Tax, i.Notes)
	invoiceID := i.ID
	sale.InvoiceID = &invoiceID
	return sale
}

// SyncWithSale links the invoice to sale and mirrors its settlement.
func (i *Invoice) SyncWithSale(sale *Sale) {
	saleID := sale.ID
	i.SaleID = &saleID
	i.AmountPaid = sale.AmountPaid
	i.Balance = sale.Balance
	if sale.Status == valueobject.PaymentStatusPaid {
		i.Status = InvoiceStatusPaid
	} else {
		i.Status = InvoiceStatusConverted
	}
	i.UpdatedAt = time.Now().UTC()
}

// Unlink detaches the invoice from its sale and resets it to unpaid.
func (i *Invoice) Unlink() {
	i.SaleID = nil
	i.AmountPaid = decimal.Zero
	i.Balance = i.TotalAmount
	i.Status = InvoiceStatusUnpaid
	i.UpdatedAt = time.Now().UTC()
}
