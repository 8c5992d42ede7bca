// Package entity defines the core business entities for the domain layer.
package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bizledger/backend/internal/domain/valueobject"
)

// LineItem is a single priced row on an invoice, sale or purchase.
type LineItem struct {
	ID          uuid.UUID
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal // round2(Quantity * UnitPrice)
}

// NewLineItem creates a LineItem and computes its total.
func NewLineItem(description string, quantity, unitPrice decimal.Decimal) LineItem {
	return LineItem{
		ID:          uuid.New(),
		Description: description,
		Quantity:    quantity,
		UnitPrice:   valueobject.Round2(unitPrice),
		Total:       valueobject.MulMoney(quantity, valueobject.Round2(unitPrice)),
	}
}

// CopyLineItems returns copies of items with fresh ids.
func CopyLineItems(items []LineItem) []LineItem {
	copied := make([]LineItem, len(items))
	for i, item := range items {
		copied[i] = item
		copied[i].ID = uuid.New()
	}
	return copied
}

// DocumentTotal computes round2(sum of line totals - discount + tax).
func DocumentTotal(items []LineItem, discount, tax decimal.Decimal) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = valueobject.AddMoney(subtotal, item.Total)
	}
	return valueobject.AddMoney(valueobject.SubMoney(subtotal, discount), tax)
}
