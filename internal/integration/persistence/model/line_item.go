// Package model defines database models for persistence layer.
package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bizledger/backend/internal/domain/entity"
)

// LineItemColumns holds the columns shared by every line item table.
type LineItemColumns struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position    int             `gorm:"not null"`
	Description string          `gorm:"type:varchar(255);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(15,3);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Total       decimal.Decimal `gorm:"type:decimal(15,2);not null"`
}

// InvoiceItemModel represents the invoice_items table in the database.
type InvoiceItemModel struct {
	LineItemColumns `gorm:"embedded"`
	InvoiceID       uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for the InvoiceItemModel.
func (InvoiceItemModel) TableName() string {
	return "invoice_items"
}

// SaleItemModel represents the sale_items table in the database.
type SaleItemModel struct {
	LineItemColumns `gorm:"embedded"`
	SaleID          uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for the SaleItemModel.
func (SaleItemModel) TableName() string {
	return "sale_items"
}

// PurchaseItemModel represents the purchase_items table in the database.
type PurchaseItemModel struct {
	LineItemColumns `gorm:"embedded"`
	PurchaseID      uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for the PurchaseItemModel.
func (PurchaseItemModel) TableName() string {
	return "purchase_items"
}

func lineItemColumnsFromEntity(position int, item entity.LineItem) LineItemColumns {
	return LineItemColumns{
		ID:          item.ID,
		Position:    position,
		Description: item.Description,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		Total:       item.Total,
	}
}

func (c LineItemColumns) toEntity() entity.LineItem {
	return entity.LineItem{
		ID:          c.ID,
		Description: c.Description,
		Quantity:    c.Quantity,
		UnitPrice:   c.UnitPrice,
		Total:       c.Total,
	}
}
