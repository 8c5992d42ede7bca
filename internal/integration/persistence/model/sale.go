package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bizledger/backend/internal/domain/entity"
	"github.com/bizledger/backend/internal/domain/valueobject"
)

// SaleModel represents the sales table in the database.
type SaleModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_sales_user_number"`
	Number       string          `gorm:"type:varchar(32);not null;uniqueIndex:idx_sales_user_number"`
	InvoiceID    *uuid.UUID      `gorm:"type:uuid;index"`
	CustomerName string          `gorm:"type:varchar(255);not null"`
	SaleDate     time.Time       `gorm:"type:date;not null"`
	Discount     decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Tax          decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	AmountPaid   decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Balance      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Status       string          `gorm:"type:varchar(20);not null;index"`
	Notes        string          `gorm:"type:text"`
	Version      int64           `gorm:"not null;default:1"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`

	Items []SaleItemModel `gorm:"foreignKey:SaleID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for the SaleModel.
func (SaleModel) TableName() string {
	return "sales"
}

// ToEntity converts a SaleModel to a domain Sale entity.
func (m *SaleModel) ToEntity() *entity.Sale {
	items := make([]entity.LineItem, len(m.Items))
	for i, item := range m.Items {
		items[i] = item.toEntity()
	}

	return &entity.Sale{
		ID:           m.ID,
		UserID:       m.UserID,
		Number:       m.Number,
		InvoiceID:    m.InvoiceID,
		CustomerName: m.CustomerName,
		SaleDate:     m.SaleDate,
		Items:        items,
		Discount:     m.Discount,
		Tax:          m.Tax,
		Settlement: valueobject.Settlement{
			TotalAmount: m.TotalAmount,
			AmountPaid:  m.AmountPaid,
			Balance:     m.Balance,
			Status:      valueobject.PaymentStatus(m.Status),
		},
		Notes:     m.Notes,
		Version:   m.Version,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// SaleFromEntity converts a domain Sale entity to a SaleModel.
func SaleFromEntity(sale *entity.Sale) *SaleModel {
	items := make([]SaleItemModel, len(sale.Items))
	for i, item := range sale.Items {
		items[i] = SaleItemModel{
			LineItemColumns: lineItemColumnsFromEntity(i, item),
			SaleID:          sale.ID,
		}
	}

	return &SaleModel{
		ID:           sale.ID,
		UserID:       sale.UserID,
		Number:       sale.Number,
		InvoiceID:    sale.InvoiceID,
		CustomerName: sale.CustomerName,
		SaleDate:     sale.SaleDate,
		Discount:     sale.Discount,
		Tax:          sale.Tax,
		TotalAmount:  sale.TotalAmount,
		AmountPaid:   sale.AmountPaid,
		Balance:      sale.Balance,
		Status:       string(sale.Status),
		Notes:        sale.Notes,
		Version:      sale.Version,
		CreatedAt:    sale.CreatedAt,
		UpdatedAt:    sale.UpdatedAt,
		Items:        items,
	}
}
