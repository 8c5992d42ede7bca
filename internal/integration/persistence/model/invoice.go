package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bizledger/backend/internal/domain/entity"
)

// InvoiceModel represents the invoices table in the database.
type InvoiceModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_invoices_user_number"`
	Number        string          `gorm:"type:varchar(32);not null;uniqueIndex:idx_invoices_user_number"`
	CustomerName  string          `gorm:"type:varchar(255);not null"`
	CustomerEmail string          `gorm:"type:varchar(255)"`
	IssueDate     time.Time       `gorm:"type:date;not null"`
	DueDate       *time.Time      `gorm:"type:date"`
	Discount      decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Tax           decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	AmountPaid    decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Balance       decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Status        string          `gorm:"type:varchar(20);not null;index"`
	SaleID        *uuid.UUID      `gorm:"type:uuid;index"`
	Notes         string          `gorm:"type:text"`
	Version       int64           `gorm:"not null;default:1"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`

	Items []InvoiceItemModel `gorm:"foreignKey:InvoiceID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for the InvoiceModel.
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToEntity converts an InvoiceModel to a domain Invoice entity.
func (m *InvoiceModel) ToEntity() *entity.Invoice {
	items := make([]entity.LineItem, len(m.Items))
	for i, item := range m.Items {
		items[i] = item.toEntity()
	}

	return &entity.Invoice{
		ID:            m.ID,
		UserID:        m.UserID,
		Number:        m.Number,
		CustomerName:  m.CustomerName,
		CustomerEmail: m.CustomerEmail,
		IssueDate:     m.IssueDate,
		DueDate:       m.DueDate,
		Items:         items,
		Discount:      m.Discount,
		Tax:           m.Tax,
		TotalAmount:   m.TotalAmount,
		AmountPaid:    m.AmountPaid,
		Balance:       m.Balance,
		Status:        entity.InvoiceStatus(m.Status),
		SaleID:        m.SaleID,
		Notes:         m.Notes,
		Version:       m.Version,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// InvoiceFromEntity converts a domain Invoice entity to an InvoiceModel.
func InvoiceFromEntity(invoice *entity.Invoice) *InvoiceModel {
	items := make([]InvoiceItemModel, len(invoice.Items))
	for i, item := range invoice.Items {
		items[i] = InvoiceItemModel{
			LineItemColumns: lineItemColumnsFromEntity(i, item),
			InvoiceID:       invoice.ID,
		}
	}

	return &InvoiceModel{
		ID:            invoice.ID,
		UserID:        invoice.UserID,
		Number:        invoice.Number,
		CustomerName:  invoice.CustomerName,
		CustomerEmail: invoice.CustomerEmail,
		IssueDate:     invoice.IssueDate,
		DueDate:       invoice.DueDate,
		Discount:      invoice.Discount,
		Tax:           invoice.Tax,
		TotalAmount:   invoice.TotalAmount,
		AmountPaid:    invoice.AmountPaid,
		Balance:       invoice.Balance,
		Status:        string(invoice.Status),
		SaleID:        invoice.SaleID,
		Notes:         invoice.Notes,
		Version:       invoice.Version,
		CreatedAt:     invoice.CreatedAt,
		UpdatedAt:     invoice.UpdatedAt,
		Items:         items,
	}
}
