package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bizledger/backend/internal/domain/entity"
	"github.com/bizledger/backend/internal/domain/valueobject"
)

// PurchaseModel represents the purchases table in the database.
type PurchaseModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_purchases_user_number"`
	Number       string          `gorm:"type:varchar(32);not null;uniqueIndex:idx_purchases_user_number"`
	SupplierName string          `gorm:"type:varchar(255);not null"`
	PurchaseDate time.Time       `gorm:"type:date;not null"`
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

	Items []PurchaseItemModel `gorm:"foreignKey:PurchaseID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for the PurchaseModel.
func (PurchaseModel) TableName() string {
	return "purchases"
}

// ToEntity converts a PurchaseModel to a domain Purchase entity.
func (m *PurchaseModel) ToEntity() *entity.Purchase {
	items := make([]entity.LineItem, len(m.Items))
	for i, item := range m.Items {
		items[i] = item.toEntity()
	}

	return &entity.Purchase{
		ID:           m.ID,
		UserID:       m.UserID,
		Number:       m.Number,
		SupplierName: m.SupplierName,
		PurchaseDate: m.PurchaseDate,
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

// PurchaseFromEntity converts a domain Purchase entity to a PurchaseModel.
func PurchaseFromEntity(purchase *entity.Purchase) *PurchaseModel {
	items := make([]PurchaseItemModel, len(purchase.Items))
	for i, item := range purchase.Items {
		items[i] = PurchaseItemModel{
			LineItemColumns: lineItemColumnsFromEntity(i, item),
			PurchaseID:      purchase.ID,
		}
	}

	return &PurchaseModel{
		ID:           purchase.ID,
		UserID:       purchase.UserID,
		Number:       purchase.Number,
		SupplierName: purchase.SupplierName,
		PurchaseDate: purchase.PurchaseDate,
		Discount:     purchase.Discount,
		Tax:          purchase.Tax,
		TotalAmount:  purchase.TotalAmount,
		AmountPaid:   purchase.AmountPaid,
		Balance:      purchase.Balance,
		Status:       string(purchase.Status),
		Notes:        purchase.Notes,
		Version:      purchase.Version,
		CreatedAt:    purchase.CreatedAt,
		UpdatedAt:    purchase.UpdatedAt,
		Items:        items,
	}
}
