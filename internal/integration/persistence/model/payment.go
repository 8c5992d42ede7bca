package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bizledger/backend/internal/domain/entity"
	"github.com/bizledger/backend/internal/domain/valueobject"
)

// PaymentModel represents the payments table in the database.
// Exactly one of the payable columns is set.
type PaymentModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	GroupID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	SaleID      *uuid.UUID      `gorm:"type:uuid;index"`
	PurchaseID  *uuid.UUID      `gorm:"type:uuid;index"`
	LoanID      *uuid.UUID      `gorm:"type:uuid;index"`
	IncomeID    *uuid.UUID      `gorm:"type:uuid;index"`
	ExpensesID  *uuid.UUID      `gorm:"column:expenses_id;type:uuid;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Method      string          `gorm:"type:varchar(20);not null"`
	PaymentDate time.Time       `gorm:"type:date;not null"`
	Reference   string          `gorm:"type:varchar(100)"`
	Notes       string          `gorm:"type:text"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the PaymentModel.
func (PaymentModel) TableName() string {
	return "payments"
}

// PayableColumn returns the payments column that stores references of the given kind.
func PayableColumn(kind valueobject.PayableKind) (string, error) {
	switch kind {
	case valueobject.PayableSale:
		return "sale_id", nil
	case valueobject.PayablePurchase:
		return "purchase_id", nil
	case valueobject.PayableLoan:
		return "loan_id", nil
	case valueobject.PayableIncome:
		return "income_id", nil
	case valueobject.PayableExpense:
		return "expenses_id", nil
	}
	return "", fmt.Errorf("unknown payable kind %q", kind)
}

// ToEntity converts a PaymentModel to a domain PaymentRecord entity.
func (m *PaymentModel) ToEntity() (*entity.PaymentRecord, error) {
	payable, err := m.payableRef()
	if err != nil {
		return nil, err
	}

	return &entity.PaymentRecord{
		ID:          m.ID,
		UserID:      m.UserID,
		GroupID:     m.GroupID,
		Payable:     payable,
		Amount:      m.Amount,
		Method:      entity.PaymentMethod(m.Method),
		PaymentDate: m.PaymentDate,
		Reference:   m.Reference,
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}

func (m *PaymentModel) payableRef() (valueobject.PayableRef, error) {
	candidates := []struct {
		id  *uuid.UUID
		ref func(uuid.UUID) valueobject.PayableRef
	}{
		{m.SaleID, valueobject.SaleRef},
		{m.PurchaseID, valueobject.PurchaseRef},
		{m.LoanID, valueobject.LoanRef},
		{m.IncomeID, valueobject.IncomeRef},
		{m.ExpensesID, valueobject.ExpenseRef},
	}

	var ref valueobject.PayableRef
	set := 0
	for _, c := range candidates {
		if c.id != nil {
			ref = c.ref(*c.id)
			set++
		}
	}
	if set != 1 {
		return valueobject.PayableRef{}, fmt.Errorf("payment %s references %d payables", m.ID, set)
	}
	return ref, nil
}

// PaymentFromEntity converts a domain PaymentRecord entity to a PaymentModel.
func PaymentFromEntity(payment *entity.PaymentRecord) *PaymentModel {
	m := &PaymentModel{
		ID:          payment.ID,
		UserID:      payment.UserID,
		GroupID:     payment.GroupID,
		Amount:      payment.Amount,
		Method:      string(payment.Method),
		PaymentDate: payment.PaymentDate,
		Reference:   payment.Reference,
		Notes:       payment.Notes,
		CreatedAt:   payment.CreatedAt,
		UpdatedAt:   payment.UpdatedAt,
	}

	id := payment.Payable.ID()
	switch payment.Payable.Kind() {
	case valueobject.PayableSale:
		m.SaleID = &id
	case valueobject.PayablePurchase:
		m.PurchaseID = &id
	case valueobject.PayableLoan:
		m.LoanID = &id
	case valueobject.PayableIncome:
		m.IncomeID = &id
	case valueobject.PayableExpense:
		m.ExpensesID = &id
	}
	return m
}
