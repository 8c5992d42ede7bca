package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bizledger/backend/internal/domain/entity"
)

// IncomeModel represents the income_records table in the database.
// A loan has at most one record per category.
type IncomeModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_income_loan_category"`
	Category     string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_income_loan_category"`
	Description  string          `gorm:"type:varchar(255)"`
	GrossAmount  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	LinkedLoanID *uuid.UUID      `gorm:"type:uuid;uniqueIndex:idx_income_loan_category"`
	IncomeDate   time.Time       `gorm:"type:date;not null"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for the IncomeModel.
func (IncomeModel) TableName() string {
	return "income_records"
}

// ToEntity converts an IncomeModel to a domain IncomeRecord entity.
func (m *IncomeModel) ToEntity() *entity.IncomeRecord {
	return &entity.IncomeRecord{
		ID:           m.ID,
		UserID:       m.UserID,
		Category:     m.Category,
		Description:  m.Description,
		GrossAmount:  m.GrossAmount,
		LinkedLoanID: m.LinkedLoanID,
		IncomeDate:   m.IncomeDate,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// IncomeFromEntity converts a domain IncomeRecord entity to an IncomeModel.
func IncomeFromEntity(income *entity.IncomeRecord) *IncomeModel {
	return &IncomeModel{
		ID:           income.ID,
		UserID:       income.UserID,
		Category:     income.Category,
		Description:  income.Description,
		GrossAmount:  income.GrossAmount,
		LinkedLoanID: income.LinkedLoanID,
		IncomeDate:   income.IncomeDate,
		CreatedAt:    income.CreatedAt,
		UpdatedAt:    income.UpdatedAt,
	}
}

// ExpenseModel represents the expenses table in the database.
type ExpenseModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_expense_loan_category"`
	Category     string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_expense_loan_category"`
	Description  string          `gorm:"type:varchar(255)"`
	Amount       decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	LinkedLoanID *uuid.UUID      `gorm:"type:uuid;uniqueIndex:idx_expense_loan_category"`
	ExpenseDate  time.Time       `gorm:"type:date;not null"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for the ExpenseModel.
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToEntity converts an ExpenseModel to a domain Expense entity.
func (m *ExpenseModel) ToEntity() *entity.Expense {
	return &entity.Expense{
		ID:           m.ID,
		UserID:       m.UserID,
		Category:     m.Category,
		Description:  m.Description,
		Amount:       m.Amount,
		LinkedLoanID: m.LinkedLoanID,
		ExpenseDate:  m.ExpenseDate,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// ExpenseFromEntity converts a domain Expense entity to an ExpenseModel.
func ExpenseFromEntity(expense *entity.Expense) *ExpenseModel {
	return &ExpenseModel{
		ID:           expense.ID,
		UserID:       expense.UserID,
		Category:     expense.Category,
		Description:  expense.Description,
		Amount:       expense.Amount,
		LinkedLoanID: expense.LinkedLoanID,
		ExpenseDate:  expense.ExpenseDate,
		CreatedAt:    expense.CreatedAt,
		UpdatedAt:    expense.UpdatedAt,
	}
}

// LedgerModels lists every model of the ledger schema, in dependency order.
func LedgerModels() []interface{} {
	return []interface{}{
		&InvoiceModel{},
		&InvoiceItemModel{},
		&SaleModel{},
		&SaleItemModel{},
		&PurchaseModel{},
		&PurchaseItemModel{},
		&LoanModel{},
		&IncomeModel{},
		&ExpenseModel{},
		&PaymentModel{},
	}
}
