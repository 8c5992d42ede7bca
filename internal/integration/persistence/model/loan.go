package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bizledger/backend/internal/domain/entity"
)

// LoanModel represents the loans table in the database.
type LoanModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID            uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_loans_user_number"`
	Number            string          `gorm:"type:varchar(32);not null;uniqueIndex:idx_loans_user_number"`
	Type              string          `gorm:"type:varchar(20);not null"`
	CounterpartyName  string          `gorm:"type:varchar(255);not null"`
	PrincipalAmount   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	InterestRate      decimal.Decimal `gorm:"type:decimal(7,4);not null;default:0"`
	Charges           decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TotalAmount       decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TotalPaid         decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TotalInterestPaid decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	CurrentBalance    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Status            string          `gorm:"type:varchar(20);not null;index"`
	StartDate         time.Time       `gorm:"type:date;not null"`
	DueDate           *time.Time      `gorm:"type:date"`
	Notes             string          `gorm:"type:text"`
	Version           int64           `gorm:"not null;default:1"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`
}

// TableName returns the table name for the LoanModel.
func (LoanModel) TableName() string {
	return "loans"
}

// ToEntity converts a LoanModel to a domain Loan entity.
func (m *LoanModel) ToEntity() *entity.Loan {
	return &entity.Loan{
		ID:                m.ID,
		UserID:            m.UserID,
		Number:            m.Number,
		Type:              entity.LoanType(m.Type),
		CounterpartyName:  m.CounterpartyName,
		PrincipalAmount:   m.PrincipalAmount,
		InterestRate:      m.InterestRate,
		Charges:           m.Charges,
		TotalAmount:       m.TotalAmount,
		TotalPaid:         m.TotalPaid,
		TotalInterestPaid: m.TotalInterestPaid,
		CurrentBalance:    m.CurrentBalance,
		Status:            entity.LoanStatus(m.Status),
		StartDate:         m.StartDate,
		DueDate:           m.DueDate,
		Notes:             m.Notes,
		Version:           m.Version,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// LoanFromEntity converts a domain Loan entity to a LoanModel.
func LoanFromEntity(loan *entity.Loan) *LoanModel {
	return &LoanModel{
		ID:                loan.ID,
		UserID:            loan.UserID,
		Number:            loan.Number,
		Type:              string(loan.Type),
		CounterpartyName:  loan.CounterpartyName,
		PrincipalAmount:   loan.PrincipalAmount,
		InterestRate:      loan.InterestRate,
		Charges:           loan.Charges,
		TotalAmount:       loan.TotalAmount,
		TotalPaid:         loan.TotalPaid,
		TotalInterestPaid: loan.TotalInterestPaid,
		CurrentBalance:    loan.CurrentBalance,
		Status:            string(loan.Status),
		StartDate:         loan.StartDate,
		DueDate:           loan.DueDate,
		Notes:             loan.Notes,
		Version:           loan.Version,
		CreatedAt:         loan.CreatedAt,
		UpdatedAt:         loan.UpdatedAt,
	}
}
