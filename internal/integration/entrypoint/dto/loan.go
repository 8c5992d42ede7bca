package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bizledger/backend/internal/domain/entity"
)

// CreateLoanRequest represents the request body for loan creation.
type CreateLoanRequest struct {
	Type             string          `json:"type" binding:"required,oneof=RECEIVABLE PAYABLE"`
	CounterpartyName string          `json:"counterparty_name" binding:"required"`
	PrincipalAmount  decimal.Decimal `json:"principal_amount"`
	InterestRate     decimal.Decimal `json:"interest_rate"`
	Charges          decimal.Decimal `json:"charges"`
	StartDate        string          `json:"start_date" binding:"required"`
	DueDate          *string         `json:"due_date,omitempty"`
	Notes            string          `json:"notes"`
}

// ChangeLoanStatusRequest represents the request body for a loan status change.
type ChangeLoanStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=ACTIVE PAID_OFF WRITTEN_OFF DEFAULTED"`
}

// InterestRecordResponse represents the running interest total of a loan.
type InterestRecordResponse struct {
	ID     string `json:"id"`
	Kind   string `json:"kind"`
	LoanID string `json:"loan_id"`
	Amount string `json:"amount"`
	Date   string `json:"date"`
}

// LoanResponse represents a single loan in API responses.
type LoanResponse struct {
	ID                string                  `json:"id"`
	Number            string                  `json:"number"`
	Type              string                  `json:"type"`
	CounterpartyName  string                  `json:"counterparty_name"`
	PrincipalAmount   string                  `json:"principal_amount"`
	InterestRate      string                  `json:"interest_rate"`
	Charges           string                  `json:"charges"`
	TotalAmount       string                  `json:"total_amount"`
	TotalPaid         string                  `json:"total_paid"`
	TotalInterestPaid string                  `json:"total_interest_paid"`
	CurrentBalance    string                  `json:"current_balance"`
	Status            string                  `json:"status"`
	StartDate         string                  `json:"start_date"`
	DueDate           *string                 `json:"due_date,omitempty"`
	Notes             string                  `json:"notes,omitempty"`
	InterestRecord    *InterestRecordResponse `json:"interest_record,omitempty"`
	Version           int64                   `json:"version"`
	CreatedAt         time.Time               `json:"created_at"`
	UpdatedAt         time.Time               `json:"updated_at"`
}

// LoanListResponse represents the response for listing loans.
type LoanListResponse struct {
	Loans []LoanResponse `json:"loans"`
}

// ToLoanResponse converts a domain Loan entity to a LoanResponse DTO.
func ToLoanResponse(l *entity.Loan) LoanResponse {
	return LoanResponse{
		ID:                l.ID.String(),
		Number:            l.Number,
		Type:              string(l.Type),
		CounterpartyName:  l.CounterpartyName,
		PrincipalAmount:   Money(l.PrincipalAmount),
		InterestRate:      l.InterestRate.String(),
		Charges:           Money(l.Charges),
		TotalAmount:       Money(l.TotalAmount),
		TotalPaid:         Money(l.TotalPaid),
		TotalInterestPaid: Money(l.TotalInterestPaid),
		CurrentBalance:    Money(l.CurrentBalance),
		Status:            string(l.Status),
		StartDate:         Date(l.StartDate),
		DueDate:           OptionalDate(l.DueDate),
		Notes:             l.Notes,
		Version:           l.Version,
		CreatedAt:         l.CreatedAt,
		UpdatedAt:         l.UpdatedAt,
	}
}

// ToInterestRecordResponse converts an interest record to a response DTO.
func ToInterestRecordResponse(r *entity.InterestRecord) *InterestRecordResponse {
	if r == nil {
		return nil
	}
	return &InterestRecordResponse{
		ID:     r.ID.String(),
		Kind:   string(r.Kind),
		LoanID: r.LoanID.String(),
		Amount: Money(r.Amount),
		Date:   Date(r.Date),
	}
}

// ToLoanListResponse converts a list of loans to a response DTO.
func ToLoanListResponse(loans []*entity.Loan) LoanListResponse {
	responses := make([]LoanResponse, len(loans))
	for i, loan := range loans {
		responses[i] = ToLoanResponse(loan)
	}
	return LoanListResponse{Loans: responses}
}
