package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bizledger/backend/internal/application/usecase/payment"
	"github.com/bizledger/backend/internal/domain/entity"
)

// ApplyPaymentRequest represents the request body for recording a payment.
type ApplyPaymentRequest struct {
	DocumentType  string          `json:"document_type" binding:"required"`
	DocumentID    string          `json:"document_id" binding:"required,uuid"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method" binding:"required"`
	PaymentDate   string          `json:"payment_date" binding:"required"`
	Reference     string          `json:"reference"`
	Notes         string          `json:"notes"`
}

// EditPaymentRequest represents the request body for changing a payment.
type EditPaymentRequest struct {
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	PaymentMethod *string          `json:"payment_method,omitempty"`
	PaymentDate   *string          `json:"payment_date,omitempty"`
	Reference     *string          `json:"reference,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
}

// PaymentResponse represents a single payment record in API responses.
type PaymentResponse struct {
	ID            string    `json:"id"`
	GroupID       string    `json:"group_id"`
	PayableType   string    `json:"payable_type"`
	PayableID     string    `json:"payable_id"`
	Amount        string    `json:"amount"`
	PaymentMethod string    `json:"payment_method"`
	PaymentDate   string    `json:"payment_date"`
	Reference     string    `json:"reference,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DocumentSummary is the settlement state of a document after a payment change.
type DocumentSummary struct {
	Type              string  `json:"type"`
	ID                string  `json:"id"`
	Number            string  `json:"number"`
	TotalAmount       string  `json:"total_amount"`
	AmountPaid        string  `json:"amount_paid"`
	Balance           string  `json:"balance"`
	Status            string  `json:"status"`
	TotalInterestPaid *string `json:"total_interest_paid,omitempty"`
	Version           int64   `json:"version"`
}

// LoanSplitResponse shows how a loan payment was divided.
type LoanSplitResponse struct {
	Principal string `json:"principal"`
	Interest  string `json:"interest"`
}

// ApplyPaymentResponse represents the result of recording a payment.
type ApplyPaymentResponse struct {
	Document       DocumentSummary         `json:"document"`
	Payments       []PaymentResponse       `json:"payments"`
	Split          *LoanSplitResponse      `json:"split,omitempty"`
	InterestRecord *InterestRecordResponse `json:"interest_record,omitempty"`
}

// EditPaymentResponse represents the result of changing a payment.
type EditPaymentResponse struct {
	Document       DocumentSummary         `json:"document"`
	Payment        PaymentResponse         `json:"payment"`
	InterestRecord *InterestRecordResponse `json:"interest_record,omitempty"`
}

// DeletePaymentResponse represents the result of removing a payment.
type DeletePaymentResponse struct {
	Document       DocumentSummary         `json:"document"`
	InterestRecord *InterestRecordResponse `json:"interest_record,omitempty"`
}

// PaymentListResponse represents the payments of one document.
type PaymentListResponse struct {
	Document DocumentSummary   `json:"document"`
	Payments []PaymentResponse `json:"payments"`
}

// ToPaymentResponse converts a domain PaymentRecord to a PaymentResponse DTO.
func ToPaymentResponse(p *entity.PaymentRecord) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID.String(),
		GroupID:       p.GroupID.String(),
		PayableType:   string(p.Payable.Kind()),
		PayableID:     p.Payable.ID().String(),
		Amount:        Money(p.Amount),
		PaymentMethod: string(p.Method),
		PaymentDate:   Date(p.PaymentDate),
		Reference:     p.Reference,
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ToPaymentResponses converts payment records to response DTOs.
func ToPaymentResponses(payments []*entity.PaymentRecord) []PaymentResponse {
	responses := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		responses[i] = ToPaymentResponse(p)
	}
	return responses
}

// ToDocumentSummary converts a reconciliation document view to a response DTO.
func ToDocumentSummary(d *payment.DocumentOutput) DocumentSummary {
	summary := DocumentSummary{
		Type:        string(d.Kind),
		ID:          d.ID.String(),
		Number:      d.Number,
		TotalAmount: Money(d.TotalAmount),
		AmountPaid:  Money(d.AmountPaid),
		Balance:     Money(d.Balance),
		Status:      d.Status,
		Version:     d.Version,
	}
	if d.TotalInterestPaid != nil {
		interest := Money(*d.TotalInterestPaid)
		summary.TotalInterestPaid = &interest
	}
	return summary
}

// ToApplyPaymentResponse converts the apply payment output to a response DTO.
func ToApplyPaymentResponse(out *payment.ApplyPaymentOutput) ApplyPaymentResponse {
	response := ApplyPaymentResponse{
		Document:       ToDocumentSummary(out.Document),
		Payments:       ToPaymentResponses(out.Payments),
		InterestRecord: ToInterestRecordResponse(out.InterestRecord),
	}
	if out.Split != nil {
		response.Split = &LoanSplitResponse{
			Principal: Money(out.Split.Principal),
			Interest:  Money(out.Split.Interest),
		}
	}
	return response
}
