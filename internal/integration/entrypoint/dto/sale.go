package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bizledger/backend/internal/domain/entity"
)

// CreateSaleRequest represents the request body for sale creation.
type CreateSaleRequest struct {
	CustomerName string            `json:"customer_name" binding:"required"`
	SaleDate     string            `json:"sale_date" binding:"required"`
	Items        []LineItemRequest `json:"items" binding:"required,min=1,dive"`
	Discount     decimal.Decimal   `json:"discount"`
	Tax          decimal.Decimal   `json:"tax"`
	Notes        string            `json:"notes"`
}

// SaleResponse represents a single sale in API responses.
type SaleResponse struct {
	ID           string             `json:"id"`
	Number       string             `json:"number"`
	InvoiceID    *string            `json:"invoice_id,omitempty"`
	CustomerName string             `json:"customer_name"`
	SaleDate     string             `json:"sale_date"`
	Items        []LineItemResponse `json:"items"`
	Discount     string             `json:"discount"`
	Tax          string             `json:"tax"`
	TotalAmount  string             `json:"total_amount"`
	AmountPaid   string             `json:"amount_paid"`
	Balance      string             `json:"balance"`
	Status       string             `json:"status"`
	Notes        string             `json:"notes,omitempty"`
	Version      int64              `json:"version"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// SaleListResponse represents the response for listing sales.
type SaleListResponse struct {
	Sales []SaleResponse `json:"sales"`
}

// ToSaleResponse converts a domain Sale entity to a SaleResponse DTO.
func ToSaleResponse(s *entity.Sale) SaleResponse {
	response := SaleResponse{
		ID:           s.ID.String(),
		Number:       s.Number,
		CustomerName: s.CustomerName,
		SaleDate:     Date(s.SaleDate),
		Items:        ToLineItemResponses(s.Items),
		Discount:     Money(s.Discount),
		Tax:          Money(s.Tax),
		TotalAmount:  Money(s.TotalAmount),
		AmountPaid:   Money(s.AmountPaid),
		Balance:      Money(s.Balance),
		Status:       string(s.Status),
		Notes:        s.Notes,
		Version:      s.Version,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
	if s.InvoiceID != nil {
		invoiceID := s.InvoiceID.String()
		response.InvoiceID = &invoiceID
	}
	return response
}

// ToSaleListResponse converts a list of sales to a response DTO.
func ToSaleListResponse(sales []*entity.Sale) SaleListResponse {
	responses := make([]SaleResponse, len(sales))
	for i, sale := range sales {
		responses[i] = ToSaleResponse(sale)
	}
	return SaleListResponse{Sales: responses}
}
