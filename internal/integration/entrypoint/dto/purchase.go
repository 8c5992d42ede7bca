package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bizledger/backend/internal/domain/entity"
)

// CreatePurchaseRequest represents the request body for purchase creation.
type CreatePurchaseRequest struct {
	SupplierName string            `json:"supplier_name" binding:"required"`
	PurchaseDate string            `json:"purchase_date" binding:"required"`
	Items        []LineItemRequest `json:"items" binding:"required,min=1,dive"`
	Discount     decimal.Decimal   `json:"discount"`
	Tax          decimal.Decimal   `json:"tax"`
	Notes        string            `json:"notes"`
}

// PurchaseResponse represents a single purchase in API responses.
type PurchaseResponse struct {
	ID           string             `json:"id"`
	Number       string             `json:"number"`
	SupplierName string             `json:"supplier_name"`
	PurchaseDate string             `json:"purchase_date"`
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

// PurchaseListResponse represents the response for listing purchases.
type PurchaseListResponse struct {
	Purchases []PurchaseResponse `json:"purchases"`
}

// ToPurchaseResponse converts a domain Purchase entity to a PurchaseResponse DTO.
func ToPurchaseResponse(p *entity.Purchase) PurchaseResponse {
	return PurchaseResponse{
		ID:           p.ID.String(),
		Number:       p.Number,
		SupplierName: p.SupplierName,
		PurchaseDate: Date(p.PurchaseDate),
		Items:        ToLineItemResponses(p.Items),
		Discount:     Money(p.Discount),
		Tax:          Money(p.Tax),
		TotalAmount:  Money(p.TotalAmount),
		AmountPaid:   Money(p.AmountPaid),
		Balance:      Money(p.Balance),
		Status:       string(p.Status),
		Notes:        p.Notes,
		Version:      p.Version,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ToPurchaseListResponse converts a list of purchases to a response DTO.
func ToPurchaseListResponse(purchases []*entity.Purchase) PurchaseListResponse {
	responses := make([]PurchaseResponse, len(purchases))
	for i, purchase := range purchases {
		responses[i] = ToPurchaseResponse(purchase)
	}
	return PurchaseListResponse{Purchases: responses}
}
