package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bizledger/backend/internal/domain/entity"
)

// CreateInvoiceRequest represents the request body for invoice creation.
type CreateInvoiceRequest struct {
	CustomerName  string            `json:"customer_name" binding:"required"`
	CustomerEmail string            `json:"customer_email" binding:"omitempty,email"`
	IssueDate     string            `json:"issue_date" binding:"required"`
	DueDate       *string           `json:"due_date,omitempty"`
	Items         []LineItemRequest `json:"items" binding:"required,min=1,dive"`
	Discount      decimal.Decimal   `json:"discount"`
	Tax           decimal.Decimal   `json:"tax"`
	Notes         string            `json:"notes"`
}

// InvoiceResponse represents a single invoice in API responses.
type InvoiceResponse struct {
	ID            string             `json:"id"`
	Number        string             `json:"number"`
	CustomerName  string             `json:"customer_name"`
	CustomerEmail string             `json:"customer_email,omitempty"`
	IssueDate     string             `json:"issue_date"`
	DueDate       *string            `json:"due_date,omitempty"`
	Items         []LineItemResponse `json:"items"`
	Discount      string             `json:"discount"`
	Tax           string             `json:"tax"`
	TotalAmount   string             `json:"total_amount"`
	AmountPaid    string             `json:"amount_paid"`
	Balance       string             `json:"balance"`
	Status        string             `json:"status"`
	SaleID        *string            `json:"sale_id,omitempty"`
	Notes         string             `json:"notes,omitempty"`
	Version       int64              `json:"version"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// InvoiceListResponse represents the response for listing invoices.
type InvoiceListResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
}

// ConvertInvoiceRequest represents the request body for converting an invoice.
// Amount may be zero on the first conversion to create an unpaid sale.
type ConvertInvoiceRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	PaymentDate   string          `json:"payment_date"`
	Reference     string          `json:"reference"`
	Notes         string          `json:"notes"`
}

// ConvertInvoiceResponse represents the result of an invoice conversion.
type ConvertInvoiceResponse struct {
	Invoice InvoiceResponse  `json:"invoice"`
	Sale    SaleResponse     `json:"sale"`
	Payment *PaymentResponse `json:"payment,omitempty"`
	Created bool             `json:"created"`
}

// ToInvoiceResponse converts a domain Invoice entity to an InvoiceResponse DTO.
func ToInvoiceResponse(i *entity.Invoice) InvoiceResponse {
	response := InvoiceResponse{
		ID:            i.ID.String(),
		Number:        i.Number,
		CustomerName:  i.CustomerName,
		CustomerEmail: i.CustomerEmail,
		IssueDate:     Date(i.IssueDate),
		DueDate:       OptionalDate(i.DueDate),
		Items:         ToLineItemResponses(i.Items),
		Discount:      Money(i.Discount),
		Tax:           Money(i.Tax),
		TotalAmount:   Money(i.TotalAmount),
		AmountPaid:    Money(i.AmountPaid),
		Balance:       Money(i.Balance),
		Status:        string(i.Status),
		Notes:         i.Notes,
		Version:       i.Version,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
	if i.SaleID != nil {
		saleID := i.SaleID.String()
		response.SaleID = &saleID
	}
	return response
}

// ToInvoiceListResponse converts a list of invoices to a response DTO.
func ToInvoiceListResponse(invoices []*entity.Invoice) InvoiceListResponse {
	responses := make([]InvoiceResponse, len(invoices))
	for i, invoice := range invoices {
		responses[i] = ToInvoiceResponse(invoice)
	}
	return InvoiceListResponse{Invoices: responses}
}
