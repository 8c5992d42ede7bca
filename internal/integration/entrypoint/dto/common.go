// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bizledger/backend/internal/application/usecase/document"
	"github.com/bizledger/backend/internal/domain/entity"
	"github.com/bizledger/backend/internal/domain/valueobject"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// Money formats an amount with exactly two decimals.
func Money(amount decimal.Decimal) string {
	return amount.StringFixed(valueobject.MoneyPlaces)
}

// Date formats a calendar date.
func Date(t time.Time) string {
	return t.Format(DateLayout)
}

// OptionalDate formats an optional calendar date.
func OptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := Date(*t)
	return &s
}

// ParseDate parses a YYYY-MM-DD date. An empty value yields the zero time.
func ParseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be a date in YYYY-MM-DD format", field)
	}
	return t, nil
}

// ParseOptionalDate parses an optional YYYY-MM-DD date.
func ParseOptionalDate(field string, value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := ParseDate(field, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// LineItemRequest represents a document row in create requests.
type LineItemRequest struct {
	Description string          `json:"description" binding:"required,max=500"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// LineItemResponse represents a document row in API responses.
type LineItemResponse struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Total       string `json:"total"`
}

// ToLineItemInputs converts request rows to use case input.
func ToLineItemInputs(items []LineItemRequest) []document.LineItemInput {
	inputs := make([]document.LineItemInput, len(items))
	for i, item := range items {
		inputs[i] = document.LineItemInput{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}
	return inputs
}

// ToLineItemResponses converts domain rows to response DTOs.
func ToLineItemResponses(items []entity.LineItem) []LineItemResponse {
	responses := make([]LineItemResponse, len(items))
	for i, item := range items {
		responses[i] = LineItemResponse{
			ID:          item.ID.String(),
			Description: item.Description,
			Quantity:    item.Quantity.String(),
			UnitPrice:   Money(item.UnitPrice),
			Total:       Money(item.Total),
		}
	}
	return responses
}
