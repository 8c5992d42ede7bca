package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bizledger/backend/internal/domain/valueobject"
)

// Sale represents a completed sale (receipt) that customers pay against.
type Sale struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Number       string
	InvoiceID    *uuid.UUID // Set when the sale came from an invoice conversion
	CustomerName string
	SaleDate     time.Time
	Items        []LineItem
	Discount     decimal.Decimal
	Tax          decimal.Decimal
	valueobject.Settlement
	Notes     string
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSale creates a new unpaid Sale entity.
func NewSale(
	userID uuid.UUID,
	number string,
	customerName string,
	saleDate time.Time,
	items []LineItem,
	discount decimal.Decimal,
	tax decimal.Decimal,
	notes string,
) *Sale {
	now := time.Now().UTC()

	return &Sale{
		ID:           uuid.New(),
		UserID:       userID,
		Number:       number,
		CustomerName: customerName,
		SaleDate:     saleDate,
		Items:        items,
		Discount:     valueobject.Round2(discount),
		Tax:          valueobject.Round2(tax),
		Settlement:   valueobject.ComputeSettlement(DocumentTotal(items, discount, tax), decimal.Zero),
		Notes:        notes,
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// ApplyPayment adds a payment to the sale, rejecting overpayment.
func (s *Sale) ApplyPayment(amount decimal.Decimal) error {
	settlement, err := valueobject.ApplyStandardPayment(s.Settlement, amount)
	if err != nil {
		return err
	}
	s.Settlement = settlement
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// Resettle recomputes the sale from the full set of payment amounts.
func (s *Sale) Resettle(amounts []decimal.Decimal) error {
	settlement, err := valueobject.SettleFromPayments(s.TotalAmount, amounts)
	if err != nil {
		return err
	}
	s.Settlement = settlement
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// Ref returns the payable reference of the sale.
func (s *Sale) Ref() valueobject.PayableRef {
	return valueobject.SaleRef(s.ID)
}
