package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bizledger/backend/internal/domain/valueobject"
)

// Purchase represents goods or services bought from a supplier.
type Purchase struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Number       string
	SupplierName string
	PurchaseDate time.Time
	Items        []LineItem
	Discount     decimal.Decimal
	Tax          decimal.Decimal
	valueobject.Settlement
	Notes     string
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewPurchase creates a new unpaid Purchase entity.
func NewPurchase(
	userID uuid.UUID,
	number string,
	supplierName string,
	purchaseDate time.Time,
	items []LineItem,
	discount decimal.Decimal,
	tax decimal.Decimal,
	notes string,
) *Purchase {
	now := time.Now().UTC()

	return &Purchase{
		ID:           uuid.New(),
		UserID:       userID,
		Number:       number,
		SupplierName: supplierName,
		PurchaseDate: purchaseDate,
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

// ApplyPayment adds a payment to the purchase, rejecting overpayment.
func (p *Purchase) ApplyPayment(amount decimal.Decimal) error {
	settlement, err := valueobject.ApplyStandardPayment(p.Settlement, amount)
	if err != nil {
		return err
	}
	p.Settlement = settlement
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// Resettle recomputes the purchase from the full set of payment amounts.
func (p *Purchase) Resettle(amounts []decimal.Decimal) error {
	settlement, err := valueobject.SettleFromPayments(p.TotalAmount, amounts)
	if err != nil {
		return err
	}
	p.Settlement = settlement
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// Ref returns the payable reference of the purchase.
func (p *Purchase) Ref() valueobject.PayableRef {
	return valueobject.PurchaseRef(p.ID)
}
