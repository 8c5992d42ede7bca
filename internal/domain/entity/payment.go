package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bizledger/backend/internal/domain/valueobject"
)

// PaymentMethod is how a payment was made.
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodMobileMoney  PaymentMethod = "MOBILE_MONEY"
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodCheque       PaymentMethod = "CHEQUE"
	PaymentMethodOther        PaymentMethod = "OTHER"
)

// IsValid reports whether m is a supported payment method.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodMobileMoney,
		PaymentMethodCard, PaymentMethodCheque, PaymentMethodOther:
		return true
	}
	return false
}

// PaymentRecord is a single recorded payment against one payable record.
type PaymentRecord struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	GroupID     uuid.UUID // Shared by the records created from one user payment
	Payable     valueobject.PayableRef
	Amount      decimal.Decimal
	Method      PaymentMethod
	PaymentDate time.Time
	Reference   string
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewPaymentRecord creates a new PaymentRecord entity.
func NewPaymentRecord(
	userID uuid.UUID,
	groupID uuid.UUID,
	payable valueobject.PayableRef,
	amount decimal.Decimal,
	method PaymentMethod,
	paymentDate time.Time,
	reference string,
	notes string,
) *PaymentRecord {
	now := time.Now().UTC()

	return &PaymentRecord{
		ID:          uuid.New(),
		UserID:      userID,
		GroupID:     groupID,
		Payable:     payable,
		Amount:      valueobject.Round2(amount),
		Method:      method,
		PaymentDate: paymentDate,
		Reference:   reference,
		Notes:       notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// PaymentAmounts extracts the amounts of payments, skipping the one with excludeID.
func PaymentAmounts(payments []*PaymentRecord, excludeID uuid.UUID) []decimal.Decimal {
	amounts := make([]decimal.Decimal, 0, len(payments))
	for _, p := range payments {
		if p.ID == excludeID {
			continue
		}
		amounts = append(amounts, p.Amount)
	}
	return amounts
}
