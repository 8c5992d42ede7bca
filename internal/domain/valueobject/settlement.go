package valueobject

import (
	"github.com/shopspring/decimal"

	domainerror "github.com/bizledger/backend/internal/domain/error"
)

// PaymentStatus is the settlement state of an invoice-like document.
type PaymentStatus string

const (
	PaymentStatusUnpaid        PaymentStatus = "UNPAID"
	PaymentStatusPartiallyPaid PaymentStatus = "PARTIALLY_PAID"
	PaymentStatusPaid          PaymentStatus = "PAID"
)

// Settlement holds the paid/balance/status fields shared by sales and purchases.
type Settlement struct {
	TotalAmount decimal.Decimal
	AmountPaid  decimal.Decimal
	Balance     decimal.Decimal
	Status      PaymentStatus
}

// ComputeSettlement derives balance and status from a fixed total and the cumulative amount paid.
func ComputeSettlement(totalAmount, amountPaid decimal.Decimal) Settlement {
	total := Round2(totalAmount)
	paid := Round2(amountPaid)

	status := PaymentStatusPartiallyPaid
	switch {
	case !paid.IsPositive():
		status = PaymentStatusUnpaid
	case paid.GreaterThanOrEqual(total):
		status = PaymentStatusPaid
	}

	return Settlement{
		TotalAmount: total,
		AmountPaid:  paid,
		Balance:     MaxZero(SubMoney(total, paid)),
		Status:      status,
	}
}

// IsSettled reports whether nothing is left to pay.
func (s Settlement) IsSettled() bool {
	return !s.Balance.IsPositive()
}

// ApplyStandardPayment adds a payment to a non-loan document. Overpayment is rejected,
// never clamped.
func ApplyStandardPayment(current Settlement, amount decimal.Decimal) (Settlement, error) {
	amount = Round2(amount)
	if !amount.IsPositive() {
		return current, domainerror.ErrInvalidAmount
	}
	if current.IsSettled() {
		return current, domainerror.ErrAlreadySettled
	}
	if amount.GreaterThan(current.Balance) {
		return current, domainerror.ErrAmountExceedsBalance
	}
	return ComputeSettlement(current.TotalAmount, AddMoney(current.AmountPaid, amount)), nil
}

// SettleFromPayments recomputes a settlement from the full set of payment amounts.
func SettleFromPayments(totalAmount decimal.Decimal, amounts []decimal.Decimal) (Settlement, error) {
	paid := SumMoney(amounts...)
	if paid.GreaterThan(Round2(totalAmount)) {
		return Settlement{}, domainerror.ErrAmountExceedsBalance
	}
	return ComputeSettlement(totalAmount, paid), nil
}

// RemainingCapacity is the largest amount a single payment may carry when the other
// payments against the same document are already recorded.
func RemainingCapacity(totalAmount decimal.Decimal, otherAmounts []decimal.Decimal) decimal.Decimal {
	return MaxZero(SubMoney(totalAmount, SumMoney(otherAmounts...)))
}
