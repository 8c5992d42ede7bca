// Package valueobject contains domain value objects for the ledger.
package valueobject

import "github.com/shopspring/decimal"

// MoneyPlaces is the number of fractional digits every stored amount carries.
const MoneyPlaces = 2

// Round2 rounds an amount half away from zero to two decimal places.
func Round2(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MoneyPlaces)
}

// AddMoney returns round2(a + b).
func AddMoney(a, b decimal.Decimal) decimal.Decimal {
	return Round2(Round2(a).Add(Round2(b)))
}

// SubMoney returns round2(a - b).
func SubMoney(a, b decimal.Decimal) decimal.Decimal {
	return Round2(Round2(a).Sub(Round2(b)))
}

// MulMoney returns round2(a * b).
func MulMoney(a, b decimal.Decimal) decimal.Decimal {
	return Round2(a.Mul(b))
}

// SumMoney adds amounts one at a time, rounding after each addition.
func SumMoney(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, amount := range amounts {
		total = AddMoney(total, amount)
	}
	return total
}

// MaxZero clamps negative amounts to zero.
func MaxZero(amount decimal.Decimal) decimal.Decimal {
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}

// HasAtMostTwoPlaces reports whether amount has no more than two fractional digits.
func HasAtMostTwoPlaces(amount decimal.Decimal) bool {
	return amount.Equal(Round2(amount))
}
