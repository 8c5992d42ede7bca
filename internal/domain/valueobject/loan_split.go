package valueobject

import "github.com/shopspring/decimal"

// LoanSplit is a loan payment divided into principal and interest.
type LoanSplit struct {
	Principal decimal.Decimal
	Interest  decimal.Decimal
}

// HasPrincipal reports whether any part of the payment reduces principal.
func (s LoanSplit) HasPrincipal() bool {
	return s.Principal.IsPositive()
}

// HasInterest reports whether any part of the payment is interest.
func (s LoanSplit) HasInterest() bool {
	return s.Interest.IsPositive()
}

// SplitLoanPayment divides a loan payment against the outstanding principal.
// Anything above the outstanding principal is interest; loans never reject overpayment.
func SplitLoanPayment(currentBalance, amount decimal.Decimal) LoanSplit {
	balance := Round2(currentBalance)
	amount = Round2(amount)

	if !balance.IsPositive() {
		return LoanSplit{Principal: decimal.Zero, Interest: amount}
	}
	if amount.LessThanOrEqual(balance) {
		return LoanSplit{Principal: amount, Interest: decimal.Zero}
	}
	return LoanSplit{Principal: balance, Interest: SubMoney(amount, balance)}
}
