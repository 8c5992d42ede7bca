// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// LedgerRepositories groups the repositories that take part in a ledger operation.
// Inside WithinTransaction every repository is bound to the same transaction.
type LedgerRepositories struct {
	Invoices  InvoiceRepository
	Sales     SaleRepository
	Purchases PurchaseRepository
	Loans     LoanRepository
	Payments  PaymentRepository
	Incomes   IncomeRepository
	Expenses  ExpenseRepository
}

// LedgerStore is the transactional persistence layer behind the payment reconciler.
type LedgerStore interface {
	// Repositories returns repositories that run outside any transaction.
	Repositories() LedgerRepositories

	// WithinTransaction runs fn in a single transaction bounded by the configured timeout.
	// All writes made through repos commit together, or none do when fn returns an error.
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos LedgerRepositories) error) error
}
