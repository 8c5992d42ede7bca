// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/bizledger/backend/internal/application/adapter"
	domainerror "github.com/bizledger/backend/internal/domain/error"
)

// ledgerStore implements the adapter.LedgerStore interface on top of gorm transactions.
type ledgerStore struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewLedgerStore creates a new ledger store. A positive timeout bounds every transaction.
func NewLedgerStore(db *gorm.DB, timeout time.Duration) adapter.LedgerStore {
	return &ledgerStore{
		db:      db,
		timeout: timeout,
	}
}

// NewLedgerRepositories binds every ledger repository to db.
func NewLedgerRepositories(db *gorm.DB) adapter.LedgerRepositories {
	return adapter.LedgerRepositories{
		Invoices:  NewInvoiceRepository(db),
		Sales:     NewSaleRepository(db),
		Purchases: NewPurchaseRepository(db),
		Loans:     NewLoanRepository(db),
		Payments:  NewPaymentRepository(db),
		Incomes:   NewIncomeRepository(db),
		Expenses:  NewExpenseRepository(db),
	}
}

// Repositories returns repositories that run outside any transaction.
func (s *ledgerStore) Repositories() adapter.LedgerRepositories {
	return NewLedgerRepositories(s.db)
}

// WithinTransaction runs fn inside a single database transaction.
func (s *ledgerStore) WithinTransaction(
	ctx context.Context,
	fn func(ctx context.Context, repos adapter.LedgerRepositories) error,
) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, NewLedgerRepositories(tx))
	})
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", context.DeadlineExceeded, err)
	}
	return err
}

// checkVersionedUpdate turns a versioned update result into a conflict error when
// no row matched the expected version.
func checkVersionedUpdate(result *gorm.DB) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrVersionConflict
	}
	return nil
}

// translateCreateError maps unique violations on document numbers to a domain error.
func translateCreateError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %w", domainerror.ErrDuplicateNumber, err)
	}
	return err
}
