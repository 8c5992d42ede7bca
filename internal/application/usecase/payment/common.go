// Package payment contains the payment reconciliation use cases.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bizledger/backend/internal/domain/entity"
	domainerror "github.com/bizledger/backend/internal/domain/error"
	"github.com/bizledger/backend/internal/domain/valueobject"
)

const (
	// DefaultConflictAttempts is how many times an operation is attempted when the
	// document it writes was modified concurrently.
	DefaultConflictAttempts = 3
	// MaxReferenceLength is the maximum allowed length for payment references.
	MaxReferenceLength = 100
	// MaxNotesLength is the maximum allowed length for payment notes.
	MaxNotesLength = 1000
)

// DocumentOutput is the settlement view of a document after a reconciliation.
type DocumentOutput struct {
	Kind              valueobject.PayableKind
	ID                uuid.UUID
	Number            string
	TotalAmount       decimal.Decimal
	AmountPaid        decimal.Decimal
	Balance           decimal.Decimal
	Status            string
	TotalInterestPaid *decimal.Decimal // Loans only
	Version           int64
}

func saleOutput(sale *entity.Sale) *DocumentOutput {
	return &DocumentOutput{
		Kind:        valueobject.PayableSale,
		ID:          sale.ID,
		Number:      sale.Number,
		TotalAmount: sale.TotalAmount,
		AmountPaid:  sale.AmountPaid,
		Balance:     sale.Balance,
		Status:      string(sale.Status),
		Version:     sale.Version,
	}
}

func purchaseOutput(purchase *entity.Purchase) *DocumentOutput {
	return &DocumentOutput{
		Kind:        valueobject.PayablePurchase,
		ID:          purchase.ID,
		Number:      purchase.Number,
		TotalAmount: purchase.TotalAmount,
		AmountPaid:  purchase.AmountPaid,
		Balance:     purchase.Balance,
		Status:      string(purchase.Status),
		Version:     purchase.Version,
	}
}

func loanOutput(loan *entity.Loan) *DocumentOutput {
	interest := loan.TotalInterestPaid
	return &DocumentOutput{
		Kind:              valueobject.PayableLoan,
		ID:                loan.ID,
		Number:            loan.Number,
		TotalAmount:       loan.TotalAmount,
		AmountPaid:        loan.TotalPaid,
		Balance:           loan.CurrentBalance,
		Status:            string(loan.Status),
		TotalInterestPaid: &interest,
		Version:           loan.Version,
	}
}

// PaymentFields are the user-supplied fields of a payment.
type PaymentFields struct {
	Amount      decimal.Decimal
	Method      entity.PaymentMethod
	PaymentDate time.Time
	Reference   string
	Notes       string
}

func (f PaymentFields) validate() error {
	if err := validateAmount(f.Amount); err != nil {
		return err
	}
	if err := validateMethod(f.Method); err != nil {
		return err
	}
	if f.PaymentDate.IsZero() {
		return domainerror.NewValidationError(
			domainerror.ErrCodeInvalidPaymentDate,
			"payment_date",
			"payment date is required",
			nil,
		)
	}
	return validateText(f.Reference, f.Notes)
}

func (f PaymentFields) record(userID, groupID uuid.UUID, payable valueobject.PayableRef, amount decimal.Decimal) *entity.PaymentRecord {
	return entity.NewPaymentRecord(userID, groupID, payable, amount, f.Method, f.PaymentDate, f.Reference, f.Notes)
}

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domainerror.NewValidationError(
			domainerror.ErrCodeInvalidAmount,
			"amount",
			"amount must be greater than zero",
			domainerror.ErrInvalidAmount,
		)
	}
	if !valueobject.HasAtMostTwoPlaces(amount) {
		return domainerror.NewValidationError(
			domainerror.ErrCodeInvalidAmount,
			"amount",
			"amount must have at most 2 decimal places",
			domainerror.ErrInvalidAmount,
		)
	}
	return nil
}

func validateMethod(method entity.PaymentMethod) error {
	if !method.IsValid() {
		return domainerror.NewValidationError(
			domainerror.ErrCodeInvalidPaymentMethod,
			"payment_method",
			"payment method must be one of CASH, BANK_TRANSFER, MOBILE_MONEY, CARD, CHEQUE, OTHER",
			domainerror.ErrInvalidPaymentMethod,
		)
	}
	return nil
}

func validateText(reference, notes string) error {
	if len(reference) > MaxReferenceLength {
		return domainerror.NewValidationError(
			domainerror.ErrCodeTextTooLong,
			"reference",
			fmt.Sprintf("reference must not exceed %d characters", MaxReferenceLength),
			nil,
		)
	}
	if len(notes) > MaxNotesLength {
		return domainerror.NewValidationError(
			domainerror.ErrCodeTextTooLong,
			"notes",
			fmt.Sprintf("notes must not exceed %d characters", MaxNotesLength),
			nil,
		)
	}
	return nil
}

func documentNotFound() error {
	return domainerror.NewLedgerError(
		domainerror.KindNotFound,
		domainerror.ErrCodeDocumentNotFound,
		"document not found",
		domainerror.ErrDocumentNotFound,
	)
}

func paymentNotFound() error {
	return domainerror.NewLedgerError(
		domainerror.KindNotFound,
		domainerror.ErrCodePaymentNotFound,
		"payment not found",
		domainerror.ErrPaymentNotFound,
	)
}

func terminalLoan(loan *entity.Loan) error {
	return domainerror.NewLedgerError(
		domainerror.KindStateConflict,
		domainerror.ErrCodeTerminalState,
		loan.TerminalStateMessage(),
		domainerror.ErrTerminalState,
	)
}

// settlementFailure maps a rejected settlement change to a ledger error.
func settlementFailure(err error) error {
	switch {
	case errors.Is(err, domainerror.ErrAlreadySettled):
		return domainerror.NewLedgerError(
			domainerror.KindStateConflict,
			domainerror.ErrCodeAlreadySettled,
			"document is already fully paid",
			err,
		)
	case errors.Is(err, domainerror.ErrAmountExceedsBalance):
		return domainerror.NewLedgerError(
			domainerror.KindStateConflict,
			domainerror.ErrCodeAmountExceedsBalance,
			"amount exceeds the outstanding balance",
			err,
		)
	case errors.Is(err, domainerror.ErrInvalidAmount):
		return domainerror.NewValidationError(
			domainerror.ErrCodeInvalidAmount,
			"amount",
			"amount must be greater than zero",
			err,
		)
	}
	return err
}

// lookupFailure maps a repository read error to a ledger error.
func lookupFailure(err error, notFound func() error) error {
	if errors.Is(err, domainerror.ErrDocumentNotFound) ||
		errors.Is(err, domainerror.ErrPaymentNotFound) ||
		errors.Is(err, domainerror.ErrInterestRecordNotFound) {
		return notFound()
	}
	return domainerror.NewTransactionFailure(err)
}

// storeFailure maps a failed transaction to a ledger error. Version conflicts are
// passed through so the caller can retry. A payment removed by a concurrent
// request between the read and the write is reported as not found.
func storeFailure(err error) error {
	var ledgerErr *domainerror.LedgerError
	if errors.As(err, &ledgerErr) || errors.Is(err, domainerror.ErrVersionConflict) {
		return err
	}
	if errors.Is(err, domainerror.ErrPaymentNotFound) {
		return paymentNotFound()
	}
	return domainerror.NewTransactionFailure(err)
}

// retryOnConflict runs fn until it succeeds, fails with something other than a
// version conflict, or attempts run out.
func retryOnConflict[T any](ctx context.Context, attempts int, operation string, fn func() (T, error)) (T, error) {
	var zero T
	if attempts <= 0 {
		attempts = DefaultConflictAttempts
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		result, err := fn()
		if err == nil || !errors.Is(err, domainerror.ErrVersionConflict) {
			return result, err
		}

		slog.Debug("Retrying after concurrent modification",
			"operation", operation,
			"attempt", attempt,
		)
		if ctx.Err() != nil {
			return zero, domainerror.NewTransactionFailure(ctx.Err())
		}
	}

	return zero, domainerror.NewLedgerError(
		domainerror.KindStateConflict,
		domainerror.ErrCodeConcurrentModification,
		"document was modified concurrently, retry",
		domainerror.ErrVersionConflict,
	)
}

// amountsAfter returns payment amounts with replaced substituted and removedID dropped.
func amountsAfter(payments []*entity.PaymentRecord, replaced *entity.PaymentRecord, removedID uuid.UUID) []decimal.Decimal {
	amounts := make([]decimal.Decimal, 0, len(payments)+1)
	found := false
	for _, p := range payments {
		switch {
		case p.ID == removedID:
			continue
		case replaced != nil && p.ID == replaced.ID:
			amounts = append(amounts, replaced.Amount)
			found = true
		default:
			amounts = append(amounts, p.Amount)
		}
	}
	if replaced != nil && !found {
		amounts = append(amounts, replaced.Amount)
	}
	return amounts
}
