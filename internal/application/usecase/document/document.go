// Package document contains helpers shared by the invoice, sale, purchase and loan use cases.
package document

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/application/usecase/numbering"
	"github.com/bizledger/backend/internal/domain/entity"
	domainerror "github.com/bizledger/backend/internal/domain/error"
	"github.com/bizledger/backend/internal/domain/valueobject"
)

const (
	// MaxLineItems is the maximum number of rows on a single document.
	MaxLineItems = 200
	// MaxNameLength is the maximum length of customer, supplier and counterparty names.
	MaxNameLength = 200
	// MaxNotesLength is the maximum length of document notes.
	MaxNotesLength = 1000
)

// LineItemInput is a user-supplied document row.
type LineItemInput struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// BuildLineItems validates rows and computes their totals.
func BuildLineItems(inputs []LineItemInput) ([]entity.LineItem, error) {
	if len(inputs) == 0 {
		return nil, invalidItems("at least one line item is required")
	}
	if len(inputs) > MaxLineItems {
		return nil, invalidItems(fmt.Sprintf("a document can have at most %d line items", MaxLineItems))
	}

	items := make([]entity.LineItem, 0, len(inputs))
	for i, in := range inputs {
		if in.Description == "" {
			return nil, invalidItems(fmt.Sprintf("line item %d: description is required", i+1))
		}
		if !in.Quantity.IsPositive() {
			return nil, invalidItems(fmt.Sprintf("line item %d: quantity must be greater than zero", i+1))
		}
		if in.UnitPrice.IsNegative() || !valueobject.HasAtMostTwoPlaces(in.UnitPrice) {
			return nil, invalidItems(fmt.Sprintf("line item %d: unit price must be a non-negative amount with at most 2 decimal places", i+1))
		}
		items = append(items, entity.NewLineItem(in.Description, in.Quantity, in.UnitPrice))
	}
	return items, nil
}

// ValidateAdjustments checks the discount and tax of a document against its rows.
func ValidateAdjustments(items []entity.LineItem, discount, tax decimal.Decimal) error {
	if discount.IsNegative() || !valueobject.HasAtMostTwoPlaces(discount) {
		return domainerror.NewValidationError(domainerror.ErrCodeInvalidAmount, "discount",
			"discount must be a non-negative amount with at most 2 decimal places", domainerror.ErrInvalidAmount)
	}
	if tax.IsNegative() || !valueobject.HasAtMostTwoPlaces(tax) {
		return domainerror.NewValidationError(domainerror.ErrCodeInvalidAmount, "tax",
			"tax must be a non-negative amount with at most 2 decimal places", domainerror.ErrInvalidAmount)
	}
	if entity.DocumentTotal(items, discount, tax).IsNegative() {
		return domainerror.NewValidationError(domainerror.ErrCodeInvalidAmount, "discount",
			"discount must not exceed the document subtotal", domainerror.ErrInvalidAmount)
	}
	return nil
}

// ValidateParty checks a required counterparty name and the optional notes.
func ValidateParty(field, name, notes string) error {
	if name == "" {
		return domainerror.NewValidationError(domainerror.ErrCodeMissingFields, field, field+" is required", nil)
	}
	if len(name) > MaxNameLength {
		return domainerror.NewValidationError(domainerror.ErrCodeTextTooLong, field,
			fmt.Sprintf("%s must not exceed %d characters", field, MaxNameLength), nil)
	}
	if len(notes) > MaxNotesLength {
		return domainerror.NewValidationError(domainerror.ErrCodeTextTooLong, "notes",
			fmt.Sprintf("notes must not exceed %d characters", MaxNotesLength), nil)
	}
	return nil
}

// ValidateDate checks a required document date.
func ValidateDate(field string, date time.Time) error {
	if date.IsZero() {
		return domainerror.NewValidationError(domainerror.ErrCodeMissingFields, field, field+" is required", nil)
	}
	return nil
}

// CreateNumbered picks an unused document number and creates the document with it.
// Candidates found taken on lookup and candidates lost to a concurrent insert
// draw from the same numbers.MaxAttempts budget. Ledger errors and version
// conflicts from create are returned unchanged so callers can retry or report them.
func CreateNumbered(
	ctx context.Context,
	numbers adapter.NumberGenerator,
	prefix string,
	userID uuid.UUID,
	exists adapter.NumberLookup,
	create func(ctx context.Context, number string) error,
) (string, error) {
	attempts := numbers.MaxAttempts()
	if attempts <= 0 {
		attempts = numbering.DefaultMaxAttempts
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		number := numbers.Candidate(prefix, userID)

		taken, err := exists(ctx, userID, number)
		if err != nil {
			return "", domainerror.NewTransactionFailure(fmt.Errorf("failed to check document number: %w", err))
		}
		if taken {
			slog.Debug("Document number collision",
				"prefix", prefix,
				"attempt", attempt,
				"number", number,
			)
			continue
		}

		err = create(ctx, number)
		if err == nil {
			return number, nil
		}
		if !errors.Is(err, domainerror.ErrDuplicateNumber) {
			var ledgerErr *domainerror.LedgerError
			if errors.As(err, &ledgerErr) || errors.Is(err, domainerror.ErrVersionConflict) {
				return "", err
			}
			return "", domainerror.NewTransactionFailure(err)
		}

		slog.Debug("Document number taken on insert",
			"prefix", prefix,
			"attempt", attempt,
			"number", number,
		)
	}

	return "", domainerror.NewLedgerError(
		domainerror.KindNumberGenerationExhausted,
		domainerror.ErrCodeNumberGenerationExhausted,
		"failed to generate unique number, try again",
		domainerror.ErrNumberGenerationExhausted,
	)
}

// NotFound is the error returned for missing documents and documents owned by someone else.
func NotFound() error {
	return domainerror.NewLedgerError(
		domainerror.KindNotFound,
		domainerror.ErrCodeDocumentNotFound,
		"document not found",
		domainerror.ErrDocumentNotFound,
	)
}

// LookupFailure maps a repository read error to a ledger error.
func LookupFailure(err error) error {
	if errors.Is(err, domainerror.ErrDocumentNotFound) {
		return NotFound()
	}
	return domainerror.NewTransactionFailure(err)
}

// StoreFailure maps a failed write to a ledger error.
func StoreFailure(err error) error {
	var ledgerErr *domainerror.LedgerError
	if errors.As(err, &ledgerErr) {
		return err
	}
	if errors.Is(err, domainerror.ErrVersionConflict) {
		return domainerror.NewLedgerError(
			domainerror.KindStateConflict,
			domainerror.ErrCodeConcurrentModification,
			"document was modified concurrently, retry",
			err,
		)
	}
	return domainerror.NewTransactionFailure(err)
}

func invalidItems(message string) error {
	return domainerror.NewValidationError(domainerror.ErrCodeInvalidLineItems, "items", message, nil)
}
