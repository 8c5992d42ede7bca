// Package error defines domain-specific errors for the ledger application.
package error

import "errors"

// Ledger domain errors.
var (
	// ErrDocumentNotFound is returned when an invoice, sale, purchase or loan is not found.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrPaymentNotFound is returned when a payment record is not found.
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrInterestRecordNotFound is returned when a loan has no interest record yet.
	ErrInterestRecordNotFound = errors.New("interest record not found")

	// ErrVersionConflict is returned when a document was modified since it was read.
	ErrVersionConflict = errors.New("document version conflict")

	// ErrDuplicateNumber is returned when a document number is already taken.
	ErrDuplicateNumber = errors.New("document number already exists")

	// ErrInvalidAmount is returned when a money amount is zero, negative or malformed.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidPaymentMethod is returned when the payment method is not supported.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrInvalidDocumentType is returned when a payable reference names an unknown kind.
	ErrInvalidDocumentType = errors.New("invalid document type")

	// ErrAlreadySettled is returned when a payment targets a document with no outstanding balance.
	ErrAlreadySettled = errors.New("document already settled")

	// ErrAmountExceedsBalance is returned when a payment is larger than the outstanding balance.
	ErrAmountExceedsBalance = errors.New("amount exceeds outstanding balance")

	// ErrTerminalState is returned when a loan no longer accepts payments.
	ErrTerminalState = errors.New("document is in a terminal state")

	// ErrInvalidStatusTransition is returned when a status change is not allowed.
	ErrInvalidStatusTransition = errors.New("invalid status transition")

	// ErrNumberGenerationExhausted is returned when every generated document number collided.
	ErrNumberGenerationExhausted = errors.New("failed to generate unique number, try again")
)

// ErrorKind classifies ledger errors for callers.
type ErrorKind string

const (
	KindValidationFailed          ErrorKind = "VALIDATION_FAILED"
	KindNotFound                  ErrorKind = "NOT_FOUND"
	KindStateConflict             ErrorKind = "STATE_CONFLICT"
	KindTransactionFailure        ErrorKind = "TRANSACTION_FAILURE"
	KindNumberGenerationExhausted ErrorKind = "NUMBER_GENERATION_EXHAUSTED"
)

// LedgerErrorCode defines error codes for ledger errors.
// Format: LDG-XXYYYY where XX is the kind and YYYY is the specific error.
type LedgerErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidAmount        LedgerErrorCode = "LDG-010001"
	ErrCodeInvalidPaymentMethod LedgerErrorCode = "LDG-010002"
	ErrCodeInvalidPaymentDate   LedgerErrorCode = "LDG-010003"
	ErrCodeInvalidDocumentType  LedgerErrorCode = "LDG-010004"
	ErrCodeMissingFields        LedgerErrorCode = "LDG-010005"
	ErrCodeInvalidLineItems     LedgerErrorCode = "LDG-010006"
	ErrCodeInvalidLoanTerms     LedgerErrorCode = "LDG-010007"
	ErrCodeTextTooLong          LedgerErrorCode = "LDG-010008"

	// Not found errors (02XXXX)
	ErrCodeDocumentNotFound LedgerErrorCode = "LDG-020001"
	ErrCodePaymentNotFound  LedgerErrorCode = "LDG-020002"

	// State conflicts (03XXXX)
	ErrCodeAlreadySettled          LedgerErrorCode = "LDG-030001"
	ErrCodeAmountExceedsBalance    LedgerErrorCode = "LDG-030002"
	ErrCodeTerminalState           LedgerErrorCode = "LDG-030003"
	ErrCodeConcurrentModification  LedgerErrorCode = "LDG-030004"
	ErrCodeInvalidStatusTransition LedgerErrorCode = "LDG-030005"
	ErrCodeInvoiceFullyPaid        LedgerErrorCode = "LDG-030006"

	// Throttling errors (04XXXX)
	ErrCodeRateLimited LedgerErrorCode = "LDG-040001"

	// Server errors (05XXXX)
	ErrCodeTransactionFailed         LedgerErrorCode = "LDG-050001"
	ErrCodeNumberGenerationExhausted LedgerErrorCode = "LDG-050002"
)

// LedgerError represents a ledger error with kind, code and message.
type LedgerError struct {
	Kind    ErrorKind
	Code    LedgerErrorCode
	Message string
	Field   string // Offending input field for validation errors
	Err     error
}

// Error implements the error interface.
func (e *LedgerError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the whole operation can safely be retried.
func (e *LedgerError) Retryable() bool {
	return e.Kind == KindTransactionFailure || e.Kind == KindNumberGenerationExhausted
}

// NewLedgerError creates a new LedgerError with the given kind, code and message.
func NewLedgerError(kind ErrorKind, code LedgerErrorCode, message string, err error) *LedgerError {
	return &LedgerError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewValidationError creates a ValidationFailed error for the given input field.
func NewValidationError(code LedgerErrorCode, field, message string, err error) *LedgerError {
	return &LedgerError{
		Kind:    KindValidationFailed,
		Code:    code,
		Message: message,
		Field:   field,
		Err:     err,
	}
}

// NewTransactionFailure wraps a store failure that aborted the transaction.
func NewTransactionFailure(err error) *LedgerError {
	return NewLedgerError(KindTransactionFailure, ErrCodeTransactionFailed, "ledger transaction failed", err)
}

// KindOf returns the kind of err if it is a LedgerError, or an empty kind otherwise.
func KindOf(err error) ErrorKind {
	var ledgerErr *LedgerError
	if errors.As(err, &ledgerErr) {
		return ledgerErr.Kind
	}
	return ""
}
