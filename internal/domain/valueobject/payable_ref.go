package valueobject

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	domainerror "github.com/bizledger/backend/internal/domain/error"
)

// PayableKind identifies which kind of record a payment settles.
type PayableKind string

const (
	PayableSale     PayableKind = "sale"
	PayablePurchase PayableKind = "purchase"
	PayableLoan     PayableKind = "loan"
	PayableIncome   PayableKind = "income"
	PayableExpense  PayableKind = "expense"
)

// PayableRef points a payment at exactly one payable record.
// The zero value points at nothing and is rejected by NewPayableRef.
type PayableRef struct {
	kind PayableKind
	id   uuid.UUID
}

// SaleRef references a sale.
func SaleRef(id uuid.UUID) PayableRef { return PayableRef{kind: PayableSale, id: id} }

// PurchaseRef references a purchase.
func PurchaseRef(id uuid.UUID) PayableRef { return PayableRef{kind: PayablePurchase, id: id} }

// LoanRef references a loan.
func LoanRef(id uuid.UUID) PayableRef { return PayableRef{kind: PayableLoan, id: id} }

// IncomeRef references an income record.
func IncomeRef(id uuid.UUID) PayableRef { return PayableRef{kind: PayableIncome, id: id} }

// ExpenseRef references an expense record.
func ExpenseRef(id uuid.UUID) PayableRef { return PayableRef{kind: PayableExpense, id: id} }

// NewPayableRef builds a reference from a kind and id, validating both.
func NewPayableRef(kind PayableKind, id uuid.UUID) (PayableRef, error) {
	if !kind.IsValid() {
		return PayableRef{}, fmt.Errorf("%w: %q", domainerror.ErrInvalidDocumentType, kind)
	}
	if id == uuid.Nil {
		return PayableRef{}, fmt.Errorf("%w: empty id", domainerror.ErrInvalidDocumentType)
	}
	return PayableRef{kind: kind, id: id}, nil
}

// ParsePayableKind parses a kind name case-insensitively.
func ParsePayableKind(s string) (PayableKind, error) {
	kind := PayableKind(strings.ToLower(strings.TrimSpace(s)))
	if !kind.IsValid() {
		return "", fmt.Errorf("%w: %q", domainerror.ErrInvalidDocumentType, s)
	}
	return kind, nil
}

// IsValid reports whether k is a known payable kind.
func (k PayableKind) IsValid() bool {
	switch k {
	case PayableSale, PayablePurchase, PayableLoan, PayableIncome, PayableExpense:
		return true
	}
	return false
}

// IsDocument reports whether k names a financial document rather than a derived record.
func (k PayableKind) IsDocument() bool {
	return k == PayableSale || k == PayablePurchase || k == PayableLoan
}

// Kind returns the referenced kind.
func (r PayableRef) Kind() PayableKind { return r.kind }

// ID returns the referenced record id.
func (r PayableRef) ID() uuid.UUID { return r.id }

// IsZero reports whether the reference is unset.
func (r PayableRef) IsZero() bool { return r.kind == "" }

// String formats the reference as kind:id.
func (r PayableRef) String() string {
	if r.IsZero() {
		return "none"
	}
	return string(r.kind) + ":" + r.id.String()
}
