package payment

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/domain/entity"
	domainerror "github.com/bizledger/backend/internal/domain/error"
	"github.com/bizledger/backend/internal/domain/valueobject"
)

// ListPaymentsInput represents the input for listing the payments of a document.
type ListPaymentsInput struct {
	UserID       uuid.UUID
	DocumentKind valueobject.PayableKind
	DocumentID   uuid.UUID
}

// ListPaymentsOutput represents the payments recorded against a document.
// For loans, interest legs are included next to principal payments.
type ListPaymentsOutput struct {
	Document *DocumentOutput
	Payments []*entity.PaymentRecord
}

// ListPaymentsUseCase handles listing payments of a document.
type ListPaymentsUseCase struct {
	store adapter.LedgerStore
}

// NewListPaymentsUseCase creates a new ListPaymentsUseCase instance.
func NewListPaymentsUseCase(store adapter.LedgerStore) *ListPaymentsUseCase {
	return &ListPaymentsUseCase{
		store: store,
	}
}

// Execute returns the payments of a document owned by the user, newest first.
func (uc *ListPaymentsUseCase) Execute(ctx context.Context, input ListPaymentsInput) (*ListPaymentsOutput, error) {
	repos := uc.store.Repositories()

	var document *DocumentOutput
	var userID uuid.UUID
	var loan *entity.Loan

	switch input.DocumentKind {
	case valueobject.PayableSale:
		sale, err := repos.Sales.FindByID(ctx, input.DocumentID)
		if err != nil {
			return nil, lookupFailure(err, documentNotFound)
		}
		document, userID = saleOutput(sale), sale.UserID
	case valueobject.PayablePurchase:
		purchase, err := repos.Purchases.FindByID(ctx, input.DocumentID)
		if err != nil {
			return nil, lookupFailure(err, documentNotFound)
		}
		document, userID = purchaseOutput(purchase), purchase.UserID
	case valueobject.PayableLoan:
		var err error
		loan, err = repos.Loans.FindByID(ctx, input.DocumentID)
		if err != nil {
			return nil, lookupFailure(err, documentNotFound)
		}
		document, userID = loanOutput(loan), loan.UserID
	default:
		return nil, domainerror.NewValidationError(
			domainerror.ErrCodeInvalidDocumentType,
			"document_type",
			"payments can only be listed for sales, purchases and loans",
			domainerror.ErrInvalidDocumentType,
		)
	}
	if userID != input.UserID {
		return nil, documentNotFound()
	}

	if loan != nil {
		ledger, err := loadLoanLedger(ctx, repos, loan)
		if err != nil {
			return nil, domainerror.NewTransactionFailure(err)
		}
		payments := append(ledger.principal, ledger.interestPayments...)
		sortNewestFirst(payments)
		return &ListPaymentsOutput{Document: document, Payments: payments}, nil
	}

	ref := valueobject.SaleRef(input.DocumentID)
	if document.Kind == valueobject.PayablePurchase {
		ref = valueobject.PurchaseRef(input.DocumentID)
	}
	payments, err := repos.Payments.FindByPayable(ctx, ref)
	if err != nil {
		return nil, domainerror.NewTransactionFailure(err)
	}
	return &ListPaymentsOutput{Document: document, Payments: payments}, nil
}

func sortNewestFirst(payments []*entity.PaymentRecord) {
	slices.SortStableFunc(payments, func(a, b *entity.PaymentRecord) int {
		if c := b.PaymentDate.Compare(a.PaymentDate); c != 0 {
			return c
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}
