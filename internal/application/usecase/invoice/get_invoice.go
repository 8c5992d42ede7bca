package invoice

import (
	"context"

	"github.com/google/uuid"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/application/usecase/document"
	"github.com/bizledger/backend/internal/domain/entity"
	domainerror "github.com/bizledger/backend/internal/domain/error"
)

// GetInvoiceInput represents the input for fetching an invoice.
type GetInvoiceInput struct {
	UserID    uuid.UUID
	InvoiceID uuid.UUID
}

// GetInvoiceUseCase handles fetching a single invoice.
type GetInvoiceUseCase struct {
	invoiceRepo adapter.InvoiceRepository
}

// NewGetInvoiceUseCase creates a new GetInvoiceUseCase instance.
func NewGetInvoiceUseCase(invoiceRepo adapter.InvoiceRepository) *GetInvoiceUseCase {
	return &GetInvoiceUseCase{
		invoiceRepo: invoiceRepo,
	}
}

// Execute returns the invoice if it belongs to the user.
func (uc *GetInvoiceUseCase) Execute(ctx context.Context, input GetInvoiceInput) (*entity.Invoice, error) {
	invoice, err := uc.invoiceRepo.FindByID(ctx, input.InvoiceID)
	if err != nil {
		return nil, document.LookupFailure(err)
	}
	if invoice.UserID != input.UserID {
		return nil, document.NotFound()
	}
	return invoice, nil
}

// ListInvoicesUseCase handles listing a user's invoices.
type ListInvoicesUseCase struct {
	invoiceRepo adapter.InvoiceRepository
}

// NewListInvoicesUseCase creates a new ListInvoicesUseCase instance.
func NewListInvoicesUseCase(invoiceRepo adapter.InvoiceRepository) *ListInvoicesUseCase {
	return &ListInvoicesUseCase{
		invoiceRepo: invoiceRepo,
	}
}

// Execute returns every invoice of the user.
func (uc *ListInvoicesUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]*entity.Invoice, error) {
	invoices, err := uc.invoiceRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, domainerror.NewTransactionFailure(err)
	}
	return invoices, nil
}
