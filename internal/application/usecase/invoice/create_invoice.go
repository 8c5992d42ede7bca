// Package invoice contains invoice-related use cases.
package invoice

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/application/usecase/document"
	"github.com/bizledger/backend/internal/application/usecase/numbering"
	"github.com/bizledger/backend/internal/domain/entity"
	domainerror "github.com/bizledger/backend/internal/domain/error"
)

// CreateInvoiceInput represents the input for invoice creation.
type CreateInvoiceInput struct {
	UserID        uuid.UUID
	CustomerName  string
	CustomerEmail string
	IssueDate     time.Time
	DueDate       *time.Time
	Items         []document.LineItemInput
	Discount      decimal.Decimal
	Tax           decimal.Decimal
	Notes         string
}

// CreateInvoiceOutput represents the output of invoice creation.
type CreateInvoiceOutput struct {
	Invoice *entity.Invoice
}

// CreateInvoiceUseCase handles invoice creation logic.
type CreateInvoiceUseCase struct {
	store   adapter.LedgerStore
	numbers adapter.NumberGenerator
}

// NewCreateInvoiceUseCase creates a new CreateInvoiceUseCase instance.
func NewCreateInvoiceUseCase(store adapter.LedgerStore, numbers adapter.NumberGenerator) *CreateInvoiceUseCase {
	return &CreateInvoiceUseCase{
		store:   store,
		numbers: numbers,
	}
}

// Execute performs the invoice creation.
func (uc *CreateInvoiceUseCase) Execute(ctx context.Context, input CreateInvoiceInput) (*CreateInvoiceOutput, error) {
	if err := document.ValidateParty("customer_name", input.CustomerName, input.Notes); err != nil {
		return nil, err
	}
	if err := document.ValidateDate("issue_date", input.IssueDate); err != nil {
		return nil, err
	}
	if input.DueDate != nil && input.DueDate.Before(input.IssueDate) {
		return nil, domainerror.NewValidationError(
			domainerror.ErrCodeMissingFields,
			"due_date",
			"due date must not be before the issue date",
			nil,
		)
	}

	items, err := document.BuildLineItems(input.Items)
	if err != nil {
		return nil, err
	}
	if err := document.ValidateAdjustments(items, input.Discount, input.Tax); err != nil {
		return nil, err
	}

	invoice := entity.NewInvoice(
		input.UserID,
		"",
		input.CustomerName,
		input.CustomerEmail,
		input.IssueDate,
		input.DueDate,
		items,
		input.Discount,
		input.Tax,
		input.Notes,
	)

	repos := uc.store.Repositories()
	_, err = document.CreateNumbered(ctx, uc.numbers, numbering.PrefixInvoice, input.UserID, repos.Invoices.ExistsByNumber,
		func(ctx context.Context, number string) error {
			invoice.Number = number
			return repos.Invoices.Create(ctx, invoice)
		},
	)
	if err != nil {
		return nil, err
	}

	slog.Info("Invoice created",
		"user_id", input.UserID,
		"invoice_id", invoice.ID,
		"number", invoice.Number,
	)

	return &CreateInvoiceOutput{Invoice: invoice}, nil
}
