package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/bizledger/backend/internal/domain/entity"
)

// NumberLookup reports whether a document number is already used by a user.
type NumberLookup func(ctx context.Context, userID uuid.UUID, number string) (bool, error)

// InvoiceRepository defines the interface for invoice persistence operations.
type InvoiceRepository interface {
	// Create creates a new invoice with its line items.
	Create(ctx context.Context, invoice *entity.Invoice) error

	// FindByID retrieves an invoice with its line items.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)

	// FindBySaleID retrieves the invoice a sale was converted from.
	FindBySaleID(ctx context.Context, saleID uuid.UUID) (*entity.Invoice, error)

	// FindByUser retrieves all invoices of a user, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Invoice, error)

	// ExistsByNumber checks whether the user already has an invoice with this number.
	ExistsByNumber(ctx context.Context, userID uuid.UUID, number string) (bool, error)

	// UpdateSettlement stores sale link, paid amount, balance and status if the stored
	// version still matches invoice.Version, then increments the version.
	// Returns domainerror.ErrVersionConflict when the version moved.
	UpdateSettlement(ctx context.Context, invoice *entity.Invoice) error

	// Delete removes an invoice and its line items.
	Delete(ctx context.Context, id uuid.UUID) error
}

// SaleRepository defines the interface for sale persistence operations.
type SaleRepository interface {
	// Create creates a new sale with its line items.
	Create(ctx context.Context, sale *entity.Sale) error

	// FindByID retrieves a sale with its line items.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)

	// FindByUser retrieves all sales of a user, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Sale, error)

	// ExistsByNumber checks whether the user already has a sale with this number.
	ExistsByNumber(ctx context.Context, userID uuid.UUID, number string) (bool, error)

	// UpdateSettlement stores paid amount, balance and status using the version check.
	UpdateSettlement(ctx context.Context, sale *entity.Sale) error

	// Delete removes a sale and its line items.
	Delete(ctx context.Context, id uuid.UUID) error
}

// PurchaseRepository defines the interface for purchase persistence operations.
type PurchaseRepository interface {
	// Create creates a new purchase with its line items.
	Create(ctx context.Context, purchase *entity.Purchase) error

	// FindByID retrieves a purchase with its line items.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Purchase, error)

	// FindByUser retrieves all purchases of a user, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Purchase, error)

	// ExistsByNumber checks whether the user already has a purchase with this number.
	ExistsByNumber(ctx context.Context, userID uuid.UUID, number string) (bool, error)

	// UpdateSettlement stores paid amount, balance and status using the version check.
	UpdateSettlement(ctx context.Context, purchase *entity.Purchase) error

	// Delete removes a purchase and its line items.
	Delete(ctx context.Context, id uuid.UUID) error
}

// LoanRepository defines the interface for loan persistence operations.
type LoanRepository interface {
	// Create creates a new loan.
	Create(ctx context.Context, loan *entity.Loan) error

	// FindByID retrieves a loan by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Loan, error)

	// FindByUser retrieves all loans of a user, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Loan, error)

	// ExistsByNumber checks whether the user already has a loan with this number.
	ExistsByNumber(ctx context.Context, userID uuid.UUID, number string) (bool, error)

	// UpdateBalance stores paid totals, balance and status using the version check.
	UpdateBalance(ctx context.Context, loan *entity.Loan) error

	// Delete removes a loan.
	Delete(ctx context.Context, id uuid.UUID) error
}
