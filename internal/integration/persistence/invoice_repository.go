package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/domain/entity"
	domainerror "github.com/bizledger/backend/internal/domain/error"
	"github.com/bizledger/backend/internal/integration/persistence/model"
)

// invoiceRepository implements the adapter.InvoiceRepository interface.
type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository instance.
func NewInvoiceRepository(db *gorm.DB) adapter.InvoiceRepository {
	return &invoiceRepository{
		db: db,
	}
}

// Create creates a new invoice with its line items.
func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	invoiceModel := model.InvoiceFromEntity(invoice)
	if err := r.db.WithContext(ctx).Create(invoiceModel).Error; err != nil {
		return translateCreateError(err)
	}
	return nil
}

// FindByID retrieves an invoice with its line items.
func (r *invoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoiceModel model.InvoiceModel
	result := r.db.WithContext(ctx).
		Preload("Items", orderByPosition).
		Where("id = ?", id).
		First(&invoiceModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrDocumentNotFound
		}
		return nil, result.Error
	}
	return invoiceModel.ToEntity(), nil
}

// FindBySaleID retrieves the invoice a sale was converted from.
func (r *invoiceRepository) FindBySaleID(ctx context.Context, saleID uuid.UUID) (*entity.Invoice, error) {
	var invoiceModel model.InvoiceModel
	result := r.db.WithContext(ctx).
		Preload("Items", orderByPosition).
		Where("sale_id = ?", saleID).
		First(&invoiceModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrDocumentNotFound
		}
		return nil, result.Error
	}
	return invoiceModel.ToEntity(), nil
}

// FindByUser retrieves all invoices of a user, newest first.
func (r *invoiceRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Invoice, error) {
	var invoiceModels []model.InvoiceModel
	result := r.db.WithContext(ctx).
		Preload("Items", orderByPosition).
		Where("user_id = ?", userID).
		Order("issue_date DESC, created_at DESC").
		Find(&invoiceModels)
	if result.Error != nil {
		return nil, result.Error
	}

	invoices := make([]*entity.Invoice, len(invoiceModels))
	for i := range invoiceModels {
		invoices[i] = invoiceModels[i].ToEntity()
	}
	return invoices, nil
}

// ExistsByNumber checks whether the user already has an invoice with this number.
func (r *invoiceRepository) ExistsByNumber(ctx context.Context, userID uuid.UUID, number string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.InvoiceModel{}).
		Where("user_id = ? AND number = ?", userID, number).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateSettlement stores the sale link and mirrored settlement using the version check.
func (r *invoiceRepository) UpdateSettlement(ctx context.Context, invoice *entity.Invoice) error {
	result := r.db.WithContext(ctx).
		Model(&model.InvoiceModel{}).
		Where("id = ? AND version = ?", invoice.ID, invoice.Version).
		Updates(map[string]interface{}{
			"sale_id":     invoice.SaleID,
			"amount_paid": invoice.AmountPaid,
			"balance":     invoice.Balance,
			"status":      string(invoice.Status),
			"version":     gorm.Expr("version + 1"),
			"updated_at":  invoice.UpdatedAt,
		})
	if err := checkVersionedUpdate(result); err != nil {
		return err
	}
	invoice.Version++
	return nil
}

// Delete removes an invoice and its line items.
func (r *invoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&model.InvoiceItemModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.InvoiceModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrDocumentNotFound
		}
		return nil
	})
}

// orderByPosition keeps preloaded line items in their original order.
func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}
