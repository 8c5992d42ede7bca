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

// saleRepository implements the adapter.SaleRepository interface.
type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository instance.
func NewSaleRepository(db *gorm.DB) adapter.SaleRepository {
	return &saleRepository{
		db: db,
	}
}

// Create creates a new sale with its line items.
func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	saleModel := model.SaleFromEntity(sale)
	if err := r.db.WithContext(ctx).Create(saleModel).Error; err != nil {
		return translateCreateError(err)
	}
	return nil
}

// FindByID retrieves a sale with its line items.
func (r *saleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var saleModel model.SaleModel
	result := r.db.WithContext(ctx).
		Preload("Items", orderByPosition).
		Where("id = ?", id).
		First(&saleModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrDocumentNotFound
		}
		return nil, result.Error
	}
	return saleModel.ToEntity(), nil
}

// FindByUser retrieves all sales of a user, newest first.
func (r *saleRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Sale, error) {
	var saleModels []model.SaleModel
	result := r.db.WithContext(ctx).
		Preload("Items", orderByPosition).
		Where("user_id = ?", userID).
		Order("sale_date DESC, created_at DESC").
		Find(&saleModels)
	if result.Error != nil {
		return nil, result.Error
	}

	sales := make([]*entity.Sale, len(saleModels))
	for i := range saleModels {
		sales[i] = saleModels[i].ToEntity()
	}
	return sales, nil
}

// ExistsByNumber checks whether the user already has a sale with this number.
func (r *saleRepository) ExistsByNumber(ctx context.Context, userID uuid.UUID, number string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.SaleModel{}).
		Where("user_id = ? AND number = ?", userID, number).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateSettlement stores paid amount, balance and status using the version check.
// SQL: UPDATE sales SET ..., version = version + 1 WHERE id = ? AND version = ?
func (r *saleRepository) UpdateSettlement(ctx context.Context, sale *entity.Sale) error {
	result := r.db.WithContext(ctx).
		Model(&model.SaleModel{}).
		Where("id = ? AND version = ?", sale.ID, sale.Version).
		Updates(map[string]interface{}{
			"invoice_id":  sale.InvoiceID,
			"amount_paid": sale.AmountPaid,
			"balance":     sale.Balance,
			"status":      string(sale.Status),
			"version":     gorm.Expr("version + 1"),
			"updated_at":  sale.UpdatedAt,
		})
	if err := checkVersionedUpdate(result); err != nil {
		return err
	}
	sale.Version++
	return nil
}

// Delete removes a sale and its line items.
func (r *saleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sale_id = ?", id).Delete(&model.SaleItemModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.SaleModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrDocumentNotFound
		}
		return nil
	})
}
