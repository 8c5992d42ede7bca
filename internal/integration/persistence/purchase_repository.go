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

// purchaseRepository implements the adapter.PurchaseRepository interface.
type purchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository creates a new purchase repository instance.
func NewPurchaseRepository(db *gorm.DB) adapter.PurchaseRepository {
	return &purchaseRepository{
		db: db,
	}
}

// Create creates a new purchase with its line items.
func (r *purchaseRepository) Create(ctx context.Context, purchase *entity.Purchase) error {
	purchaseModel := model.PurchaseFromEntity(purchase)
	if err := r.db.WithContext(ctx).Create(purchaseModel).Error; err != nil {
		return translateCreateError(err)
	}
	return nil
}

// FindByID retrieves a purchase with its line items.
func (r *purchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Purchase, error) {
	var purchaseModel model.PurchaseModel
	result := r.db.WithContext(ctx).
		Preload("Items", orderByPosition).
		Where("id = ?", id).
		First(&purchaseModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrDocumentNotFound
		}
		return nil, result.Error
	}
	return purchaseModel.ToEntity(), nil
}

// FindByUser retrieves all purchases of a user, newest first.
func (r *purchaseRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Purchase, error) {
	var purchaseModels []model.PurchaseModel
	result := r.db.WithContext(ctx).
		Preload("Items", orderByPosition).
		Where("user_id = ?", userID).
		Order("purchase_date DESC, created_at DESC").
		Find(&purchaseModels)
	if result.Error != nil {
		return nil, result.Error
	}

	purchases := make([]*entity.Purchase, len(purchaseModels))
	for i := range purchaseModels {
		purchases[i] = purchaseModels[i].ToEntity()
	}
	return purchases, nil
}

// ExistsByNumber checks whether the user already has a purchase with this number.
func (r *purchaseRepository) ExistsByNumber(ctx context.Context, userID uuid.UUID, number string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.PurchaseModel{}).
		Where("user_id = ? AND number = ?", userID, number).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateSettlement stores paid amount, balance and status using the version check.
func (r *purchaseRepository) UpdateSettlement(ctx context.Context, purchase *entity.Purchase) error {
	result := r.db.WithContext(ctx).
		Model(&model.PurchaseModel{}).
		Where("id = ? AND version = ?", purchase.ID, purchase.Version).
		Updates(map[string]interface{}{
			"amount_paid": purchase.AmountPaid,
			"balance":     purchase.Balance,
			"status":      string(purchase.Status),
			"version":     gorm.Expr("version + 1"),
			"updated_at":  purchase.UpdatedAt,
		})
	if err := checkVersionedUpdate(result); err != nil {
		return err
	}
	purchase.Version++
	return nil
}

// Delete removes a purchase and its line items.
func (r *purchaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("purchase_id = ?", id).Delete(&model.PurchaseItemModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.PurchaseModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrDocumentNotFound
		}
		return nil
	})
}
