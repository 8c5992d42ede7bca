package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/domain/entity"
	domainerror "github.com/bizledger/backend/internal/domain/error"
	"github.com/bizledger/backend/internal/domain/valueobject"
	"github.com/bizledger/backend/internal/integration/persistence/model"
)

// paymentRepository implements the adapter.PaymentRepository interface.
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository instance.
func NewPaymentRepository(db *gorm.DB) adapter.PaymentRepository {
	return &paymentRepository{
		db: db,
	}
}

// Create creates a new payment record.
func (r *paymentRepository) Create(ctx context.Context, payment *entity.PaymentRecord) error {
	if payment.Payable.IsZero() {
		return fmt.Errorf("payment %s has no payable reference", payment.ID)
	}
	return r.db.WithContext(ctx).Create(model.PaymentFromEntity(payment)).Error
}

// FindByID retrieves a payment record by its ID.
func (r *paymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.PaymentRecord, error) {
	var paymentModel model.PaymentModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&paymentModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrPaymentNotFound
		}
		return nil, result.Error
	}
	return paymentModel.ToEntity()
}

// FindByPayable retrieves all payments against one payable record, newest first.
func (r *paymentRepository) FindByPayable(ctx context.Context, ref valueobject.PayableRef) ([]*entity.PaymentRecord, error) {
	column, err := model.PayableColumn(ref.Kind())
	if err != nil {
		return nil, err
	}

	var paymentModels []model.PaymentModel
	result := r.db.WithContext(ctx).
		Where(column+" = ?", ref.ID()).
		Order("payment_date DESC, created_at DESC").
		Find(&paymentModels)
	if result.Error != nil {
		return nil, result.Error
	}

	payments := make([]*entity.PaymentRecord, 0, len(paymentModels))
	for i := range paymentModels {
		payment, err := paymentModels[i].ToEntity()
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, nil
}

// Update stores the editable fields of a payment record.
func (r *paymentRepository) Update(ctx context.Context, payment *entity.PaymentRecord) error {
	result := r.db.WithContext(ctx).
		Model(&model.PaymentModel{}).
		Where("id = ?", payment.ID).
		Updates(map[string]interface{}{
			"amount":       payment.Amount,
			"method":       string(payment.Method),
			"payment_date": payment.PaymentDate,
			"reference":    payment.Reference,
			"notes":        payment.Notes,
			"updated_at":   payment.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrPaymentNotFound
	}
	return nil
}

// Delete removes a payment record.
func (r *paymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.PaymentModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrPaymentNotFound
	}
	return nil
}

// DeleteByPayable removes every payment against one payable record.
func (r *paymentRepository) DeleteByPayable(ctx context.Context, ref valueobject.PayableRef) (int64, error) {
	column, err := model.PayableColumn(ref.Kind())
	if err != nil {
		return 0, err
	}

	result := r.db.WithContext(ctx).Where(column+" = ?", ref.ID()).Delete(&model.PaymentModel{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
