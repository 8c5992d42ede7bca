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

// loanRepository implements the adapter.LoanRepository interface.
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository instance.
func NewLoanRepository(db *gorm.DB) adapter.LoanRepository {
	return &loanRepository{
		db: db,
	}
}

// Create creates a new loan.
func (r *loanRepository) Create(ctx context.Context, loan *entity.Loan) error {
	if err := r.db.WithContext(ctx).Create(model.LoanFromEntity(loan)).Error; err != nil {
		return translateCreateError(err)
	}
	return nil
}

// FindByID retrieves a loan by its ID.
func (r *loanRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Loan, error) {
	var loanModel model.LoanModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&loanModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrDocumentNotFound
		}
		return nil, result.Error
	}
	return loanModel.ToEntity(), nil
}

// FindByUser retrieves all loans of a user, newest first.
func (r *loanRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Loan, error) {
	var loanModels []model.LoanModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_date DESC, created_at DESC").
		Find(&loanModels)
	if result.Error != nil {
		return nil, result.Error
	}

	loans := make([]*entity.Loan, len(loanModels))
	for i := range loanModels {
		loans[i] = loanModels[i].ToEntity()
	}
	return loans, nil
}

// ExistsByNumber checks whether the user already has a loan with this number.
func (r *loanRepository) ExistsByNumber(ctx context.Context, userID uuid.UUID, number string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.LoanModel{}).
		Where("user_id = ? AND number = ?", userID, number).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateBalance stores paid totals, balance and status using the version check.
func (r *loanRepository) UpdateBalance(ctx context.Context, loan *entity.Loan) error {
	result := r.db.WithContext(ctx).
		Model(&model.LoanModel{}).
		Where("id = ? AND version = ?", loan.ID, loan.Version).
		Updates(map[string]interface{}{
			"total_paid":          loan.TotalPaid,
			"total_interest_paid": loan.TotalInterestPaid,
			"current_balance":     loan.CurrentBalance,
			"status":              string(loan.Status),
			"version":             gorm.Expr("version + 1"),
			"updated_at":          loan.UpdatedAt,
		})
	if err := checkVersionedUpdate(result); err != nil {
		return err
	}
	loan.Version++
	return nil
}

// Delete removes a loan.
func (r *loanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.LoanModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrDocumentNotFound
	}
	return nil
}
