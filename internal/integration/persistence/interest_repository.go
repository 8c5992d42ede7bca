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

// incomeRepository implements the adapter.IncomeRepository interface.
type incomeRepository struct {
	db *gorm.DB
}

// NewIncomeRepository creates a new income repository instance.
func NewIncomeRepository(db *gorm.DB) adapter.IncomeRepository {
	return &incomeRepository{
		db: db,
	}
}

// Create creates a new income record.
func (r *incomeRepository) Create(ctx context.Context, income *entity.IncomeRecord) error {
	return r.db.WithContext(ctx).Create(model.IncomeFromEntity(income)).Error
}

// FindByID retrieves an income record by its ID.
func (r *incomeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.IncomeRecord, error) {
	var incomeModel model.IncomeModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&incomeModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrInterestRecordNotFound
		}
		return nil, result.Error
	}
	return incomeModel.ToEntity(), nil
}

// FindByLoan retrieves the income record of a loan in the given category.
func (r *incomeRepository) FindByLoan(ctx context.Context, userID, loanID uuid.UUID, category string) (*entity.IncomeRecord, error) {
	var incomeModel model.IncomeModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND linked_loan_id = ? AND category = ?", userID, loanID, category).
		First(&incomeModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrInterestRecordNotFound
		}
		return nil, result.Error
	}
	return incomeModel.ToEntity(), nil
}

// UpdateAmount stores the gross amount of an income record.
func (r *incomeRepository) UpdateAmount(ctx context.Context, income *entity.IncomeRecord) error {
	result := r.db.WithContext(ctx).
		Model(&model.IncomeModel{}).
		Where("id = ?", income.ID).
		Updates(map[string]interface{}{
			"gross_amount": income.GrossAmount,
			"updated_at":   income.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrInterestRecordNotFound
	}
	return nil
}

// Delete removes an income record.
func (r *incomeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.IncomeModel{}).Error
}

// expenseRepository implements the adapter.ExpenseRepository interface.
type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository instance.
func NewExpenseRepository(db *gorm.DB) adapter.ExpenseRepository {
	return &expenseRepository{
		db: db,
	}
}

// Create creates a new expense.
func (r *expenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	return r.db.WithContext(ctx).Create(model.ExpenseFromEntity(expense)).Error
}

// FindByID retrieves an expense by its ID.
func (r *expenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	var expenseModel model.ExpenseModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&expenseModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrInterestRecordNotFound
		}
		return nil, result.Error
	}
	return expenseModel.ToEntity(), nil
}

// FindByLoan retrieves the expense of a loan in the given category.
func (r *expenseRepository) FindByLoan(ctx context.Context, userID, loanID uuid.UUID, category string) (*entity.Expense, error) {
	var expenseModel model.ExpenseModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND linked_loan_id = ? AND category = ?", userID, loanID, category).
		First(&expenseModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrInterestRecordNotFound
		}
		return nil, result.Error
	}
	return expenseModel.ToEntity(), nil
}

// UpdateAmount stores the amount of an expense.
func (r *expenseRepository) UpdateAmount(ctx context.Context, expense *entity.Expense) error {
	result := r.db.WithContext(ctx).
		Model(&model.ExpenseModel{}).
		Where("id = ?", expense.ID).
		Updates(map[string]interface{}{
			"amount":     expense.Amount,
			"updated_at": expense.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrInterestRecordNotFound
	}
	return nil
}

// Delete removes an expense.
func (r *expenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ExpenseModel{}).Error
}
