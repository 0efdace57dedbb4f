package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/analytics/internal/application/adapter"
	"github.com/finance-tracker/analytics/internal/domain/entity"
	domainerror "github.com/finance-tracker/analytics/internal/domain/error"
	"github.com/finance-tracker/analytics/internal/integration/persistence/model"
)

// budgetRepository implements the adapter.BudgetRepository interface.
type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository instance.
func NewBudgetRepository(db *gorm.DB) adapter.BudgetRepository {
	return &budgetRepository{
		db: db,
	}
}

// Create creates a new budget in the database.
func (r *budgetRepository) Create(ctx context.Context, budget *entity.Budget) error {
	return r.db.WithContext(ctx).Create(model.BudgetFromEntity(budget)).Error
}

// FindByID retrieves a budget by its ID.
func (r *budgetRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error) {
	var budgetModel model.BudgetModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&budgetModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBudgetNotFound
		}
		return nil, result.Error
	}
	return budgetModel.ToEntity(), nil
}

// FindByProfile retrieves every budget of a profile.
func (r *budgetRepository) FindByProfile(ctx context.Context, profileID uuid.UUID) ([]*entity.Budget, error) {
	return r.find(ctx, r.db.Where("profile_id = ?", profileID))
}

// FindActiveByProfile retrieves the active budgets of a profile.
func (r *budgetRepository) FindActiveByProfile(ctx context.Context, profileID uuid.UUID) ([]*entity.Budget, error) {
	return r.find(ctx, r.db.Where("profile_id = ? AND is_active = ?", profileID, true))
}

func (r *budgetRepository) find(ctx context.Context, query *gorm.DB) ([]*entity.Budget, error) {
	var budgetModels []model.BudgetModel
	if err := query.WithContext(ctx).Order("created_at ASC, id ASC").Find(&budgetModels).Error; err != nil {
		return nil, err
	}

	budgets := make([]*entity.Budget, len(budgetModels))
	for i := range budgetModels {
		budgets[i] = budgetModels[i].ToEntity()
	}
	return budgets, nil
}

// ExistsActiveByCategory checks if the category already has an active budget.
func (r *budgetRepository) ExistsActiveByCategory(ctx context.Context, profileID, categoryID uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.BudgetModel{}).
		Where("profile_id = ? AND category_id = ? AND is_active = ?", profileID, categoryID, true).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// Update updates an existing budget in the database.
func (r *budgetRepository) Update(ctx context.Context, budget *entity.Budget) error {
	return r.db.WithContext(ctx).Save(model.BudgetFromEntity(budget)).Error
}

// ReplaceAll deletes the profile's budgets and stores the new set in one transaction.
func (r *budgetRepository) ReplaceAll(ctx context.Context, profileID uuid.UUID, budgets []*entity.Budget) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("profile_id = ?", profileID).Delete(&model.BudgetModel{}).Error; err != nil {
			return err
		}
		if len(budgets) == 0 {
			return nil
		}

		models := make([]*model.BudgetModel, len(budgets))
		for i, b := range budgets {
			models[i] = model.BudgetFromEntity(b)
		}
		return tx.Create(&models).Error
	})
}
