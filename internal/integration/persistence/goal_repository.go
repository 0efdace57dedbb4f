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

// goalRepository implements the adapter.GoalRepository interface.
type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new goal repository instance.
func NewGoalRepository(db *gorm.DB) adapter.GoalRepository {
	return &goalRepository{
		db: db,
	}
}

// Create creates a new goal in the database.
func (r *goalRepository) Create(ctx context.Context, goal *entity.SavingGoal) error {
	return r.db.WithContext(ctx).Create(model.GoalFromEntity(goal)).Error
}

// FindByID retrieves a goal by its ID.
func (r *goalRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.SavingGoal, error) {
	var row model.GoalModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrGoalNotFound
		}
		return nil, result.Error
	}
	return row.ToEntity(), nil
}

// FindByProfile retrieves all goals of a profile.
func (r *goalRepository) FindByProfile(ctx context.Context, profileID uuid.UUID) ([]*entity.SavingGoal, error) {
	var goalModels []model.GoalModel
	result := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("created_at ASC, id ASC").
		Find(&goalModels)
	if result.Error != nil {
		return nil, result.Error
	}

	goals := make([]*entity.SavingGoal, len(goalModels))
	for i := range goalModels {
		goals[i] = goalModels[i].ToEntity()
	}
	return goals, nil
}
