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

// recurringRepository implements the adapter.RecurringRepository interface.
type recurringRepository struct {
	db *gorm.DB
}

// NewRecurringRepository creates a new recurring payment repository instance.
func NewRecurringRepository(db *gorm.DB) adapter.RecurringRepository {
	return &recurringRepository{
		db: db,
	}
}

// Create creates a new recurring payment in the database.
func (r *recurringRepository) Create(ctx context.Context, recurring *entity.RecurringTransaction) error {
	return r.db.WithContext(ctx).Create(model.RecurringFromEntity(recurring)).Error
}

// FindByID retrieves a recurring payment by its ID.
func (r *recurringRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.RecurringTransaction, error) {
	var row model.RecurringModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrRecurringNotFound
		}
		return nil, result.Error
	}
	return row.ToEntity(), nil
}

// FindByProfile retrieves every recurring payment of a profile.
func (r *recurringRepository) FindByProfile(ctx context.Context, profileID uuid.UUID) ([]*entity.RecurringTransaction, error) {
	var recurringModels []model.RecurringModel
	result := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("next_due ASC, id ASC").
		Find(&recurringModels)
	if result.Error != nil {
		return nil, result.Error
	}

	recurring := make([]*entity.RecurringTransaction, len(recurringModels))
	for i := range recurringModels {
		recurring[i] = recurringModels[i].ToEntity()
	}
	return recurring, nil
}
