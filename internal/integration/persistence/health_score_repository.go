package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finance-tracker/analytics/internal/application/adapter"
	"github.com/finance-tracker/analytics/internal/domain/entity"
	"github.com/finance-tracker/analytics/internal/integration/persistence/model"
)

// healthScoreRepository implements the adapter.HealthScoreRepository interface.
type healthScoreRepository struct {
	db *gorm.DB
}

// NewHealthScoreRepository creates a new health score repository instance.
func NewHealthScoreRepository(db *gorm.DB) adapter.HealthScoreRepository {
	return &healthScoreRepository{
		db: db,
	}
}

// Replace upserts the profile's score.
func (r *healthScoreRepository) Replace(ctx context.Context, score *entity.HealthScore) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "profile_id"}},
			UpdateAll: true,
		}).
		Create(model.HealthScoreFromEntity(score)).Error
}

// FindByProfile retrieves the latest score, or nil when none exists.
func (r *healthScoreRepository) FindByProfile(ctx context.Context, profileID uuid.UUID) (*entity.HealthScore, error) {
	var scoreModel model.HealthScoreModel
	result := r.db.WithContext(ctx).Where("profile_id = ?", profileID).First(&scoreModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return scoreModel.ToEntity(), nil
}
