package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/analytics/internal/application/adapter"
	"github.com/finance-tracker/analytics/internal/domain/entity"
	"github.com/finance-tracker/analytics/internal/integration/persistence/model"
)

// predictionRepository implements the adapter.PredictionRepository interface.
type predictionRepository struct {
	db *gorm.DB
}

// NewPredictionRepository creates a new prediction repository instance.
func NewPredictionRepository(db *gorm.DB) adapter.PredictionRepository {
	return &predictionRepository{
		db: db,
	}
}

// ReplaceForPeriod swaps the profile's predictions for one period in a single transaction.
func (r *predictionRepository) ReplaceForPeriod(
	ctx context.Context,
	profileID uuid.UUID,
	period entity.PredictionPeriod,
	predictions []*entity.Prediction,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("profile_id = ? AND period = ?", profileID, string(period)).
			Delete(&model.PredictionModel{}).Error; err != nil {
			return err
		}
		if len(predictions) == 0 {
			return nil
		}

		models := make([]*model.PredictionModel, len(predictions))
		for i, p := range predictions {
			models[i] = model.PredictionFromEntity(p)
		}
		return tx.Create(&models).Error
	})
}

// FindByPeriod retrieves the profile's predictions for a period ordered by category.
func (r *predictionRepository) FindByPeriod(ctx context.Context, profileID uuid.UUID, period entity.PredictionPeriod) ([]*entity.Prediction, error) {
	var predictionModels []model.PredictionModel
	result := r.db.WithContext(ctx).
		Where("profile_id = ? AND period = ?", profileID, string(period)).
		Order("category_id ASC").
		Find(&predictionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	predictions := make([]*entity.Prediction, len(predictionModels))
	for i := range predictionModels {
		predictions[i] = predictionModels[i].ToEntity()
	}
	return predictions, nil
}
