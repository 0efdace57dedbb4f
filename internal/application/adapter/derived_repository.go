// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/analytics/internal/domain/entity"
)

// PredictionRepository stores forecast output. Predictions are replaced wholesale per period.
type PredictionRepository interface {
	// ReplaceForPeriod replaces the profile's predictions for the given period.
	ReplaceForPeriod(ctx context.Context, profileID uuid.UUID, period entity.PredictionPeriod, predictions []*entity.Prediction) error

	// FindByPeriod retrieves the profile's predictions for the given period.
	FindByPeriod(ctx context.Context, profileID uuid.UUID, period entity.PredictionPeriod) ([]*entity.Prediction, error)
}

// HealthScoreRepository stores the latest health score of each profile.
type HealthScoreRepository interface {
	// Replace stores the score, replacing any previous one.
	Replace(ctx context.Context, score *entity.HealthScore) error

	// FindByProfile retrieves the latest score, or nil when none was calculated yet.
	FindByProfile(ctx context.Context, profileID uuid.UUID) (*entity.HealthScore, error)
}

// AdviceRepository stores each profile's advice feed.
type AdviceRepository interface {
	// ReplaceIfNewer replaces the feed only when sequence is greater than the stored one.
	// It reports whether the replacement happened.
	ReplaceIfNewer(ctx context.Context, profileID uuid.UUID, sequence int64, items []*entity.AdviceItem) (bool, error)

	// FindActive retrieves the profile's non-dismissed items in stored order.
	FindActive(ctx context.Context, profileID uuid.UUID) ([]*entity.AdviceItem, error)

	// FindByID retrieves a single item of the profile.
	FindByID(ctx context.Context, profileID, id uuid.UUID) (*entity.AdviceItem, error)

	// Update persists the read and dismissed state of an item.
	Update(ctx context.Context, item *entity.AdviceItem) error
}
