// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/analytics/internal/domain/entity"
)

// GoalRepository defines the interface for saving goal persistence operations.
type GoalRepository interface {
	// Create creates a new goal in the database.
	Create(ctx context.Context, goal *entity.SavingGoal) error

	// FindByID retrieves a goal by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.SavingGoal, error)

	// FindByProfile retrieves all goals of a profile.
	FindByProfile(ctx context.Context, profileID uuid.UUID) ([]*entity.SavingGoal, error)
}
