// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/analytics/internal/domain/entity"
)

// BudgetRepository defines the interface for budget persistence operations.
type BudgetRepository interface {
	// Create creates a new budget in the database.
	Create(ctx context.Context, budget *entity.Budget) error

	// FindByID retrieves a budget by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error)

	// FindByProfile retrieves every budget of a profile, active or not.
	FindByProfile(ctx context.Context, profileID uuid.UUID) ([]*entity.Budget, error)

	// FindActiveByProfile retrieves the active budgets of a profile.
	FindActiveByProfile(ctx context.Context, profileID uuid.UUID) ([]*entity.Budget, error)

	// ExistsActiveByCategory checks if the category already has an active budget.
	ExistsActiveByCategory(ctx context.Context, profileID, categoryID uuid.UUID) (bool, error)

	// Update updates an existing budget in the database.
	Update(ctx context.Context, budget *entity.Budget) error

	// ReplaceAll replaces the profile's budget collection wholesale.
	ReplaceAll(ctx context.Context, profileID uuid.UUID, budgets []*entity.Budget) error
}
