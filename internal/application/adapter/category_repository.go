// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/analytics/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create creates a new category in the database.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindByProfile retrieves all categories of a profile ordered by name.
	FindByProfile(ctx context.Context, profileID uuid.UUID) ([]*entity.Category, error)

	// ExistsByNameAndProfile checks if a category with the given name exists for the profile.
	ExistsByNameAndProfile(ctx context.Context, name string, profileID uuid.UUID) (bool, error)
}
