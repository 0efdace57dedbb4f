// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/analytics/internal/domain/entity"
)

// RecurringRepository defines the interface for recurring payment persistence operations.
type RecurringRepository interface {
	// Create creates a new recurring payment in the database.
	Create(ctx context.Context, recurring *entity.RecurringTransaction) error

	// FindByID retrieves a recurring payment by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.RecurringTransaction, error)

	// FindByProfile retrieves every recurring payment of a profile.
	FindByProfile(ctx context.Context, profileID uuid.UUID) ([]*entity.RecurringTransaction, error)
}
