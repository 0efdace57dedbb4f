// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/analytics/internal/domain/entity"
)

// TransactionFilter defines filter options for listing transactions.
type TransactionFilter struct {
	ProfileID  uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID *uuid.UUID
	Type       *entity.TransactionType
	Limit      int
}

// LedgerRepository gives the engine read access to the ledger plus the two writes it may perform:
// appending a transaction and reassigning its category. Transactions are never deleted here.
type LedgerRepository interface {
	// Append stores a new transaction.
	Append(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// Snapshot returns every transaction of a profile ordered by date, then ID.
	Snapshot(ctx context.Context, profileID uuid.UUID) ([]*entity.Transaction, error)

	// FindByFilter retrieves transactions matching the filter, newest first.
	FindByFilter(ctx context.Context, filter TransactionFilter) ([]*entity.Transaction, error)

	// UpdateCategory reassigns a transaction to another category.
	UpdateCategory(ctx context.Context, id uuid.UUID, categoryID uuid.UUID) error

	// ListProfiles returns the IDs of every profile that owns at least one transaction.
	ListProfiles(ctx context.Context) ([]uuid.UUID, error)
}
