// Package snapshot loads a consistent read view of a profile's collections.
package snapshot

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/analytics/internal/application/adapter"
	"github.com/finance-tracker/analytics/internal/domain/entity"
)

// Snapshot is everything the calculators read for one profile.
type Snapshot struct {
	ProfileID    uuid.UUID
	Transactions []*entity.Transaction
	Budgets      []*entity.Budget // Active only
	Recurring    []*entity.RecurringTransaction
	Goals        []*entity.SavingGoal
	Categories   entity.CategoryIndex
}

// Loader reads snapshots through the repositories.
type Loader struct {
	ledgerRepo    adapter.LedgerRepository
	budgetRepo    adapter.BudgetRepository
	recurringRepo adapter.RecurringRepository
	goalRepo      adapter.GoalRepository
	categoryRepo  adapter.CategoryRepository
}

// NewLoader creates a new Loader instance.
func NewLoader(
	ledgerRepo adapter.LedgerRepository,
	budgetRepo adapter.BudgetRepository,
	recurringRepo adapter.RecurringRepository,
	goalRepo adapter.GoalRepository,
	categoryRepo adapter.CategoryRepository,
) *Loader {
	return &Loader{
		ledgerRepo:    ledgerRepo,
		budgetRepo:    budgetRepo,
		recurringRepo: recurringRepo,
		goalRepo:      goalRepo,
		categoryRepo:  categoryRepo,
	}
}

// Load reads every collection of the profile.
func (l *Loader) Load(ctx context.Context, profileID uuid.UUID) (*Snapshot, error) {
	transactions, err := l.ledgerRepo.Snapshot(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	budgets, err := l.budgetRepo.FindActiveByProfile(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load budgets: %w", err)
	}

	recurring, err := l.recurringRepo.FindByProfile(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load recurring payments: %w", err)
	}

	goals, err := l.goalRepo.FindByProfile(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}

	categories, err := l.categoryRepo.FindByProfile(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	return &Snapshot{
		ProfileID:    profileID,
		Transactions: transactions,
		Budgets:      budgets,
		Recurring:    recurring,
		Goals:        goals,
		Categories:   entity.NewCategoryIndex(categories),
	}, nil
}
