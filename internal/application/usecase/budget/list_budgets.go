// Package budget contains budget lifecycle use cases and the budget status calculator.
package budget

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/analytics/internal/application/adapter"
	"github.com/finance-tracker/analytics/internal/domain/entity"
	domainerror "github.com/finance-tracker/analytics/internal/domain/error"
)

// ListBudgetsInput represents the input for listing budgets.
type ListBudgetsInput struct {
	ProfileID       uuid.UUID
	IncludeInactive bool
}

// ListBudgetsOutput represents the output of listing budgets.
type ListBudgetsOutput struct {
	Budgets []*entity.Budget
}

// ListBudgetsUseCase lists the budgets of a profile.
type ListBudgetsUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewListBudgetsUseCase creates a new ListBudgetsUseCase instance.
func NewListBudgetsUseCase(budgetRepo adapter.BudgetRepository) *ListBudgetsUseCase {
	return &ListBudgetsUseCase{
		budgetRepo: budgetRepo,
	}
}

// Execute performs the listing.
func (uc *ListBudgetsUseCase) Execute(ctx context.Context, input ListBudgetsInput) (*ListBudgetsOutput, error) {
	var (
		budgets []*entity.Budget
		err     error
	)
	if input.IncludeInactive {
		budgets, err = uc.budgetRepo.FindByProfile(ctx, input.ProfileID)
	} else {
		budgets, err = uc.budgetRepo.FindActiveByProfile(ctx, input.ProfileID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}

	return &ListBudgetsOutput{Budgets: budgets}, nil
}

// GetStatusInput represents the input for computing budget statuses.
type GetStatusInput struct {
	ProfileID uuid.UUID
}

// GetStatusOutput carries the statuses plus the budgets that were skipped.
type GetStatusOutput struct {
	Statuses   []entity.BudgetStatus
	Violations []*domainerror.AnalyticsError
}

// GetStatusUseCase computes current-period compliance for every active budget.
type GetStatusUseCase struct {
	budgetRepo   adapter.BudgetRepository
	ledgerRepo   adapter.LedgerRepository
	categoryRepo adapter.CategoryRepository
	clock        adapter.Clock
}

// NewGetStatusUseCase creates a new GetStatusUseCase instance.
func NewGetStatusUseCase(
	budgetRepo adapter.BudgetRepository,
	ledgerRepo adapter.LedgerRepository,
	categoryRepo adapter.CategoryRepository,
	clock adapter.Clock,
) *GetStatusUseCase {
	return &GetStatusUseCase{
		budgetRepo:   budgetRepo,
		ledgerRepo:   ledgerRepo,
		categoryRepo: categoryRepo,
		clock:        clock,
	}
}

// Execute loads the snapshot and runs the calculator.
func (uc *GetStatusUseCase) Execute(ctx context.Context, input GetStatusInput) (*GetStatusOutput, error) {
	budgets, err := uc.budgetRepo.FindActiveByProfile(ctx, input.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load budgets: %w", err)
	}

	transactions, err := uc.ledgerRepo.Snapshot(ctx, input.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	categories, err := uc.categoryRepo.FindByProfile(ctx, input.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	statuses, violations := CalculateStatuses(budgets, transactions, entity.NewCategoryIndex(categories), uc.clock.Now())
	for _, v := range violations {
		slog.Warn("Budget skipped",
			"profileID", input.ProfileID.String(),
			"code", string(v.Code),
			"budgetID", v.EntityID,
		)
	}

	return &GetStatusOutput{Statuses: statuses, Violations: violations}, nil
}
