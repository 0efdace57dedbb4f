// Package budget contains budget lifecycle use cases and the budget status calculator.
package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/analytics/internal/application/adapter"
	"github.com/finance-tracker/analytics/internal/domain/entity"
	domainerror "github.com/finance-tracker/analytics/internal/domain/error"
)

// ReplaceBudgetItem is one budget of a wholesale replacement.
type ReplaceBudgetItem struct {
	CategoryID     uuid.UUID
	Amount         decimal.Decimal
	Period         entity.BudgetPeriod
	AlertThreshold *int
}

// ReplaceBudgetsInput represents the input for replacing a profile's budget collection.
type ReplaceBudgetsInput struct {
	ProfileID uuid.UUID
	Budgets   []ReplaceBudgetItem
}

// ReplaceBudgetsOutput represents the output of a replacement.
type ReplaceBudgetsOutput struct {
	Budgets []*entity.Budget
}

// ReplaceBudgetsUseCase replaces every budget of a profile in one step.
// Category existence is not checked here; unknown categories surface as violations at status time.
type ReplaceBudgetsUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewReplaceBudgetsUseCase creates a new ReplaceBudgetsUseCase instance.
func NewReplaceBudgetsUseCase(budgetRepo adapter.BudgetRepository) *ReplaceBudgetsUseCase {
	return &ReplaceBudgetsUseCase{
		budgetRepo: budgetRepo,
	}
}

// Execute validates the new collection and replaces the stored one.
func (uc *ReplaceBudgetsUseCase) Execute(ctx context.Context, input ReplaceBudgetsInput) (*ReplaceBudgetsOutput, error) {
	seen := make(map[uuid.UUID]struct{}, len(input.Budgets))
	budgets := make([]*entity.Budget, 0, len(input.Budgets))

	for _, item := range input.Budgets {
		period := item.Period
		if period == "" {
			period = entity.BudgetPeriodMonthly
		}
		threshold := entity.DefaultAlertThreshold
		if item.AlertThreshold != nil {
			threshold = *item.AlertThreshold
		}

		if err := validateBudget(item.Amount, period, threshold); err != nil {
			return nil, err
		}

		if _, dup := seen[item.CategoryID]; dup {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeBudgetAlreadyExists,
				fmt.Sprintf("more than one budget for category %s", item.CategoryID),
				domainerror.ErrBudgetAlreadyExists,
			)
		}
		seen[item.CategoryID] = struct{}{}

		budgets = append(budgets, entity.NewBudget(input.ProfileID, item.CategoryID, item.Amount, period, threshold))
	}

	if err := uc.budgetRepo.ReplaceAll(ctx, input.ProfileID, budgets); err != nil {
		return nil, fmt.Errorf("failed to replace budgets: %w", err)
	}

	return &ReplaceBudgetsOutput{Budgets: budgets}, nil
}
