// Package budget contains budget lifecycle use cases and the budget status calculator.
package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/analytics/internal/application/adapter"
)

// DisableBudgetInput represents the input for disabling a budget.
type DisableBudgetInput struct {
	ProfileID uuid.UUID
	BudgetID  uuid.UUID
}

// DisableBudgetUseCase soft-disables a budget. Disabling twice is a no-op.
type DisableBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewDisableBudgetUseCase creates a new DisableBudgetUseCase instance.
func NewDisableBudgetUseCase(budgetRepo adapter.BudgetRepository) *DisableBudgetUseCase {
	return &DisableBudgetUseCase{
		budgetRepo: budgetRepo,
	}
}

// Execute performs the soft disable.
func (uc *DisableBudgetUseCase) Execute(ctx context.Context, input DisableBudgetInput) error {
	budget, err := findOwnedBudget(ctx, uc.budgetRepo, input.ProfileID, input.BudgetID)
	if err != nil {
		return err
	}

	if !budget.IsActive {
		return nil
	}

	budget.Disable()
	if err := uc.budgetRepo.Update(ctx, budget); err != nil {
		return fmt.Errorf("failed to disable budget: %w", err)
	}

	return nil
}
