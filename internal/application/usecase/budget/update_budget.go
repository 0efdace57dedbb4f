// Package budget contains budget lifecycle use cases and the budget status calculator.
package budget

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/analytics/internal/application/adapter"
	"github.com/finance-tracker/analytics/internal/domain/entity"
	domainerror "github.com/finance-tracker/analytics/internal/domain/error"
)

// UpdateBudgetInput represents the input for a budget update. Nil fields are left unchanged.
type UpdateBudgetInput struct {
	ProfileID      uuid.UUID
	BudgetID       uuid.UUID
	Amount         *decimal.Decimal
	Period         *entity.BudgetPeriod
	AlertThreshold *int
}

// UpdateBudgetOutput represents the output of a budget update.
type UpdateBudgetOutput struct {
	Budget *entity.Budget
}

// UpdateBudgetUseCase handles amount, period and threshold edits.
type UpdateBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewUpdateBudgetUseCase creates a new UpdateBudgetUseCase instance.
func NewUpdateBudgetUseCase(budgetRepo adapter.BudgetRepository) *UpdateBudgetUseCase {
	return &UpdateBudgetUseCase{
		budgetRepo: budgetRepo,
	}
}

// Execute performs the budget update.
func (uc *UpdateBudgetUseCase) Execute(ctx context.Context, input UpdateBudgetInput) (*UpdateBudgetOutput, error) {
	budget, err := findOwnedBudget(ctx, uc.budgetRepo, input.ProfileID, input.BudgetID)
	if err != nil {
		return nil, err
	}

	amount := budget.Amount
	if input.Amount != nil {
		amount = *input.Amount
	}
	period := budget.Period
	if input.Period != nil {
		period = *input.Period
	}
	threshold := budget.AlertThreshold
	if input.AlertThreshold != nil {
		threshold = *input.AlertThreshold
	}

	if err := validateBudget(amount, period, threshold); err != nil {
		return nil, err
	}

	budget.Amount = amount
	budget.Period = period
	budget.AlertThreshold = threshold
	budget.UpdatedAt = time.Now().UTC()

	if err := uc.budgetRepo.Update(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}

	return &UpdateBudgetOutput{Budget: budget}, nil
}

// findOwnedBudget loads a budget and hides budgets of other profiles.
func findOwnedBudget(ctx context.Context, repo adapter.BudgetRepository, profileID, budgetID uuid.UUID) (*entity.Budget, error) {
	budget, err := repo.FindByID(ctx, budgetID)
	if err != nil {
		if errors.Is(err, domainerror.ErrBudgetNotFound) {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeBudgetNotFound,
				"budget not found",
				err,
			)
		}
		return nil, fmt.Errorf("failed to find budget: %w", err)
	}

	if budget.ProfileID != profileID {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetNotFound,
			"budget not found",
			domainerror.ErrBudgetNotFound,
		)
	}

	return budget, nil
}
