// Package budget contains budget lifecycle use cases and the budget status calculator.
package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/analytics/internal/application/adapter"
	"github.com/finance-tracker/analytics/internal/domain/entity"
	domainerror "github.com/finance-tracker/analytics/internal/domain/error"
)

// CreateBudgetInput represents the input for budget creation.
type CreateBudgetInput struct {
	ProfileID      uuid.UUID
	CategoryID     uuid.UUID
	Amount         decimal.Decimal
	Period         entity.BudgetPeriod // Optional, defaults to monthly
	AlertThreshold *int                // Optional, defaults to DefaultAlertThreshold
}

// CreateBudgetOutput represents the output of budget creation.
type CreateBudgetOutput struct {
	Budget *entity.Budget
}

// CreateBudgetUseCase handles budget creation logic.
type CreateBudgetUseCase struct {
	budgetRepo   adapter.BudgetRepository
	categoryRepo adapter.CategoryRepository
}

// NewCreateBudgetUseCase creates a new CreateBudgetUseCase instance.
func NewCreateBudgetUseCase(budgetRepo adapter.BudgetRepository, categoryRepo adapter.CategoryRepository) *CreateBudgetUseCase {
	return &CreateBudgetUseCase{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute performs the budget creation.
func (uc *CreateBudgetUseCase) Execute(ctx context.Context, input CreateBudgetInput) (*CreateBudgetOutput, error) {
	period := input.Period
	if period == "" {
		period = entity.BudgetPeriodMonthly
	}
	threshold := entity.DefaultAlertThreshold
	if input.AlertThreshold != nil {
		threshold = *input.AlertThreshold
	}

	if err := validateBudget(input.Amount, period, threshold); err != nil {
		return nil, err
	}

	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeBudgetCategoryNotFound,
				"category not found",
				domainerror.ErrBudgetCategoryNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	if category.ProfileID != input.ProfileID {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetCategoryNotFound,
			"category not found",
			domainerror.ErrBudgetCategoryNotFound,
		)
	}

	exists, err := uc.budgetRepo.ExistsActiveByCategory(ctx, input.ProfileID, input.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to check budget existence: %w", err)
	}
	if exists {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetAlreadyExists,
			"an active budget already exists for this category",
			domainerror.ErrBudgetAlreadyExists,
		)
	}

	budget := entity.NewBudget(input.ProfileID, input.CategoryID, input.Amount, period, threshold)

	if err := uc.budgetRepo.Create(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	return &CreateBudgetOutput{
		Budget: budget,
	}, nil
}

// validateBudget checks the user-editable budget fields.
func validateBudget(amount decimal.Decimal, period entity.BudgetPeriod, threshold int) error {
	if amount.IsNegative() {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetAmount,
			"amount must not be negative",
			domainerror.ErrInvalidBudgetAmount,
		)
	}

	if !period.IsValid() {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetPeriod,
			"period must be 'weekly', 'monthly', or 'yearly'",
			domainerror.ErrInvalidBudgetPeriod,
		)
	}

	if threshold < entity.MinAlertThreshold || threshold > entity.MaxAlertThreshold {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidAlertThreshold,
			fmt.Sprintf("alert threshold must be between %d and %d", entity.MinAlertThreshold, entity.MaxAlertThreshold),
			domainerror.ErrInvalidAlertThreshold,
		)
	}

	return nil
}
