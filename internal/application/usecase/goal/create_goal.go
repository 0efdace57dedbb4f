// Package goal contains saving goal use cases.
package goal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/analytics/internal/application/adapter"
	"github.com/finance-tracker/analytics/internal/domain/entity"
	domainerror "github.com/finance-tracker/analytics/internal/domain/error"
)

// CreateGoalInput represents the input for goal creation.
type CreateGoalInput struct {
	ProfileID     uuid.UUID
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Deadline      *time.Time
}

// CreateGoalOutput represents the output of goal creation.
type CreateGoalOutput struct {
	Goal *entity.SavingGoal
}

// CreateGoalUseCase handles goal creation logic.
type CreateGoalUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewCreateGoalUseCase creates a new CreateGoalUseCase instance.
func NewCreateGoalUseCase(goalRepo adapter.GoalRepository) *CreateGoalUseCase {
	return &CreateGoalUseCase{
		goalRepo: goalRepo,
	}
}

// Execute performs the goal creation.
func (uc *CreateGoalUseCase) Execute(ctx context.Context, input CreateGoalInput) (*CreateGoalOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeGoalNameRequired,
			"name is required",
			domainerror.ErrGoalNameRequired,
		)
	}

	if !input.TargetAmount.IsPositive() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalTarget,
			"target amount must be greater than zero",
			domainerror.ErrInvalidGoalTarget,
		)
	}

	if input.CurrentAmount.IsNegative() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalCurrent,
			"current amount must not be negative",
			domainerror.ErrInvalidGoalCurrent,
		)
	}

	goal := entity.NewSavingGoal(input.ProfileID, name, input.TargetAmount, input.CurrentAmount, input.Deadline)

	if err := uc.goalRepo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return &CreateGoalOutput{
		Goal: goal,
	}, nil
}
