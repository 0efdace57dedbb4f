package goal

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/analytics/internal/application/adapter"
	domainerror "github.com/finance-tracker/analytics/internal/domain/error"
)

// GetGoalInput represents the input for loading one goal.
type GetGoalInput struct {
	ProfileID uuid.UUID
	GoalID    uuid.UUID
}

// GetGoalUseCase loads one goal of a profile with its progress.
type GetGoalUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewGetGoalUseCase creates a new GetGoalUseCase instance.
func NewGetGoalUseCase(goalRepo adapter.GoalRepository) *GetGoalUseCase {
	return &GetGoalUseCase{
		goalRepo: goalRepo,
	}
}

// Execute loads the goal. Goals of other profiles are reported as not found.
func (uc *GetGoalUseCase) Execute(ctx context.Context, input GetGoalInput) (*GoalWithProgress, error) {
	goal, err := uc.goalRepo.FindByID(ctx, input.GoalID)
	if err != nil {
		if errors.Is(err, domainerror.ErrGoalNotFound) {
			return nil, domainerror.NewGoalError(domainerror.ErrCodeGoalNotFound, "goal not found", err)
		}
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}

	if goal.ProfileID != input.ProfileID {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeGoalNotFound,
			"goal not found",
			domainerror.ErrGoalNotFound,
		)
	}

	return &GoalWithProgress{Goal: goal, CompletionPercent: goal.CompletionPercent()}, nil
}
