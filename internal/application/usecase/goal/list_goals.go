// Package goal contains saving goal use cases.
package goal

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/analytics/internal/application/adapter"
	"github.com/finance-tracker/analytics/internal/domain/entity"
)

// ListGoalsInput represents the input for listing goals.
type ListGoalsInput struct {
	ProfileID uuid.UUID
}

// GoalWithProgress pairs a goal with its completion percentage.
type GoalWithProgress struct {
	Goal              *entity.SavingGoal
	CompletionPercent float64
}

// ListGoalsOutput represents the output of listing goals.
type ListGoalsOutput struct {
	Goals []GoalWithProgress
}

// ListGoalsUseCase handles listing goals logic.
type ListGoalsUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewListGoalsUseCase creates a new ListGoalsUseCase instance.
func NewListGoalsUseCase(goalRepo adapter.GoalRepository) *ListGoalsUseCase {
	return &ListGoalsUseCase{
		goalRepo: goalRepo,
	}
}

// Execute performs the goal listing.
func (uc *ListGoalsUseCase) Execute(ctx context.Context, input ListGoalsInput) (*ListGoalsOutput, error) {
	goals, err := uc.goalRepo.FindByProfile(ctx, input.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	out := make([]GoalWithProgress, 0, len(goals))
	for _, g := range goals {
		out = append(out, GoalWithProgress{Goal: g, CompletionPercent: g.CompletionPercent()})
	}

	return &ListGoalsOutput{Goals: out}, nil
}
