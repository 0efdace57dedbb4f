package dto

import (
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/analytics/internal/application/usecase/goal"
	"github.com/finance-tracker/analytics/internal/domain/entity"
)

// CreateGoalRequest represents the request body for saving goal creation.
type CreateGoalRequest struct {
	Name          string          `json:"name" binding:"required,min=1,max=100"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Deadline      string          `json:"deadline,omitempty"`
}

// GoalResponse represents a single saving goal in API responses.
type GoalResponse struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	TargetAmount      string  `json:"target_amount"`
	CurrentAmount     string  `json:"current_amount"`
	Deadline          *string `json:"deadline,omitempty"`
	CompletionPercent float64 `json:"completion_percent"`
}

// GoalListResponse represents the response for listing goals.
type GoalListResponse struct {
	Goals []GoalResponse `json:"goals"`
}

// ToGoalResponse converts a domain SavingGoal entity to a GoalResponse DTO.
func ToGoalResponse(g *entity.SavingGoal) GoalResponse {
	response := GoalResponse{
		ID:                g.ID.String(),
		Name:              g.Name,
		TargetAmount:      money(g.TargetAmount),
		CurrentAmount:     money(g.CurrentAmount),
		CompletionPercent: g.CompletionPercent(),
	}
	if g.Deadline != nil {
		deadline := formatDate(*g.Deadline)
		response.Deadline = &deadline
	}
	return response
}

// ToGoalListResponse converts the list output to a GoalListResponse DTO.
func ToGoalListResponse(goals []goal.GoalWithProgress) GoalListResponse {
	responses := make([]GoalResponse, 0, len(goals))
	for _, g := range goals {
		responses = append(responses, ToGoalResponse(g.Goal))
	}
	return GoalListResponse{Goals: responses}
}
