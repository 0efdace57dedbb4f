package dto

import (
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/analytics/internal/domain/entity"
)

// CreateBudgetRequest represents the request body for budget creation.
type CreateBudgetRequest struct {
	CategoryID     string          `json:"category_id" binding:"required,uuid"`
	Amount         decimal.Decimal `json:"amount"`
	Period         string          `json:"period,omitempty" binding:"omitempty,oneof=weekly monthly yearly"`
	AlertThreshold *int            `json:"alert_threshold,omitempty"`
}

// UpdateBudgetRequest represents the request body for budget update.
type UpdateBudgetRequest struct {
	Amount         *decimal.Decimal `json:"amount,omitempty"`
	Period         *string          `json:"period,omitempty" binding:"omitempty,oneof=weekly monthly yearly"`
	AlertThreshold *int             `json:"alert_threshold,omitempty"`
}

// ReplaceBudgetsRequest represents the request body for replacing every budget of a profile.
type ReplaceBudgetsRequest struct {
	Budgets []CreateBudgetRequest `json:"budgets" binding:"dive"`
}

// BudgetResponse represents a single budget in API responses.
type BudgetResponse struct {
	ID             string `json:"id"`
	CategoryID     string `json:"category_id"`
	Amount         string `json:"amount"`
	Period         string `json:"period"`
	AlertThreshold int    `json:"alert_threshold"`
	IsActive       bool   `json:"is_active"`
}

// BudgetListResponse represents the response for listing budgets.
type BudgetListResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
}

// BudgetStatusResponse represents the live status of one budget.
type BudgetStatusResponse struct {
	Budget       BudgetResponse `json:"budget"`
	Spent        string         `json:"spent"`
	Percentage   float64        `json:"percentage"`
	Remaining    string         `json:"remaining"`
	IsOverBudget bool           `json:"is_over_budget"`
	IsNearLimit  bool           `json:"is_near_limit"`
	PeriodStart  string         `json:"period_start"`
	PeriodEnd    string         `json:"period_end"`
}

// BudgetStatusListResponse represents the response for budget statuses.
type BudgetStatusListResponse struct {
	Statuses   []BudgetStatusResponse `json:"statuses"`
	Violations []ViolationResponse    `json:"violations"`
}

// ToBudgetResponse converts a domain Budget entity to a BudgetResponse DTO.
func ToBudgetResponse(b *entity.Budget) BudgetResponse {
	return BudgetResponse{
		ID:             b.ID.String(),
		CategoryID:     b.CategoryID.String(),
		Amount:         money(b.Amount),
		Period:         string(b.Period),
		AlertThreshold: b.AlertThreshold,
		IsActive:       b.IsActive,
	}
}

// ToBudgetListResponse converts budgets to a BudgetListResponse DTO.
func ToBudgetListResponse(budgets []*entity.Budget) BudgetListResponse {
	responses := make([]BudgetResponse, 0, len(budgets))
	for _, b := range budgets {
		responses = append(responses, ToBudgetResponse(b))
	}
	return BudgetListResponse{Budgets: responses}
}

// ToBudgetStatusResponses converts budget statuses to their API shape.
func ToBudgetStatusResponses(statuses []entity.BudgetStatus) []BudgetStatusResponse {
	responses := make([]BudgetStatusResponse, 0, len(statuses))
	for _, s := range statuses {
		responses = append(responses, BudgetStatusResponse{
			Budget:       ToBudgetResponse(s.Budget),
			Spent:        money(s.Spent),
			Percentage:   s.Percentage,
			Remaining:    money(s.Remaining),
			IsOverBudget: s.IsOverBudget,
			IsNearLimit:  s.IsNearLimit,
			PeriodStart:  formatDate(s.PeriodStart),
			PeriodEnd:    formatDate(s.PeriodEnd),
		})
	}
	return responses
}
