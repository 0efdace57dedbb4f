package dto

import (
	"time"

	"github.com/finance-tracker/analytics/internal/application/usecase/analytics"
)

// RecomputeRequest represents the optional body of a full recompute.
type RecomputeRequest struct {
	Locale string `json:"locale,omitempty" binding:"omitempty,max=16"`
}

// MonthTotalsResponse represents the current month's ledger totals.
type MonthTotalsResponse struct {
	TotalIncome      string `json:"total_income"`
	TotalExpense     string `json:"total_expense"`
	NetIncome        string `json:"net_income"`
	TransactionCount int    `json:"transaction_count"`
}

// RecomputeResponse represents every piece of derived state of a profile.
type RecomputeResponse struct {
	ComputedAt     time.Time                       `json:"computed_at"`
	Month          MonthTotalsResponse             `json:"month"`
	SavingsRate    float64                         `json:"savings_rate"`
	EMIInFlight    string                          `json:"emi_in_flight"`
	BudgetStatuses []BudgetStatusResponse          `json:"budget_statuses"`
	Loans          EMISummaryResponse              `json:"loans"`
	Predictions    map[string][]PredictionResponse `json:"predictions"`
	Health         *HealthScoreResponse            `json:"health,omitempty"`
	Violations     []ViolationResponse             `json:"violations"`
}

// ToRecomputeResponse converts derived state to a RecomputeResponse DTO.
func ToRecomputeResponse(state analytics.DerivedState) RecomputeResponse {
	predictions := make(map[string][]PredictionResponse, len(state.Predictions))
	for period, items := range state.Predictions {
		predictions[string(period)] = ToPredictionListResponse(items).Predictions
	}

	response := RecomputeResponse{
		ComputedAt: state.ComputedAt,
		Month: MonthTotalsResponse{
			TotalIncome:      money(state.MonthTotals.TotalIncome),
			TotalExpense:     money(state.MonthTotals.TotalExpense),
			NetIncome:        money(state.MonthTotals.NetIncome),
			TransactionCount: state.MonthTotals.TransactionCount,
		},
		SavingsRate:    state.SavingsRate,
		EMIInFlight:    money(state.EMIInFlight),
		BudgetStatuses: ToBudgetStatusResponses(state.BudgetStatuses),
		Loans:          ToEMISummaryResponse(state.Loans),
		Predictions:    predictions,
		Violations:     ToViolationResponses(state.Violations),
	}
	if state.Health != nil {
		health := ToHealthScoreResponse(state.Health)
		response.Health = &health
	}
	return response
}
