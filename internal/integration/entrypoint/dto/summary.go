package dto

import (
	"github.com/finance-tracker/analytics/internal/application/usecase/ledger"
)

// CategorySpendResponse represents one category's spend.
type CategorySpendResponse struct {
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	Amount       string `json:"amount"`
}

// SummaryResponse represents the ledger totals of a window.
type SummaryResponse struct {
	StartDate        string                  `json:"start_date"`
	EndDate          string                  `json:"end_date"`
	TotalIncome      string                  `json:"total_income"`
	TotalExpense     string                  `json:"total_expense"`
	NetIncome        string                  `json:"net_income"`
	SavingsRate      float64                 `json:"savings_rate"`
	EMIInFlight      string                  `json:"emi_in_flight"`
	TransactionCount int                     `json:"transaction_count"`
	TopCategories    []CategorySpendResponse `json:"top_categories"`
}

// ToSummaryResponse converts the summary output to a SummaryResponse DTO.
func ToSummaryResponse(output *ledger.GetSummaryOutput) SummaryResponse {
	top := make([]CategorySpendResponse, 0, len(output.TopCategories))
	for _, c := range output.TopCategories {
		top = append(top, CategorySpendResponse{
			CategoryID:   c.CategoryID.String(),
			CategoryName: c.CategoryName,
			Amount:       money(c.Amount),
		})
	}
	return SummaryResponse{
		StartDate:        formatDate(output.StartDate),
		EndDate:          formatDate(output.EndDate),
		TotalIncome:      money(output.TotalIncome),
		TotalExpense:     money(output.TotalExpense),
		NetIncome:        money(output.NetIncome),
		SavingsRate:      output.SavingsRate,
		EMIInFlight:      money(output.EMIInFlight),
		TransactionCount: output.TransactionCount,
		TopCategories:    top,
	}
}
