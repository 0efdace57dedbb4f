package dto

import (
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/analytics/internal/application/usecase/amortization"
	"github.com/finance-tracker/analytics/internal/domain/entity"
)

// CreateRecurringRequest represents the request body for recurring payment creation.
type CreateRecurringRequest struct {
	Description string          `json:"description" binding:"required,min=1,max=255"`
	Amount      decimal.Decimal `json:"amount"`
	CategoryID  *string         `json:"category_id,omitempty" binding:"omitempty,uuid"`
	Frequency   string          `json:"frequency" binding:"required"`
	NextDue     string          `json:"next_due" binding:"required"`
	EMI         *EmiRequest     `json:"emi,omitempty"`
}

// RecurringResponse represents a single recurring payment in API responses.
type RecurringResponse struct {
	ID            string       `json:"id"`
	Description   string       `json:"description"`
	Amount        string       `json:"amount"`
	MonthlyAmount string       `json:"monthly_amount"`
	CategoryID    *string      `json:"category_id,omitempty"`
	Frequency     string       `json:"frequency"`
	NextDue       string       `json:"next_due"`
	IsEMI         bool         `json:"is_emi"`
	IsActive      bool         `json:"is_active"`
	EMI           *EmiResponse `json:"emi,omitempty"`
}

// RecurringListResponse represents the response for listing recurring payments.
type RecurringListResponse struct {
	Recurring []RecurringResponse `json:"recurring"`
}

// LoanResponse represents the derived state of one installment loan.
type LoanResponse struct {
	RecurringID        string  `json:"recurring_id"`
	Description        string  `json:"description"`
	Amount             string  `json:"amount"`
	Frequency          string  `json:"frequency"`
	NextDue            string  `json:"next_due"`
	CurrentInstallment int     `json:"current_installment"`
	TotalInstallments  int     `json:"total_installments"`
	ProgressPercent    float64 `json:"progress_percent"`
	PaidToDate         string  `json:"paid_to_date"`
	RemainingAmount    string  `json:"remaining_amount"`
	DaysUntilDue       int     `json:"days_until_due"`
	Status             string  `json:"status"`
}

// EMISummaryResponse represents the loan summary of a profile.
type EMISummaryResponse struct {
	TotalEMIs           int                 `json:"total_emis"`
	TotalMonthlyPayment string              `json:"total_monthly_payment"`
	TotalOutstanding    string              `json:"total_outstanding"`
	OverdueCount        int                 `json:"overdue_count"`
	DueSoonCount        int                 `json:"due_soon_count"`
	UpcomingPayments    []LoanResponse      `json:"upcoming_payments"`
	Violations          []ViolationResponse `json:"violations"`
}

// ToRecurringResponse converts a domain RecurringTransaction entity to a RecurringResponse DTO.
func ToRecurringResponse(r *entity.RecurringTransaction) RecurringResponse {
	response := RecurringResponse{
		ID:            r.ID.String(),
		Description:   r.Description,
		Amount:        money(r.Amount),
		MonthlyAmount: money(r.MonthlyAmount()),
		Frequency:     string(r.Frequency),
		NextDue:       formatDate(r.NextDue),
		IsEMI:         r.IsEMI,
		IsActive:      r.IsActive,
		EMI:           toEmiResponse(r.EMI),
	}
	if r.CategoryID != nil {
		id := r.CategoryID.String()
		response.CategoryID = &id
	}
	return response
}

// ToRecurringListResponse converts recurring payments to a RecurringListResponse DTO.
func ToRecurringListResponse(items []*entity.RecurringTransaction) RecurringListResponse {
	responses := make([]RecurringResponse, 0, len(items))
	for _, r := range items {
		responses = append(responses, ToRecurringResponse(r))
	}
	return RecurringListResponse{Recurring: responses}
}

// ToEMISummaryResponse converts a loan summary to its API shape.
func ToEMISummaryResponse(s amortization.Summary) EMISummaryResponse {
	loans := make([]LoanResponse, 0, len(s.UpcomingPayments))
	for _, l := range s.UpcomingPayments {
		loans = append(loans, LoanResponse{
			RecurringID:        l.RecurringID.String(),
			Description:        l.Description,
			Amount:             money(l.Amount),
			Frequency:          string(l.Frequency),
			NextDue:            formatDate(l.NextDue),
			CurrentInstallment: l.CurrentInstallment,
			TotalInstallments:  l.TotalInstallments,
			ProgressPercent:    l.ProgressPercent,
			PaidToDate:         money(l.PaidToDate),
			RemainingAmount:    money(l.RemainingAmount),
			DaysUntilDue:       l.DaysUntilDue,
			Status:             string(l.Band),
		})
	}
	return EMISummaryResponse{
		TotalEMIs:           s.TotalEMIs,
		TotalMonthlyPayment: money(s.TotalMonthlyPayment),
		TotalOutstanding:    money(s.TotalOutstanding),
		OverdueCount:        s.OverdueCount,
		DueSoonCount:        s.DueSoonCount,
		UpcomingPayments:    loans,
		Violations:          []ViolationResponse{},
	}
}
