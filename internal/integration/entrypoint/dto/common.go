// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	domainerror "github.com/finance-tracker/analytics/internal/domain/error"
)

// DateLayout is the calendar date format used by requests and responses.
const DateLayout = "2006-01-02"

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message"`
}

// ViolationResponse describes a record skipped during a computation.
type ViolationResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	EntityID string `json:"entity_id,omitempty"`
}

// ToViolationResponses converts analytics errors to their API shape.
func ToViolationResponses(errs []*domainerror.AnalyticsError) []ViolationResponse {
	responses := make([]ViolationResponse, 0, len(errs))
	for _, e := range errs {
		responses = append(responses, ViolationResponse{
			Code:     string(e.Code),
			Message:  e.Message,
			EntityID: e.EntityID,
		})
	}
	return responses
}

// EmiRequest describes the installment detail of a loan payment.
type EmiRequest struct {
	LoanAmount         decimal.Decimal `json:"loan_amount"`
	Principal          decimal.Decimal `json:"principal"`
	Interest           decimal.Decimal `json:"interest"`
	CurrentInstallment int             `json:"current_installment" binding:"required,min=1"`
	TotalInstallments  int             `json:"total_installments" binding:"required,min=1"`
}

// EmiResponse represents installment detail in API responses.
type EmiResponse struct {
	LoanAmount         string `json:"loan_amount"`
	Principal          string `json:"principal"`
	Interest           string `json:"interest"`
	CurrentInstallment int    `json:"current_installment"`
	TotalInstallments  int    `json:"total_installments"`
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func formatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a calendar date in DateLayout as UTC midnight.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, time.UTC)
}

// ParseOptionalDate parses value when it is set.
func ParseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
