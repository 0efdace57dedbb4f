// Package error defines domain-specific errors for the analytics engine.
package error

import "errors"

// Budget domain errors.
var (
	// ErrBudgetNotFound is returned when a budget is not found in the system.
	ErrBudgetNotFound = errors.New("budget not found")

	// ErrBudgetAlreadyExists is returned when the category already has an active budget.
	ErrBudgetAlreadyExists = errors.New("an active budget already exists for this category")

	// ErrInvalidBudgetAmount is returned when the budget amount is negative.
	ErrInvalidBudgetAmount = errors.New("invalid budget amount")

	// ErrInvalidBudgetPeriod is returned when the budget period is invalid.
	ErrInvalidBudgetPeriod = errors.New("budget period must be: weekly, monthly, or yearly")

	// ErrInvalidAlertThreshold is returned when the alert threshold is outside 1-100.
	ErrInvalidAlertThreshold = errors.New("alert threshold must be between 1 and 100")

	// ErrBudgetCategoryNotFound is returned when the budget's category is not found.
	ErrBudgetCategoryNotFound = errors.New("category not found")
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BUD-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeBudgetNotFound         BudgetErrorCode = "BUD-010001"
	ErrCodeBudgetAlreadyExists    BudgetErrorCode = "BUD-010002"
	ErrCodeInvalidBudgetAmount    BudgetErrorCode = "BUD-010003"
	ErrCodeInvalidBudgetPeriod    BudgetErrorCode = "BUD-010004"
	ErrCodeInvalidAlertThreshold  BudgetErrorCode = "BUD-010005"
	ErrCodeBudgetCategoryNotFound BudgetErrorCode = "BUD-010006"
)

// BudgetError represents a budget error with code and message.
type BudgetError struct {
	Code    BudgetErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return &BudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
