// Package error defines domain-specific errors for the analytics engine.
package error

import "errors"

// Recurring payment domain errors.
var (
	// ErrRecurringNotFound is returned when a recurring payment is not found.
	ErrRecurringNotFound = errors.New("recurring payment not found")

	// ErrInvalidFrequency is returned when the frequency is not supported.
	ErrInvalidFrequency = errors.New("frequency must be: daily, weekly, biweekly, monthly, quarterly, or yearly")

	// ErrInvalidRecurringAmount is returned when the amount is negative.
	ErrInvalidRecurringAmount = errors.New("invalid recurring amount")

	// ErrMissingNextDue is returned when the next due date is missing.
	ErrMissingNextDue = errors.New("next due date is required")
)

// RecurringErrorCode defines error codes for recurring payment errors.
// Format: REC-XXYYYY where XX is category and YYYY is specific error.
type RecurringErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeRecurringNotFound      RecurringErrorCode = "REC-010001"
	ErrCodeInvalidFrequency       RecurringErrorCode = "REC-010002"
	ErrCodeInvalidRecurringAmount RecurringErrorCode = "REC-010003"
	ErrCodeMissingNextDue         RecurringErrorCode = "REC-010004"
	ErrCodeInvalidRecurringEmi    RecurringErrorCode = "REC-010005"
	ErrCodeMissingRecurringFields RecurringErrorCode = "REC-010006"
)

// RecurringError represents a recurring payment error with code and message.
type RecurringError struct {
	Code    RecurringErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RecurringError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RecurringError) Unwrap() error {
	return e.Err
}

// NewRecurringError creates a new RecurringError with the given code and message.
func NewRecurringError(code RecurringErrorCode, message string, err error) *RecurringError {
	return &RecurringError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
