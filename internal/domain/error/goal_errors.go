// Package error defines domain-specific errors for the analytics engine.
package error

import "errors"

// Saving goal domain errors.
var (
	// ErrGoalNotFound is returned when a goal is not found in the system.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrInvalidGoalTarget is returned when the target amount is zero or negative.
	ErrInvalidGoalTarget = errors.New("goal target must be greater than zero")

	// ErrInvalidGoalCurrent is returned when the saved amount is negative.
	ErrInvalidGoalCurrent = errors.New("goal current amount must not be negative")

	// ErrGoalNameRequired is returned when a goal has no name.
	ErrGoalNameRequired = errors.New("goal name is required")
)

// GoalErrorCode defines error codes for goal errors.
// Format: GOL-XXYYYY where XX is category and YYYY is specific error.
type GoalErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeGoalNotFound       GoalErrorCode = "GOL-010001"
	ErrCodeInvalidGoalTarget  GoalErrorCode = "GOL-010002"
	ErrCodeInvalidGoalCurrent GoalErrorCode = "GOL-010003"
	ErrCodeGoalNameRequired   GoalErrorCode = "GOL-010004"
)

// GoalError represents a goal error with code and message.
type GoalError struct {
	Code    GoalErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *GoalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *GoalError) Unwrap() error {
	return e.Err
}

// NewGoalError creates a new GoalError with the given code and message.
func NewGoalError(code GoalErrorCode, message string, err error) *GoalError {
	return &GoalError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
