// Package error defines domain-specific errors for the analytics engine.
package error

import "errors"

// Advice domain errors.
var (
	// ErrAdviceNotFound is returned when an advice item is not in the profile's feed.
	ErrAdviceNotFound = errors.New("advice not found")

	// ErrAdviceDismissed is returned when acting on an advice item that was dismissed.
	ErrAdviceDismissed = errors.New("advice was dismissed")

	// ErrAdviceRefreshSuperseded is returned when a newer refresh already replaced the feed.
	ErrAdviceRefreshSuperseded = errors.New("advice refresh superseded by a newer request")
)

// AdviceErrorCode defines error codes for advice errors.
// Format: ADV-XXYYYY where XX is category and YYYY is specific error.
type AdviceErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeAdviceNotFound  AdviceErrorCode = "ADV-010001"
	ErrCodeAdviceDismissed AdviceErrorCode = "ADV-010002"
	ErrCodeInvalidAdviceID AdviceErrorCode = "ADV-010003"

	// Concurrency errors (02XXXX)
	ErrCodeAdviceRefreshSuperseded AdviceErrorCode = "ADV-020001"
)

// AdviceError represents an advice error with code and message.
type AdviceError struct {
	Code    AdviceErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AdviceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AdviceError) Unwrap() error {
	return e.Err
}

// NewAdviceError creates a new AdviceError with the given code and message.
func NewAdviceError(code AdviceErrorCode, message string, err error) *AdviceError {
	return &AdviceError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
