// Package error defines domain-specific errors for the analytics engine.
package error

import (
	"errors"
	"fmt"
)

// Analytics domain errors.
var (
	// ErrUnknownCategory is returned when an entity references a category that does not exist.
	ErrUnknownCategory = errors.New("referenced category does not exist")

	// ErrInvalidEmiDetail is returned when an installment detail breaks its invariants.
	ErrInvalidEmiDetail = errors.New("invalid installment detail")

	// ErrProviderFailure is returned when an advisory provider fails, times out or answers garbage.
	ErrProviderFailure = errors.New("advisory provider failure")

	// ErrInvalidPredictionPeriod is returned when a forecast period is not supported.
	ErrInvalidPredictionPeriod = errors.New("prediction period must be: next_week, next_month, or next_quarter")

	// ErrHealthScoreNotFound is returned when no health score was calculated for the profile yet.
	ErrHealthScoreNotFound = errors.New("health score not calculated yet")
)

// AnalyticsErrorCode defines error codes for analytics errors.
// Format: ANL-XXYYYY where XX is the error kind and YYYY is specific error.
type AnalyticsErrorCode string

const (
	// Input invariant violations (01XXXX)
	ErrCodeBudgetUnknownCategory AnalyticsErrorCode = "ANL-010001"
	ErrCodeInvalidEmiDetail      AnalyticsErrorCode = "ANL-010002"
	ErrCodeInvalidPeriod         AnalyticsErrorCode = "ANL-010003"
	ErrCodeHealthScoreNotFound   AnalyticsErrorCode = "ANL-010004"

	// Provider failures (02XXXX)
	ErrCodeProviderTimeout     AnalyticsErrorCode = "ANL-020001"
	ErrCodeProviderRateLimited AnalyticsErrorCode = "ANL-020002"
	ErrCodeProviderAuth        AnalyticsErrorCode = "ANL-020003"
	ErrCodeProviderUnavailable AnalyticsErrorCode = "ANL-020004"
	ErrCodeProviderParse       AnalyticsErrorCode = "ANL-020005"
	ErrCodeProviderUnknown     AnalyticsErrorCode = "ANL-020006"
)

// AnalyticsError represents an analytics error with code, message and the offending entity.
type AnalyticsError struct {
	Code     AnalyticsErrorCode
	Message  string
	EntityID string
	Err      error
}

// Error implements the error interface.
func (e *AnalyticsError) Error() string {
	msg := e.Message
	if e.EntityID != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.EntityID)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *AnalyticsError) Unwrap() error {
	return e.Err
}

// IsInputInvariantViolation reports whether the error describes bad input that was skipped.
func (e *AnalyticsError) IsInputInvariantViolation() bool {
	return len(e.Code) >= 6 && e.Code[4:6] == "01"
}

// IsProviderFailure reports whether the error describes a failed advisory provider call.
func (e *AnalyticsError) IsProviderFailure() bool {
	return len(e.Code) >= 6 && e.Code[4:6] == "02"
}

// NewAnalyticsError creates a new AnalyticsError with the given code and message.
func NewAnalyticsError(code AnalyticsErrorCode, message, entityID string, err error) *AnalyticsError {
	return &AnalyticsError{
		Code:     code,
		Message:  message,
		EntityID: entityID,
		Err:      err,
	}
}
