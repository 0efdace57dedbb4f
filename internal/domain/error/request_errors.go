// Package error defines domain-specific errors for the analytics engine.
package error

import "errors"

// Request-level errors shared by every endpoint.
var (
	// ErrMissingProfile is returned when the request does not identify a profile.
	ErrMissingProfile = errors.New("profile id is required")

	// ErrInvalidProfile is returned when the profile header is not a valid UUID.
	ErrInvalidProfile = errors.New("profile id must be a valid UUID")

	// ErrRateLimited is returned when a client exceeds the request allowance.
	ErrRateLimited = errors.New("too many requests")
)

// RequestErrorCode defines error codes for request-level errors.
// Format: REQ-XXYYYY where XX is category and YYYY is specific error.
type RequestErrorCode string

const (
	ErrCodeMissingProfile RequestErrorCode = "REQ-010001"
	ErrCodeInvalidProfile RequestErrorCode = "REQ-010002"
	ErrCodeInvalidBody    RequestErrorCode = "REQ-010003"
	ErrCodeInvalidQuery   RequestErrorCode = "REQ-010004"
	ErrCodeRateLimited    RequestErrorCode = "REQ-020001"
	ErrCodeInternalError  RequestErrorCode = "REQ-990001"
)
