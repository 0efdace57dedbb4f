// Package error defines domain-specific errors for the analytics engine.
package error

import "errors"

// Alert email errors.
var (
	// ErrEmailSendFailed is returned when an email fails to be sent.
	ErrEmailSendFailed = errors.New("failed to send email")

	// ErrTemplateRenderFailed is returned when email template rendering fails.
	ErrTemplateRenderFailed = errors.New("failed to render email template")

	// ErrPermanentEmailFailure is returned when the provider rejects an email for good.
	ErrPermanentEmailFailure = errors.New("permanent email failure")
)

// EmailErrorCode defines error codes for email errors.
// Format: EMAIL-XXYYYY where XX is category and YYYY is specific error.
type EmailErrorCode string

const (
	// Send errors (02XXXX)
	ErrCodeEmailSendFailed       EmailErrorCode = "EMAIL-020001"
	ErrCodePermanentEmailFailure EmailErrorCode = "EMAIL-020002"
	ErrCodeTemporaryEmailFailure EmailErrorCode = "EMAIL-020003"

	// Template errors (03XXXX)
	ErrCodeTemplateRenderFailed EmailErrorCode = "EMAIL-030002"
)

// EmailError represents an email error with code and message.
type EmailError struct {
	Code    EmailErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *EmailError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *EmailError) Unwrap() error {
	return e.Err
}

// NewEmailError creates a new EmailError with the given code and message.
func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return &EmailError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
