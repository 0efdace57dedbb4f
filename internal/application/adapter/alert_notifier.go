// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ResendID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// TemplateRenderer renders a named template into its HTML and plain-text bodies.
type TemplateRenderer interface {
	Render(templateName string, data any) (html string, text string, err error)
}
