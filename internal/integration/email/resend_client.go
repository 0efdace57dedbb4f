// Package email delivers alert digests through Resend.
package email

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/resend/resend-go/v2"

	"github.com/finance-tracker/analytics/internal/application/adapter"
	domainerror "github.com/finance-tracker/analytics/internal/domain/error"
)

// ResendClient implements adapter.EmailSender on the Resend API.
type ResendClient struct {
	client *resend.Client
	from   string
}

// NewResendClient creates a new Resend client.
func NewResendClient(apiKey, fromName, fromEmail string) *ResendClient {
	return &ResendClient{
		client: resend.NewClient(apiKey),
		from:   fmt.Sprintf("%s <%s>", fromName, fromEmail),
	}
}

// Send delivers one email.
func (c *ResendClient) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	resp, err := c.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{input.To},
		Subject: input.Subject,
		Html:    input.HTML,
		Text:    input.Text,
	})
	if err != nil {
		return nil, classifySendError(err)
	}

	return &adapter.SendEmailResult{ResendID: resp.Id}, nil
}

// classifySendError wraps a provider error so callers can tell rejections from outages.
func classifySendError(err error) *domainerror.EmailError {
	if isPermanentError(err) {
		return domainerror.NewEmailError(
			domainerror.ErrCodePermanentEmailFailure,
			"permanent email failure",
			fmt.Errorf("%w: %w", domainerror.ErrPermanentEmailFailure, err),
		)
	}
	return domainerror.NewEmailError(
		domainerror.ErrCodeTemporaryEmailFailure,
		"temporary email failure",
		fmt.Errorf("%w: %w", domainerror.ErrEmailSendFailed, err),
	)
}

// permanentPatterns mark rejections that will fail again on retry (401, 403, 422).
// Rate limits and 5xx responses are temporary.
var permanentPatterns = []string{
	"401",
	"403",
	"422",
	"unauthorized",
	"forbidden",
	"validation",
	"invalid",
	"bad request",
}

func isPermanentError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, pattern := range permanentPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

// RecordingSender keeps sent emails in memory. It backs the digest when no API key is configured
// and the integration suite.
type RecordingSender struct {
	mu   sync.Mutex
	sent []adapter.SendEmailInput
	Err  error
}

// NewRecordingSender creates a new RecordingSender.
func NewRecordingSender() *RecordingSender {
	return &RecordingSender{}
}

// Send records the email, or fails with Err when set.
func (s *RecordingSender) Send(_ context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeEmailSendFailed,
			"recording sender failure",
			fmt.Errorf("%w: %w", domainerror.ErrEmailSendFailed, s.Err),
		)
	}
	s.sent = append(s.sent, input)
	return &adapter.SendEmailResult{ResendID: fmt.Sprintf("local-%d", len(s.sent))}, nil
}

// Sent returns a copy of the recorded emails.
func (s *RecordingSender) Sent() []adapter.SendEmailInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]adapter.SendEmailInput(nil), s.sent...)
}

var (
	_ adapter.EmailSender = (*ResendClient)(nil)
	_ adapter.EmailSender = (*RecordingSender)(nil)
)
