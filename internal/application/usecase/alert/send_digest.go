package alert

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/finance-tracker/analytics/internal/application/adapter"
	"github.com/finance-tracker/analytics/internal/application/usecase/analytics"
	domainerror "github.com/finance-tracker/analytics/internal/domain/error"
)

// SendDigestInput represents the input for sending an alert digest.
type SendDigestInput struct {
	State analytics.DerivedState
}

// SendDigestOutput reports what was sent.
type SendDigestOutput struct {
	Sent     bool
	ResendID string
	Digest   Digest
}

// SendDigestUseCase emails the alert digest of a freshly recomputed profile.
type SendDigestUseCase struct {
	sender    adapter.EmailSender
	renderer  adapter.TemplateRenderer
	recipient string
}

// NewSendDigestUseCase creates a new SendDigestUseCase instance.
// With an empty recipient every digest is skipped.
func NewSendDigestUseCase(sender adapter.EmailSender, renderer adapter.TemplateRenderer, recipient string) *SendDigestUseCase {
	return &SendDigestUseCase{
		sender:    sender,
		renderer:  renderer,
		recipient: recipient,
	}
}

// Execute builds the digest and sends it when there is something to report.
func (uc *SendDigestUseCase) Execute(ctx context.Context, input SendDigestInput) (*SendDigestOutput, error) {
	digest := BuildDigest(input.State)
	output := &SendDigestOutput{Digest: digest}

	if digest.IsEmpty() || uc.recipient == "" {
		return output, nil
	}

	html, text, err := uc.renderer.Render(DigestTemplate, digest)
	if err != nil {
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeTemplateRenderFailed,
			"failed to render alert digest",
			fmt.Errorf("%w: %w", domainerror.ErrTemplateRenderFailed, err),
		)
	}

	result, err := uc.sender.Send(ctx, adapter.SendEmailInput{
		To:      uc.recipient,
		Subject: subject(digest),
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to send alert digest: %w", err)
	}

	slog.Info("Alert digest sent",
		"profileID", digest.ProfileID.String(),
		"overBudget", len(digest.OverBudget),
		"overdueLoans", len(digest.OverdueLoans),
		"highRisk", digest.HighRisk,
		"resendID", result.ResendID,
	)

	output.Sent = true
	output.ResendID = result.ResendID
	return output, nil
}

func subject(d Digest) string {
	switch {
	case len(d.OverdueLoans) > 0:
		return fmt.Sprintf("%d overdue installment(s) need attention", len(d.OverdueLoans))
	case len(d.OverBudget) > 0:
		return fmt.Sprintf("%d budget(s) exceeded", len(d.OverBudget))
	case d.HighRisk:
		return "Your financial health score needs attention"
	default:
		return "Upcoming payments and budget alerts"
	}
}
