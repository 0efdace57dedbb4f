// Package amortization derives installment-loan progress and due status from recurring payments.
package amortization

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/analytics/internal/application/adapter"
	domainerror "github.com/finance-tracker/analytics/internal/domain/error"
)

// GetEMISummaryInput represents the input for the loan summary.
type GetEMISummaryInput struct {
	ProfileID uuid.UUID
}

// GetEMISummaryOutput represents the loan summary plus skipped loans.
type GetEMISummaryOutput struct {
	Summary    Summary
	Violations []*domainerror.AnalyticsError
}

// GetEMISummaryUseCase loads recurring payments and runs the tracker.
type GetEMISummaryUseCase struct {
	recurringRepo adapter.RecurringRepository
	clock         adapter.Clock
	tracker       Tracker
}

// NewGetEMISummaryUseCase creates a new GetEMISummaryUseCase instance.
func NewGetEMISummaryUseCase(recurringRepo adapter.RecurringRepository, clock adapter.Clock, tracker Tracker) *GetEMISummaryUseCase {
	return &GetEMISummaryUseCase{
		recurringRepo: recurringRepo,
		clock:         clock,
		tracker:       tracker,
	}
}

// Execute computes the summary.
func (uc *GetEMISummaryUseCase) Execute(ctx context.Context, input GetEMISummaryInput) (*GetEMISummaryOutput, error) {
	recurring, err := uc.recurringRepo.FindByProfile(ctx, input.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load recurring payments: %w", err)
	}

	summary, violations := uc.tracker.Track(recurring, uc.clock.Now())
	for _, v := range violations {
		slog.Warn("Installment loan skipped",
			"profileID", input.ProfileID.String(),
			"recurringID", v.EntityID,
			"error", v.Error(),
		)
	}

	return &GetEMISummaryOutput{Summary: summary, Violations: violations}, nil
}
