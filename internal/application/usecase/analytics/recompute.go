package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/analytics/internal/application/adapter"
	"github.com/finance-tracker/analytics/internal/application/usecase/health"
	"github.com/finance-tracker/analytics/internal/application/usecase/snapshot"
)

// RecomputeInput represents the input for a full recompute of one profile.
type RecomputeInput struct {
	ProfileID uuid.UUID
	Locale    string // Optional, defaults to the configured locale
}

// RecomputeOutput carries the derived state that was persisted.
type RecomputeOutput struct {
	State DerivedState
}

// RecomputeUseCase loads a snapshot, derives everything and replaces the stored predictions and health score.
type RecomputeUseCase struct {
	loader         *snapshot.Loader
	predictionRepo adapter.PredictionRepository
	healthRepo     adapter.HealthScoreRepository
	clock          adapter.Clock
	computer       *Computer
	elaborator     adapter.InsightElaborator
	defaultLocale  string
	timeout        time.Duration
}

// NewRecomputeUseCase creates a new RecomputeUseCase instance.
// elaborator may be nil.
func NewRecomputeUseCase(
	loader *snapshot.Loader,
	predictionRepo adapter.PredictionRepository,
	healthRepo adapter.HealthScoreRepository,
	clock adapter.Clock,
	computer *Computer,
	elaborator adapter.InsightElaborator,
	defaultLocale string,
	timeout time.Duration,
) *RecomputeUseCase {
	return &RecomputeUseCase{
		loader:         loader,
		predictionRepo: predictionRepo,
		healthRepo:     healthRepo,
		clock:          clock,
		computer:       computer,
		elaborator:     elaborator,
		defaultLocale:  defaultLocale,
		timeout:        timeout,
	}
}

// Execute performs the recompute.
func (uc *RecomputeUseCase) Execute(ctx context.Context, input RecomputeInput) (*RecomputeOutput, error) {
	s, err := uc.loader.Load(ctx, input.ProfileID)
	if err != nil {
		return nil, err
	}

	state := uc.computer.Recompute(s, uc.clock.Now())

	for _, v := range state.Violations {
		slog.Warn("Skipped entity during recompute",
			"profileID", input.ProfileID.String(),
			"code", v.Code,
			"entityID", v.EntityID,
			"error", v.Message,
		)
	}

	for _, period := range ForecastPeriods {
		if err := uc.predictionRepo.ReplaceForPeriod(ctx, input.ProfileID, period, state.Predictions[period]); err != nil {
			return nil, fmt.Errorf("failed to store %s predictions: %w", period, err)
		}
	}

	locale := input.Locale
	if locale == "" {
		locale = uc.defaultLocale
	}
	health.Elaborate(ctx, uc.elaborator, state.Health, locale, uc.timeout)

	if err := uc.healthRepo.Replace(ctx, state.Health); err != nil {
		return nil, fmt.Errorf("failed to store health score: %w", err)
	}

	slog.Info("Analytics recomputed",
		"profileID", input.ProfileID.String(),
		"budgets", len(state.BudgetStatuses),
		"loans", state.Loans.TotalEMIs,
		"overall", state.Health.Overall,
		"violations", len(state.Violations),
	)

	return &RecomputeOutput{State: state}, nil
}
