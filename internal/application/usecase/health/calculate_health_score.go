// Package health composes the financial health score and its rule-based insights.
package health

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/analytics/internal/application/adapter"
	"github.com/finance-tracker/analytics/internal/application/usecase/budget"
	"github.com/finance-tracker/analytics/internal/application/usecase/ledger"
	"github.com/finance-tracker/analytics/internal/application/usecase/snapshot"
	"github.com/finance-tracker/analytics/internal/domain/entity"
)

// DefaultElaborationTimeout bounds the optional rephrasing call.
const DefaultElaborationTimeout = 10 * time.Second

// BuildInputs derives scorer inputs from a snapshot.
func BuildInputs(s *snapshot.Snapshot, now time.Time) Inputs {
	statuses, _ := budget.CalculateStatuses(s.Budgets, s.Transactions, s.Categories, now)
	return Inputs{
		Totals:         ledger.Aggregate(s.Transactions, ledger.MonthWindow(now)),
		BudgetStatuses: statuses,
		MonthlyEMI:     ledger.TotalEMIInFlight(s.Recurring),
		Goals:          s.Goals,
	}
}

// Elaborate rephrases the score's recommendations when the elaborator is usable.
// Any failure keeps the rule text.
func Elaborate(ctx context.Context, elaborator adapter.InsightElaborator, score *entity.HealthScore, locale string, timeout time.Duration) {
	if elaborator == nil || !elaborator.IsAvailable() || len(score.Recommendations) == 0 {
		return
	}
	if timeout <= 0 {
		timeout = DefaultElaborationTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	rephrased, err := elaborator.Elaborate(ctx, score.Recommendations, locale)
	if err != nil {
		slog.Warn("Recommendation elaboration failed, keeping rule text",
			"profileID", score.ProfileID.String(),
			"error", err.Error(),
		)
		return
	}
	if len(rephrased) != len(score.Recommendations) {
		slog.Warn("Recommendation elaboration returned a different count, keeping rule text",
			"profileID", score.ProfileID.String(),
			"expected", len(score.Recommendations),
			"got", len(rephrased),
		)
		return
	}

	score.Recommendations = rephrased
}

// CalculateHealthScoreInput represents the input for a health score recompute.
type CalculateHealthScoreInput struct {
	ProfileID uuid.UUID
	Locale    string // Optional, defaults to the configured locale
}

// CalculateHealthScoreOutput represents the new health score.
type CalculateHealthScoreOutput struct {
	Score *entity.HealthScore
}

// CalculateHealthScoreUseCase recomputes and replaces a profile's health score.
type CalculateHealthScoreUseCase struct {
	loader        *snapshot.Loader
	healthRepo    adapter.HealthScoreRepository
	clock         adapter.Clock
	scorer        *Scorer
	elaborator    adapter.InsightElaborator
	defaultLocale string
	timeout       time.Duration
}

// NewCalculateHealthScoreUseCase creates a new CalculateHealthScoreUseCase instance.
// elaborator may be nil.
func NewCalculateHealthScoreUseCase(
	loader *snapshot.Loader,
	healthRepo adapter.HealthScoreRepository,
	clock adapter.Clock,
	scorer *Scorer,
	elaborator adapter.InsightElaborator,
	defaultLocale string,
	timeout time.Duration,
) *CalculateHealthScoreUseCase {
	return &CalculateHealthScoreUseCase{
		loader:        loader,
		healthRepo:    healthRepo,
		clock:         clock,
		scorer:        scorer,
		elaborator:    elaborator,
		defaultLocale: defaultLocale,
		timeout:       timeout,
	}
}

// Execute performs the recompute.
func (uc *CalculateHealthScoreUseCase) Execute(ctx context.Context, input CalculateHealthScoreInput) (*CalculateHealthScoreOutput, error) {
	s, err := uc.loader.Load(ctx, input.ProfileID)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	score := uc.scorer.Score(input.ProfileID, BuildInputs(s, now), now)

	locale := input.Locale
	if locale == "" {
		locale = uc.defaultLocale
	}
	Elaborate(ctx, uc.elaborator, score, locale, uc.timeout)

	if err := uc.healthRepo.Replace(ctx, score); err != nil {
		return nil, fmt.Errorf("failed to store health score: %w", err)
	}

	return &CalculateHealthScoreOutput{Score: score}, nil
}

// GetHealthScoreUseCase reads the last computed score.
type GetHealthScoreUseCase struct {
	healthRepo adapter.HealthScoreRepository
}

// NewGetHealthScoreUseCase creates a new GetHealthScoreUseCase instance.
func NewGetHealthScoreUseCase(healthRepo adapter.HealthScoreRepository) *GetHealthScoreUseCase {
	return &GetHealthScoreUseCase{
		healthRepo: healthRepo,
	}
}

// Execute returns the stored score, or nil when none exists.
func (uc *GetHealthScoreUseCase) Execute(ctx context.Context, profileID uuid.UUID) (*entity.HealthScore, error) {
	score, err := uc.healthRepo.FindByProfile(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load health score: %w", err)
	}
	return score, nil
}
