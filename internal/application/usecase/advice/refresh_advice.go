// Package advice collects, ranks and tracks advisory recommendations from external providers.
package advice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/analytics/internal/application/adapter"
	"github.com/finance-tracker/analytics/internal/application/usecase/snapshot"
	"github.com/finance-tracker/analytics/internal/domain/entity"
	domainerror "github.com/finance-tracker/analytics/internal/domain/error"
)

const (
	// RecentWindow is how far back transactions are sent to providers.
	RecentWindow = 90 * 24 * time.Hour
	// MaxRecentTransactions caps the transactions sent to providers.
	MaxRecentTransactions = 200
)

// RefreshAdviceInput represents the input for an advice refresh.
type RefreshAdviceInput struct {
	ProfileID uuid.UUID
	Locale    string // Optional, defaults to the configured locale
}

// RefreshAdviceOutput represents the refreshed feed.
type RefreshAdviceOutput struct {
	Sequence int64
	Items    []*entity.AdviceItem
	Failures []*domainerror.AnalyticsError
}

// RefreshAdviceUseCase regenerates a profile's advice feed.
// Concurrent refreshes of one profile are ordered by sequence: a newer refresh cancels the older
// one, and a late result never replaces a newer feed.
type RefreshAdviceUseCase struct {
	loader        *snapshot.Loader
	adviceRepo    adapter.AdviceRepository
	aggregator    *Aggregator
	issuer        adapter.SequenceIssuer
	tracker       RefreshTracker
	clock         adapter.Clock
	defaultLocale string
}

// NewRefreshAdviceUseCase creates a new RefreshAdviceUseCase instance.
func NewRefreshAdviceUseCase(
	loader *snapshot.Loader,
	adviceRepo adapter.AdviceRepository,
	aggregator *Aggregator,
	issuer adapter.SequenceIssuer,
	tracker RefreshTracker,
	clock adapter.Clock,
	defaultLocale string,
) *RefreshAdviceUseCase {
	if defaultLocale == "" {
		defaultLocale = DefaultLocale
	}
	return &RefreshAdviceUseCase{
		loader:        loader,
		adviceRepo:    adviceRepo,
		aggregator:    aggregator,
		issuer:        issuer,
		tracker:       tracker,
		clock:         clock,
		defaultLocale: defaultLocale,
	}
}

// Execute performs the refresh.
func (uc *RefreshAdviceUseCase) Execute(ctx context.Context, input RefreshAdviceInput) (*RefreshAdviceOutput, error) {
	sequence, err := uc.issuer.Next(ctx, input.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh sequence: %w", err)
	}

	refreshCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	uc.tracker.Begin(input.ProfileID, sequence, cancel)
	defer uc.tracker.Finish(input.ProfileID, sequence)

	s, err := uc.loader.Load(refreshCtx, input.ProfileID)
	if err != nil {
		if !uc.tracker.IsCurrent(input.ProfileID, sequence) {
			return nil, superseded(sequence)
		}
		return nil, err
	}

	locale := input.Locale
	if locale == "" {
		locale = uc.defaultLocale
	}
	adviceCtx := BuildContext(s, locale, uc.clock.Now())

	items, failures := uc.aggregator.Collect(refreshCtx, adviceCtx)

	if !uc.tracker.IsCurrent(input.ProfileID, sequence) {
		return nil, superseded(sequence)
	}

	// The write uses the caller context: the refresh context may already be cancelled by a
	// newer refresh, in which case ReplaceIfNewer rejects the write anyway.
	stored, err := uc.adviceRepo.ReplaceIfNewer(ctx, input.ProfileID, sequence, items)
	if err != nil {
		return nil, fmt.Errorf("failed to store advice: %w", err)
	}
	if !stored {
		return nil, superseded(sequence)
	}

	uc.tracker.SetFailures(input.ProfileID, failures)

	slog.Info("Advice refreshed",
		"profileID", input.ProfileID.String(),
		"sequence", sequence,
		"items", len(items),
		"providerFailures", len(failures),
	)

	return &RefreshAdviceOutput{Sequence: sequence, Items: items, Failures: failures}, nil
}

// BuildContext assembles the provider context from a snapshot.
func BuildContext(s *snapshot.Snapshot, locale string, now time.Time) *adapter.AdviceContext {
	since := now.Add(-RecentWindow)

	recent := make([]*entity.Transaction, 0, MaxRecentTransactions)
	// Snapshot is ordered oldest first; walk backwards to keep the newest.
	for i := len(s.Transactions) - 1; i >= 0 && len(recent) < MaxRecentTransactions; i-- {
		tx := s.Transactions[i]
		if tx.Date.Before(since) {
			break
		}
		recent = append(recent, tx)
	}

	return &adapter.AdviceContext{
		ProfileID:          s.ProfileID,
		RecentTransactions: recent,
		Goals:              s.Goals,
		Budgets:            s.Budgets,
		Categories:         s.Categories,
		Locale:             locale,
	}
}

func superseded(sequence int64) error {
	return domainerror.NewAdviceError(
		domainerror.ErrCodeAdviceRefreshSuperseded,
		fmt.Sprintf("refresh %d was superseded by a newer refresh", sequence),
		domainerror.ErrAdviceRefreshSuperseded,
	)
}
