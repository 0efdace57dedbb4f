// Package advice collects, ranks and tracks advisory recommendations from external providers.
package advice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/finance-tracker/analytics/internal/application/adapter"
	"github.com/finance-tracker/analytics/internal/domain/entity"
	domainerror "github.com/finance-tracker/analytics/internal/domain/error"
)

// DefaultProviderTimeout bounds a single provider call.
const DefaultProviderTimeout = 20 * time.Second

// AggregatorConfig configures an Aggregator.
type AggregatorConfig struct {
	ProviderTimeout time.Duration
	Dedup           bool
}

// Aggregator fans out to every provider and merges their items into one ranked feed.
type Aggregator struct {
	providers []adapter.AdvisoryProvider
	fallbacks FallbackCatalog
	clock     adapter.Clock
	cfg       AggregatorConfig
}

// NewAggregator creates a new Aggregator.
func NewAggregator(
	providers []adapter.AdvisoryProvider,
	fallbacks FallbackCatalog,
	clock adapter.Clock,
	cfg AggregatorConfig,
) *Aggregator {
	if cfg.ProviderTimeout <= 0 {
		cfg.ProviderTimeout = DefaultProviderTimeout
	}
	if fallbacks == nil {
		fallbacks = DefaultFallbacks()
	}
	return &Aggregator{
		providers: providers,
		fallbacks: fallbacks,
		clock:     clock,
		cfg:       cfg,
	}
}

// ProviderIDs returns the registered provider IDs in registration order.
func (a *Aggregator) ProviderIDs() []string {
	ids := make([]string, 0, len(a.providers))
	for _, p := range a.providers {
		ids = append(ids, p.ID())
	}
	return ids
}

type providerResult struct {
	items   []*entity.AdviceItem
	failure *domainerror.AnalyticsError
}

// Collect queries every provider concurrently. A provider that fails, times out or is not
// configured contributes its static fallback set instead. Collect never fails; the returned
// failures are informational.
func (a *Aggregator) Collect(ctx context.Context, adviceCtx *adapter.AdviceContext) ([]*entity.AdviceItem, []*domainerror.AnalyticsError) {
	results := make([]providerResult, len(a.providers))
	now := a.clock.Now()

	var g errgroup.Group
	for i, p := range a.providers {
		i, p := i, p
		g.Go(func() error {
			results[i] = a.query(ctx, p, adviceCtx, now)
			return nil
		})
	}
	_ = g.Wait()

	var (
		items    []*entity.AdviceItem
		failures []*domainerror.AnalyticsError
	)
	for _, r := range results {
		items = append(items, r.items...)
		if r.failure != nil {
			failures = append(failures, r.failure)
		}
	}

	Rank(items)
	if a.cfg.Dedup {
		items = Dedup(items)
	}
	if items == nil {
		items = []*entity.AdviceItem{}
	}

	return items, failures
}

func (a *Aggregator) query(
	ctx context.Context,
	p adapter.AdvisoryProvider,
	adviceCtx *adapter.AdviceContext,
	now time.Time,
) providerResult {
	providerID := p.ID()

	items, err := a.call(ctx, p, adviceCtx)
	if err == nil {
		items = normalize(items, providerID, adviceCtx.ProfileID, now)
		if len(items) == 0 {
			err = errors.New("malformed answer: no usable advice items")
		}
	}
	if err != nil {
		failure := classifyFailure(providerID, err)
		slog.Warn("Advisory provider failed, using fallback advice",
			"providerID", providerID,
			"profileID", adviceCtx.ProfileID.String(),
			"code", string(failure.Code),
			"retryable", IsRetryable(failure),
			"error", err.Error(),
		)
		return providerResult{
			items:   a.fallbacks.Items(providerID, adviceCtx.Locale, adviceCtx.ProfileID, now),
			failure: failure,
		}
	}

	return providerResult{items: items}
}

// call runs one provider with its own deadline. It returns as soon as the deadline passes
// even if the provider ignores its context.
func (a *Aggregator) call(
	ctx context.Context,
	p adapter.AdvisoryProvider,
	adviceCtx *adapter.AdviceContext,
) ([]*entity.AdviceItem, error) {
	if !p.IsAvailable() {
		return nil, fmt.Errorf("provider %s is not configured", p.ID())
	}

	ctx, cancel := context.WithTimeout(ctx, a.cfg.ProviderTimeout)
	defer cancel()

	type answer struct {
		items []*entity.AdviceItem
		err   error
	}
	done := make(chan answer, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- answer{err: fmt.Errorf("provider panicked: %v", r)}
			}
		}()
		items, err := p.Advise(ctx, adviceCtx)
		done <- answer{items: items, err: err}
	}()

	select {
	case res := <-done:
		return res.items, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// normalize tags items with their provider and repairs out-of-range fields.
// Items without a title and content are dropped.
func normalize(items []*entity.AdviceItem, providerID string, profileID uuid.UUID, now time.Time) []*entity.AdviceItem {
	out := make([]*entity.AdviceItem, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		item.Title = strings.TrimSpace(item.Title)
		item.Content = strings.TrimSpace(item.Content)
		if item.Title == "" && item.Content == "" {
			continue
		}

		item.ProviderID = providerID
		item.ProfileID = profileID
		item.IsRead = false
		item.IsFallback = false
		item.DismissedAt = nil
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		if item.CreatedAt.IsZero() {
			item.CreatedAt = now
		}

		priority := entity.AdvicePriority(strings.ToLower(string(item.Priority)))
		if !priority.IsValid() {
			priority = entity.AdvicePriorityLow
		}
		item.Priority = priority

		switch {
		case math.IsNaN(item.Confidence) || item.Confidence < 0:
			item.Confidence = 0
		case item.Confidence > 1:
			item.Confidence = 1
		}

		out = append(out, item)
	}
	return out
}
