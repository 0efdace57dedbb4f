// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/analytics/internal/domain/entity"
)

// AdviceContext is the bundle sent to advisory providers.
type AdviceContext struct {
	ProfileID          uuid.UUID
	RecentTransactions []*entity.Transaction
	Goals              []*entity.SavingGoal
	Budgets            []*entity.Budget
	Categories         entity.CategoryIndex
	Locale             string
}

// AdvisoryProvider defines an external source of financial advice.
type AdvisoryProvider interface {
	// ID returns the stable provider identifier used to tag its items.
	ID() string

	// Advise returns advice items for the context. Malformed answers must be returned as errors.
	Advise(ctx context.Context, adviceCtx *AdviceContext) ([]*entity.AdviceItem, error)

	// IsAvailable checks if the provider is properly configured.
	IsAvailable() bool
}

// InsightElaborator optionally rephrases rule-based recommendations in natural language.
type InsightElaborator interface {
	// Elaborate returns one rephrased string per input, in the same order.
	Elaborate(ctx context.Context, recommendations []string, locale string) ([]string, error)

	// IsAvailable checks if the elaborator is properly configured.
	IsAvailable() bool
}
