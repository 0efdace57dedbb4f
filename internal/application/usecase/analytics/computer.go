// Package analytics runs every calculator over one snapshot and persists the derived collections.
package analytics

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/analytics/internal/application/usecase/amortization"
	"github.com/finance-tracker/analytics/internal/application/usecase/budget"
	"github.com/finance-tracker/analytics/internal/application/usecase/forecast"
	"github.com/finance-tracker/analytics/internal/application/usecase/health"
	"github.com/finance-tracker/analytics/internal/application/usecase/ledger"
	"github.com/finance-tracker/analytics/internal/application/usecase/snapshot"
	"github.com/finance-tracker/analytics/internal/domain/entity"
	domainerror "github.com/finance-tracker/analytics/internal/domain/error"
)

// ForecastPeriods are the horizons regenerated on every recompute.
var ForecastPeriods = []entity.PredictionPeriod{
	entity.PredictionPeriodNextWeek,
	entity.PredictionPeriodNextMonth,
	entity.PredictionPeriodNextQuarter,
}

// DerivedState is everything computed from one snapshot at one instant.
type DerivedState struct {
	ProfileID      uuid.UUID
	ComputedAt     time.Time
	Categories     entity.CategoryIndex
	MonthTotals    ledger.Totals
	SavingsRate    float64
	EMIInFlight    decimal.Decimal
	BudgetStatuses []entity.BudgetStatus
	Loans          amortization.Summary
	Predictions    map[entity.PredictionPeriod][]*entity.Prediction
	Health         *entity.HealthScore
	Violations     []*domainerror.AnalyticsError
}

// Computer bundles the configured calculators.
type Computer struct {
	engine  *forecast.Engine
	scorer  *health.Scorer
	tracker amortization.Tracker
}

// NewComputer creates a new Computer instance.
func NewComputer(engine *forecast.Engine, scorer *health.Scorer, tracker amortization.Tracker) *Computer {
	return &Computer{
		engine:  engine,
		scorer:  scorer,
		tracker: tracker,
	}
}

// Recompute derives the full state of s. It does no I/O and returns the same result for the same input.
func (c *Computer) Recompute(s *snapshot.Snapshot, now time.Time) DerivedState {
	state := DerivedState{
		ProfileID:   s.ProfileID,
		ComputedAt:  now,
		Categories:  s.Categories,
		Predictions: make(map[entity.PredictionPeriod][]*entity.Prediction, len(ForecastPeriods)),
	}

	state.MonthTotals = ledger.Aggregate(s.Transactions, ledger.MonthWindow(now))
	state.SavingsRate = ledger.SavingsRate(state.MonthTotals)
	state.EMIInFlight = ledger.TotalEMIInFlight(s.Recurring)

	statuses, violations := budget.CalculateStatuses(s.Budgets, s.Transactions, s.Categories, now)
	state.BudgetStatuses = statuses
	state.Violations = append(state.Violations, violations...)

	loans, violations := c.tracker.Track(s.Recurring, now)
	state.Loans = loans
	state.Violations = append(state.Violations, violations...)

	for _, period := range ForecastPeriods {
		// Periods come from a fixed valid list, so Forecast cannot fail here.
		predictions, _ := c.engine.Forecast(s.ProfileID, s.Transactions, period, now)
		state.Predictions[period] = predictions
	}

	state.Health = c.scorer.Score(s.ProfileID, health.Inputs{
		Totals:         state.MonthTotals,
		BudgetStatuses: statuses,
		MonthlyEMI:     state.EMIInFlight,
		Goals:          s.Goals,
	}, now)

	return state
}
