// Package budget contains budget lifecycle use cases and the budget status calculator.
package budget

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/analytics/internal/application/usecase/ledger"
	"github.com/finance-tracker/analytics/internal/domain/entity"
	domainerror "github.com/finance-tracker/analytics/internal/domain/error"
	"github.com/finance-tracker/analytics/internal/domain/valueobject"
)

var hundred = decimal.NewFromInt(100)

// CalculateStatuses maps every active budget to its spend in the current period window.
// Budgets whose category is missing from categories are skipped and reported as violations.
// Statuses are ordered by category ID, then budget ID.
func CalculateStatuses(
	budgets []*entity.Budget,
	transactions []*entity.Transaction,
	categories entity.CategoryIndex,
	now time.Time,
) ([]entity.BudgetStatus, []*domainerror.AnalyticsError) {
	statuses := make([]entity.BudgetStatus, 0, len(budgets))
	var violations []*domainerror.AnalyticsError

	// One fold per distinct period.
	totalsByPeriod := make(map[entity.BudgetPeriod]ledger.Totals, 3)

	for _, b := range budgets {
		if b == nil || !b.IsActive {
			continue
		}

		if _, ok := categories[b.CategoryID]; !ok {
			violations = append(violations, domainerror.NewAnalyticsError(
				domainerror.ErrCodeBudgetUnknownCategory,
				"budget references a category that does not exist",
				b.ID.String(),
				domainerror.ErrUnknownCategory,
			))
			continue
		}

		window := valueobject.BudgetWindow(b.Period, now)
		totals, ok := totalsByPeriod[b.Period]
		if !ok {
			totals = ledger.Aggregate(transactions, ledger.InWindow(window))
			totalsByPeriod[b.Period] = totals
		}

		statuses = append(statuses, Evaluate(b, totals.ByCategory[b.CategoryID], window))
	}

	sort.Slice(statuses, func(i, j int) bool {
		ci, cj := statuses[i].Budget.CategoryID.String(), statuses[j].Budget.CategoryID.String()
		if ci != cj {
			return ci < cj
		}
		return statuses[i].Budget.ID.String() < statuses[j].Budget.ID.String()
	})

	return statuses, violations
}

// Evaluate computes the status of one budget given what was spent in its window.
// A zero limit with no spend is 0% and compliant; a zero limit with any spend is
// over budget and reported as 100%.
func Evaluate(b *entity.Budget, spent decimal.Decimal, window valueobject.Window) entity.BudgetStatus {
	status := entity.BudgetStatus{
		Budget:      b,
		Spent:       spent,
		Remaining:   b.Amount.Sub(spent),
		PeriodStart: window.Start,
		PeriodEnd:   window.LastDay(),
	}

	if !b.Amount.IsPositive() {
		if spent.IsPositive() {
			status.Percentage = 100
			status.IsOverBudget = true
		}
		return status
	}

	status.Percentage, _ = spent.Div(b.Amount).Mul(hundred).Float64()
	status.IsOverBudget = spent.GreaterThan(b.Amount)
	status.IsNearLimit = !status.IsOverBudget && status.Percentage >= float64(b.AlertThreshold)

	return status
}
