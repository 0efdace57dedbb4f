// Package ledger folds the transaction ledger into income, expense and category totals.
package ledger

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/analytics/internal/domain/entity"
	"github.com/finance-tracker/analytics/internal/domain/valueobject"
)

// Window selects which transaction dates are part of a report.
type Window func(date time.Time) bool

// AllTime accepts every date.
func AllTime(time.Time) bool { return true }

// InWindow adapts a value-object window into a Window predicate.
func InWindow(w valueobject.Window) Window {
	return w.Contains
}

// MonthWindow selects the calendar month containing now.
func MonthWindow(now time.Time) Window {
	return InWindow(valueobject.CalendarMonth(now))
}

// Totals is the result of folding transactions over a window.
type Totals struct {
	TotalIncome      decimal.Decimal
	TotalExpense     decimal.Decimal
	NetIncome        decimal.Decimal
	ByCategory       map[uuid.UUID]decimal.Decimal // Expenses only
	TransactionCount int
}

// CategoryTotal is the expense sum of one category.
type CategoryTotal struct {
	CategoryID uuid.UUID
	Amount     decimal.Decimal
}

// Aggregate sums the transactions whose date is accepted by window.
// A nil window behaves like AllTime.
func Aggregate(transactions []*entity.Transaction, window Window) Totals {
	if window == nil {
		window = AllTime
	}

	totals := Totals{
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
		ByCategory:   make(map[uuid.UUID]decimal.Decimal),
	}

	for _, tx := range transactions {
		if tx == nil || !window(tx.Date) {
			continue
		}
		totals.TransactionCount++

		switch tx.Type {
		case entity.TransactionTypeIncome:
			totals.TotalIncome = totals.TotalIncome.Add(tx.Amount)
		case entity.TransactionTypeExpense:
			totals.TotalExpense = totals.TotalExpense.Add(tx.Amount)
			totals.ByCategory[tx.CategoryID] = totals.ByCategory[tx.CategoryID].Add(tx.Amount)
		}
	}

	totals.NetIncome = totals.TotalIncome.Sub(totals.TotalExpense)
	return totals
}

// SavingsRate returns net income as a percentage of income, or 0 when there is no income.
func SavingsRate(totals Totals) float64 {
	if !totals.TotalIncome.IsPositive() {
		return 0
	}
	rate, _ := totals.NetIncome.Div(totals.TotalIncome).Mul(decimal.NewFromInt(100)).Float64()
	return rate
}

// TotalEMIInFlight sums the monthly-equivalent amount of every active installment loan.
func TotalEMIInFlight(recurring []*entity.RecurringTransaction) decimal.Decimal {
	total := decimal.Zero
	for _, r := range recurring {
		if r == nil || !r.IsActiveEMI() {
			continue
		}
		total = total.Add(r.MonthlyAmount())
	}
	return total
}

// RankCategories orders category totals by amount, largest first, ties by category ID.
// When limit is positive only the first limit entries are returned.
func RankCategories(byCategory map[uuid.UUID]decimal.Decimal, limit int) []CategoryTotal {
	ranked := make([]CategoryTotal, 0, len(byCategory))
	for id, amount := range byCategory {
		ranked = append(ranked, CategoryTotal{CategoryID: id, Amount: amount})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if !ranked[i].Amount.Equal(ranked[j].Amount) {
			return ranked[i].Amount.GreaterThan(ranked[j].Amount)
		}
		return ranked[i].CategoryID.String() < ranked[j].CategoryID.String()
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
