// Package health composes the financial health score and its rule-based insights.
package health

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/analytics/internal/application/usecase/ledger"
	"github.com/finance-tracker/analytics/internal/domain/entity"
	"github.com/finance-tracker/analytics/internal/domain/valueobject"
)

const (
	// SavingsBenchmark is the savings rate, in percent, that earns a full savings score.
	SavingsBenchmark = 20.0
	// NoDataScore is used for budgeting and goals when there is nothing to measure.
	NoDataScore = 50.0
	// DebtRatioCeiling is the EMI-to-income ratio at which the debt score reaches 0.
	DebtRatioCeiling = 0.5
	// SpendingRatioFloor is the expense-to-income ratio up to which spending scores 100.
	SpendingRatioFloor = 0.5
)

// Inputs are the already-derived figures the scorer reads.
type Inputs struct {
	Totals         ledger.Totals // Current month
	BudgetStatuses []entity.BudgetStatus
	MonthlyEMI     decimal.Decimal
	Goals          []*entity.SavingGoal
}

// Scorer computes health scores with fixed weights.
type Scorer struct {
	weights valueobject.HealthWeights
}

// NewScorer creates a Scorer. Invalid weights fall back to the defaults.
func NewScorer(weights valueobject.HealthWeights) *Scorer {
	if weights == nil || weights.Validate() != nil {
		weights = valueobject.DefaultHealthWeights()
	}
	return &Scorer{weights: weights}
}

// Score computes the breakdown, overall score, risk level and rule output.
func (s *Scorer) Score(profileID uuid.UUID, in Inputs, now time.Time) *entity.HealthScore {
	breakdown := map[entity.HealthCategory]float64{
		entity.HealthCategorySavings:   round2(SavingsScore(in.Totals)),
		entity.HealthCategorySpending:  round2(SpendingScore(in.Totals)),
		entity.HealthCategoryBudgeting: round2(BudgetingScore(in.BudgetStatuses)),
		entity.HealthCategoryDebt:      round2(DebtScore(in.Totals.TotalIncome, in.MonthlyEMI)),
		entity.HealthCategoryGoals:     round2(GoalsScore(in.Goals)),
	}

	overall := 0.0
	for _, category := range entity.HealthCategories {
		overall += breakdown[category] * s.weights[category]
	}
	overall = round2(clamp(overall))

	insights, recommendations := Evaluate(breakdown, overall)

	return &entity.HealthScore{
		ProfileID:       profileID,
		Overall:         overall,
		Breakdown:       breakdown,
		RiskLevel:       RiskFor(overall),
		Insights:        insights,
		Recommendations: recommendations,
		LastCalculated:  now,
	}
}

// RiskFor maps an overall score to its risk level.
func RiskFor(overall float64) entity.RiskLevel {
	switch {
	case overall >= 80:
		return entity.RiskLevelLow
	case overall >= 60:
		return entity.RiskLevelMedium
	default:
		return entity.RiskLevelHigh
	}
}

// SavingsScore scales the savings rate against SavingsBenchmark.
// With neither income nor expenses the profile is unmeasured and scores NoDataScore.
func SavingsScore(totals ledger.Totals) float64 {
	if totals.TotalIncome.IsZero() && totals.TotalExpense.IsZero() {
		return NoDataScore
	}
	return clamp(ledger.SavingsRate(totals) / SavingsBenchmark * 100)
}

// SpendingScore is 100 while expenses stay within SpendingRatioFloor of income and 0 at 100%.
func SpendingScore(totals ledger.Totals) float64 {
	if !totals.TotalIncome.IsPositive() {
		if totals.TotalExpense.IsPositive() {
			return 0
		}
		return NoDataScore
	}

	ratio, _ := totals.TotalExpense.Div(totals.TotalIncome).Float64()
	if ratio <= SpendingRatioFloor {
		return 100
	}
	return clamp((1 - ratio) / (1 - SpendingRatioFloor) * 100)
}

// BudgetingScore is the share of budgets that are not over their limit.
func BudgetingScore(statuses []entity.BudgetStatus) float64 {
	if len(statuses) == 0 {
		return NoDataScore
	}
	within := 0
	for _, s := range statuses {
		if !s.IsOverBudget {
			within++
		}
	}
	return float64(within) / float64(len(statuses)) * 100
}

// DebtScore falls linearly with the EMI-to-income ratio, reaching 0 at DebtRatioCeiling.
func DebtScore(income, monthlyEMI decimal.Decimal) float64 {
	if !monthlyEMI.IsPositive() {
		return 100
	}
	if !income.IsPositive() {
		return 0
	}
	ratio, _ := monthlyEMI.Div(income).Float64()
	return clamp((1 - ratio/DebtRatioCeiling) * 100)
}

// GoalsScore is the average completion of the saving goals.
func GoalsScore(goals []*entity.SavingGoal) float64 {
	if len(goals) == 0 {
		return NoDataScore
	}
	sum := 0.0
	for _, g := range goals {
		sum += g.CompletionPercent()
	}
	return sum / float64(len(goals))
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
