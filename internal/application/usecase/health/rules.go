// Package health composes the financial health score and its rule-based insights.
package health

import "github.com/finance-tracker/analytics/internal/domain/entity"

// Rule turns a threshold on the breakdown into an insight and, optionally, a recommendation.
type Rule struct {
	Name           string
	Applies        func(breakdown map[entity.HealthCategory]float64, overall float64) bool
	Insight        string
	Recommendation string
}

func below(category entity.HealthCategory, limit float64) func(map[entity.HealthCategory]float64, float64) bool {
	return func(b map[entity.HealthCategory]float64, _ float64) bool {
		return b[category] < limit
	}
}

func atLeast(category entity.HealthCategory, limit float64) func(map[entity.HealthCategory]float64, float64) bool {
	return func(b map[entity.HealthCategory]float64, _ float64) bool {
		return b[category] >= limit
	}
}

// Rules is evaluated in order; output keeps this order.
var Rules = []Rule{
	{
		Name:           "savings_low",
		Applies:        below(entity.HealthCategorySavings, 50),
		Insight:        "Your savings rate is well below the 20% benchmark.",
		Recommendation: "Set up an automatic transfer to savings on each payday.",
	},
	{
		Name:    "savings_strong",
		Applies: atLeast(entity.HealthCategorySavings, 100),
		Insight: "You are saving at or above the 20% benchmark.",
	},
	{
		Name:           "spending_high",
		Applies:        below(entity.HealthCategorySpending, 40),
		Insight:        "Spending is taking most of your income this month.",
		Recommendation: "Review your largest spending categories and trim discretionary costs.",
	},
	{
		Name:           "budgets_over",
		Applies:        below(entity.HealthCategoryBudgeting, 70),
		Insight:        "Several budgets are over their limit.",
		Recommendation: "Adjust limits or cut spending in the categories that are over budget.",
	},
	{
		Name:           "debt_high",
		Applies:        below(entity.HealthCategoryDebt, 50),
		Insight:        "Installment payments take a large share of your income.",
		Recommendation: "Prioritize paying down existing loans before taking on new debt.",
	},
	{
		Name:           "goals_behind",
		Applies:        below(entity.HealthCategoryGoals, 50),
		Insight:        "Your saving goals are less than half complete on average.",
		Recommendation: "Increase regular contributions toward your saving goals.",
	},
	{
		Name: "overall_healthy",
		Applies: func(_ map[entity.HealthCategory]float64, overall float64) bool {
			return overall >= 80
		},
		Insight: "Your finances are in good shape overall.",
	},
}

// Evaluate runs every rule and collects insights and recommendations in rule order.
func Evaluate(breakdown map[entity.HealthCategory]float64, overall float64) ([]string, []string) {
	insights := []string{}
	recommendations := []string{}

	for _, r := range Rules {
		if !r.Applies(breakdown, overall) {
			continue
		}
		if r.Insight != "" {
			insights = append(insights, r.Insight)
		}
		if r.Recommendation != "" {
			recommendations = append(recommendations, r.Recommendation)
		}
	}

	return insights, recommendations
}
