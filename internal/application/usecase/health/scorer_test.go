package health

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/analytics/internal/application/usecase/ledger"
	"github.com/finance-tracker/analytics/internal/domain/entity"
	"github.com/finance-tracker/analytics/internal/domain/valueobject"
)

var now = time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC)

func totals(income, expense int64) ledger.Totals {
	in := decimal.NewFromInt(income)
	out := decimal.NewFromInt(expense)
	return ledger.Totals{TotalIncome: in, TotalExpense: out, NetIncome: in.Sub(out)}
}

func TestSubScores(t *testing.T) {
	t.Run("savings", func(t *testing.T) {
		cases := []struct {
			income, expense int64
			want            float64
		}{
			{0, 0, NoDataScore},
			{0, 100, 0},
			{1000, 900, 50},
			{1000, 800, 100},
			{1000, 100, 100},
			{1000, 1500, 0},
		}
		for _, c := range cases {
			if got := SavingsScore(totals(c.income, c.expense)); got != c.want {
				t.Errorf("SavingsScore(%d, %d) = %v, want %v", c.income, c.expense, got, c.want)
			}
		}
	})

	t.Run("spending", func(t *testing.T) {
		cases := []struct {
			income, expense int64
			want            float64
		}{
			{0, 0, NoDataScore},
			{0, 10, 0},
			{1000, 500, 100},
			{1000, 750, 50},
			{1000, 1000, 0},
			{1000, 2000, 0},
		}
		for _, c := range cases {
			if got := SpendingScore(totals(c.income, c.expense)); got != c.want {
				t.Errorf("SpendingScore(%d, %d) = %v, want %v", c.income, c.expense, got, c.want)
			}
		}
	})

	t.Run("debt", func(t *testing.T) {
		cases := []struct {
			income, emi int64
			want        float64
		}{
			{0, 0, 100},
			{0, 100, 0},
			{1000, 0, 100},
			{1000, 250, 50},
			{1000, 500, 0},
		}
		for _, c := range cases {
			if got := DebtScore(decimal.NewFromInt(c.income), decimal.NewFromInt(c.emi)); got != c.want {
				t.Errorf("DebtScore(%d, %d) = %v, want %v", c.income, c.emi, got, c.want)
			}
		}
	})

	t.Run("budgeting", func(t *testing.T) {
		if got := BudgetingScore(nil); got != NoDataScore {
			t.Errorf("expected %v without budgets, got %v", NoDataScore, got)
		}
		statuses := []entity.BudgetStatus{{IsOverBudget: true}, {}, {}, {}}
		if got := BudgetingScore(statuses); got != 75 {
			t.Errorf("expected 75, got %v", got)
		}
	})

	t.Run("goals", func(t *testing.T) {
		if got := GoalsScore(nil); got != NoDataScore {
			t.Errorf("expected %v without goals, got %v", NoDataScore, got)
		}
		goals := []*entity.SavingGoal{
			entity.NewSavingGoal(uuid.Nil, "a", decimal.NewFromInt(100), decimal.NewFromInt(20), nil),
			entity.NewSavingGoal(uuid.Nil, "b", decimal.NewFromInt(100), decimal.NewFromInt(200), nil),
		}
		if got := GoalsScore(goals); got != 60 {
			t.Errorf("expected 60, got %v", got)
		}
	})
}

func TestScorer_OverallAndRisk(t *testing.T) {
	scorer := NewScorer(valueobject.DefaultHealthWeights())

	healthy := scorer.Score(uuid.Nil, Inputs{Totals: totals(85000, 12500)}, now)
	// savings 100, spending 100, budgeting 50, debt 100, goals 50
	if healthy.Overall != 82.5 {
		t.Errorf("expected overall 82.5, got %v", healthy.Overall)
	}
	if healthy.RiskLevel != entity.RiskLevelLow {
		t.Errorf("expected low risk, got %s", healthy.RiskLevel)
	}
	if !healthy.LastCalculated.Equal(now) {
		t.Errorf("expected last calculated %v, got %v", now, healthy.LastCalculated)
	}

	broke := scorer.Score(uuid.Nil, Inputs{Totals: totals(1000, 1200), MonthlyEMI: decimal.NewFromInt(600)}, now)
	if broke.RiskLevel != entity.RiskLevelHigh {
		t.Errorf("expected high risk, got %s (overall %v)", broke.RiskLevel, broke.Overall)
	}
	if len(broke.Recommendations) == 0 {
		t.Error("expected recommendations for a struggling profile")
	}

	if len(healthy.Breakdown) != len(entity.HealthCategories) {
		t.Errorf("expected %d breakdown entries, got %d", len(entity.HealthCategories), len(healthy.Breakdown))
	}
}

func TestRiskFor(t *testing.T) {
	cases := map[float64]entity.RiskLevel{
		100:   entity.RiskLevelLow,
		80:    entity.RiskLevelLow,
		79.99: entity.RiskLevelMedium,
		60:    entity.RiskLevelMedium,
		59.99: entity.RiskLevelHigh,
		0:     entity.RiskLevelHigh,
	}
	for overall, want := range cases {
		if got := RiskFor(overall); got != want {
			t.Errorf("RiskFor(%v) = %s, want %s", overall, got, want)
		}
	}
}

func TestEvaluate_RulesAreEnumerable(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range Rules {
		if r.Name == "" || r.Applies == nil || r.Insight == "" {
			t.Errorf("rule %q is incomplete", r.Name)
		}
		if seen[r.Name] {
			t.Errorf("duplicate rule %q", r.Name)
		}
		seen[r.Name] = true
	}

	breakdown := map[entity.HealthCategory]float64{
		entity.HealthCategorySavings:   100,
		entity.HealthCategorySpending:  100,
		entity.HealthCategoryBudgeting: 100,
		entity.HealthCategoryDebt:      20,
		entity.HealthCategoryGoals:     100,
	}
	insights, recommendations := Evaluate(breakdown, 84)

	wantRecs := []string{"Prioritize paying down existing loans before taking on new debt."}
	if !reflect.DeepEqual(recommendations, wantRecs) {
		t.Errorf("expected %v, got %v", wantRecs, recommendations)
	}
	if len(insights) != 3 {
		t.Errorf("expected savings, debt and overall insights, got %v", insights)
	}
}

type stubElaborator struct {
	available bool
	out       []string
	err       error
}

func (s stubElaborator) Elaborate(_ context.Context, recs []string, _ string) ([]string, error) {
	return s.out, s.err
}

func (s stubElaborator) IsAvailable() bool { return s.available }

func TestElaborate(t *testing.T) {
	base := []string{"a", "b"}

	tests := []struct {
		name       string
		elaborator stubElaborator
		want       []string
	}{
		{"rephrases", stubElaborator{available: true, out: []string{"A", "B"}}, []string{"A", "B"}},
		{"unavailable keeps rules", stubElaborator{available: false, out: []string{"A", "B"}}, base},
		{"error keeps rules", stubElaborator{available: true, err: errors.New("quota")}, base},
		{"count mismatch keeps rules", stubElaborator{available: true, out: []string{"A"}}, base},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := &entity.HealthScore{Recommendations: append([]string(nil), base...)}
			Elaborate(context.Background(), tt.elaborator, score, "en", time.Second)
			if !reflect.DeepEqual(score.Recommendations, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, score.Recommendations)
			}
		})
	}
}
