package budget

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/analytics/internal/domain/entity"
	domainerror "github.com/finance-tracker/analytics/internal/domain/error"
)

var now = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC) // Friday

func expense(categoryID uuid.UUID, amount string, date time.Time) *entity.Transaction {
	return entity.NewTransaction(uuid.Nil, entity.TransactionTypeExpense, decimal.RequireFromString(amount), categoryID, date, "", nil)
}

func TestCalculateStatuses_Scenarios(t *testing.T) {
	food := entity.NewCategory(uuid.Nil, "Food", "", "", entity.CategoryTypeExpense)
	categories := entity.NewCategoryIndex([]*entity.Category{food})

	tests := []struct {
		name          string
		amount        string
		spent         []string
		wantPct       float64
		wantRemaining string
		wantOver      bool
		wantNear      bool
	}{
		{"near limit", "500", []string{"300", "150"}, 90, "50", false, true},
		{"under threshold", "500", []string{"100"}, 20, "400", false, false},
		{"exactly at limit", "500", []string{"500"}, 100, "0", false, true},
		{"over budget", "500", []string{"600"}, 120, "-100", true, false},
		{"zero limit no spend", "0", nil, 0, "0", false, false},
		{"zero limit with spend", "0", []string{"1"}, 100, "-1", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := entity.NewBudget(uuid.Nil, food.ID, decimal.RequireFromString(tt.amount), entity.BudgetPeriodMonthly, 80)
			var txs []*entity.Transaction
			for _, s := range tt.spent {
				txs = append(txs, expense(food.ID, s, now.AddDate(0, 0, -2)))
			}

			statuses, violations := CalculateStatuses([]*entity.Budget{b}, txs, categories, now)
			if len(violations) != 0 {
				t.Fatalf("expected no violations, got %v", violations)
			}
			if len(statuses) != 1 {
				t.Fatalf("expected 1 status, got %d", len(statuses))
			}

			s := statuses[0]
			if s.Percentage != tt.wantPct {
				t.Errorf("expected percentage %v, got %v", tt.wantPct, s.Percentage)
			}
			if !s.Remaining.Equal(decimal.RequireFromString(tt.wantRemaining)) {
				t.Errorf("expected remaining %s, got %s", tt.wantRemaining, s.Remaining)
			}
			if s.IsOverBudget != tt.wantOver {
				t.Errorf("expected isOverBudget %v, got %v", tt.wantOver, s.IsOverBudget)
			}
			if s.IsNearLimit != tt.wantNear {
				t.Errorf("expected isNearLimit %v, got %v", tt.wantNear, s.IsNearLimit)
			}
		})
	}
}

func TestCalculateStatuses_PeriodWindows(t *testing.T) {
	food := entity.NewCategory(uuid.Nil, "Food", "", "", entity.CategoryTypeExpense)
	categories := entity.NewCategoryIndex([]*entity.Category{food})

	txs := []*entity.Transaction{
		expense(food.ID, "10", time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC)),    // Monday this week
		expense(food.ID, "20", time.Date(2024, time.March, 10, 23, 0, 0, 0, time.UTC)),   // Sunday last week
		expense(food.ID, "40", time.Date(2024, time.February, 28, 0, 0, 0, 0, time.UTC)), // last month
		expense(food.ID, "80", time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC)), // last year
	}

	tests := []struct {
		period    entity.BudgetPeriod
		wantSpent string
		wantStart time.Time
	}{
		{entity.BudgetPeriodWeekly, "10", time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC)},
		{entity.BudgetPeriodMonthly, "30", time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)},
		{entity.BudgetPeriodYearly, "70", time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			b := entity.NewBudget(uuid.Nil, food.ID, decimal.NewFromInt(1000), tt.period, 80)
			statuses, _ := CalculateStatuses([]*entity.Budget{b}, txs, categories, now)
			if len(statuses) != 1 {
				t.Fatalf("expected 1 status, got %d", len(statuses))
			}
			if !statuses[0].Spent.Equal(decimal.RequireFromString(tt.wantSpent)) {
				t.Errorf("expected spent %s, got %s", tt.wantSpent, statuses[0].Spent)
			}
			if !statuses[0].PeriodStart.Equal(tt.wantStart) {
				t.Errorf("expected period start %v, got %v", tt.wantStart, statuses[0].PeriodStart)
			}
		})
	}
}

func TestCalculateStatuses_NonUTCNow(t *testing.T) {
	food := entity.NewCategory(uuid.Nil, "Food", "", "", entity.CategoryTypeExpense)
	categories := entity.NewCategoryIndex([]*entity.Category{food})
	b := entity.NewBudget(uuid.Nil, food.ID, decimal.NewFromInt(100), entity.BudgetPeriodMonthly, 80)

	// Stored dates are UTC midnights; now comes from a UTC-3 host late in the evening.
	local := time.Date(2026, time.October, 15, 22, 0, 0, 0, time.FixedZone("BRT", -3*60*60))
	txs := []*entity.Transaction{
		expense(food.ID, "50", time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)),
		expense(food.ID, "30", time.Date(2026, time.September, 30, 0, 0, 0, 0, time.UTC)),
	}

	statuses, _ := CalculateStatuses([]*entity.Budget{b}, txs, categories, local)
	if len(statuses) != 1 {
		t.Fatalf("expected 1 status, got %d", len(statuses))
	}
	if !statuses[0].Spent.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected spent 50, got %s", statuses[0].Spent)
	}
}

func TestCalculateStatuses_UnknownCategoryIsSkipped(t *testing.T) {
	food := entity.NewCategory(uuid.Nil, "Food", "", "", entity.CategoryTypeExpense)
	categories := entity.NewCategoryIndex([]*entity.Category{food})

	known := entity.NewBudget(uuid.Nil, food.ID, decimal.NewFromInt(100), entity.BudgetPeriodMonthly, 80)
	orphan := entity.NewBudget(uuid.Nil, uuid.New(), decimal.NewFromInt(100), entity.BudgetPeriodMonthly, 80)

	statuses, violations := CalculateStatuses([]*entity.Budget{orphan, known}, nil, categories, now)

	if len(statuses) != 1 || statuses[0].Budget.ID != known.ID {
		t.Fatalf("expected only the known budget, got %d statuses", len(statuses))
	}
	if len(violations) != 1 {
		t.Fatalf("expected 1 violation, got %d", len(violations))
	}
	if violations[0].Code != domainerror.ErrCodeBudgetUnknownCategory {
		t.Errorf("expected code %s, got %s", domainerror.ErrCodeBudgetUnknownCategory, violations[0].Code)
	}
	if !violations[0].IsInputInvariantViolation() {
		t.Error("expected an input invariant violation")
	}
	if violations[0].EntityID != orphan.ID.String() {
		t.Errorf("expected entity %s, got %s", orphan.ID, violations[0].EntityID)
	}
}

func TestCalculateStatuses_SkipsInactiveAndIsIdempotent(t *testing.T) {
	var cats []*entity.Category
	var budgets []*entity.Budget
	var txs []*entity.Transaction
	for i := 0; i < 5; i++ {
		c := entity.NewCategory(uuid.Nil, "c", "", "", entity.CategoryTypeExpense)
		cats = append(cats, c)
		budgets = append(budgets, entity.NewBudget(uuid.Nil, c.ID, decimal.NewFromInt(100), entity.BudgetPeriodMonthly, 50))
		txs = append(txs, expense(c.ID, "60", now))
	}
	budgets[2].Disable()
	categories := entity.NewCategoryIndex(cats)

	first, _ := CalculateStatuses(budgets, txs, categories, now)
	second, _ := CalculateStatuses(budgets, txs, categories, now)

	if len(first) != 4 {
		t.Fatalf("expected 4 active statuses, got %d", len(first))
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical output for identical input")
	}
	for i := 1; i < len(first); i++ {
		if first[i-1].Budget.CategoryID.String() > first[i].Budget.CategoryID.String() {
			t.Errorf("statuses not ordered by category at index %d", i)
		}
	}
}
