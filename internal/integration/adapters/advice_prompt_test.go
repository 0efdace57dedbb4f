package adapters

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/analytics/internal/application/adapter"
	"github.com/finance-tracker/analytics/internal/domain/entity"
)

func TestParseAdviceAnswer(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantCount int
		wantErr   bool
	}{
		{
			name:      "wrapped object",
			text:      `{"advice":[{"title":"Cut dining","content":"Eat out less","priority":"high","confidence":0.9}]}`,
			wantCount: 1,
		},
		{
			name:      "bare array in code fence",
			text:      "```json\n[{\"title\":\"a\",\"content\":\"b\"},{\"title\":\"c\",\"content\":\"d\"}]\n```",
			wantCount: 2,
		},
		{name: "empty list is not an error here", text: `{"advice":[]}`, wantCount: 0},
		{name: "prose", text: "Here are some tips: save more.", wantErr: true},
		{name: "missing key", text: `{"tips":[]}`, wantErr: true},
		{name: "empty", text: "  ", wantErr: true},
		{name: "truncated", text: `{"advice":[{"title":"a"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := parseAdviceAnswer(tt.text)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(items) != tt.wantCount {
				t.Errorf("expected %d items, got %d", tt.wantCount, len(items))
			}
		})
	}
}

func TestParseAdviceAnswer_Fields(t *testing.T) {
	items, err := parseAdviceAnswer(`{"advice":[{"title":"T","content":"C","category":"saving","priority":"medium",
		"confidence":0.4,"action_items":["step"],"tags":["x","y"]}]}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := items[0]
	if got.Title != "T" || got.Category != "saving" || got.Priority != entity.AdvicePriorityMedium {
		t.Errorf("unexpected item %+v", got)
	}
	if got.Confidence != 0.4 || len(got.ActionItems) != 1 || len(got.Tags) != 2 {
		t.Errorf("unexpected item %+v", got)
	}
}

func TestBuildAdvicePrompt(t *testing.T) {
	profileID := uuid.New()
	food := entity.NewCategory(profileID, "Food", "#FF0000", "", entity.CategoryTypeExpense)
	adviceCtx := &adapter.AdviceContext{
		ProfileID: profileID,
		RecentTransactions: []*entity.Transaction{
			entity.NewTransaction(profileID, entity.TransactionTypeExpense, decimal.NewFromInt(42), food.ID,
				time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC), "market", nil),
		},
		Budgets:    []*entity.Budget{entity.NewBudget(profileID, food.ID, decimal.NewFromInt(500), entity.BudgetPeriodMonthly, 80)},
		Categories: entity.NewCategoryIndex([]*entity.Category{food}),
		Locale:     "pt-BR",
	}

	prompt := buildAdvicePrompt(adviceCtx)

	for _, want := range []string{"Brazilian Portuguese", "Category: Food, Limit: 500.00", "Amount: 42.00", `"market"`} {
		if !strings.Contains(prompt, want) {
			t.Errorf("expected prompt to contain %q", want)
		}
	}
	if !strings.Contains(prompt, "SAVING GOALS:\n(none)") {
		t.Error("expected empty goals marker")
	}
}

func TestParseElaboration(t *testing.T) {
	if _, err := parseElaboration(`{"items":["a"]}`, 2); err == nil {
		t.Error("expected error on count mismatch")
	}
	got, err := parseElaboration(`{"items":["a","b"]}`, 2)
	if err != nil || len(got) != 2 {
		t.Errorf("unexpected result %v, %v", got, err)
	}
}
