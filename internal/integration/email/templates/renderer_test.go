package templates

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/analytics/internal/application/usecase/alert"
)

func TestRenderer_AlertDigest(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	digest := alert.Digest{
		GeneratedAt: time.Date(2024, time.April, 18, 0, 0, 0, 0, time.UTC),
		OverBudget: []alert.BudgetAlert{{
			CategoryName: "Food & Drinks",
			Amount:       decimal.NewFromInt(500),
			Spent:        decimal.NewFromInt(620),
			Percentage:   124,
		}},
		OverdueLoans: []alert.LoanAlert{{
			Description:  "car loan",
			Amount:       decimal.NewFromInt(1000),
			DaysUntilDue: -2,
		}},
	}

	html, text, err := r.Render(alert.DigestTemplate, digest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(html, "Food &amp; Drinks") {
		t.Error("expected escaped category name in HTML")
	}
	if !strings.Contains(text, "Food & Drinks: spent 620.00 of 500.00 (124.0%)") {
		t.Errorf("unexpected text body:\n%s", text)
	}
	if !strings.Contains(text, "was due 2 day(s) ago") {
		t.Errorf("expected overdue line, got:\n%s", text)
	}
	if strings.Contains(text, "Installments due soon") {
		t.Error("expected empty sections to be omitted")
	}
}

func TestRenderer_UnknownTemplate(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := r.Render("missing", nil); err == nil {
		t.Error("expected error for unknown template")
	}
}
