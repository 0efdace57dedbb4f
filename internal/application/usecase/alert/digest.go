// Package alert turns derived analytics state into an email digest of the things that need attention.
package alert

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/analytics/internal/application/usecase/amortization"
	"github.com/finance-tracker/analytics/internal/application/usecase/analytics"
	"github.com/finance-tracker/analytics/internal/domain/entity"
)

// DigestTemplate is the template name rendered for a digest.
const DigestTemplate = "alert_digest"

// BudgetAlert is a budget that crossed its threshold or limit.
type BudgetAlert struct {
	CategoryName string
	Amount       decimal.Decimal
	Spent        decimal.Decimal
	Percentage   float64
	PeriodEnd    time.Time
}

// LoanAlert is an installment that is overdue or due soon.
type LoanAlert struct {
	Description  string
	Amount       decimal.Decimal
	NextDue      time.Time
	DaysUntilDue int
}

// Digest groups everything worth telling the profile owner about.
type Digest struct {
	ProfileID    uuid.UUID
	GeneratedAt  time.Time
	OverBudget   []BudgetAlert
	NearLimit    []BudgetAlert
	OverdueLoans []LoanAlert
	DueSoonLoans []LoanAlert
	HighRisk     bool
	OverallScore float64
	Insights     []string
	Suggestions  []string
}

// IsEmpty reports whether the digest has nothing to alert on.
func (d Digest) IsEmpty() bool {
	return len(d.OverBudget) == 0 &&
		len(d.NearLimit) == 0 &&
		len(d.OverdueLoans) == 0 &&
		len(d.DueSoonLoans) == 0 &&
		!d.HighRisk
}

// BuildDigest extracts alerts from a derived state, keeping the state's ordering.
func BuildDigest(state analytics.DerivedState) Digest {
	d := Digest{
		ProfileID:   state.ProfileID,
		GeneratedAt: state.ComputedAt,
	}

	for _, st := range state.BudgetStatuses {
		a := BudgetAlert{
			CategoryName: state.Categories.Name(st.Budget.CategoryID, "Uncategorized"),
			Amount:       st.Budget.Amount,
			Spent:        st.Spent,
			Percentage:   st.Percentage,
			PeriodEnd:    st.PeriodEnd,
		}
		switch {
		case st.IsOverBudget:
			d.OverBudget = append(d.OverBudget, a)
		case st.IsNearLimit:
			d.NearLimit = append(d.NearLimit, a)
		}
	}

	for _, loan := range state.Loans.UpcomingPayments {
		a := LoanAlert{
			Description:  loan.Description,
			Amount:       loan.Amount,
			NextDue:      loan.NextDue,
			DaysUntilDue: loan.DaysUntilDue,
		}
		switch loan.Band {
		case amortization.DueBandOverdue:
			d.OverdueLoans = append(d.OverdueLoans, a)
		case amortization.DueBandDueSoon:
			d.DueSoonLoans = append(d.DueSoonLoans, a)
		}
	}

	if state.Health != nil {
		d.OverallScore = state.Health.Overall
		d.HighRisk = state.Health.RiskLevel == entity.RiskLevelHigh
		if d.HighRisk {
			d.Insights = state.Health.Insights
			d.Suggestions = state.Health.Recommendations
		}
	}

	return d
}
