// Package amortization derives installment-loan progress and due status from recurring payments.
package amortization

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/analytics/internal/domain/entity"
	domainerror "github.com/finance-tracker/analytics/internal/domain/error"
	"github.com/finance-tracker/analytics/internal/domain/valueobject"
)

// DefaultDueSoonDays is the inclusive upper bound of the due-soon band.
const DefaultDueSoonDays = 3

// DueBand is an alerting hint derived from days until the next installment.
type DueBand string

const (
	DueBandOverdue DueBand = "overdue"
	DueBandDueSoon DueBand = "due_soon"
	DueBandNormal  DueBand = "normal"
)

// Loan is the derived state of one active installment loan.
type Loan struct {
	RecurringID        uuid.UUID
	Description        string
	Amount             decimal.Decimal
	Frequency          entity.Frequency
	NextDue            time.Time
	LoanAmount         decimal.Decimal
	Principal          decimal.Decimal
	Interest           decimal.Decimal
	CurrentInstallment int
	TotalInstallments  int
	ProgressPercent    float64
	PaidToDate         decimal.Decimal
	RemainingAmount    decimal.Decimal
	DaysUntilDue       int // Negative when overdue
	Band               DueBand
}

// Summary aggregates every tracked loan of a profile.
type Summary struct {
	TotalEMIs           int
	TotalMonthlyPayment decimal.Decimal
	TotalOutstanding    decimal.Decimal
	OverdueCount        int
	DueSoonCount        int
	UpcomingPayments    []Loan // Ordered by next due date, then description, then ID
}

// Tracker computes loan summaries.
type Tracker struct {
	DueSoonDays int
}

// NewTracker creates a Tracker. Non-positive dueSoonDays falls back to DefaultDueSoonDays.
func NewTracker(dueSoonDays int) Tracker {
	if dueSoonDays <= 0 {
		dueSoonDays = DefaultDueSoonDays
	}
	return Tracker{DueSoonDays: dueSoonDays}
}

// Track uses the default due-soon band.
func Track(recurring []*entity.RecurringTransaction, now time.Time) (Summary, []*domainerror.AnalyticsError) {
	return NewTracker(DefaultDueSoonDays).Track(recurring, now)
}

// Track derives the state of every active installment loan.
// Loans with a missing or inconsistent installment detail are skipped and reported.
func (t Tracker) Track(recurring []*entity.RecurringTransaction, now time.Time) (Summary, []*domainerror.AnalyticsError) {
	summary := Summary{
		TotalMonthlyPayment: decimal.Zero,
		TotalOutstanding:    decimal.Zero,
		UpcomingPayments:    []Loan{},
	}
	var violations []*domainerror.AnalyticsError

	for _, r := range recurring {
		if r == nil || !r.IsActiveEMI() {
			continue
		}

		if err := checkDetail(r); err != nil {
			violations = append(violations, domainerror.NewAnalyticsError(
				domainerror.ErrCodeInvalidEmiDetail,
				"installment loan skipped",
				r.ID.String(),
				err,
			))
			continue
		}

		loan := t.loan(r, now)
		summary.UpcomingPayments = append(summary.UpcomingPayments, loan)
		summary.TotalEMIs++
		summary.TotalMonthlyPayment = summary.TotalMonthlyPayment.Add(r.MonthlyAmount())
		summary.TotalOutstanding = summary.TotalOutstanding.Add(loan.RemainingAmount)

		switch loan.Band {
		case DueBandOverdue:
			summary.OverdueCount++
		case DueBandDueSoon:
			summary.DueSoonCount++
		}
	}

	sort.Slice(summary.UpcomingPayments, func(i, j int) bool {
		a, b := summary.UpcomingPayments[i], summary.UpcomingPayments[j]
		if !a.NextDue.Equal(b.NextDue) {
			return a.NextDue.Before(b.NextDue)
		}
		if a.Description != b.Description {
			return a.Description < b.Description
		}
		return a.RecurringID.String() < b.RecurringID.String()
	})

	return summary, violations
}

func (t Tracker) loan(r *entity.RecurringTransaction, now time.Time) Loan {
	emi := r.EMI
	days := valueobject.DaysUntil(r.NextDue, now)

	remaining := emi.TotalInstallments - emi.CurrentInstallment
	if remaining < 0 {
		remaining = 0
	}

	return Loan{
		RecurringID:        r.ID,
		Description:        r.Description,
		Amount:             r.Amount,
		Frequency:          r.Frequency,
		NextDue:            r.NextDue,
		LoanAmount:         emi.LoanAmount,
		Principal:          emi.Principal,
		Interest:           emi.Interest,
		CurrentInstallment: emi.CurrentInstallment,
		TotalInstallments:  emi.TotalInstallments,
		ProgressPercent:    Progress(emi.CurrentInstallment, emi.TotalInstallments),
		PaidToDate:         r.Amount.Mul(decimal.NewFromInt(int64(emi.CurrentInstallment))),
		RemainingAmount:    r.Amount.Mul(decimal.NewFromInt(int64(remaining))),
		DaysUntilDue:       days,
		Band:               t.Band(days),
	}
}

// Band classifies days until due.
func (t Tracker) Band(daysUntilDue int) DueBand {
	switch {
	case daysUntilDue < 0:
		return DueBandOverdue
	case daysUntilDue <= t.DueSoonDays:
		return DueBandDueSoon
	default:
		return DueBandNormal
	}
}

// Progress returns current/total as a percentage clamped to [0, 100].
func Progress(current, total int) float64 {
	if total <= 0 {
		return 0
	}
	pct := float64(current) / float64(total) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// checkDetail validates the installment counters, and the principal/interest split when one is recorded.
func checkDetail(r *entity.RecurringTransaction) error {
	if r.EMI == nil {
		return domainerror.ErrInvalidEmiDetail
	}
	amount := r.Amount
	if r.EMI.Principal.IsZero() && r.EMI.Interest.IsZero() {
		amount = decimal.Zero
	}
	return r.EMI.Validate(amount)
}
