package amortization

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/analytics/internal/domain/entity"
	domainerror "github.com/finance-tracker/analytics/internal/domain/error"
)

var now = time.Date(2024, time.June, 10, 9, 30, 0, 0, time.UTC)

func emiPayment(desc string, amount int64, current, total int, nextDue time.Time) *entity.RecurringTransaction {
	return entity.NewRecurringTransaction(
		uuid.Nil,
		desc,
		decimal.NewFromInt(amount),
		nil,
		entity.FrequencyMonthly,
		nextDue,
		&entity.EmiDetail{CurrentInstallment: current, TotalInstallments: total},
	)
}

func TestTrack_Scenario(t *testing.T) {
	summary, violations := Track([]*entity.RecurringTransaction{
		emiPayment("Car loan", 1000, 4, 12, now.AddDate(0, 0, 10)),
	}, now)

	if len(violations) != 0 {
		t.Fatalf("expected no violations, got %v", violations)
	}
	if summary.TotalEMIs != 1 {
		t.Fatalf("expected 1 EMI, got %d", summary.TotalEMIs)
	}

	loan := summary.UpcomingPayments[0]
	if math.Abs(loan.ProgressPercent-33.333) > 0.01 {
		t.Errorf("expected progress ~33.3, got %v", loan.ProgressPercent)
	}
	if !loan.RemainingAmount.Equal(decimal.NewFromInt(8000)) {
		t.Errorf("expected remaining 8000, got %s", loan.RemainingAmount)
	}
	if !loan.PaidToDate.Equal(decimal.NewFromInt(4000)) {
		t.Errorf("expected paid 4000, got %s", loan.PaidToDate)
	}
	if !summary.TotalOutstanding.Equal(decimal.NewFromInt(8000)) {
		t.Errorf("expected outstanding 8000, got %s", summary.TotalOutstanding)
	}
	if !summary.TotalMonthlyPayment.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected monthly payment 1000, got %s", summary.TotalMonthlyPayment)
	}
}

func TestProgress_MonotonicAndComplete(t *testing.T) {
	const total = 24
	prev := -1.0
	for current := 0; current <= total; current++ {
		p := Progress(current, total)
		if p < prev {
			t.Fatalf("progress decreased at installment %d: %v < %v", current, p, prev)
		}
		prev = p
	}
	if Progress(total, total) != 100 {
		t.Errorf("expected 100 at the last installment, got %v", Progress(total, total))
	}
	if Progress(total-1, total) >= 100 {
		t.Error("expected less than 100 before the last installment")
	}
	if Progress(5, 0) != 0 {
		t.Error("expected 0 for zero total installments")
	}
}

func TestTracker_DueBands(t *testing.T) {
	midnight := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		nextDue  time.Time
		wantDays int
		wantBand DueBand
	}{
		{"two days overdue", midnight.AddDate(0, 0, -2), -2, DueBandOverdue},
		{"due today", midnight, 0, DueBandDueSoon},
		{"due tomorrow", midnight.AddDate(0, 0, 1), 1, DueBandDueSoon},
		{"due in three days", midnight.AddDate(0, 0, 3), 3, DueBandDueSoon},
		{"due in four days", midnight.AddDate(0, 0, 4), 4, DueBandNormal},
		{"due later today", midnight.Add(20 * time.Hour), 0, DueBandDueSoon},
		{"due in three days late evening", midnight.AddDate(0, 0, 3).Add(22 * time.Hour), 3, DueBandDueSoon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, _ := Track([]*entity.RecurringTransaction{emiPayment("loan", 100, 1, 10, tt.nextDue)}, now)
			loan := summary.UpcomingPayments[0]
			if loan.DaysUntilDue != tt.wantDays {
				t.Errorf("expected %d days, got %d", tt.wantDays, loan.DaysUntilDue)
			}
			if loan.Band != tt.wantBand {
				t.Errorf("expected band %s, got %s", tt.wantBand, loan.Band)
			}
		})
	}
}

func TestTrack_NonUTCNow(t *testing.T) {
	// 15:00 in UTC-3 is 18:00 UTC on the same day.
	local := time.Date(2024, time.June, 10, 15, 0, 0, 0, time.FixedZone("BRT", -3*60*60))
	due := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)

	summary, _ := Track([]*entity.RecurringTransaction{emiPayment("loan", 100, 1, 10, due)}, local)
	loan := summary.UpcomingPayments[0]
	if loan.DaysUntilDue != 0 {
		t.Errorf("expected 0 days, got %d", loan.DaysUntilDue)
	}
	if loan.Band != DueBandDueSoon {
		t.Errorf("expected band %s, got %s", DueBandDueSoon, loan.Band)
	}
	if summary.OverdueCount != 0 {
		t.Errorf("expected no overdue loans, got %d", summary.OverdueCount)
	}
}

func TestTrack_OrderingAndFiltering(t *testing.T) {
	due := now.AddDate(0, 0, 5)
	inactive := emiPayment("inactive", 100, 1, 10, now)
	inactive.IsActive = false
	plain := entity.NewRecurringTransaction(uuid.Nil, "rent", decimal.NewFromInt(900), nil, entity.FrequencyMonthly, now, nil)
	broken := emiPayment("broken", 100, 11, 10, now)

	summary, violations := Track([]*entity.RecurringTransaction{
		emiPayment("zeta", 100, 1, 10, due),
		emiPayment("alpha", 100, 1, 10, due),
		emiPayment("early", 100, 1, 10, now.AddDate(0, 0, 1)),
		inactive,
		plain,
		broken,
	}, now)

	if len(violations) != 1 || violations[0].Code != domainerror.ErrCodeInvalidEmiDetail {
		t.Fatalf("expected one invalid EMI violation, got %v", violations)
	}

	want := []string{"early", "alpha", "zeta"}
	if len(summary.UpcomingPayments) != len(want) {
		t.Fatalf("expected %d loans, got %d", len(want), len(summary.UpcomingPayments))
	}
	for i, desc := range want {
		if summary.UpcomingPayments[i].Description != desc {
			t.Errorf("position %d: expected %s, got %s", i, desc, summary.UpcomingPayments[i].Description)
		}
	}
	if summary.DueSoonCount != 1 {
		t.Errorf("expected 1 due soon, got %d", summary.DueSoonCount)
	}
}

func TestTrack_PrincipalInterestMismatchIsSkipped(t *testing.T) {
	r := emiPayment("loan", 1000, 1, 10, now)
	r.EMI.Principal = decimal.NewFromInt(700)
	r.EMI.Interest = decimal.NewFromInt(200)

	summary, violations := Track([]*entity.RecurringTransaction{r}, now)
	if summary.TotalEMIs != 0 {
		t.Errorf("expected loan to be skipped, got %d", summary.TotalEMIs)
	}
	if len(violations) != 1 || !violations[0].IsInputInvariantViolation() {
		t.Errorf("expected one input violation, got %v", violations)
	}
}
