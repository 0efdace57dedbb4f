// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetPeriod represents the window a budget's spend is measured over.
type BudgetPeriod string

const (
	BudgetPeriodWeekly  BudgetPeriod = "weekly"
	BudgetPeriodMonthly BudgetPeriod = "monthly"
	BudgetPeriodYearly  BudgetPeriod = "yearly"
)

// IsValid reports whether the budget period is known.
func (p BudgetPeriod) IsValid() bool {
	switch p {
	case BudgetPeriodWeekly, BudgetPeriodMonthly, BudgetPeriodYearly:
		return true
	}
	return false
}

const (
	// MinAlertThreshold is the lowest accepted alert threshold percentage.
	MinAlertThreshold = 1
	// MaxAlertThreshold is the highest accepted alert threshold percentage.
	MaxAlertThreshold = 100
	// DefaultAlertThreshold is applied when a budget is created without a threshold.
	DefaultAlertThreshold = 80
)

// Budget represents a spending limit for one category over a period.
type Budget struct {
	ID             uuid.UUID
	ProfileID      uuid.UUID
	CategoryID     uuid.UUID
	Amount         decimal.Decimal
	Period         BudgetPeriod
	AlertThreshold int
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewBudget creates a new active Budget entity.
func NewBudget(profileID, categoryID uuid.UUID, amount decimal.Decimal, period BudgetPeriod, alertThreshold int) *Budget {
	now := time.Now().UTC()

	return &Budget{
		ID:             uuid.New(),
		ProfileID:      profileID,
		CategoryID:     categoryID,
		Amount:         amount,
		Period:         period,
		AlertThreshold: alertThreshold,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Disable soft-disables the budget.
func (b *Budget) Disable() {
	b.IsActive = false
	b.UpdatedAt = time.Now().UTC()
}

// BudgetStatus is the current-period compliance of a single budget.
type BudgetStatus struct {
	Budget       *Budget
	Spent        decimal.Decimal
	Percentage   float64
	Remaining    decimal.Decimal // Negative when over budget
	IsOverBudget bool
	IsNearLimit  bool
	PeriodStart  time.Time
	PeriodEnd    time.Time
}
