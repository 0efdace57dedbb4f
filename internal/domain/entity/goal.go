// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SavingGoal represents a savings target. The engine consumes goals read-only.
type SavingGoal struct {
	ID            uuid.UUID
	ProfileID     uuid.UUID
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Deadline      *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewSavingGoal creates a new SavingGoal entity.
func NewSavingGoal(profileID uuid.UUID, name string, target, current decimal.Decimal, deadline *time.Time) *SavingGoal {
	now := time.Now().UTC()

	return &SavingGoal{
		ID:            uuid.New(),
		ProfileID:     profileID,
		Name:          name,
		TargetAmount:  target,
		CurrentAmount: current,
		Deadline:      deadline,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// CompletionPercent returns the goal progress in [0, 100].
// A goal with a zero target counts as complete.
func (g *SavingGoal) CompletionPercent() float64 {
	if !g.TargetAmount.IsPositive() {
		return 100
	}
	pct, _ := g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100)).Float64()
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
