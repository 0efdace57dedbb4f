// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Frequency represents how often a recurring payment materializes.
type Frequency string

const (
	FrequencyDaily     Frequency = "daily"
	FrequencyWeekly    Frequency = "weekly"
	FrequencyBiweekly  Frequency = "biweekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
)

// monthlyFactors holds how many occurrences of each frequency fit in an average month.
var monthlyFactors = map[Frequency]decimal.Decimal{
	FrequencyDaily:     decimal.NewFromInt(365).Div(decimal.NewFromInt(12)),
	FrequencyWeekly:    decimal.NewFromInt(52).Div(decimal.NewFromInt(12)),
	FrequencyBiweekly:  decimal.NewFromInt(26).Div(decimal.NewFromInt(12)),
	FrequencyMonthly:   decimal.NewFromInt(1),
	FrequencyQuarterly: decimal.NewFromInt(1).Div(decimal.NewFromInt(3)),
	FrequencyYearly:    decimal.NewFromInt(1).Div(decimal.NewFromInt(12)),
}

// IsValid reports whether the frequency is known.
func (f Frequency) IsValid() bool {
	_, ok := monthlyFactors[f]
	return ok
}

// MonthlyFactor returns the number of occurrences per average month.
// Unknown frequencies are treated as monthly.
func (f Frequency) MonthlyFactor() decimal.Decimal {
	if factor, ok := monthlyFactors[f]; ok {
		return factor
	}
	return decimal.NewFromInt(1)
}

// RecurringTransaction represents a scheduled payment, optionally an installment loan (EMI).
// NextDue is advanced by the collaborator that materializes payments; the engine only reads it.
type RecurringTransaction struct {
	ID          uuid.UUID
	ProfileID   uuid.UUID
	Description string
	Amount      decimal.Decimal
	Type        TransactionType
	CategoryID  *uuid.UUID
	Frequency   Frequency
	NextDue     time.Time
	IsEMI       bool
	EMI         *EmiDetail
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewRecurringTransaction creates a new active RecurringTransaction entity.
func NewRecurringTransaction(
	profileID uuid.UUID,
	description string,
	amount decimal.Decimal,
	categoryID *uuid.UUID,
	frequency Frequency,
	nextDue time.Time,
	emi *EmiDetail,
) *RecurringTransaction {
	now := time.Now().UTC()

	return &RecurringTransaction{
		ID:          uuid.New(),
		ProfileID:   profileID,
		Description: description,
		Amount:      amount,
		Type:        TransactionTypeExpense,
		CategoryID:  categoryID,
		Frequency:   frequency,
		NextDue:     nextDue,
		IsEMI:       emi != nil,
		EMI:         emi,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// MonthlyAmount returns the amount normalized to a monthly cadence.
func (r *RecurringTransaction) MonthlyAmount() decimal.Decimal {
	return r.Amount.Mul(r.Frequency.MonthlyFactor())
}

// IsActiveEMI reports whether the recurring payment is an active installment loan.
func (r *RecurringTransaction) IsActiveEMI() bool {
	return r.IsActive && r.IsEMI
}
