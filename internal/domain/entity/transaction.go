// Package entity defines the core business entities for the domain layer.
package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// IsValid reports whether the transaction type is known.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeExpense || t == TransactionTypeIncome
}

// EmiTolerance is the rounding tolerance allowed between principal + interest and the installment amount.
var EmiTolerance = decimal.NewFromFloat(0.01)

// EmiDetail describes a single installment of an amortizing loan.
type EmiDetail struct {
	LoanAmount         decimal.Decimal
	Principal          decimal.Decimal
	Interest           decimal.Decimal
	CurrentInstallment int // 1-based
	TotalInstallments  int
}

// Validate checks the installment counters and, when amount is positive,
// that principal + interest matches it within EmiTolerance.
func (e *EmiDetail) Validate(amount decimal.Decimal) error {
	if e.TotalInstallments < 1 {
		return errors.New("total installments must be at least 1")
	}
	if e.CurrentInstallment < 1 || e.CurrentInstallment > e.TotalInstallments {
		return errors.New("current installment must be between 1 and total installments")
	}
	if e.Principal.IsNegative() || e.Interest.IsNegative() || e.LoanAmount.IsNegative() {
		return errors.New("loan amounts must not be negative")
	}
	if amount.IsPositive() && e.Principal.Add(e.Interest).Sub(amount).Abs().GreaterThan(EmiTolerance) {
		return errors.New("principal plus interest must equal the installment amount")
	}
	return nil
}

// Transaction represents a ledger entry. Amount is always non-negative; Type carries the direction.
type Transaction struct {
	ID          uuid.UUID
	ProfileID   uuid.UUID
	Type        TransactionType
	Amount      decimal.Decimal
	CategoryID  uuid.UUID
	Date        time.Time
	Description string
	EMI         *EmiDetail // Set when the transaction is an installment-loan payment
	RecurringID *uuid.UUID // Set when materialized from a recurring payment
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	profileID uuid.UUID,
	transactionType TransactionType,
	amount decimal.Decimal,
	categoryID uuid.UUID,
	date time.Time,
	description string,
	emi *EmiDetail,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:          uuid.New(),
		ProfileID:   profileID,
		Type:        transactionType,
		Amount:      amount,
		CategoryID:  categoryID,
		Date:        date,
		Description: description,
		EMI:         emi,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsExpense reports whether the transaction is an expense.
func (t *Transaction) IsExpense() bool {
	return t.Type == TransactionTypeExpense
}

// IsIncome reports whether the transaction is an income.
func (t *Transaction) IsIncome() bool {
	return t.Type == TransactionTypeIncome
}

// Reassign moves the transaction to another category. It is the only mutation allowed after creation.
func (t *Transaction) Reassign(categoryID uuid.UUID) {
	t.CategoryID = categoryID
	t.UpdatedAt = time.Now().UTC()
}
