package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/analytics/internal/domain/entity"
)

// EmiColumns holds the optional installment detail shared by transactions and recurring payments.
type EmiColumns struct {
	EmiLoanAmount *decimal.Decimal `gorm:"type:decimal(15,2)"`
	EmiPrincipal  *decimal.Decimal `gorm:"type:decimal(15,2)"`
	EmiInterest   *decimal.Decimal `gorm:"type:decimal(15,2)"`
	EmiCurrent    *int             `gorm:"type:integer"`
	EmiTotal      *int             `gorm:"type:integer"`
}

func (c EmiColumns) toEntity() *entity.EmiDetail {
	if c.EmiCurrent == nil || c.EmiTotal == nil {
		return nil
	}
	detail := &entity.EmiDetail{
		CurrentInstallment: *c.EmiCurrent,
		TotalInstallments:  *c.EmiTotal,
	}
	if c.EmiLoanAmount != nil {
		detail.LoanAmount = *c.EmiLoanAmount
	}
	if c.EmiPrincipal != nil {
		detail.Principal = *c.EmiPrincipal
	}
	if c.EmiInterest != nil {
		detail.Interest = *c.EmiInterest
	}
	return detail
}

func emiColumnsFromEntity(detail *entity.EmiDetail) EmiColumns {
	if detail == nil {
		return EmiColumns{}
	}
	current, total := detail.CurrentInstallment, detail.TotalInstallments
	loan, principal, interest := detail.LoanAmount, detail.Principal, detail.Interest
	return EmiColumns{
		EmiLoanAmount: &loan,
		EmiPrincipal:  &principal,
		EmiInterest:   &interest,
		EmiCurrent:    &current,
		EmiTotal:      &total,
	}
}

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProfileID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_transactions_profile_date"`
	Date        time.Time       `gorm:"not null;index:idx_transactions_profile_date"`
	Description string          `gorm:"type:varchar(255);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Type        string          `gorm:"type:varchar(10);not null;index"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	RecurringID *uuid.UUID      `gorm:"type:uuid;index"`
	EmiColumns  `gorm:"embedded"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:          m.ID,
		ProfileID:   m.ProfileID,
		Type:        entity.TransactionType(m.Type),
		Amount:      m.Amount,
		CategoryID:  m.CategoryID,
		Date:        m.Date,
		Description: m.Description,
		EMI:         m.EmiColumns.toEntity(),
		RecurringID: m.RecurringID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(tx *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:          tx.ID,
		ProfileID:   tx.ProfileID,
		Date:        tx.Date,
		Description: tx.Description,
		Amount:      tx.Amount,
		Type:        string(tx.Type),
		CategoryID:  tx.CategoryID,
		RecurringID: tx.RecurringID,
		EmiColumns:  emiColumnsFromEntity(tx.EMI),
		CreatedAt:   tx.CreatedAt,
		UpdatedAt:   tx.UpdatedAt,
	}
}
