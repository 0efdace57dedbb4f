package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/analytics/internal/domain/entity"
)

// RecurringModel represents the recurring_transactions table in the database.
type RecurringModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProfileID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"type:varchar(255);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Type        string          `gorm:"type:varchar(10);not null"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
	Frequency   string          `gorm:"type:varchar(10);not null"`
	NextDue     time.Time       `gorm:"not null;index"`
	IsEMI       bool            `gorm:"column:is_emi;not null;default:false"`
	EmiColumns  `gorm:"embedded"`
	IsActive    bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the RecurringModel.
func (RecurringModel) TableName() string {
	return "recurring_transactions"
}

// ToEntity converts a RecurringModel to a domain RecurringTransaction entity.
func (m *RecurringModel) ToEntity() *entity.RecurringTransaction {
	return &entity.RecurringTransaction{
		ID:          m.ID,
		ProfileID:   m.ProfileID,
		Description: m.Description,
		Amount:      m.Amount,
		Type:        entity.TransactionType(m.Type),
		CategoryID:  m.CategoryID,
		Frequency:   entity.Frequency(m.Frequency),
		NextDue:     m.NextDue,
		IsEMI:       m.IsEMI,
		EMI:         m.EmiColumns.toEntity(),
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// RecurringFromEntity creates a RecurringModel from a domain RecurringTransaction entity.
func RecurringFromEntity(r *entity.RecurringTransaction) *RecurringModel {
	return &RecurringModel{
		ID:          r.ID,
		ProfileID:   r.ProfileID,
		Description: r.Description,
		Amount:      r.Amount,
		Type:        string(r.Type),
		CategoryID:  r.CategoryID,
		Frequency:   string(r.Frequency),
		NextDue:     r.NextDue,
		IsEMI:       r.IsEMI,
		EmiColumns:  emiColumnsFromEntity(r.EMI),
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
