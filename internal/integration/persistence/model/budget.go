package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/analytics/internal/domain/entity"
)

// BudgetModel represents the budgets table in the database.
type BudgetModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProfileID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoryID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount         decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Period         string          `gorm:"type:varchar(10);not null;default:'monthly'"`
	AlertThreshold int             `gorm:"not null;default:80"`
	IsActive       bool            `gorm:"not null;default:true;index"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for the BudgetModel.
func (BudgetModel) TableName() string {
	return "budgets"
}

// ToEntity converts a BudgetModel to a domain Budget entity.
func (m *BudgetModel) ToEntity() *entity.Budget {
	return &entity.Budget{
		ID:             m.ID,
		ProfileID:      m.ProfileID,
		CategoryID:     m.CategoryID,
		Amount:         m.Amount,
		Period:         entity.BudgetPeriod(m.Period),
		AlertThreshold: m.AlertThreshold,
		IsActive:       m.IsActive,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// BudgetFromEntity creates a BudgetModel from a domain Budget entity.
func BudgetFromEntity(b *entity.Budget) *BudgetModel {
	return &BudgetModel{
		ID:             b.ID,
		ProfileID:      b.ProfileID,
		CategoryID:     b.CategoryID,
		Amount:         b.Amount,
		Period:         string(b.Period),
		AlertThreshold: b.AlertThreshold,
		IsActive:       b.IsActive,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}
