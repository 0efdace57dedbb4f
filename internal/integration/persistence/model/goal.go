package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/analytics/internal/domain/entity"
)

// GoalModel represents the saving_goals table in the database.
type GoalModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProfileID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name          string          `gorm:"type:varchar(100);not null"`
	TargetAmount  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CurrentAmount decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Deadline      *time.Time
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for the GoalModel.
func (GoalModel) TableName() string {
	return "saving_goals"
}

// ToEntity converts a GoalModel to a domain SavingGoal entity.
func (m *GoalModel) ToEntity() *entity.SavingGoal {
	return &entity.SavingGoal{
		ID:            m.ID,
		ProfileID:     m.ProfileID,
		Name:          m.Name,
		TargetAmount:  m.TargetAmount,
		CurrentAmount: m.CurrentAmount,
		Deadline:      m.Deadline,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// GoalFromEntity creates a GoalModel from a domain SavingGoal entity.
func GoalFromEntity(g *entity.SavingGoal) *GoalModel {
	return &GoalModel{
		ID:            g.ID,
		ProfileID:     g.ProfileID,
		Name:          g.Name,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		Deadline:      g.Deadline,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}
