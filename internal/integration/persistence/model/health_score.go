package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/finance-tracker/analytics/internal/domain/entity"
)

// HealthScoreModel represents the health_scores table in the database. One row per profile.
type HealthScoreModel struct {
	ProfileID       uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Overall         float64        `gorm:"not null"`
	SavingsScore    float64        `gorm:"not null"`
	SpendingScore   float64        `gorm:"not null"`
	BudgetingScore  float64        `gorm:"not null"`
	DebtScore       float64        `gorm:"not null"`
	GoalsScore      float64        `gorm:"not null"`
	RiskLevel       string         `gorm:"type:varchar(10);not null"`
	Insights        pq.StringArray `gorm:"type:text[]"`
	Recommendations pq.StringArray `gorm:"type:text[]"`
	LastCalculated  time.Time      `gorm:"not null"`
}

// TableName returns the table name for the HealthScoreModel.
func (HealthScoreModel) TableName() string {
	return "health_scores"
}

// ToEntity converts a HealthScoreModel to a domain HealthScore entity.
func (m *HealthScoreModel) ToEntity() *entity.HealthScore {
	return &entity.HealthScore{
		ProfileID: m.ProfileID,
		Overall:   m.Overall,
		Breakdown: map[entity.HealthCategory]float64{
			entity.HealthCategorySavings:   m.SavingsScore,
			entity.HealthCategorySpending:  m.SpendingScore,
			entity.HealthCategoryBudgeting: m.BudgetingScore,
			entity.HealthCategoryDebt:      m.DebtScore,
			entity.HealthCategoryGoals:     m.GoalsScore,
		},
		RiskLevel:       entity.RiskLevel(m.RiskLevel),
		Insights:        []string(m.Insights),
		Recommendations: []string(m.Recommendations),
		LastCalculated:  m.LastCalculated,
	}
}

// HealthScoreFromEntity creates a HealthScoreModel from a domain HealthScore entity.
func HealthScoreFromEntity(s *entity.HealthScore) *HealthScoreModel {
	return &HealthScoreModel{
		ProfileID:       s.ProfileID,
		Overall:         s.Overall,
		SavingsScore:    s.Breakdown[entity.HealthCategorySavings],
		SpendingScore:   s.Breakdown[entity.HealthCategorySpending],
		BudgetingScore:  s.Breakdown[entity.HealthCategoryBudgeting],
		DebtScore:       s.Breakdown[entity.HealthCategoryDebt],
		GoalsScore:      s.Breakdown[entity.HealthCategoryGoals],
		RiskLevel:       string(s.RiskLevel),
		Insights:        pq.StringArray(s.Insights),
		Recommendations: pq.StringArray(s.Recommendations),
		LastCalculated:  s.LastCalculated,
	}
}
