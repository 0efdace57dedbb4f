// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// HealthCategory names one component of the health score breakdown.
type HealthCategory string

const (
	HealthCategorySavings   HealthCategory = "savings"
	HealthCategorySpending  HealthCategory = "spending"
	HealthCategoryBudgeting HealthCategory = "budgeting"
	HealthCategoryDebt      HealthCategory = "debt"
	HealthCategoryGoals     HealthCategory = "goals"
)

// HealthCategories lists the breakdown categories in presentation order.
var HealthCategories = []HealthCategory{
	HealthCategorySavings,
	HealthCategorySpending,
	HealthCategoryBudgeting,
	HealthCategoryDebt,
	HealthCategoryGoals,
}

// RiskLevel classifies the overall health score.
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

// HealthScore is the composite financial health of a profile. It is replaced wholesale on recompute.
type HealthScore struct {
	ProfileID       uuid.UUID
	Overall         float64
	Breakdown       map[HealthCategory]float64
	RiskLevel       RiskLevel
	Insights        []string
	Recommendations []string
	LastCalculated  time.Time
}
