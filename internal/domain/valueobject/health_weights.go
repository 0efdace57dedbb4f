// Package valueobject contains domain value objects for the analytics engine.
package valueobject

import (
	"errors"
	"math"

	"github.com/finance-tracker/analytics/internal/domain/entity"
)

// HealthWeights maps each breakdown category to its weight in the overall score.
type HealthWeights map[entity.HealthCategory]float64

// DefaultHealthWeights returns the fixed weights of the overall health score:
// savings 25%, spending 20%, budgeting 20%, debt 20%, goals 15%.
func DefaultHealthWeights() HealthWeights {
	return HealthWeights{
		entity.HealthCategorySavings:   0.25,
		entity.HealthCategorySpending:  0.20,
		entity.HealthCategoryBudgeting: 0.20,
		entity.HealthCategoryDebt:      0.20,
		entity.HealthCategoryGoals:     0.15,
	}
}

// Validate checks that every category has a non-negative weight and the weights sum to 1.0.
func (w HealthWeights) Validate() error {
	sum := 0.0
	for _, category := range entity.HealthCategories {
		weight, ok := w[category]
		if !ok {
			return errors.New("missing weight for " + string(category))
		}
		if weight < 0 {
			return errors.New("negative weight for " + string(category))
		}
		sum += weight
	}
	if math.Abs(sum-1.0) > 1e-9 {
		return errors.New("health weights must sum to 1.0")
	}
	return nil
}
