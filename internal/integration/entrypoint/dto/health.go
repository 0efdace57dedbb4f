package dto

import (
	"time"

	"github.com/finance-tracker/analytics/internal/domain/entity"
)

// HealthScoreRequest represents the optional body of a health score calculation.
type HealthScoreRequest struct {
	Locale string `json:"locale,omitempty" binding:"omitempty,max=16"`
}

// HealthScoreResponse represents the health score of a profile.
type HealthScoreResponse struct {
	Overall         float64            `json:"overall"`
	Breakdown       map[string]float64 `json:"breakdown"`
	RiskLevel       string             `json:"risk_level"`
	Insights        []string           `json:"insights"`
	Recommendations []string           `json:"recommendations"`
	LastCalculated  time.Time          `json:"last_calculated"`
}

// ToHealthScoreResponse converts a domain HealthScore entity to a HealthScoreResponse DTO.
func ToHealthScoreResponse(s *entity.HealthScore) HealthScoreResponse {
	breakdown := make(map[string]float64, len(s.Breakdown))
	for category, value := range s.Breakdown {
		breakdown[string(category)] = value
	}
	return HealthScoreResponse{
		Overall:         s.Overall,
		Breakdown:       breakdown,
		RiskLevel:       string(s.RiskLevel),
		Insights:        nonNil(s.Insights),
		Recommendations: nonNil(s.Recommendations),
		LastCalculated:  s.LastCalculated,
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
