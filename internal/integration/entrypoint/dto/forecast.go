package dto

import (
	"time"

	"github.com/finance-tracker/analytics/internal/domain/entity"
)

// GenerateForecastRequest represents the request body for regenerating predictions.
type GenerateForecastRequest struct {
	Period string `json:"period,omitempty" binding:"omitempty,oneof=next_week next_month next_quarter"`
}

// PredictionResponse represents a single prediction in API responses.
type PredictionResponse struct {
	ID              string    `json:"id"`
	CategoryID      string    `json:"category_id"`
	Period          string    `json:"period"`
	PredictedAmount string    `json:"predicted_amount"`
	Confidence      string    `json:"confidence"`
	Trend           string    `json:"trend"`
	Accuracy        float64   `json:"accuracy"`
	Factors         []string  `json:"factors"`
	GeneratedAt     time.Time `json:"generated_at"`
}

// PredictionListResponse represents the response for listing predictions.
type PredictionListResponse struct {
	Predictions []PredictionResponse `json:"predictions"`
}

// ToPredictionListResponse converts predictions to a PredictionListResponse DTO.
func ToPredictionListResponse(predictions []*entity.Prediction) PredictionListResponse {
	responses := make([]PredictionResponse, 0, len(predictions))
	for _, p := range predictions {
		factors := p.Factors
		if factors == nil {
			factors = []string{}
		}
		responses = append(responses, PredictionResponse{
			ID:              p.ID.String(),
			CategoryID:      p.CategoryID.String(),
			Period:          string(p.Period),
			PredictedAmount: money(p.PredictedAmount),
			Confidence:      string(p.Confidence),
			Trend:           string(p.Trend),
			Accuracy:        p.Accuracy,
			Factors:         factors,
			GeneratedAt:     p.GeneratedAt,
		})
	}
	return PredictionListResponse{Predictions: responses}
}
