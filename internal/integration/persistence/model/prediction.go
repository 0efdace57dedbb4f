package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/analytics/internal/domain/entity"
)

// PredictionModel represents the predictions table in the database.
type PredictionModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProfileID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_predictions_profile_period"`
	Period          string          `gorm:"type:varchar(20);not null;index:idx_predictions_profile_period"`
	CategoryID      uuid.UUID       `gorm:"type:uuid;not null"`
	PredictedAmount decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Confidence      string          `gorm:"type:varchar(10);not null"`
	Trend           string          `gorm:"type:varchar(20);not null"`
	Accuracy        float64         `gorm:"not null"`
	Factors         pq.StringArray  `gorm:"type:text[]"`
	GeneratedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for the PredictionModel.
func (PredictionModel) TableName() string {
	return "predictions"
}

// ToEntity converts a PredictionModel to a domain Prediction entity.
func (m *PredictionModel) ToEntity() *entity.Prediction {
	return &entity.Prediction{
		ID:              m.ID,
		ProfileID:       m.ProfileID,
		CategoryID:      m.CategoryID,
		Period:          entity.PredictionPeriod(m.Period),
		PredictedAmount: m.PredictedAmount,
		Confidence:      entity.Confidence(m.Confidence),
		Trend:           entity.Trend(m.Trend),
		Accuracy:        m.Accuracy,
		Factors:         []string(m.Factors),
		GeneratedAt:     m.GeneratedAt,
	}
}

// PredictionFromEntity creates a PredictionModel from a domain Prediction entity.
func PredictionFromEntity(p *entity.Prediction) *PredictionModel {
	return &PredictionModel{
		ID:              p.ID,
		ProfileID:       p.ProfileID,
		Period:          string(p.Period),
		CategoryID:      p.CategoryID,
		PredictedAmount: p.PredictedAmount,
		Confidence:      string(p.Confidence),
		Trend:           string(p.Trend),
		Accuracy:        p.Accuracy,
		Factors:         pq.StringArray(p.Factors),
		GeneratedAt:     p.GeneratedAt,
	}
}
