// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PredictionPeriod represents the horizon of a forecast.
type PredictionPeriod string

const (
	PredictionPeriodNextWeek    PredictionPeriod = "next_week"
	PredictionPeriodNextMonth   PredictionPeriod = "next_month"
	PredictionPeriodNextQuarter PredictionPeriod = "next_quarter"
)

// IsValid reports whether the prediction period is known.
func (p PredictionPeriod) IsValid() bool {
	switch p {
	case PredictionPeriodNextWeek, PredictionPeriodNextMonth, PredictionPeriodNextQuarter:
		return true
	}
	return false
}

// Confidence is a coarse confidence bucket.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Trend is the direction of a category's spending.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// Prediction is a forecast of one category's spend for the next period.
// Predictions are regenerated wholesale on each forecast run.
type Prediction struct {
	ID              uuid.UUID
	ProfileID       uuid.UUID
	CategoryID      uuid.UUID
	Period          PredictionPeriod
	PredictedAmount decimal.Decimal
	Confidence      Confidence
	Trend           Trend
	Accuracy        float64 // 0-100
	Factors         []string
	GeneratedAt     time.Time
}
