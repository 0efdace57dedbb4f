// Package forecast predicts next-period spending per category from trailing history.
package forecast

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/analytics/internal/domain/entity"
	domainerror "github.com/finance-tracker/analytics/internal/domain/error"
	"github.com/finance-tracker/analytics/internal/domain/valueobject"
)

// predictionNamespace seeds deterministic prediction IDs.
var predictionNamespace = uuid.MustParse("6f1c3a52-9d47-4b8e-a0f3-2c5d8e71b904")

var windowUnits = map[entity.PredictionPeriod]string{
	entity.PredictionPeriodNextWeek:    "weekly",
	entity.PredictionPeriodNextMonth:   "monthly",
	entity.PredictionPeriodNextQuarter: "quarterly",
}

// Engine classifies per-category trends and predicts next-period spend.
type Engine struct {
	cfg valueobject.ForecastConfig
}

// NewEngine creates an Engine with normalized configuration.
func NewEngine(cfg valueobject.ForecastConfig) *Engine {
	return &Engine{cfg: cfg.Normalize()}
}

// Config returns the effective configuration.
func (e *Engine) Config() valueobject.ForecastConfig {
	return e.cfg
}

// series holds one category's spend per trailing window, oldest first.
type series struct {
	sums  []float64
	count int
}

// Forecast returns one prediction per category that has expense history in the look-back,
// ordered by category ID. Categories without history are omitted.
func (e *Engine) Forecast(
	profileID uuid.UUID,
	transactions []*entity.Transaction,
	period entity.PredictionPeriod,
	now time.Time,
) ([]*entity.Prediction, error) {
	if !period.IsValid() {
		return nil, invalidPeriod(period)
	}

	windows := valueobject.TrailingWindows(now, period, e.cfg.HistoryWindows)
	byCategory := make(map[uuid.UUID]*series)

	for _, tx := range transactions {
		if tx == nil || !tx.IsExpense() {
			continue
		}
		idx := windowIndex(windows, tx.Date)
		if idx < 0 {
			continue
		}

		s, ok := byCategory[tx.CategoryID]
		if !ok {
			s = &series{sums: make([]float64, len(windows))}
			byCategory[tx.CategoryID] = s
		}
		amount, _ := tx.Amount.Float64()
		s.sums[idx] += amount
		s.count++
	}

	categoryIDs := make([]uuid.UUID, 0, len(byCategory))
	for id := range byCategory {
		categoryIDs = append(categoryIDs, id)
	}
	sort.Slice(categoryIDs, func(i, j int) bool {
		return categoryIDs[i].String() < categoryIDs[j].String()
	})

	predictions := make([]*entity.Prediction, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		predictions = append(predictions, e.predict(profileID, id, period, byCategory[id], now))
	}

	return predictions, nil
}

func (e *Engine) predict(
	profileID, categoryID uuid.UUID,
	period entity.PredictionPeriod,
	s *series,
	now time.Time,
) *entity.Prediction {
	n := len(s.sums)
	half := n / 2
	prior := mean(s.sums[:n-half])
	recent := mean(s.sums[n-half:])

	trend, change := e.classifyTrend(recent, prior)

	predicted := recent
	switch trend {
	case entity.TrendIncreasing:
		predicted = recent * (1 + e.cfg.TrendAdjustment)
	case entity.TrendDecreasing:
		predicted = recent * (1 - e.cfg.TrendAdjustment)
	}

	cv := coefficientOfVariation(s.sums)
	confidence := e.classifyConfidence(cv)
	accuracy := math.Round(clamp(100-cv*100, 0, 100)*100) / 100

	return &entity.Prediction{
		ID:              uuid.NewSHA1(predictionNamespace, []byte(profileID.String()+"/"+categoryID.String()+"/"+string(period))),
		ProfileID:       profileID,
		CategoryID:      categoryID,
		Period:          period,
		PredictedAmount: decimal.NewFromFloat(predicted).Round(2),
		Confidence:      confidence,
		Trend:           trend,
		Accuracy:        accuracy,
		Factors:         factors(s, period, trend, change, cv, recent, e.cfg),
		GeneratedAt:     now,
	}
}

// classifyTrend compares the recent and prior averages against the materiality margin.
// change is the relative difference, or +Inf when spending appeared from nothing.
func (e *Engine) classifyTrend(recent, prior float64) (entity.Trend, float64) {
	if prior == 0 {
		if recent > 0 {
			return entity.TrendIncreasing, math.Inf(1)
		}
		return entity.TrendStable, 0
	}

	change := (recent - prior) / prior
	switch {
	case change > e.cfg.MaterialityMargin:
		return entity.TrendIncreasing, change
	case change < -e.cfg.MaterialityMargin:
		return entity.TrendDecreasing, change
	default:
		return entity.TrendStable, change
	}
}

func (e *Engine) classifyConfidence(cv float64) entity.Confidence {
	switch {
	case cv <= e.cfg.HighConfidenceCV:
		return entity.ConfidenceHigh
	case cv <= e.cfg.MediumConfidenceCV:
		return entity.ConfidenceMedium
	default:
		return entity.ConfidenceLow
	}
}

func factors(
	s *series,
	period entity.PredictionPeriod,
	trend entity.Trend,
	change, cv, recent float64,
	cfg valueobject.ForecastConfig,
) []string {
	active := 0
	for _, v := range s.sums {
		if v > 0 {
			active++
		}
	}

	out := []string{
		fmt.Sprintf("%d transactions across %d of %d %s windows", s.count, active, len(s.sums), windowUnits[period]),
	}

	switch {
	case math.IsInf(change, 1):
		out = append(out, "new spending in recent windows")
	case trend == entity.TrendIncreasing:
		out = append(out, fmt.Sprintf("spending up %.1f%% versus earlier windows", change*100))
	case trend == entity.TrendDecreasing:
		out = append(out, fmt.Sprintf("spending down %.1f%% versus earlier windows", -change*100))
	default:
		out = append(out, fmt.Sprintf("spending stable within %.0f%%", cfg.MaterialityMargin*100))
	}

	switch {
	case cv <= cfg.HighConfidenceCV:
		out = append(out, fmt.Sprintf("low variability (cv %.2f)", cv))
	case cv <= cfg.MediumConfidenceCV:
		out = append(out, fmt.Sprintf("moderate variability (cv %.2f)", cv))
	default:
		out = append(out, fmt.Sprintf("high variability (cv %.2f)", cv))
	}

	if recent == 0 {
		out = append(out, "no spending in recent windows")
	}

	return out
}

func invalidPeriod(period entity.PredictionPeriod) error {
	return domainerror.NewAnalyticsError(
		domainerror.ErrCodeInvalidPeriod,
		"unsupported prediction period",
		string(period),
		domainerror.ErrInvalidPredictionPeriod,
	)
}

func windowIndex(windows []valueobject.Window, date time.Time) int {
	for i, w := range windows {
		if w.Contains(date) {
			return i
		}
	}
	return -1
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// coefficientOfVariation is the population standard deviation over the mean; 0 for an all-zero series.
func coefficientOfVariation(values []float64) float64 {
	m := mean(values)
	if m == 0 {
		return 0
	}
	variance := 0.0
	for _, v := range values {
		variance += (v - m) * (v - m)
	}
	variance /= float64(len(values))
	return math.Sqrt(variance) / m
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
