// Package valueobject contains domain value objects for the analytics engine.
package valueobject

// ForecastConfig contains the tunable parameters of the forecast engine.
type ForecastConfig struct {
	// Number of trailing windows used as history
	HistoryWindows int // 6

	// Relative change between recent and prior averages that counts as a trend
	MaterialityMargin float64 // 0.05 = 5%

	// Relative adjustment applied to the recent average in the trend direction
	TrendAdjustment float64 // 0.05 = 5%

	// Coefficient of variation bands for confidence buckets
	HighConfidenceCV   float64 // <= 0.25
	MediumConfidenceCV float64 // <= 0.50
}

// DefaultForecastConfig returns the default forecast configuration.
func DefaultForecastConfig() ForecastConfig {
	return ForecastConfig{
		HistoryWindows:     6,
		MaterialityMargin:  0.05,
		TrendAdjustment:    0.05,
		HighConfidenceCV:   0.25,
		MediumConfidenceCV: 0.50,
	}
}

// Normalize replaces out-of-range values with defaults.
func (c ForecastConfig) Normalize() ForecastConfig {
	def := DefaultForecastConfig()
	if c.HistoryWindows < 2 {
		c.HistoryWindows = def.HistoryWindows
	}
	if c.MaterialityMargin < 0 {
		c.MaterialityMargin = def.MaterialityMargin
	}
	if c.TrendAdjustment < 0 || c.TrendAdjustment >= 1 {
		c.TrendAdjustment = def.TrendAdjustment
	}
	if c.HighConfidenceCV <= 0 {
		c.HighConfidenceCV = def.HighConfidenceCV
	}
	if c.MediumConfidenceCV < c.HighConfidenceCV {
		c.MediumConfidenceCV = c.HighConfidenceCV
	}
	return c
}
