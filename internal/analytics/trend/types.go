// Package trend classifies the shape of a time series, forecasts a short
// horizon, compares two periods and flags point anomalies.
package trend

import "github.com/soltixdb/finsight/internal/analytics"

// Type is the shape classification of a series.
type Type string

const (
	TypeLinear      Type = "linear"
	TypeExponential Type = "exponential"
	TypeCyclical    Type = "cyclical" // not produced by Analyze; periodicity is reported in CyclicalPattern
	TypeVolatile    Type = "volatile"
	TypeStable      Type = "stable"
)

// Direction of the fitted trend.
type Direction string

const (
	DirectionUp      Direction = "up"
	DirectionDown    Direction = "down"
	DirectionNeutral Direction = "neutral"
)

// Shift describes how a trend moved between two periods.
type Shift string

const (
	ShiftDirectionChanged Shift = "direction_changed"
	ShiftStrengthened     Shift = "strengthened"
	ShiftWeakened         Shift = "weakened"
	ShiftMaintained       Shift = "maintained"
)

// Thresholds used by the classifier. They are part of the observable
// behavior and must not be tuned.
const (
	MinDataPoints = 2

	volatileCV          = 0.5
	exponentialMinR2    = 0.9
	stableSlopeRatio    = 0.01
	directionSlopeRatio = 0.05

	cyclicalMinPoints = 12
	cyclicalMaxLag    = 12
	cyclicalMinR      = 0.5

	shiftStrengthDelta = 0.2
)

// CyclicalPattern annotates a detected periodicity.
type CyclicalPattern struct {
	Period    int     `json:"period"`
	Amplitude float64 `json:"amplitude"`
}

// Forecast holds 1, 3 and 6 period ahead values. All values are >= 0.
type Forecast struct {
	Next  float64    `json:"next"`
	Next3 [3]float64 `json:"next3"`
	Next6 [6]float64 `json:"next6"`
}

// Result is the outcome of analyzing a single series.
type Result struct {
	Type            Type              `json:"type"`
	Direction       Direction         `json:"direction"`
	Strength        float64           `json:"strength"`
	Volatility      float64           `json:"volatility"`
	CyclicalPattern *CyclicalPattern  `json:"cyclicalPattern,omitempty"`
	Forecast        Forecast          `json:"forecast"`
	Statistics      analytics.Summary `json:"statistics"`
}

// Comparison is the outcome of comparing two periods.
type Comparison struct {
	Period1                 *Result `json:"period1"`
	Period2                 *Result `json:"period2"`
	AverageChange           float64 `json:"averageChange"`
	AverageChangePercentage float64 `json:"averageChangePercentage"`
	VolatilityChange        float64 `json:"volatilityChange"`
	TrendShift              Shift   `json:"trendShift"`
}
