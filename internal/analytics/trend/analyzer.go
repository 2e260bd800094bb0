package trend

import (
	"math"

	"github.com/soltixdb/finsight/internal/analytics"
	"github.com/soltixdb/finsight/internal/analytics/anomaly"
	"github.com/soltixdb/finsight/internal/analytics/regression"
)

// Analyzer is stateless; the zero value is ready to use and safe for
// concurrent callers.
type Analyzer struct{}

// NewAnalyzer creates a new Analyzer
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze sorts the series by time and classifies it. A series with fewer
// than two points yields *InsufficientDataError.
func (a *Analyzer) Analyze(series []analytics.DataPoint) (*Result, error) {
	if len(series) < MinDataPoints {
		return nil, &InsufficientDataError{Need: MinDataPoints, Have: len(series)}
	}

	sorted := analytics.TimeSeries(series).Sorted()
	values := sorted.Values()
	stats := sorted.Summary()
	scale := math.Abs(stats.Mean)

	linear := regression.Linear(values)
	exponential := regression.Exponential(values)

	result := &Result{
		Type:       classify(stats, scale, linear, exponential),
		Direction:  direction(linear.Slope, scale),
		Strength:   clamp01(math.Max(linear.RSquared, exponential.RSquared)),
		Volatility: math.Min(1, analytics.SafeDiv(stats.StdDev, scale)),
		Statistics: stats,
	}
	result.CyclicalPattern = detectCycle(values, stats)
	result.Forecast = forecast(result.Type, linear, stats.Mean, len(values))

	return result, nil
}

// classify applies the shape tests in order of precedence.
func classify(stats analytics.Summary, scale float64, linear, exponential regression.Fit) Type {
	if analytics.SafeDiv(stats.StdDev, scale) > volatileCV {
		return TypeVolatile
	}
	// R² compares fits on different responses (raw vs log); this is a
	// heuristic selection, not a likelihood-based one.
	if exponential.RSquared > exponentialMinR2 && exponential.RSquared > linear.RSquared {
		return TypeExponential
	}
	if analytics.IsZero(stats.StdDev) || math.Abs(linear.Slope) < scale*stableSlopeRatio {
		return TypeStable
	}
	return TypeLinear
}

func direction(slope, scale float64) Direction {
	threshold := scale * directionSlopeRatio
	switch {
	case slope > threshold:
		return DirectionUp
	case slope < -threshold:
		return DirectionDown
	default:
		return DirectionNeutral
	}
}

// detectCycle looks for the strongest autocorrelation among lags 2..min(N/2, 12).
func detectCycle(values []float64, stats analytics.Summary) *CyclicalPattern {
	if len(values) < cyclicalMinPoints {
		return nil
	}

	maxLag := len(values) / 2
	if maxLag > cyclicalMaxLag {
		maxLag = cyclicalMaxLag
	}

	lag, r, ok := regression.BestLag(values, 2, maxLag)
	if !ok || r <= cyclicalMinR {
		return nil
	}

	return &CyclicalPattern{
		Period:    lag,
		Amplitude: stats.Range / 2,
	}
}

// ComparePeriods analyzes both series and reports how the second differs
// from the first.
func (a *Analyzer) ComparePeriods(period1, period2 []analytics.DataPoint) (*Comparison, error) {
	r1, err := a.Analyze(period1)
	if err != nil {
		return nil, err
	}
	r2, err := a.Analyze(period2)
	if err != nil {
		return nil, err
	}

	change := r2.Statistics.Mean - r1.Statistics.Mean

	return &Comparison{
		Period1:                 r1,
		Period2:                 r2,
		AverageChange:           change,
		AverageChangePercentage: analytics.SafeDiv(change, r1.Statistics.Mean) * 100,
		VolatilityChange:        r2.Volatility - r1.Volatility,
		TrendShift:              shift(r1, r2),
	}, nil
}

func shift(r1, r2 *Result) Shift {
	if r1.Direction != r2.Direction {
		return ShiftDirectionChanged
	}
	delta := r2.Strength - r1.Strength
	switch {
	case delta > shiftStrengthDelta:
		return ShiftStrengthened
	case delta < -shiftStrengthDelta:
		return ShiftWeakened
	default:
		return ShiftMaintained
	}
}

// DetectAnomalies flags points whose z-score against the whole series
// exceeds sensitivity. Sensitivity <= 0 uses anomaly.DefaultSensitivity.
// Indexes refer to the series sorted by time.
func (a *Analyzer) DetectAnomalies(series []analytics.DataPoint, sensitivity float64) []anomaly.Anomaly {
	sorted := analytics.TimeSeries(series).Sorted()
	return anomaly.NewZScoreDetector().Detect(sorted, anomaly.DetectorConfig{Sensitivity: sensitivity})
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
