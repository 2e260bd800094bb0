// Package anomaly flags points of a time series that deviate from the
// whole-series baseline.
package anomaly

import (
	"github.com/soltixdb/finsight/internal/analytics"
)

// AnomalyType represents the direction of a detected anomaly
type AnomalyType string

const (
	AnomalyTypeSpike AnomalyType = "spike" // Above the baseline
	AnomalyTypeDrop  AnomalyType = "drop"  // Below the baseline
)

// Severity grades how far a point lies beyond the sensitivity threshold.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// DefaultSensitivity is the z-score above which a point is anomalous.
const DefaultSensitivity = 2.0

// Anomaly represents a detected anomaly in time-series data
type Anomaly struct {
	Index     int                 `json:"index"` // Index in the analyzed series
	Point     analytics.DataPoint `json:"point"`
	Deviation float64             `json:"deviation"` // |value - mean| / stdDev
	Severity  Severity            `json:"severity"`
	Type      AnomalyType         `json:"type"`
	Expected  *Range              `json:"expected,omitempty"`
}

// Range represents expected value range
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DetectorConfig holds configuration for anomaly detection
type DetectorConfig struct {
	// Sensitivity is the number of standard deviations a point must exceed.
	Sensitivity float64
}

// DefaultConfig returns default detector configuration
func DefaultConfig() DetectorConfig {
	return DetectorConfig{
		Sensitivity: DefaultSensitivity,
	}
}

// normalized falls back to the default sensitivity for non-positive values.
func (c DetectorConfig) normalized() DetectorConfig {
	if c.Sensitivity <= 0 {
		c.Sensitivity = DefaultSensitivity
	}
	return c
}

// Detector finds anomalies in a series.
type Detector interface {
	// Name returns the algorithm name
	Name() string

	// Detect finds anomalies in the given data points
	Detect(data []analytics.DataPoint, config DetectorConfig) []Anomaly
}

// ClassifySeverity grades a deviation relative to the sensitivity:
// high above 2x, medium above 1.5x, low otherwise.
func ClassifySeverity(deviation, sensitivity float64) Severity {
	switch {
	case deviation > sensitivity*2:
		return SeverityHigh
	case deviation > sensitivity*1.5:
		return SeverityMedium
	default:
		return SeverityLow
	}
}
