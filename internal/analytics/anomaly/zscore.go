package anomaly

import (
	"math"

	"github.com/soltixdb/finsight/internal/analytics"
)

// ZScoreDetector detects anomalies using Z-Score (standard score)
// Z-Score measures how many standard deviations a point is from the mean
// Points with |Z| > sensitivity are considered anomalies
type ZScoreDetector struct{}

// NewZScoreDetector creates a new Z-Score detector
func NewZScoreDetector() *ZScoreDetector {
	return &ZScoreDetector{}
}

// Name returns the algorithm name
func (z *ZScoreDetector) Name() string {
	return "zscore"
}

// Detect evaluates every point against the mean and population standard
// deviation of the whole series. A series without variance has no anomalies.
func (z *ZScoreDetector) Detect(data []analytics.DataPoint, config DetectorConfig) []Anomaly {
	config = config.normalized()
	if len(data) == 0 {
		return nil
	}

	mean, stdDev := analytics.MeanStdDev(analytics.TimeSeries(data).Values())
	if analytics.IsZero(stdDev) {
		return nil
	}

	expectedRange := &Range{
		Min: mean - config.Sensitivity*stdDev,
		Max: mean + config.Sensitivity*stdDev,
	}

	var results []Anomaly

	for i, dp := range data {
		zScore := CalculateZScore(dp.Value, mean, stdDev)
		deviation := math.Abs(zScore)
		if deviation <= config.Sensitivity {
			continue
		}

		anomalyType := AnomalyTypeSpike
		if zScore < 0 {
			anomalyType = AnomalyTypeDrop
		}

		results = append(results, Anomaly{
			Index:     i,
			Point:     dp,
			Deviation: deviation,
			Severity:  ClassifySeverity(deviation, config.Sensitivity),
			Type:      anomalyType,
			Expected:  expectedRange,
		})
	}

	return results
}

// CalculateZScore calculates Z-Score for a single value given mean and stdDev
func CalculateZScore(value, mean, stdDev float64) float64 {
	return analytics.SafeDiv(value-mean, stdDev)
}
