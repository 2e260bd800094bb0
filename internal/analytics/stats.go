package analytics

import (
	"math"
	"sort"
)

// epsilon is the magnitude below which a denominator is treated as zero.
const epsilon = 1e-12

// Summary holds descriptive statistics of a numeric sample.
type Summary struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"stdDev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Range  float64 `json:"range"`
}

// Summarize computes mean, median, population standard deviation, min, max
// and range. An empty sample yields the zero Summary.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean := Mean(values)
	minV := sorted[0]
	maxV := sorted[len(sorted)-1]

	return Summary{
		Mean:   mean,
		Median: medianOfSorted(sorted),
		StdDev: stdDevAround(values, mean),
		Min:    minV,
		Max:    maxV,
		Range:  maxV - minV,
	}
}

// Mean calculates the arithmetic mean
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Median returns the middle value; for even-length samples the average of
// the two central values.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return medianOfSorted(sorted)
}

func medianOfSorted(sorted []float64) float64 {
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// StdDev calculates the population standard deviation (divides by N).
func StdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stdDevAround(values, Mean(values))
}

// MeanStdDev returns the mean and population standard deviation in one pass
// over the mean.
func MeanStdDev(values []float64) (mean, stdDev float64) {
	if len(values) == 0 {
		return 0, 0
	}
	mean = Mean(values)
	return mean, stdDevAround(values, mean)
}

func stdDevAround(values []float64, mean float64) float64 {
	var sumSq float64
	for _, v := range values {
		diff := v - mean
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(len(values)))
}

// IsZero reports whether v is close enough to zero to be unusable as a
// denominator.
func IsZero(v float64) bool {
	return math.Abs(v) < epsilon
}

// SafeDiv returns a/b, or 0 when b is (near) zero or the result is not finite.
func SafeDiv(a, b float64) float64 {
	if IsZero(b) {
		return 0
	}
	r := a / b
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}
