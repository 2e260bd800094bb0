// Package regression implements ordinary least squares fits against the
// sample index and lagged autocorrelation.
package regression

import (
	"math"

	"github.com/soltixdb/finsight/internal/analytics"
)

// Fit is the result of an OLS regression of y on x = 0..N-1.
type Fit struct {
	Slope     float64
	Intercept float64
	RSquared  float64
}

// At evaluates the fitted line at index x.
func (f Fit) At(x float64) float64 {
	return f.Intercept + f.Slope*x
}

// Linear fits y = intercept + slope*i over the sample index.
// RSquared is 0 when y has no variance.
func Linear(values []float64) Fit {
	if len(values) == 0 {
		return Fit{}
	}

	n := float64(len(values))

	sumX := 0.0
	sumY := 0.0
	sumXY := 0.0
	sumX2 := 0.0

	for i, v := range values {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumX2 += x * x
	}

	denominator := n*sumX2 - sumX*sumX
	if analytics.IsZero(denominator) {
		// Single point: a flat line through it.
		return Fit{Intercept: sumY / n}
	}

	slope := (n*sumXY - sumX*sumY) / denominator
	intercept := (sumY - slope*sumX) / n
	fit := Fit{Slope: slope, Intercept: intercept}
	fit.RSquared = rSquared(values, fit)
	return fit
}

// Exponential fits ln(y) = intercept + slope*i. Non-positive values are
// mapped to 0 in log space.
func Exponential(values []float64) Fit {
	logs := make([]float64, len(values))
	for i, v := range values {
		if v > 0 {
			logs[i] = math.Log(v)
		}
	}
	return Linear(logs)
}

func rSquared(values []float64, fit Fit) float64 {
	mean := analytics.Mean(values)

	var ssRes, ssTot float64
	for i, v := range values {
		residual := v - fit.At(float64(i))
		ssRes += residual * residual
		d := v - mean
		ssTot += d * d
	}

	if analytics.IsZero(ssTot) {
		return 0
	}
	return 1 - ssRes/ssTot
}
