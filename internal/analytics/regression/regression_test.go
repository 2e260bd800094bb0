package regression

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinear_PerfectLine(t *testing.T) {
	values := make([]float64, 10)
	for i := range values {
		values[i] = 2*float64(i) + 5
	}

	fit := Linear(values)

	assert.InDelta(t, 2.0, fit.Slope, 1e-9)
	assert.InDelta(t, 5.0, fit.Intercept, 1e-9)
	assert.InDelta(t, 1.0, fit.RSquared, 1e-9)
	assert.InDelta(t, 25.0, fit.At(10), 1e-9)
}

func TestLinear_Constant(t *testing.T) {
	fit := Linear([]float64{7, 7, 7, 7})

	assert.Zero(t, fit.Slope)
	assert.Zero(t, fit.RSquared, "zero variance has no explained variance")
}

func TestLinear_SinglePoint(t *testing.T) {
	fit := Linear([]float64{3})
	assert.Equal(t, Fit{Intercept: 3}, fit)
}

func TestExponential_Growth(t *testing.T) {
	values := make([]float64, 12)
	for i := range values {
		values[i] = 100 * math.Pow(1.2, float64(i))
	}

	fit := Exponential(values)

	assert.InDelta(t, math.Log(1.2), fit.Slope, 1e-9)
	assert.GreaterOrEqual(t, fit.RSquared, 0.999)
}

func TestExponential_NonPositiveValues(t *testing.T) {
	fit := Exponential([]float64{0, -5, 0, -1})
	assert.False(t, math.IsNaN(fit.Slope))
	assert.False(t, math.IsNaN(fit.RSquared))
}

func TestAutocorrelation_Periodic(t *testing.T) {
	values := make([]float64, 24)
	for i := range values {
		values[i] = 100 + 20*math.Sin(2*math.Pi*float64(i)/4)
	}

	lag, r, ok := BestLag(values, 2, 12)

	require.True(t, ok)
	assert.Equal(t, 4, lag, "r=%f", r)
	assert.Greater(t, r, 0.5)
}

func TestAutocorrelation_Degenerate(t *testing.T) {
	assert.Zero(t, Autocorrelation([]float64{5, 5, 5, 5}, 1))
	assert.Zero(t, Autocorrelation([]float64{1, 2, 3}, 3))

	_, _, ok := BestLag([]float64{1, 2, 3}, 2, 1)
	assert.False(t, ok)
}
