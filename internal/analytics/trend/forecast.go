package trend

import (
	"math"

	"github.com/soltixdb/finsight/internal/analytics/regression"
)

// forecast extrapolates the linear fit for linear and exponential series and
// repeats the mean otherwise. Negative projections are clamped to zero.
func forecast(t Type, linear regression.Fit, mean float64, n int) Forecast {
	var horizon [6]float64
	for i := range horizon {
		switch t {
		case TypeLinear, TypeExponential:
			horizon[i] = linear.At(float64(n + i))
		default:
			horizon[i] = mean
		}
		horizon[i] = math.Max(0, horizon[i])
	}

	var f Forecast
	f.Next = horizon[0]
	copy(f.Next3[:], horizon[:3])
	f.Next6 = horizon
	return f
}
