package regression

import "github.com/soltixdb/finsight/internal/analytics"

// Autocorrelation returns r(lag) = Σ(v[i]-mean)(v[i+lag]-mean) / Σ(v[i]-mean)².
// It is 0 when the series has no variance or the lag is out of range.
func Autocorrelation(values []float64, lag int) float64 {
	n := len(values)
	if lag <= 0 || lag >= n {
		return 0
	}

	mean := analytics.Mean(values)

	denominator := 0.0
	for _, v := range values {
		d := v - mean
		denominator += d * d
	}

	numerator := 0.0
	for i := 0; i+lag < n; i++ {
		numerator += (values[i] - mean) * (values[i+lag] - mean)
	}

	return analytics.SafeDiv(numerator, denominator)
}

// BestLag scans lags minLag..maxLag and returns the one with the highest
// autocorrelation. ok is false when the range is empty.
func BestLag(values []float64, minLag, maxLag int) (lag int, r float64, ok bool) {
	for l := minLag; l <= maxLag; l++ {
		c := Autocorrelation(values, l)
		if !ok || c > r {
			lag, r, ok = l, c, true
		}
	}
	return lag, r, ok
}
