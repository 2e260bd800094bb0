// Package analytics provides the shared time-series types and the statistics
// kernel used by the trend analyzer and the insight generator.
package analytics

import (
	"sort"
	"time"
)

// DataPoint is a single sample of a scalar time series.
type DataPoint struct {
	Time  time.Time `json:"timestamp"`
	Value float64   `json:"value"`
}

// TimeSeries represents a collection of time-series data points
type TimeSeries []DataPoint

// Values extracts just the values from the time series
func (ts TimeSeries) Values() []float64 {
	values := make([]float64, len(ts))
	for i, p := range ts {
		values[i] = p.Value
	}
	return values
}

// Len returns the number of data points
func (ts TimeSeries) Len() int {
	return len(ts)
}

// Sorted returns a copy of the series ordered by time ascending.
// Points sharing a timestamp keep their input order.
func (ts TimeSeries) Sorted() TimeSeries {
	out := make(TimeSeries, len(ts))
	copy(out, ts)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time.Before(out[j].Time)
	})
	return out
}

// Summary returns the statistics kernel output for the series values.
func (ts TimeSeries) Summary() Summary {
	return Summarize(ts.Values())
}
