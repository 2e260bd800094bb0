package render

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soltixdb/finsight/internal/analytics"
	"github.com/soltixdb/finsight/internal/analytics/anomaly"
	"github.com/soltixdb/finsight/internal/analytics/trend"
	"github.com/soltixdb/finsight/internal/insights"
)

func sampleResult() *trend.Result {
	return &trend.Result{
		Type:       trend.TypeLinear,
		Direction:  trend.DirectionUp,
		Strength:   0.97,
		Volatility: 0.12,
		CyclicalPattern: &trend.CyclicalPattern{
			Period:    4,
			Amplitude: 20,
		},
		Forecast: trend.Forecast{
			Next:  1300,
			Next3: [3]float64{1300, 1310, 1320},
			Next6: [6]float64{1300, 1310, 1320, 1330, 1340, 1350},
		},
		Statistics: analytics.Summary{Mean: 1234.5, Median: 1200, StdDev: 80, Min: 1000, Max: 1500, Range: 500},
	}
}

func TestRenderer_Number(t *testing.T) {
	r := New(&bytes.Buffer{})
	assert.Equal(t, "1,234.50", r.Number(1234.5))
	assert.Equal(t, "0.00", r.Number(0))
	assert.Equal(t, "Groceries", r.Category("groceries"))
	assert.Equal(t, "Eating Out", r.Category("eating out"))
}

func TestRenderer_Trend(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf).Trend("Expenses by month", sampleResult()))

	out := buf.String()
	assert.Contains(t, out, "Expenses by month")
	assert.Contains(t, out, "linear")
	assert.Contains(t, out, "up")
	assert.Contains(t, out, "1,234.50")
	assert.Contains(t, out, "1,000.00 to 1,500.00")
	assert.Contains(t, out, "every 4 periods")
	assert.Contains(t, out, "1,350.00")
}

func TestRenderer_Comparison(t *testing.T) {
	var buf bytes.Buffer
	cmp := &trend.Comparison{
		Period1:                 sampleResult(),
		Period2:                 sampleResult(),
		AverageChange:           -50,
		AverageChangePercentage: -4.05,
		VolatilityChange:        0.1,
		TrendShift:              trend.ShiftWeakened,
	}
	require.NoError(t, New(&buf).Comparison(cmp))

	out := buf.String()
	assert.Contains(t, out, "Period 1")
	assert.Contains(t, out, "Period 2")
	assert.Contains(t, out, "-50.00")
	assert.Contains(t, out, "+0.10")
	assert.Contains(t, out, "weakened")
}

func TestRenderer_Anomalies(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf).Anomalies(nil))
	assert.Contains(t, buf.String(), "No anomalies found.")

	buf.Reset()
	list := []anomaly.Anomaly{{
		Index:     7,
		Point:     analytics.DataPoint{Time: time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC), Value: 2500},
		Deviation: 4.47,
		Severity:  anomaly.SeverityHigh,
		Type:      anomaly.AnomalyTypeSpike,
		Expected:  &anomaly.Range{Min: 10, Max: 90},
	}}
	require.NoError(t, New(&buf).Anomalies(list))

	out := buf.String()
	assert.Contains(t, out, "1 anomalies")
	assert.Contains(t, out, "2025-01-08")
	assert.Contains(t, out, "#7")
	assert.Contains(t, out, "2,500.00")
	assert.Contains(t, out, "spike")
	assert.Contains(t, out, "expected 10.00 to 90.00")
}

func TestRenderer_Insights(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf).Insights([]insights.Insight{}))
	assert.Contains(t, buf.String(), "No insights")

	buf.Reset()
	value := 1100.0
	list := []insights.Insight{{
		Type:             insights.TypeBudgetWarning,
		Severity:         insights.SeverityCritical,
		Title:            "Budget exceeded: groceries",
		Description:      "Your groceries budget was exceeded.",
		Value:            &value,
		Recommendation:   "Pause spending.",
		AffectedCategory: "groceries",
	}}
	require.NoError(t, New(&buf).Insights(list))

	out := buf.String()
	assert.Contains(t, out, "CRITICAL")
	assert.Contains(t, out, "Budget exceeded: groceries")
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "1,100.00")
	assert.Contains(t, out, "Pause spending.")
}

func TestRenderer_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf).JSON(sampleResult()))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "linear", decoded["type"])
	assert.Contains(t, decoded, "cyclicalPattern")
}
