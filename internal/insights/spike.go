package insights

import (
	"fmt"

	"github.com/soltixdb/finsight/internal/analytics"
	"github.com/soltixdb/finsight/internal/models"
)

const (
	spikeMinTransactions = 7
	spikeStdDevs         = 2.0
	dayLayout            = "2006-01-02"
)

// SpendingSpikeDetector flags days whose total expense exceeds the daily
// mean by more than two standard deviations.
type SpendingSpikeDetector struct{}

// NewSpendingSpikeDetector creates a new SpendingSpikeDetector
func NewSpendingSpikeDetector() *SpendingSpikeDetector {
	return &SpendingSpikeDetector{}
}

// Name returns the detector name
func (d *SpendingSpikeDetector) Name() string {
	return "spending_spike"
}

// Detect implements Detector
func (d *SpendingSpikeDetector) Detect(b *Batch) []Insight {
	if len(b.Expenses) < spikeMinTransactions {
		return nil
	}

	totals, days := totalsBy(b.Expenses, func(t models.TransactionRecord) string {
		return t.Day().Format(dayLayout)
	})

	daily := make([]float64, len(days))
	for i, day := range days {
		daily[i] = toFloat(totals[day])
	}
	mean, stdDev := analytics.MeanStdDev(daily)
	threshold := mean + spikeStdDevs*stdDev

	var out []Insight
	for i, day := range days {
		total := daily[i]
		if total <= threshold {
			continue
		}

		excess := total - mean
		severity := SeverityWarning
		if excess > mean {
			severity = SeverityAlert
		}
		pct := analytics.SafeDiv(excess, mean) * 100

		in := newInsight(TypeSpendingSpike, day, severity, b.Now)
		in.Title = fmt.Sprintf("Spending spike on %s", day)
		in.Description = fmt.Sprintf("You spent %.2f on %s, %.0f%% above your daily average of %.2f.", total, day, pct, mean)
		in.Value = ptr(total)
		in.Percentage = ptr(pct)
		in.Recommendation = "Review the purchases made on this day to check whether they were planned."
		out = append(out, in)
	}
	return out
}
