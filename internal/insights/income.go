package insights

import (
	"fmt"
	"math"
	"sort"

	"github.com/soltixdb/finsight/internal/analytics"
	"github.com/soltixdb/finsight/internal/models"
)

const (
	incomeMinMonths         = 2
	incomeVarianceThreshold = 20.0
	monthLayout             = "2006-01"
)

// IncomeVarianceDetector compares the most recent month of income with the
// average of all months present.
type IncomeVarianceDetector struct{}

// NewIncomeVarianceDetector creates a new IncomeVarianceDetector
func NewIncomeVarianceDetector() *IncomeVarianceDetector {
	return &IncomeVarianceDetector{}
}

// Name returns the detector name
func (d *IncomeVarianceDetector) Name() string {
	return "income_variance"
}

// Detect implements Detector
func (d *IncomeVarianceDetector) Detect(b *Batch) []Insight {
	totals, months := totalsBy(b.Income, func(t models.TransactionRecord) string {
		return t.Month().Format(monthLayout)
	})
	if len(months) < incomeMinMonths {
		return nil
	}
	sort.Strings(months)

	monthly := make([]float64, len(months))
	for i, m := range months {
		monthly[i] = toFloat(totals[m])
	}
	mean := analytics.Mean(monthly)
	latestMonth := months[len(months)-1]
	latest := monthly[len(monthly)-1]
	variance := analytics.SafeDiv(latest-mean, mean) * 100

	if math.Abs(variance) <= incomeVarianceThreshold {
		return nil
	}

	severity := SeverityInfo
	change := "higher"
	recommendation := "Consider saving the extra income."
	if variance < 0 {
		severity = SeverityWarning
		change = "lower"
		recommendation = "Review upcoming expenses against the reduced income."
	}

	in := newInsight(TypeIncomeVariance, latestMonth, severity, b.Now)
	in.Title = fmt.Sprintf("Income %s than usual in %s", change, latestMonth)
	in.Description = fmt.Sprintf("Income in %s was %.2f, %.0f%% %s than your monthly average of %.2f.", latestMonth, latest, math.Abs(variance), change, mean)
	in.Value = ptr(latest)
	in.Percentage = ptr(variance)
	in.Recommendation = recommendation
	return []Insight{in}
}
