package insights

import (
	"fmt"

	"github.com/soltixdb/finsight/internal/analytics"
)

const (
	categoryShareNotice  = 0.30
	categoryShareWarning = 0.50
)

// UnusualCategoryDetector reports categories that take an outsized share of
// total spending.
type UnusualCategoryDetector struct{}

// NewUnusualCategoryDetector creates a new UnusualCategoryDetector
func NewUnusualCategoryDetector() *UnusualCategoryDetector {
	return &UnusualCategoryDetector{}
}

// Name returns the detector name
func (d *UnusualCategoryDetector) Name() string {
	return "unusual_category"
}

// Detect implements Detector
func (d *UnusualCategoryDetector) Detect(b *Batch) []Insight {
	total := toFloat(sumAmounts(b.Expenses))
	if analytics.IsZero(total) {
		return nil
	}

	var out []Insight
	for _, c := range categoryTotals(b.Expenses) {
		spent := toFloat(c.Total)
		share := analytics.SafeDiv(spent, total)
		if share <= categoryShareNotice {
			continue
		}

		severity := SeverityInfo
		if share > categoryShareWarning {
			severity = SeverityWarning
		}

		in := newInsight(TypeUnusualCategory, c.Key, severity, b.Now)
		in.Title = fmt.Sprintf("High spending in %s", c.Label)
		in.Description = fmt.Sprintf("%s accounts for %.0f%% of your spending (%.2f of %.2f).", c.Label, share*100, spent, total)
		in.Value = ptr(spent)
		in.Percentage = ptr(share * 100)
		in.Recommendation = fmt.Sprintf("Check whether spending on %s matches your priorities.", c.Label)
		in.AffectedCategory = c.Label
		out = append(out, in)
	}
	return out
}
