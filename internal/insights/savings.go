package insights

import (
	"fmt"
)

const (
	savingsMinSpend = 500.0
	savingsRate     = 0.10
)

// discretionaryCategories are matched case-insensitively and exactly.
var discretionaryCategories = map[string]bool{
	"food":          true,
	"transport":     true,
	"entertainment": true,
	"subscriptions": true,
}

// SavingsDetector suggests trimming discretionary categories with
// substantial spend.
type SavingsDetector struct{}

// NewSavingsDetector creates a new SavingsDetector
func NewSavingsDetector() *SavingsDetector {
	return &SavingsDetector{}
}

// Name returns the detector name
func (d *SavingsDetector) Name() string {
	return "savings_opportunity"
}

// Detect implements Detector
func (d *SavingsDetector) Detect(b *Batch) []Insight {
	var out []Insight
	for _, c := range categoryTotals(b.Expenses) {
		if !discretionaryCategories[c.Key] {
			continue
		}
		spent := toFloat(c.Total)
		if spent <= savingsMinSpend {
			continue
		}

		saving := spent * savingsRate

		in := newInsight(TypeSavingsOpportunity, c.Key, SeverityInfo, b.Now)
		in.Title = fmt.Sprintf("Savings opportunity in %s", c.Label)
		in.Description = fmt.Sprintf("You spent %.2f on %s. Cutting back by %.0f%% would save %.2f.", spent, c.Label, savingsRate*100, saving)
		in.Value = ptr(saving)
		in.Percentage = ptr(savingsRate * 100)
		in.Recommendation = fmt.Sprintf("Set a monthly cap for %s.", c.Label)
		in.AffectedCategory = c.Label
		out = append(out, in)
	}
	return out
}
