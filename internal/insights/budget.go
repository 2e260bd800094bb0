package insights

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/soltixdb/finsight/internal/analytics"
	"github.com/soltixdb/finsight/internal/models"
)

const (
	budgetAlertRatio    = 0.90
	budgetCriticalRatio = 1.00
)

// BudgetDetector compares per-category spending against the supplied limits.
type BudgetDetector struct{}

// NewBudgetDetector creates a new BudgetDetector
func NewBudgetDetector() *BudgetDetector {
	return &BudgetDetector{}
}

// Name returns the detector name
func (d *BudgetDetector) Name() string {
	return "budget_warning"
}

// Detect implements Detector. Budget categories match expense categories
// case-insensitively; non-positive limits are ignored.
func (d *BudgetDetector) Detect(b *Batch) []Insight {
	if len(b.Budgets) == 0 {
		return nil
	}

	spentBy := make(map[string]decimal.Decimal)
	for _, c := range categoryTotals(b.Expenses) {
		spentBy[c.Key] = c.Total
	}

	limits := collapseBudgets(b.Budgets)
	keys := make([]string, 0, len(limits))
	for key := range limits {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var out []Insight
	for _, key := range keys {
		category, limit := limits[key].label, limits[key].limit
		spent := toFloat(spentBy[key])
		ratio := analytics.SafeDiv(spent, limit)
		if ratio < budgetAlertRatio {
			continue
		}

		var in Insight
		if ratio >= budgetCriticalRatio {
			in = newInsight(TypeBudgetWarning, key, SeverityCritical, b.Now)
			in.Title = fmt.Sprintf("Budget exceeded: %s", category)
			in.Description = fmt.Sprintf("Your %s budget was exceeded: spent %.2f of %.2f (%.0f%%).", category, spent, limit, ratio*100)
			in.Recommendation = fmt.Sprintf("Pause non-essential %s spending until the next period.", category)
		} else {
			in = newInsight(TypeBudgetWarning, key, SeverityAlert, b.Now)
			in.Title = fmt.Sprintf("Approaching budget: %s", category)
			in.Description = fmt.Sprintf("You have used %.0f%% of your %s budget (%.2f of %.2f).", ratio*100, category, spent, limit)
			in.Recommendation = fmt.Sprintf("Only %.2f remains in your %s budget.", limit-spent, category)
		}
		in.Value = ptr(spent)
		in.Percentage = ptr(ratio * 100)
		in.AffectedCategory = category
		out = append(out, in)
	}
	return out
}

type budgetLimit struct {
	label string
	limit float64
}

// collapseBudgets keys budgets by normalized category, dropping non-positive
// limits. Labels that normalize to the same key keep the smallest limit.
func collapseBudgets(budgets map[string]float64) map[string]budgetLimit {
	out := make(map[string]budgetLimit, len(budgets))
	for label, limit := range budgets {
		if limit <= 0 {
			continue
		}
		key := models.NormalizeCategory(label)
		if prev, ok := out[key]; ok && (prev.limit < limit || (prev.limit == limit && prev.label < label)) {
			continue
		}
		out[key] = budgetLimit{label: label, limit: limit}
	}
	return out
}
