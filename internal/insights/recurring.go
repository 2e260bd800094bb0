package insights

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/soltixdb/finsight/internal/models"
)

const (
	recurringMinOccurrences = 2
	recurringMaxResults     = 5
)

// Cadence is the inferred repetition interval of a recurring expense.
type Cadence string

const (
	CadenceWeekly      Cadence = "weekly"
	CadenceFortnightly Cadence = "fortnightly"
	CadenceMonthly     Cadence = "monthly"
	CadenceQuarterly   Cadence = "quarterly"
	CadenceAnnual      Cadence = "annual"
	CadenceIrregular   Cadence = "irregular"
)

// recurringKey groups expenses by normalized description and whole amount.
type recurringKey struct {
	description string
	amount      int64
}

func (k recurringKey) String() string {
	return fmt.Sprintf("%s|%d", k.description, k.amount)
}

type recurringGroup struct {
	key      recurringKey
	label    string
	txns     []models.TransactionRecord
	lastSeen time.Time
}

// RecurringDetector finds expenses that repeat with the same description and
// rounded amount.
type RecurringDetector struct{}

// NewRecurringDetector creates a new RecurringDetector
func NewRecurringDetector() *RecurringDetector {
	return &RecurringDetector{}
}

// Name returns the detector name
func (d *RecurringDetector) Name() string {
	return "recurring_expense"
}

// Detect implements Detector. Expenses without a description are skipped.
// At most five groups are reported: most occurrences first, then most
// recently seen.
func (d *RecurringDetector) Detect(b *Batch) []Insight {
	groups := make(map[recurringKey]*recurringGroup)
	for _, t := range b.Expenses {
		desc := t.NormalizedDescription()
		if desc == "" {
			continue
		}
		key := recurringKey{description: desc, amount: int64(math.Round(t.Amount))}
		g, ok := groups[key]
		if !ok {
			g = &recurringGroup{key: key, label: strings.TrimSpace(t.Description)}
			groups[key] = g
		}
		g.txns = append(g.txns, t)
		if t.Date.After(g.lastSeen) {
			g.lastSeen = t.Date
		}
	}

	recurring := make([]*recurringGroup, 0, len(groups))
	for _, g := range groups {
		if len(g.txns) >= recurringMinOccurrences {
			recurring = append(recurring, g)
		}
	}

	sort.Slice(recurring, func(i, j int) bool {
		x, y := recurring[i], recurring[j]
		if len(x.txns) != len(y.txns) {
			return len(x.txns) > len(y.txns)
		}
		if !x.lastSeen.Equal(y.lastSeen) {
			return x.lastSeen.After(y.lastSeen)
		}
		return x.key.String() < y.key.String()
	})
	if len(recurring) > recurringMaxResults {
		recurring = recurring[:recurringMaxResults]
	}

	out := make([]Insight, 0, len(recurring))
	for _, g := range recurring {
		count := len(g.txns)
		avg := toFloat(sumAmounts(g.txns).Div(decimal.NewFromInt(int64(count))))
		cadence := detectCadence(g.txns)

		in := newInsight(TypeRecurringExpense, g.key.String(), SeverityInfo, b.Now)
		in.Title = fmt.Sprintf("Recurring expense: %s", g.label)
		in.Description = fmt.Sprintf("%s was charged %d times (%s), averaging %.2f.", g.label, count, cadence, avg)
		in.Value = ptr(avg)
		in.Recommendation = "Confirm this charge is still needed, or cancel it."
		in.AffectedCategory = mostCommonCategory(g.txns)
		out = append(out, in)
	}
	return out
}

// detectCadence maps the average gap between occurrences onto a known
// interval band.
func detectCadence(txns []models.TransactionRecord) Cadence {
	dates := make([]time.Time, len(txns))
	for i, t := range txns {
		dates[i] = t.Date
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	var sum float64
	var gaps int
	for i := 1; i < len(dates); i++ {
		days := dates[i].Sub(dates[i-1]).Hours() / 24
		if days > 0 {
			sum += days
			gaps++
		}
	}
	if gaps == 0 {
		return CadenceIrregular
	}
	avg := sum / float64(gaps)

	bands := []struct {
		cadence  Cadence
		min, max float64
	}{
		{CadenceWeekly, 5, 9},
		{CadenceFortnightly, 12, 16},
		{CadenceMonthly, 27, 34},
		{CadenceQuarterly, 85, 95},
		{CadenceAnnual, 355, 375},
	}
	for _, band := range bands {
		if avg >= band.min && avg <= band.max {
			return band.cadence
		}
	}
	return CadenceIrregular
}

// mostCommonCategory returns the category label used most often, earliest
// seen on ties.
func mostCommonCategory(txns []models.TransactionRecord) string {
	counts := make(map[string]int)
	best := ""
	for _, t := range txns {
		counts[t.Category]++
		if best == "" || counts[t.Category] > counts[best] {
			best = t.Category
		}
	}
	return best
}
