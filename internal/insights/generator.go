package insights

import (
	"sort"
	"time"

	"github.com/soltixdb/finsight/internal/models"
)

// Generator runs a fixed set of detectors. It holds no mutable state and is
// safe for concurrent use.
type Generator struct {
	detectors []Detector
}

// NewGenerator creates a Generator with the default detectors.
func NewGenerator() *Generator {
	return NewGeneratorWithDetectors(DefaultDetectors()...)
}

// NewGeneratorWithDetectors creates a Generator running only the given detectors.
func NewGeneratorWithDetectors(detectors ...Detector) *Generator {
	return &Generator{detectors: detectors}
}

// DefaultDetectors returns the six built-in detectors.
func DefaultDetectors() []Detector {
	return []Detector{
		NewSpendingSpikeDetector(),
		NewUnusualCategoryDetector(),
		NewBudgetDetector(),
		NewSavingsDetector(),
		NewIncomeVarianceDetector(),
		NewRecurringDetector(),
	}
}

// Detectors returns the names of the configured detectors in run order.
func (g *Generator) Detectors() []string {
	names := make([]string, len(g.detectors))
	for i, d := range g.detectors {
		names[i] = d.Name()
	}
	return names
}

// Generate runs every detector over txns and returns the findings ordered by
// severity weight, highest first. Ties keep detector order. The result is
// never nil.
func (g *Generator) Generate(txns []models.TransactionRecord, opts Options) []Insight {
	batch := newBatch(txns, opts)

	result := make([]Insight, 0)
	if len(batch.Transactions) == 0 {
		return result
	}

	for _, d := range g.detectors {
		result = append(result, d.Detect(batch)...)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Severity.Weight() > result[j].Severity.Weight()
	})

	return result
}

func newBatch(txns []models.TransactionRecord, opts Options) *Batch {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	if opts.PeriodDays > 0 {
		cutoff := now.AddDate(0, 0, -opts.PeriodDays)
		txns = models.Filter(txns, func(t models.TransactionRecord) bool {
			return !t.Date.Before(cutoff)
		})
	}

	return &Batch{
		Transactions: txns,
		Expenses:     models.Filter(txns, models.TransactionRecord.IsExpense),
		Income:       models.Filter(txns, models.TransactionRecord.IsIncome),
		Budgets:      opts.Budgets,
		Now:          now,
	}
}
