// Package insights derives ranked, human-readable findings from a set of
// categorized transactions.
package insights

import (
	"time"

	"github.com/soltixdb/finsight/internal/models"
)

// Type identifies the detector that produced an insight.
type Type string

const (
	TypeSpendingSpike      Type = "SPENDING_SPIKE"
	TypeUnusualCategory    Type = "UNUSUAL_CATEGORY"
	TypeBudgetWarning      Type = "BUDGET_WARNING"
	TypeSavingsOpportunity Type = "SAVINGS_OPPORTUNITY"
	TypeIncomeVariance     Type = "INCOME_VARIANCE"
	TypeRecurringExpense   Type = "RECURRING_EXPENSE"
)

// Severity of an insight.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityAlert    Severity = "alert"
	SeverityCritical Severity = "critical"
)

// Weight is used only to order insights.
func (s Severity) Weight() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityAlert:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

// Insight is a single finding. Description and Recommendation are default
// English wording; callers own presentation.
type Insight struct {
	ID               string    `json:"id"`
	Type             Type      `json:"type"`
	Severity         Severity  `json:"severity"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Value            *float64  `json:"value,omitempty"`
	Percentage       *float64  `json:"percentage,omitempty"`
	Recommendation   string    `json:"recommendation,omitempty"`
	AffectedCategory string    `json:"affectedCategory,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Options tune a Generate call.
type Options struct {
	// PeriodDays restricts the input to transactions dated within the last
	// PeriodDays days before Now. Zero or negative keeps everything.
	PeriodDays int
	// Budgets maps a category label to its spending limit. Nil disables the
	// budget detector.
	Budgets map[string]float64
	// Now is the reference time for CreatedAt and the period window.
	// Zero means time.Now().
	Now time.Time
}

// Batch is the pre-split input handed to every detector.
type Batch struct {
	Transactions []models.TransactionRecord
	Expenses     []models.TransactionRecord
	Income       []models.TransactionRecord
	Budgets      map[string]float64
	Now          time.Time
}

// Detector produces insights of one kind.
type Detector interface {
	// Name returns the detector name
	Name() string
	// Detect returns the detector's findings; nil when nothing fires.
	Detect(b *Batch) []Insight
}

func ptr(v float64) *float64 {
	return &v
}
