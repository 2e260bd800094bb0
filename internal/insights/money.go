package insights

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/soltixdb/finsight/internal/models"
)

// totalsBy sums amounts per key with decimal arithmetic. keys lists each key
// once in first-seen order.
func totalsBy[K comparable](txns []models.TransactionRecord, key func(models.TransactionRecord) K) (totals map[K]decimal.Decimal, keys []K) {
	totals = make(map[K]decimal.Decimal)
	for _, t := range txns {
		k := key(t)
		sum, seen := totals[k]
		if !seen {
			keys = append(keys, k)
		}
		totals[k] = sum.Add(decimal.NewFromFloat(t.Amount))
	}
	return totals, keys
}

// sumAmounts returns the decimal total of all amounts.
func sumAmounts(txns []models.TransactionRecord) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txns {
		total = total.Add(decimal.NewFromFloat(t.Amount))
	}
	return total
}

type categoryTotal struct {
	Key   string // normalized label
	Label string // label as first seen
	Total decimal.Decimal
}

// categoryTotals groups expenses case-insensitively by category, largest
// total first, ties by key.
func categoryTotals(expenses []models.TransactionRecord) []categoryTotal {
	labels := make(map[string]string)
	for _, t := range expenses {
		k := models.NormalizeCategory(t.Category)
		if _, ok := labels[k]; !ok {
			labels[k] = t.Category
		}
	}

	totals, keys := totalsBy(expenses, func(t models.TransactionRecord) string {
		return models.NormalizeCategory(t.Category)
	})

	out := make([]categoryTotal, 0, len(keys))
	for _, k := range keys {
		out = append(out, categoryTotal{Key: k, Label: labels[k], Total: totals[k]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		return out[i].Key < out[j].Key
	})
	return out
}

func toFloat(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
