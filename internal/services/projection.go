package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/soltixdb/finsight/internal/analytics"
	"github.com/soltixdb/finsight/internal/config"
	"github.com/soltixdb/finsight/internal/models"
)

// ProjectionRequest selects which transactions become a series and at what
// granularity.
type ProjectionRequest struct {
	Kind        models.Kind    // empty means expense
	Category    string         // empty means all categories
	Granularity string         // day, week or month; empty uses the configured default
	Location    *time.Location // calendar for bucketing; nil uses the first selected transaction's
}

// Project sums the selected transactions per period. Periods between the
// first and last bucket with no transactions appear with value 0. Weeks start
// on Monday. All dates are bucketed in one location so records carrying
// different UTC offsets land on the same calendar.
func Project(txns []models.TransactionRecord, req ProjectionRequest) ([]analytics.DataPoint, error) {
	kind := req.Kind
	if kind == "" {
		kind = models.KindExpense
	}
	bucket, next, err := bucketFuncs(req.Granularity)
	if err != nil {
		return nil, err
	}
	category := models.NormalizeCategory(req.Category)

	selected := models.Filter(txns, func(t models.TransactionRecord) bool {
		return t.Kind == kind && (category == "" || models.NormalizeCategory(t.Category) == category)
	})
	if len(selected) == 0 {
		return []analytics.DataPoint{}, nil
	}

	loc := req.Location
	if loc == nil {
		loc = selected[0].Date.Location()
	}

	totals := make(map[int64]decimal.Decimal)
	var first, last time.Time
	for _, t := range selected {
		b := bucket(t.Date.In(loc))
		totals[b.Unix()] = totals[b.Unix()].Add(decimal.NewFromFloat(t.Amount))
		if first.IsZero() || b.Before(first) {
			first = b
		}
		if b.After(last) {
			last = b
		}
	}

	var series []analytics.DataPoint
	for b := first; !b.After(last); b = next(b) {
		series = append(series, analytics.DataPoint{
			Time:  b,
			Value: totals[b.Unix()].InexactFloat64(),
		})
	}
	return series, nil
}

// bucketFuncs returns the truncation and step functions for a granularity.
func bucketFuncs(granularity string) (bucket func(time.Time) time.Time, next func(time.Time) time.Time, err error) {
	day := func(t time.Time) time.Time {
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	}

	switch granularity {
	case config.GranularityDay, "":
		return day, func(t time.Time) time.Time { return t.AddDate(0, 0, 1) }, nil
	case config.GranularityWeek:
		week := func(t time.Time) time.Time {
			d := day(t)
			offset := (int(d.Weekday()) + 6) % 7
			return d.AddDate(0, 0, -offset)
		}
		return week, func(t time.Time) time.Time { return t.AddDate(0, 0, 7) }, nil
	case config.GranularityMonth:
		month := func(t time.Time) time.Time {
			y, m, _ := t.Date()
			return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
		}
		return month, func(t time.Time) time.Time { return t.AddDate(0, 1, 0) }, nil
	default:
		return nil, nil, fmt.Errorf("unknown granularity %q", granularity)
	}
}
