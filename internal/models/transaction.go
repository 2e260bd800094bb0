package models

import (
	"fmt"
	"strings"
	"time"
)

// Kind is the direction of a money movement.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// ParseKind accepts "income"/"expense" in any case, plus the common
// credit/debit aliases.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income", "credit", "in":
		return KindIncome, nil
	case "expense", "debit", "out":
		return KindExpense, nil
	default:
		return "", fmt.Errorf("unknown transaction kind: %q", s)
	}
}

// TransactionRecord is an already-classified money movement. Amount is a
// non-negative magnitude; direction is carried by Kind.
type TransactionRecord struct {
	ID          string    `json:"id"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`
	Kind        Kind      `json:"kind"`
}

// IsExpense reports whether the record is an expense
func (t TransactionRecord) IsExpense() bool {
	return t.Kind == KindExpense
}

// IsIncome reports whether the record is income
func (t TransactionRecord) IsIncome() bool {
	return t.Kind == KindIncome
}

// Day returns the calendar day of the transaction in its own location.
func (t TransactionRecord) Day() time.Time {
	y, m, d := t.Date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Date.Location())
}

// Month returns the first day of the transaction's calendar month.
func (t TransactionRecord) Month() time.Time {
	y, m, _ := t.Date.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Date.Location())
}

// NormalizedDescription lowercases and trims the description.
func (t TransactionRecord) NormalizedDescription() string {
	return strings.ToLower(strings.TrimSpace(t.Description))
}

// NormalizeCategory is the case-insensitive key used to match category labels.
func NormalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

// Filter returns the records for which keep returns true.
func Filter(txns []TransactionRecord, keep func(TransactionRecord) bool) []TransactionRecord {
	out := make([]TransactionRecord, 0, len(txns))
	for _, t := range txns {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
