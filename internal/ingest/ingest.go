// Package ingest reads transactions and plain series from JSON, CSV and
// OFX/QFX files.
package ingest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/soltixdb/finsight/internal/config"
	"github.com/soltixdb/finsight/internal/models"
)

// ErrUnsupportedFormat is returned for file extensions no loader handles.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Format identifies a transaction file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatOFX  Format = "ofx"
)

const uncategorized = "uncategorized"

var rowNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("finsight.ingest"))

// Options control parsing of dates and unsigned amounts.
type Options struct {
	DateFormat  string
	DefaultKind models.Kind
	Location    *time.Location
}

// DefaultOptions parses ISO dates in UTC and treats unsigned amounts as
// expenses.
func DefaultOptions() Options {
	return Options{
		DateFormat:  "2006-01-02",
		DefaultKind: models.KindExpense,
		Location:    time.UTC,
	}
}

// OptionsFromConfig builds Options from the ingest configuration section.
func OptionsFromConfig(cfg config.IngestConfig) (Options, error) {
	opts := DefaultOptions()
	if cfg.DateFormat != "" {
		opts.DateFormat = cfg.DateFormat
	}
	if cfg.DefaultKind != "" {
		kind, err := models.ParseKind(cfg.DefaultKind)
		if err != nil {
			return Options{}, err
		}
		opts.DefaultKind = kind
	}
	opts.Location = cfg.Location()
	return opts, nil
}

func (o Options) location() *time.Location {
	if o.Location == nil {
		return time.UTC
	}
	return o.Location
}

// DetectFormat picks a format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".csv":
		return FormatCSV, nil
	case ".ofx", ".qfx":
		return FormatOFX, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// LoadFile reads all transactions from path, choosing the loader by
// extension.
func LoadFile(path string, opts Options) ([]models.TransactionRecord, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	txns, err := Load(f, format, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return txns, nil
}

// Load reads transactions in the given format.
func Load(r io.Reader, format Format, opts Options) ([]models.TransactionRecord, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r, opts)
	case FormatCSV:
		return ReadCSV(r, opts)
	case FormatOFX:
		return ReadOFX(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// rawRecord is a transaction as found in a file, before classification.
type rawRecord struct {
	ID          string
	Amount      decimal.Decimal
	Category    string
	Date        time.Time
	Description string
	Kind        string
}

// toRecord resolves the kind and makes the amount a magnitude. A negative
// amount without an explicit kind is an expense.
func (raw rawRecord) toRecord(row int, defaultKind models.Kind) (models.TransactionRecord, error) {
	var kind models.Kind
	switch {
	case strings.TrimSpace(raw.Kind) != "":
		k, err := models.ParseKind(raw.Kind)
		if err != nil {
			return models.TransactionRecord{}, err
		}
		kind = k
	case raw.Amount.IsNegative():
		kind = models.KindExpense
	case defaultKind != "":
		kind = defaultKind
	default:
		kind = models.KindExpense
	}

	category := strings.TrimSpace(raw.Category)
	if category == "" {
		category = uncategorized
	}

	id := strings.TrimSpace(raw.ID)
	if id == "" {
		id = syntheticID(row, raw)
	}

	return models.TransactionRecord{
		ID:          id,
		Amount:      raw.Amount.Abs().InexactFloat64(),
		Category:    category,
		Date:        raw.Date,
		Description: strings.TrimSpace(raw.Description),
		Kind:        kind,
	}, nil
}

// syntheticID derives a stable ID for rows that do not carry one.
func syntheticID(row int, raw rawRecord) string {
	name := fmt.Sprintf("%d|%s|%s|%s", row, raw.Date.Format(time.RFC3339), raw.Amount.String(), raw.Description)
	return uuid.NewSHA1(rowNamespace, []byte(name)).String()
}

// ParseDate tries the configured layout, then RFC 3339, then a bare ISO date.
func ParseDate(s string, opts Options) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("date is required")
	}

	layouts := []string{opts.DateFormat, time.RFC3339, "2006-01-02"}
	for _, layout := range layouts {
		if layout == "" {
			continue
		}
		if t, err := time.ParseInLocation(layout, s, opts.location()); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// parseAmount accepts values like "1,234.56", "$-45.00" or "(12.00)".
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	}
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, errors.New("amount is required")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}
