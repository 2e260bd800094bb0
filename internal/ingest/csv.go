package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/soltixdb/finsight/internal/models"
)

// header maps lowercased column names to their index.
type header map[string]int

func readHeader(r *csv.Reader, required ...string) (header, error) {
	cols, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("missing header row")
		}
		return nil, err
	}

	h := make(header, len(cols))
	for i, c := range cols {
		h[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(c, "\ufeff")))] = i
	}
	for _, name := range required {
		if _, ok := h[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}
	return h, nil
}

// get returns the trimmed value of the first present column among names.
func (h header) get(row []string, names ...string) string {
	for _, name := range names {
		if i, ok := h[name]; ok && i < len(row) {
			return strings.TrimSpace(row[i])
		}
	}
	return ""
}

// ReadCSV reads transactions from CSV with a header row. date, amount and
// category are required; id, description and kind are optional.
func ReadCSV(r io.Reader, opts Options) ([]models.TransactionRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	h, err := readHeader(reader, "date", "amount", "category")
	if err != nil {
		return nil, err
	}

	var txns []models.TransactionRecord
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if isBlank(row) {
			continue
		}

		date, err := ParseDate(h.get(row, "date"), opts)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		amount, err := parseAmount(h.get(row, "amount"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		raw := rawRecord{
			ID:          h.get(row, "id"),
			Amount:      amount,
			Category:    h.get(row, "category"),
			Date:        date,
			Description: h.get(row, "description"),
			Kind:        h.get(row, "kind"),
		}
		t, err := raw.toRecord(line, opts.DefaultKind)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		txns = append(txns, t)
	}

	if txns == nil {
		txns = []models.TransactionRecord{}
	}
	return txns, nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
