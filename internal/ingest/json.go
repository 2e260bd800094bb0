package ingest

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/soltixdb/finsight/internal/models"
)

type jsonRecord struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Kind        string          `json:"kind"`
}

// ReadJSON reads an array of transaction objects. Amounts may be numbers
// or strings.
func ReadJSON(r io.Reader, opts Options) ([]models.TransactionRecord, error) {
	var records []jsonRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	txns := make([]models.TransactionRecord, 0, len(records))
	for i, rec := range records {
		date, err := ParseDate(rec.Date, opts)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		raw := rawRecord{
			ID:          rec.ID,
			Amount:      rec.Amount,
			Category:    rec.Category,
			Date:        date,
			Description: rec.Description,
			Kind:        rec.Kind,
		}
		t, err := raw.toRecord(i, opts.DefaultKind)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		txns = append(txns, t)
	}
	return txns, nil
}
