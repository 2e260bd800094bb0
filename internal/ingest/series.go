package ingest

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"

	"github.com/soltixdb/finsight/internal/analytics"
)

type jsonPoint struct {
	Time      string          `json:"time"`
	Timestamp string          `json:"timestamp"`
	Value     decimal.Decimal `json:"value"`
}

// LoadSeries reads a plain time series from a JSON array of
// {"time"|"timestamp", "value"} objects or a CSV file with time and value
// columns.
func LoadSeries(path string, opts Options) ([]analytics.DataPoint, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var series []analytics.DataPoint
	switch format {
	case FormatJSON:
		series, err = ReadSeriesJSON(f, opts)
	case FormatCSV:
		series, err = ReadSeriesCSV(f, opts)
	default:
		return nil, fmt.Errorf("%w for series: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return series, nil
}

// ReadSeriesJSON reads a JSON array of points.
func ReadSeriesJSON(r io.Reader, opts Options) ([]analytics.DataPoint, error) {
	var points []jsonPoint
	if err := json.NewDecoder(r).Decode(&points); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	series := make([]analytics.DataPoint, 0, len(points))
	for i, p := range points {
		ts := p.Time
		if ts == "" {
			ts = p.Timestamp
		}
		t, err := ParseDate(ts, opts)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		series = append(series, analytics.DataPoint{Time: t, Value: p.Value.InexactFloat64()})
	}
	return series, nil
}

// ReadSeriesCSV reads a CSV with a header naming a time (or timestamp or
// date) column and a value column.
func ReadSeriesCSV(r io.Reader, opts Options) ([]analytics.DataPoint, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	h, err := readHeader(reader, "value")
	if err != nil {
		return nil, err
	}
	if _, ok := firstColumn(h, "time", "timestamp", "date"); !ok {
		return nil, errors.New("missing time column")
	}

	series := []analytics.DataPoint{}
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

		t, err := ParseDate(h.get(row, "time", "timestamp", "date"), opts)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		v, err := parseAmount(h.get(row, "value"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		series = append(series, analytics.DataPoint{Time: t, Value: v.InexactFloat64()})
	}
	return series, nil
}

func firstColumn(h header, names ...string) (int, bool) {
	for _, name := range names {
		if i, ok := h[name]; ok {
			return i, true
		}
	}
	return 0, false
}
