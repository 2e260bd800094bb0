package config

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/soltixdb/finsight/internal/models"
)

// Location returns the configured ingest timezone.
// Returns UTC if not configured or invalid
// Supports formats:
//   - IANA timezone names: "Asia/Tokyo", "America/New_York", "UTC"
//   - Offset format: "+09:00", "-05:00", "+00:00"
func (c *IngestConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := parseTimezone(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// BudgetsWith returns the configured budgets overlaid with overrides, keyed
// by normalized category so "Groceries" in overrides replaces "groceries".
// The receiver is not modified.
func (c *InsightsConfig) BudgetsWith(overrides map[string]float64) map[string]float64 {
	merged := make(map[string]float64, len(c.Budgets)+len(overrides))
	for k, v := range c.Budgets {
		merged[models.NormalizeCategory(k)] = v
	}
	for k, v := range overrides {
		merged[models.NormalizeCategory(k)] = v
	}
	return merged
}

func parseTimezone(tz string) (*time.Location, error) {
	loc, err := time.LoadLocation(tz)
	if err == nil {
		return loc, nil
	}
	return parseOffsetTimezone(tz)
}

var offsetPattern = regexp.MustCompile(`^([+-])(\d{2}):(\d{2})$`)

// parseOffsetTimezone parses timezone offset format like "+09:00", "-05:00"
func parseOffsetTimezone(offset string) (*time.Location, error) {
	matches := offsetPattern.FindStringSubmatch(offset)
	if len(matches) != 4 {
		return nil, fmt.Errorf("invalid offset format: %s", offset)
	}

	sign := 1
	if matches[1] == "-" {
		sign = -1
	}

	hours, err := strconv.Atoi(matches[2])
	if err != nil {
		return nil, fmt.Errorf("invalid hours: %s", matches[2])
	}

	minutes, err := strconv.Atoi(matches[3])
	if err != nil {
		return nil, fmt.Errorf("invalid minutes: %s", matches[3])
	}

	offsetSeconds := sign * (hours*3600 + minutes*60)
	return time.FixedZone(offset, offsetSeconds), nil
}
