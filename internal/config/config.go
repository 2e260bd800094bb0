package config

import (
	"fmt"
	"strings"

	"github.com/soltixdb/finsight/internal/models"
)

// Config represents the complete application configuration
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging"`
	Trend    TrendConfig    `mapstructure:"trend"`
	Insights InsightsConfig `mapstructure:"insights"`
	Ingest   IngestConfig   `mapstructure:"ingest"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`      // json or console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr or a file path
	TimeFormat string `mapstructure:"time_format"`
}

// TrendConfig controls how transactions are projected into series and how
// anomalies are flagged.
type TrendConfig struct {
	Granularity        string  `mapstructure:"granularity"` // day, week or month
	AnomalySensitivity float64 `mapstructure:"anomaly_sensitivity"`
}

// InsightsConfig holds the defaults for insight generation.
type InsightsConfig struct {
	PeriodDays int                `mapstructure:"period_days"` // 0 means no window
	Budgets    map[string]float64 `mapstructure:"budgets"`
}

// IngestConfig controls how transaction files are parsed.
type IngestConfig struct {
	DateFormat  string `mapstructure:"date_format"`
	DefaultKind string `mapstructure:"default_kind"`
	Timezone    string `mapstructure:"timezone"` // IANA name or offset such as "+09:00"
}

// Granularities accepted by trend.granularity.
const (
	GranularityDay   = "day"
	GranularityWeek  = "week"
	GranularityMonth = "month"
)

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if err := c.Trend.Validate(); err != nil {
		return err
	}
	if err := c.Insights.Validate(); err != nil {
		return err
	}
	if err := c.Ingest.Validate(); err != nil {
		return err
	}
	return nil
}

// Validate validates logging configuration
func (c *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLevels[c.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}

	validFormats := map[string]bool{
		"json":    true,
		"console": true,
	}

	if !validFormats[c.Format] {
		return fmt.Errorf("logging.format must be 'json' or 'console'")
	}

	return nil
}

// Validate validates trend configuration
func (c *TrendConfig) Validate() error {
	switch c.Granularity {
	case GranularityDay, GranularityWeek, GranularityMonth:
	default:
		return fmt.Errorf("trend.granularity must be one of: day, week, month")
	}

	if c.AnomalySensitivity < 0 {
		return fmt.Errorf("trend.anomaly_sensitivity cannot be negative")
	}

	return nil
}

// Validate validates insights configuration
func (c *InsightsConfig) Validate() error {
	if c.PeriodDays < 0 {
		return fmt.Errorf("insights.period_days cannot be negative")
	}

	for category, limit := range c.Budgets {
		if strings.TrimSpace(category) == "" {
			return fmt.Errorf("insights.budgets contains an empty category")
		}
		if limit < 0 {
			return fmt.Errorf("insights.budgets.%s cannot be negative", category)
		}
	}

	return nil
}

// Validate validates ingest configuration
func (c *IngestConfig) Validate() error {
	if c.DateFormat == "" {
		return fmt.Errorf("ingest.date_format is required")
	}

	if c.DefaultKind != "" {
		if _, err := models.ParseKind(c.DefaultKind); err != nil {
			return fmt.Errorf("ingest.default_kind: %w", err)
		}
	}

	if c.Timezone != "" {
		if _, err := parseTimezone(c.Timezone); err != nil {
			return fmt.Errorf("ingest.timezone: %w", err)
		}
	}

	return nil
}
