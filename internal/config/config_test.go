package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:    "default config should be valid",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "invalid log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: true,
		},
		{
			name:    "invalid granularity",
			mutate:  func(c *Config) { c.Trend.Granularity = "hour" },
			wantErr: true,
		},
		{
			name:    "negative sensitivity",
			mutate:  func(c *Config) { c.Trend.AnomalySensitivity = -1 },
			wantErr: true,
		},
		{
			name:    "zero sensitivity falls back at detection time",
			mutate:  func(c *Config) { c.Trend.AnomalySensitivity = 0 },
			wantErr: false,
		},
		{
			name:    "negative period",
			mutate:  func(c *Config) { c.Insights.PeriodDays = -7 },
			wantErr: true,
		},
		{
			name:    "negative budget",
			mutate:  func(c *Config) { c.Insights.Budgets = map[string]float64{"food": -1} },
			wantErr: true,
		},
		{
			name:    "blank budget category",
			mutate:  func(c *Config) { c.Insights.Budgets = map[string]float64{" ": 10} },
			wantErr: true,
		},
		{
			name:    "missing date format",
			mutate:  func(c *Config) { c.Ingest.DateFormat = "" },
			wantErr: true,
		},
		{
			name:    "unknown default kind",
			mutate:  func(c *Config) { c.Ingest.DefaultKind = "transfer" },
			wantErr: true,
		},
		{
			name:    "debit alias accepted",
			mutate:  func(c *Config) { c.Ingest.DefaultKind = "debit" },
			wantErr: false,
		},
		{
			name:    "invalid timezone",
			mutate:  func(c *Config) { c.Ingest.Timezone = "Mars/Olympus" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "finsight.yaml")
	content := `
logging:
  level: debug
  format: json
trend:
  granularity: week
  anomaly_sensitivity: 2.5
insights:
  period_days: 30
  budgets:
    groceries: 600
    Rent: 1500
ingest:
  date_format: "02/01/2006"
  timezone: "+09:00"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "stderr", cfg.Logging.OutputPath)
	assert.Equal(t, GranularityWeek, cfg.Trend.Granularity)
	assert.Equal(t, 2.5, cfg.Trend.AnomalySensitivity)
	assert.Equal(t, 30, cfg.Insights.PeriodDays)
	assert.Equal(t, 600.0, cfg.Insights.Budgets["groceries"])
	// viper lowercases map keys
	assert.Equal(t, 1500.0, cfg.Insights.Budgets["rent"])
	assert.Equal(t, "02/01/2006", cfg.Ingest.DateFormat)
	assert.Equal(t, "expense", cfg.Ingest.DefaultKind)

	_, offset := time.Date(2025, 1, 1, 0, 0, 0, 0, cfg.Ingest.Location()).Zone()
	assert.Equal(t, 9*3600, offset)
}

func TestLoad_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "finsight.yaml")
	require.NoError(t, os.WriteFile(path, []byte("trend:\n  granularity: week\n"), 0644))

	t.Setenv("FINSIGHT_TREND_GRANULARITY", "month")
	t.Setenv("FINSIGHT_LOGGING_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, GranularityMonth, cfg.Trend.Granularity)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_DotEnvNextToConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "finsight.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ingest:\n  default_kind: expense\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("FINSIGHT_INGEST_DEFAULT_KIND=income\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("FINSIGHT_INGEST_DEFAULT_KIND") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "income", cfg.Ingest.DefaultKind)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finsight.yaml")
	require.NoError(t, os.WriteFile(path, []byte("trend:\n  granularity: fortnight\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")

	cfg := LoadOrDefault(path)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Logging, cfg.Logging)
	assert.Equal(t, DefaultConfig().Trend, cfg.Trend)
	assert.Equal(t, DefaultConfig().Ingest, cfg.Ingest)
	assert.Empty(t, cfg.Insights.Budgets)
}

func TestLocation(t *testing.T) {
	tests := []struct {
		tz     string
		offset int
	}{
		{"", 0},
		{"UTC", 0},
		{"-05:00", -5 * 3600},
		{"+05:30", 5*3600 + 30*60},
		{"garbage", 0},
	}
	for _, tt := range tests {
		c := IngestConfig{Timezone: tt.tz}
		_, offset := time.Date(2025, 1, 15, 0, 0, 0, 0, c.Location()).Zone()
		assert.Equal(t, tt.offset, offset, "timezone %q", tt.tz)
	}
}

func TestBudgetsWith(t *testing.T) {
	c := InsightsConfig{Budgets: map[string]float64{"food": 500, "rent": 1000}}

	merged := c.BudgetsWith(map[string]float64{"food": 300, "travel": 200})

	assert.Equal(t, map[string]float64{"food": 300, "rent": 1000, "travel": 200}, merged)
	assert.Equal(t, 500.0, c.Budgets["food"])
}

func TestBudgetsWith_NormalizesKeys(t *testing.T) {
	c := InsightsConfig{Budgets: map[string]float64{"groceries": 1000, " Rent ": 900}}

	merged := c.BudgetsWith(map[string]float64{"Groceries": 500})

	assert.Equal(t, map[string]float64{"groceries": 500, "rent": 900}, merged)
}
