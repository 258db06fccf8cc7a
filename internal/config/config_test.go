package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const sampleYAML = `
app:
  name: betting-optimizer
  environment: development
  log_level: debug

provider:
  base_url: https://v3.football.api-sports.io
  api_key: ${TEST_OPTIMIZER_API_KEY}
  timeout_seconds: 20
  max_retries: 2
  rate_limit_per_second: 2.0
  cache_ttl_seconds: 120
  bookmaker_id: 24
  bookmaker_name: 10bet

engine:
  max_eligible_singles: 10
  max_accumulators: 15
  default_stake: 25.0

server:
  port: 9090
  read_timeout_seconds: 10
  write_timeout_seconds: 20

scheduler:
  enabled: true
  refresh_cron: "0 */15 * * * *"

metrics:
  enabled: true
  path: /metrics
`

func TestLoadExpandsEnvPlaceholders(t *testing.T) {
	t.Setenv("TEST_OPTIMIZER_API_KEY", "secret-from-env")
	path := writeTempConfig(t, sampleYAML)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "betting-optimizer", cfg.App.Name)
	assert.Equal(t, "secret-from-env", cfg.Provider.APIKey)
	assert.Equal(t, 24, cfg.Provider.BookmakerID)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 15, cfg.Engine.MaxAccumulators)
	assert.InDelta(t, 25.0, cfg.Engine.DefaultStake, 1e-12)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoadWithDefaultsNoFile(t *testing.T) {
	cfg, err := LoadWithDefaults(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, "https://v3.football.api-sports.io", cfg.Provider.BaseURL)
	assert.Equal(t, 24, cfg.Provider.BookmakerID)
	assert.Equal(t, "10bet", cfg.Provider.BookmakerName)
	assert.Equal(t, 12, cfg.Engine.MaxEligibleSingles)
	assert.Equal(t, 20, cfg.Engine.MaxAccumulators)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.Scheduler.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestValidateAcceptsSample(t *testing.T) {
	t.Setenv("TEST_OPTIMIZER_API_KEY", "secret")
	cfg, err := Load(writeTempConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.NoError(t, Validate(cfg))
}

func TestValidateRejectsBadValues(t *testing.T) {
	base := func() *Config {
		cfg, err := LoadWithDefaults(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(cfg *Config)
	}{
		{
			name:   "Unknown environment",
			mutate: func(cfg *Config) { cfg.App.Environment = "qa" },
		},
		{
			name:   "Unknown log level",
			mutate: func(cfg *Config) { cfg.App.LogLevel = "verbose" },
		},
		{
			name:   "Port out of range",
			mutate: func(cfg *Config) { cfg.Server.Port = 70000 },
		},
		{
			name:   "Non-positive rate limit",
			mutate: func(cfg *Config) { cfg.Provider.RateLimitPerSecond = 0 },
		},
		{
			name:   "Eligible cap too small for pairs",
			mutate: func(cfg *Config) { cfg.Engine.MaxEligibleSingles = 1 },
		},
		{
			name:   "Bad cron expression",
			mutate: func(cfg *Config) { cfg.Scheduler.RefreshCron = "not a cron" },
		},
		{
			name: "Production without an API key",
			mutate: func(cfg *Config) {
				cfg.App.Environment = "production"
				cfg.Provider.APIKey = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			assert.Error(t, Validate(cfg))
		})
	}
}
