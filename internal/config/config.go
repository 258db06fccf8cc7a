// Package config provides configuration management for the betting optimizer.
package config

import "time"

// Config represents the complete application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app" validate:"required"`
	Provider  ProviderConfig  `mapstructure:"provider" validate:"required"`
	Engine    EngineConfig    `mapstructure:"engine" validate:"required"`
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// ProviderConfig represents API-Football connection configuration
type ProviderConfig struct {
	BaseURL            string  `mapstructure:"base_url" validate:"required,url"`
	APIKey             string  `mapstructure:"api_key"`
	Host               string  `mapstructure:"host"`
	TimeoutSeconds     int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	MaxRetries         int     `mapstructure:"max_retries" validate:"gte=0"`
	RateLimitPerSecond float64 `mapstructure:"rate_limit_per_second" validate:"required,gt=0"`
	CacheTTLSeconds    int     `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
	BookmakerID        int     `mapstructure:"bookmaker_id" validate:"required,gt=0"`
	BookmakerName      string  `mapstructure:"bookmaker_name" validate:"required"`
}

// EngineConfig bounds the engine's combinatorial work and staking defaults.
// Scoring weights and quality thresholds are design constants in the engine
// package, not configuration.
type EngineConfig struct {
	MaxEligibleSingles int     `mapstructure:"max_eligible_singles" validate:"required,gt=1"`
	MaxAccumulators    int     `mapstructure:"max_accumulators" validate:"required,gt=0"`
	DefaultStake       float64 `mapstructure:"default_stake" validate:"required,gt=0"`
}

// ServerConfig represents the HTTP API server configuration
type ServerConfig struct {
	Port                int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadTimeoutSeconds  int `mapstructure:"read_timeout_seconds" validate:"required,gt=0"`
	WriteTimeoutSeconds int `mapstructure:"write_timeout_seconds" validate:"required,gt=0"`
}

// SchedulerConfig represents the snapshot refresh scheduling
type SchedulerConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	RefreshCron string `mapstructure:"refresh_cron"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// ProviderTimeout returns the provider request timeout as a duration
func (c *Config) ProviderTimeout() time.Duration {
	return time.Duration(c.Provider.TimeoutSeconds) * time.Second
}

// ProviderCacheTTL returns the provider cache TTL as a duration
func (c *Config) ProviderCacheTTL() time.Duration {
	return time.Duration(c.Provider.CacheTTLSeconds) * time.Second
}
