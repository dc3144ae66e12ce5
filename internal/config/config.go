// Package config provides configuration management for the Fireball Picks pipeline.
package config

import "time"

// Config represents the complete application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app" validate:"required"`
	Storage  StorageConfig  `mapstructure:"storage" validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Sources  SourcesConfig  `mapstructure:"sources" validate:"required"`
	Pipeline PipelineConfig `mapstructure:"pipeline" validate:"required"`
	Metrics  MetricsConfig  `mapstructure:"metrics" validate:"required"`
	Schedule ScheduleConfig `mapstructure:"schedule" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// StorageConfig selects and configures the persistence backend
type StorageConfig struct {
	Backend string `mapstructure:"backend" validate:"required,oneof=csv postgres"`
	CSVPath string `mapstructure:"csv_path" validate:"required_if=Backend csv"`
}

// DatabaseConfig represents database connection configuration, required
// only for the postgres storage backend
type DatabaseConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name           string `mapstructure:"name"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"omitempty,gt=0"`
}

// SourcesConfig configures the two external data sources
type SourcesConfig struct {
	Results ResultsSourceConfig `mapstructure:"results" validate:"required"`
	Odds    OddsSourceConfig    `mapstructure:"odds" validate:"required"`
	HTTP    HTTPClientConfig    `mapstructure:"http" validate:"required"`
}

// ResultsSourceConfig configures the scoreboard results source
type ResultsSourceConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	SportID string `mapstructure:"sport_id" validate:"required"`
}

// OddsSourceConfig configures the odds snapshot source
type OddsSourceConfig struct {
	BaseURL      string   `mapstructure:"base_url" validate:"required,url"`
	APIKey       string   `mapstructure:"api_key"`
	SportKey     string   `mapstructure:"sport_key" validate:"required"`
	Region       string   `mapstructure:"region" validate:"required"`
	SnapshotHour int      `mapstructure:"snapshot_hour" validate:"gte=0,lte=23"`
	Bookmakers   []string `mapstructure:"bookmakers" validate:"required,min=1"`
}

// HTTPClientConfig configures the shared rate-limited HTTP client
type HTTPClientConfig struct {
	TimeoutSeconds int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	MaxRetries     int     `mapstructure:"max_retries" validate:"gte=0"`
	RateLimit      float64 `mapstructure:"rate_limit" validate:"required,gt=0"`
}

// PipelineConfig configures a pipeline run
type PipelineConfig struct {
	StartDate          string `mapstructure:"start_date" validate:"required,datetime=2006-01-02"`
	LookaheadDays      int    `mapstructure:"lookahead_days" validate:"gte=0"`
	CutoffLagDays      int    `mapstructure:"cutoff_lag_days" validate:"required,gt=0"`
	CacheTTLSeconds    int    `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
	ResumeLookbackDays int    `mapstructure:"resume_lookback_days" validate:"gte=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// ScheduleConfig schedules daemon pipeline runs
type ScheduleConfig struct {
	PipelineCron string `mapstructure:"pipeline_cron" validate:"required"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// HTTPTimeout returns the per-request timeout as a duration
func (c *HTTPClientConfig) HTTPTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CacheTTL returns the prediction cache TTL as a duration
func (c *PipelineConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
