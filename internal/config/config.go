// Package config loads prospector configuration from YAML files,
// environment variables and defaults using viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonesrussell/north-cloud/prospector/internal/logger"
	"github.com/spf13/viper"
)

var (
	// ErrInvalidDelay is returned when the delay bounds are inconsistent.
	ErrInvalidDelay = errors.New("delay_min must be positive and not greater than delay_max")
	// ErrInvalidConcurrency is returned for non-positive concurrency limits.
	ErrInvalidConcurrency = errors.New("concurrency limits must be positive")
	// ErrInvalidRetries is returned when max_retries is below one.
	ErrInvalidRetries = errors.New("max_retries must be at least 1")
)

// Config is the full application configuration.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Logger   logger.Config  `mapstructure:"logger"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Scraper  ScraperConfig  `mapstructure:"scraper"`
	Search   SearchConfig   `mapstructure:"search"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Engine   EngineConfig   `mapstructure:"engine"`
}

// AppConfig holds application metadata.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`

	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// ScraperConfig holds politeness and fetch settings.
type ScraperConfig struct {
	DelayMin              time.Duration `mapstructure:"delay_min"`
	DelayMax              time.Duration `mapstructure:"delay_max"`
	RequestTimeout        time.Duration `mapstructure:"request_timeout"`
	MaxRetries            int           `mapstructure:"max_retries"`
	RespectRobotsTxt      bool          `mapstructure:"respect_robots_txt"`
	MaxConcurrentRequests int           `mapstructure:"max_concurrent_requests"`
	RobotsCacheTTL        time.Duration `mapstructure:"robots_cache_ttl"`
}

// SearchConfig holds search API settings.
type SearchConfig struct {
	// APIKeys is a comma-separated list of search API keys.
	APIKeys         string        `mapstructure:"api_keys"`
	BaseURL         string        `mapstructure:"base_url"`
	Timeout         time.Duration `mapstructure:"timeout"`
	ResultsPerQuery int           `mapstructure:"results_per_query"`
	KeyResetCron    string        `mapstructure:"key_reset_cron"`
	CacheTTL        time.Duration `mapstructure:"cache_ttl"`
}

// RedisConfig holds the optional search cache connection.
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Enabled reports whether a Redis address is configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.Address) != ""
}

// EngineConfig holds job engine settings.
type EngineConfig struct {
	MaxConcurrentJobs   int           `mapstructure:"max_concurrent_jobs"`
	ContactBatchSize    int           `mapstructure:"contact_batch_size"`
	EnableEmailPatterns bool          `mapstructure:"enable_email_patterns"`
	StatusPollInterval  time.Duration `mapstructure:"status_poll_interval"`
}

// Load unmarshals the initialized viper state into a validated Config.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Scraper.DelayMin <= 0 || c.Scraper.DelayMin > c.Scraper.DelayMax {
		return ErrInvalidDelay
	}
	if c.Scraper.MaxRetries < 1 {
		return ErrInvalidRetries
	}
	if c.Scraper.MaxConcurrentRequests < 1 || c.Engine.MaxConcurrentJobs < 1 || c.Engine.ContactBatchSize < 1 {
		return ErrInvalidConcurrency
	}
	return nil
}
