package config_test

import (
	"testing"
	"time"

	"github.com/jonesrussell/north-cloud/prospector/internal/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadDefaults(t *testing.T) *config.Config {
	t.Helper()

	v := viper.New()
	config.SetDefaults(v)

	var cfg config.Config
	require.NoError(t, v.Unmarshal(&cfg))
	return &cfg
}

func TestSetDefaults(t *testing.T) {
	t.Parallel()

	cfg := loadDefaults(t)

	assert.Equal(t, 2*time.Second, cfg.Scraper.DelayMin)
	assert.Equal(t, 5*time.Second, cfg.Scraper.DelayMax)
	assert.Equal(t, 30*time.Second, cfg.Scraper.RequestTimeout)
	assert.Equal(t, 3, cfg.Scraper.MaxRetries)
	assert.True(t, cfg.Scraper.RespectRobotsTxt)
	assert.Equal(t, 3, cfg.Engine.MaxConcurrentJobs)
	assert.Equal(t, 5, cfg.Engine.ContactBatchSize)
	assert.Equal(t, 2*time.Second, cfg.Engine.StatusPollInterval)
	assert.True(t, cfg.Engine.EnableEmailPatterns)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "0 0 1 * *", cfg.Search.KeyResetCron)
	assert.Equal(t, 24*time.Hour, cfg.Search.CacheTTL)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5*time.Minute, cfg.Database.ConnMaxLifetime)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr error
	}{
		{
			name:    "delay min above max",
			mutate:  func(c *config.Config) { c.Scraper.DelayMin = 10 * time.Second },
			wantErr: config.ErrInvalidDelay,
		},
		{
			name:    "zero delay",
			mutate:  func(c *config.Config) { c.Scraper.DelayMin = 0 },
			wantErr: config.ErrInvalidDelay,
		},
		{
			name:    "no retries",
			mutate:  func(c *config.Config) { c.Scraper.MaxRetries = 0 },
			wantErr: config.ErrInvalidRetries,
		},
		{
			name:    "no job slots",
			mutate:  func(c *config.Config) { c.Engine.MaxConcurrentJobs = 0 },
			wantErr: config.ErrInvalidConcurrency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := loadDefaults(t)
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestRedisConfig_Enabled(t *testing.T) {
	t.Parallel()

	assert.True(t, config.RedisConfig{Address: "localhost:6379"}.Enabled())
	assert.False(t, config.RedisConfig{Address: "  "}.Enabled())
}
