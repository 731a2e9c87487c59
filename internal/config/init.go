package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Scraper defaults.
const (
	DefaultDelayMin              = "2s"
	DefaultDelayMax              = "5s"
	DefaultRequestTimeout        = "30s"
	DefaultMaxRetries            = 3
	DefaultMaxConcurrentRequests = 5
	DefaultMaxConcurrentJobs     = 3
	DefaultStatusPollInterval    = "2s"
	DefaultSearchBaseURL         = "https://google.serper.dev"
	DefaultResultsPerQuery       = 10
	DefaultKeyResetCron          = "0 0 1 * *"
)

// InitializeViper loads .env, defaults, the optional config file and env bindings.
// It must run before Load.
func InitializeViper(cfgFile string) error {
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	SetDefaults(viper.GetViper())

	// Config file is optional; env vars and defaults suffice.
	_ = viper.ReadInConfig()

	if err := bindEnvironmentVariables(viper.GetViper()); err != nil {
		return fmt.Errorf("failed to bind environment variables: %w", err)
	}

	if viper.GetBool("app.debug") {
		viper.Set("logger.level", "debug")
	}
	if viper.GetString("app.environment") == "development" {
		viper.Set("logger.development", true)
	}
	return nil
}

// SetDefaults registers production-safe defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("app", map[string]any{
		"name":        "prospector",
		"version":     "1.0.0",
		"environment": "production",
		"debug":       false,
	})

	v.SetDefault("logger", map[string]any{
		"level":        "info",
		"development":  false,
		"output_paths": []string{"stdout"},
	})

	v.SetDefault("server", map[string]any{
		"address":       ":8080",
		"read_timeout":  "15s",
		"write_timeout": "15s",
		"idle_timeout":  "60s",
	})

	v.SetDefault("database", map[string]any{
		"host":              "localhost",
		"port":              "5432",
		"user":              "postgres",
		"dbname":            "prospector",
		"sslmode":           "disable",
		"max_open_conns":    25,
		"max_idle_conns":    5,
		"conn_max_lifetime": "5m",
	})

	v.SetDefault("scraper", map[string]any{
		"delay_min":               DefaultDelayMin,
		"delay_max":               DefaultDelayMax,
		"request_timeout":         DefaultRequestTimeout,
		"max_retries":             DefaultMaxRetries,
		"respect_robots_txt":      true,
		"max_concurrent_requests": DefaultMaxConcurrentRequests,
		"robots_cache_ttl":        "24h",
	})

	v.SetDefault("search", map[string]any{
		"api_keys":          "",
		"base_url":          DefaultSearchBaseURL,
		"timeout":           "15s",
		"results_per_query": DefaultResultsPerQuery,
		"key_reset_cron":    DefaultKeyResetCron,
		"cache_ttl":         "24h",
	})

	v.SetDefault("redis", map[string]any{
		"address":  "",
		"password": "",
		"db":       0,
	})

	v.SetDefault("engine", map[string]any{
		"max_concurrent_jobs":   DefaultMaxConcurrentJobs,
		"contact_batch_size":    DefaultMaxConcurrentRequests,
		"enable_email_patterns": true,
		"status_poll_interval":  DefaultStatusPollInterval,
	})
}

// envBindings maps config keys to the environment variables that set them.
// Later names are fallbacks.
var envBindings = map[string][]string{
	"app.environment":                 {"APP_ENV"},
	"app.debug":                       {"APP_DEBUG"},
	"logger.level":                    {"LOG_LEVEL"},
	"server.address":                  {"SERVER_ADDRESS"},
	"database.host":                   {"DB_HOST"},
	"database.port":                   {"DB_PORT"},
	"database.user":                   {"DB_USER"},
	"database.password":               {"DB_PASSWORD"},
	"database.dbname":                 {"DB_NAME"},
	"database.sslmode":                {"DB_SSLMODE"},
	"search.api_keys":                 {"SERPER_API_KEYS", "SCRAPER_SERP_API_KEY"},
	"search.base_url":                 {"SERPER_BASE_URL"},
	"redis.address":                   {"REDIS_ADDRESS"},
	"redis.password":                  {"REDIS_PASSWORD"},
	"redis.db":                        {"REDIS_DB"},
	"scraper.delay_min":               {"SCRAPER_DELAY_MIN"},
	"scraper.delay_max":               {"SCRAPER_DELAY_MAX"},
	"scraper.request_timeout":         {"SCRAPER_REQUEST_TIMEOUT"},
	"scraper.max_retries":             {"SCRAPER_MAX_RETRIES"},
	"scraper.respect_robots_txt":      {"SCRAPER_RESPECT_ROBOTS_TXT"},
	"scraper.max_concurrent_requests": {"SCRAPER_MAX_CONCURRENT_REQUESTS"},
	"engine.enable_email_patterns":    {"SCRAPER_ENABLE_EMAIL_PATTERN_MATCHING"},
	"engine.max_concurrent_jobs":      {"ENGINE_MAX_CONCURRENT_JOBS"},
	"engine.contact_batch_size":       {"SCRAPER_MAX_CONCURRENT_REQUESTS"},
}

func bindEnvironmentVariables(v *viper.Viper) error {
	for key, envs := range envBindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return fmt.Errorf("failed to bind %s: %w", envs[0], err)
		}
	}
	return nil
}
