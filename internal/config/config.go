package config

import (
	"os"
	"strconv"
	"time"

	dnderr "github.com/KirkDiggler/bloodbond/internal/errors"
)

// Defaults applied when the environment leaves a value unset
const (
	DefaultCacheMaxEntries = 1024
	DefaultCacheTTL        = 24 * time.Hour
	DefaultLogConfig       = "config/logging.yaml"
)

// Config holds all configuration for the application
type Config struct {
	Redis RedisConfig
	Cache CacheConfig
	Data  DataConfig
	Log   LogConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	URL string // Optional: empty keeps the cache in memory
}

// CacheConfig bounds the spell cache
type CacheConfig struct {
	MaxEntries int
	TTL        time.Duration
}

// DataConfig points at dataset overrides
type DataConfig struct {
	Dir string // Optional: empty uses the embedded dataset
}

// LogConfig locates the logging configuration file
type LogConfig struct {
	ConfigPath string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		Cache: CacheConfig{
			MaxEntries: getEnvAsIntOrDefault("SPELL_CACHE_MAX_ENTRIES", DefaultCacheMaxEntries),
			TTL:        getEnvAsDurationOrDefault("SPELL_CACHE_TTL", DefaultCacheTTL),
		},
		Data: DataConfig{
			Dir: os.Getenv("SPELL_DATA_DIR"),
		},
		Log: LogConfig{
			ConfigPath: getEnvOrDefault("LOG_CONFIG", DefaultLogConfig),
		},
	}

	if cfg.Cache.MaxEntries <= 0 {
		return nil, dnderr.InvalidParameter("SPELL_CACHE_MAX_ENTRIES", cfg.Cache.MaxEntries,
			"SPELL_CACHE_MAX_ENTRIES must be positive, got %d", cfg.Cache.MaxEntries)
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}
