package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Catalog   CatalogConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Matching  MatchingConfig
	Log       LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig selects where the neighborhood catalog is loaded from
type CatalogConfig struct {
	Source         string `mapstructure:"source"` // "file" or "sqlite"
	Path           string `mapstructure:"path"`
	SQLitePath     string `mapstructure:"sqlite_path"`
	ValidateSchema bool   `mapstructure:"validate_schema"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type     string        `mapstructure:"type"` // "memory" or "redis"
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
	Burst int `mapstructure:"burst"`
}

// MatchingConfig tunes the ranking engine
type MatchingConfig struct {
	Workers            int  `mapstructure:"workers"`
	EnableDebugLogging bool `mapstructure:"enable_debug_logging"`
	DefaultLimit       int  `mapstructure:"default_limit"`
}

// LogConfig configures the zap logger
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "console" or "json"
}

// Load loads configuration from a .env file, environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/neighborfit/")

	v.SetEnvPrefix("NEIGHBORFIT")
	v.AutomaticEnv()

	setDefaults(v)
	bindEnv(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads ./.env if present. Variables already set in the
// environment win over the file.
func loadEnvFile() error {
	if _, err := os.Stat(".env"); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(".env")
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("catalog.source", "file")
	v.SetDefault("catalog.path", "data/neighborhoods.json")
	v.SetDefault("catalog.sqlite_path", "data/neighborhoods.db")
	v.SetDefault("catalog.validate_schema", true)

	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "15m")

	v.SetDefault("ratelimit.per_ip", 60)
	v.SetDefault("ratelimit.burst", 10)

	v.SetDefault("matching.workers", 4)
	v.SetDefault("matching.enable_debug_logging", false)
	v.SetDefault("matching.default_limit", 0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// bindEnv maps nested keys to NEIGHBORFIT_SECTION_KEY variables
func bindEnv(v *viper.Viper) {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range []string{
		"server.port", "server.environment", "server.allowed_origins",
		"catalog.source", "catalog.path", "catalog.sqlite_path", "catalog.validate_schema",
		"cache.type", "cache.redis_url", "cache.ttl",
		"ratelimit.per_ip", "ratelimit.burst",
		"matching.workers", "matching.enable_debug_logging", "matching.default_limit",
		"log.level", "log.format",
	} {
		_ = v.BindEnv(key)
	}
}

// validate validates the configuration
func validate(config *Config) error {
	switch config.Catalog.Source {
	case "file":
		if config.Catalog.Path == "" {
			return fmt.Errorf("catalog path is required (set NEIGHBORFIT_CATALOG_PATH)")
		}
	case "sqlite":
		if config.Catalog.SQLitePath == "" {
			return fmt.Errorf("sqlite path is required when catalog source is 'sqlite'")
		}
	default:
		return fmt.Errorf("catalog source must be 'file' or 'sqlite', got: %s", config.Catalog.Source)
	}

	if config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("cache type must be 'memory' or 'redis', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("Redis URL is required when cache type is 'redis'")
	}

	if config.RateLimit.PerIP < 0 || config.RateLimit.Burst < 0 {
		return fmt.Errorf("rate limits must not be negative")
	}

	if config.Matching.Workers <= 0 {
		return fmt.Errorf("matching workers must be positive, got: %d", config.Matching.Workers)
	}

	if config.Matching.DefaultLimit < 0 {
		return fmt.Errorf("matching default limit must not be negative, got: %d", config.Matching.DefaultLimit)
	}

	return nil
}
