package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Catalog   CatalogConfig
	Alias     AliasConfig
	Matching  MatchingConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds product catalog configuration
type CatalogConfig struct {
	Path     string        `mapstructure:"path"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// AliasConfig holds alias store configuration
type AliasConfig struct {
	Path string `mapstructure:"path"`
}

// MatchingConfig holds matching policy configuration
type MatchingConfig struct {
	Threshold          int  `mapstructure:"threshold"`
	SuggestionFloor    int  `mapstructure:"suggestion_floor"`
	PropagateCurrency  bool `mapstructure:"propagate_currency"`
	EnableDebugLogging bool `mapstructure:"enable_debug_logging"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/invoiceagent/")

	// Environment variable settings
	v.SetEnvPrefix("INVOICEAGENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:8501"})

	// Catalog defaults
	v.SetDefault("catalog.path", "shared/product_db.csv")
	v.SetDefault("catalog.cache_ttl", "5m")

	// Alias defaults
	v.SetDefault("alias.path", "shared/product_aliases.csv")

	// Matching defaults
	v.SetDefault("matching.threshold", 85)
	v.SetDefault("matching.suggestion_floor", 60)
	v.SetDefault("matching.propagate_currency", true)
	v.SetDefault("matching.enable_debug_logging", false)

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Catalog.Path == "" {
		return fmt.Errorf("catalog path is required (set INVOICEAGENT_CATALOG_PATH)")
	}

	if config.Alias.Path == "" {
		return fmt.Errorf("alias path is required (set INVOICEAGENT_ALIAS_PATH)")
	}

	if config.Matching.Threshold < 1 || config.Matching.Threshold > 100 {
		return fmt.Errorf("matching threshold must be in [1,100], got: %d", config.Matching.Threshold)
	}

	if config.Matching.SuggestionFloor < 0 || config.Matching.SuggestionFloor > 100 {
		return fmt.Errorf("suggestion floor must be in [0,100], got: %d", config.Matching.SuggestionFloor)
	}

	if config.Matching.SuggestionFloor > config.Matching.Threshold {
		return fmt.Errorf("suggestion floor (%d) cannot exceed matching threshold (%d)",
			config.Matching.SuggestionFloor, config.Matching.Threshold)
	}

	return nil
}
