package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"mbtidash/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig
	Data    DataConfig
	Logging LoggingConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DataConfig holds dataset and ranking settings
type DataConfig struct {
	File             string
	ReferenceCountry string
	TopN             int
	CacheTTL         time.Duration
}

// LoggingConfig holds log settings
type LoggingConfig struct {
	Level string
}

const (
	DefaultDataFile         = "countriesMBTI_16types.csv"
	DefaultReferenceCountry = "South Korea"
	DefaultTopN             = 10
)

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:  *loadServerConfig(),
		Data:    *loadDataConfig(),
		Logging: *loadLoggingConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
	}
}

func loadDataConfig() *DataConfig {
	return &DataConfig{
		File:             getEnvOrDefault("DATA_FILE", DefaultDataFile),
		ReferenceCountry: strings.TrimSpace(getEnvOrDefault("REFERENCE_COUNTRY", DefaultReferenceCountry)),
		TopN:             getEnvIntOrDefault("TOP_N", DefaultTopN),
		CacheTTL:         getEnvDurationOrDefault("CACHE_TTL", 5*time.Minute),
	}
}

func loadLoggingConfig() *LoggingConfig {
	return &LoggingConfig{
		Level: getEnvOrDefault("LOG_LEVEL", "info"),
	}
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Data.File == "" {
		return errors.ConfigInvalid("data file is required")
	}
	if config.Data.ReferenceCountry == "" {
		return errors.ConfigInvalid("reference country is required")
	}
	if config.Data.TopN < 1 {
		return errors.ConfigInvalid("TOP_N must be at least 1")
	}
	if config.Data.CacheTTL < 0 {
		return errors.ConfigInvalid("CACHE_TTL must not be negative")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
