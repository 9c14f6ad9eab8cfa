package config

import (
	"os"
	"strconv"
	"time"

	"zencat/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	ZenCat   ZenCatConfig
	Import   ImportConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL string
}

// ZenCatConfig holds settings for the remote creation API
type ZenCatConfig struct {
	BaseURL string
	Timeout time.Duration
}

// ImportConfig holds bulk-import settings
type ImportConfig struct {
	// ReferenceTimezone is the zone a row's date+time is pinned to when
	// comparing against committed sessions. The platform operates in Lima.
	ReferenceTimezone string
	// MaxRows caps the number of data rows accepted per upload.
	MaxRows int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		ZenCat: ZenCatConfig{
			BaseURL: os.Getenv("ZENCAT_API_URL"),
			Timeout: time.Duration(getEnvIntOrDefault("ZENCAT_API_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Import: ImportConfig{
			ReferenceTimezone: getEnvOrDefault("IMPORT_REFERENCE_TZ", "America/Lima"),
			MaxRows:           getEnvIntOrDefault("IMPORT_MAX_ROWS", 500),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

// Location resolves the reference timezone, falling back to the fixed Lima
// offset when the zone database is unavailable.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Import.ReferenceTimezone)
	if err != nil {
		return time.FixedZone("America/Lima", -5*60*60)
	}
	return loc
}

func validateConfig(config *Config) error {
	if config.Database.URL == "" {
		return errors.ConfigInvalid("DATABASE_URL is required")
	}
	if config.ZenCat.BaseURL == "" {
		return errors.ConfigInvalid("ZENCAT_API_URL is required")
	}
	if config.Import.MaxRows <= 0 {
		return errors.ConfigInvalid("IMPORT_MAX_ROWS must be positive")
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
