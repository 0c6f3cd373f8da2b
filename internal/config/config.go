package config

import (
	"os"
	"strconv"

	"gocausal/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Sampling SamplingConfig
	Server   ServerConfig
	Database DatabaseConfig
	Paths    PathConfig
}

// SamplingConfig holds scenario sampling settings
type SamplingConfig struct {
	Seed          int64
	SampleSize    int
	TreatmentDose float64
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds optional database connection settings.
// When URL is empty the server falls back to the in-memory ledger.
type DatabaseConfig struct {
	URL string
}

// PathConfig holds file system paths
type PathConfig struct {
	ExcelFile string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Sampling: SamplingConfig{
			Seed:          getEnvInt64OrDefault("SCM_SEED", 42),
			SampleSize:    getEnvIntOrDefault("SCM_SAMPLE_SIZE", 10000),
			TreatmentDose: getEnvFloatOrDefault("SCM_TREATMENT_DOSE", 1.5),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
		Paths: PathConfig{
			ExcelFile: getEnvOrDefault("EXCEL_FILE", "scm_datasets.xlsx"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Sampling.SampleSize <= 0 {
		return errors.ConfigInvalid("SCM_SAMPLE_SIZE must be positive")
	}
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT cannot be empty")
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

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
