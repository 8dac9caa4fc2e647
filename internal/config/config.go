package config

import (
	"os"
	"runtime"
	"strconv"

	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Data     DataConfig
	Analysis AnalysisConfig
	Server   ServerConfig
}

// DataConfig holds dataset source settings
type DataConfig struct {
	Path   string // CSV or XLSX file with node counts and recurrence labels
	Format string // "csv" or "xlsx"; inferred from the path extension when empty
	Sheet  string // XLSX sheet name, first sheet when empty
}

// AnalysisConfig holds the statistical pipeline settings
type AnalysisConfig struct {
	Seed           int64   // required; silent non-determinism is a config error
	NBoot          int     // bootstrap iteration count
	VisualAdjust   float64 // bandwidth multiplier for comparison plots
	ClassifyAdjust float64 // bandwidth multiplier for posterior classification
	GridSize       int     // density grid resolution
	Workers        int     // bootstrap worker count
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Addr string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	seedStr := os.Getenv("ANALYSIS_SEED")
	if seedStr == "" {
		return nil, errors.ConfigInvalid("ANALYSIS_SEED is required: an unseeded bootstrap is not reproducible")
	}
	seed, err := strconv.ParseInt(seedStr, 10, 64)
	if err != nil {
		return nil, errors.ConfigInvalid("ANALYSIS_SEED must be an integer")
	}

	config := &Config{
		Data: DataConfig{
			Path:   getEnvOrDefault("DATASET_PATH", ""),
			Format: getEnvOrDefault("DATASET_FORMAT", ""),
			Sheet:  getEnvOrDefault("DATASET_SHEET", ""),
		},
		Analysis: AnalysisConfig{
			Seed:           seed,
			NBoot:          getEnvIntOrDefault("N_BOOT", 10000),
			VisualAdjust:   getEnvFloatOrDefault("BANDWIDTH_ADJUST_VISUAL", 1.2),
			ClassifyAdjust: getEnvFloatOrDefault("BANDWIDTH_ADJUST_CLASSIFY", 3.0),
			GridSize:       getEnvIntOrDefault("GRID_SIZE", 256),
			Workers:        getEnvIntOrDefault("BOOT_WORKERS", runtime.GOMAXPROCS(0)),
		},
		Server: ServerConfig{
			Addr: getEnvOrDefault("LISTEN_ADDR", ":8080"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Analysis.NBoot < 1 {
		return errors.ConfigInvalid("N_BOOT must be >= 1")
	}
	if config.Analysis.GridSize < 2 {
		return errors.ConfigInvalid("GRID_SIZE must be >= 2")
	}
	if config.Analysis.VisualAdjust <= 0 || config.Analysis.ClassifyAdjust <= 0 {
		return errors.ConfigInvalid("bandwidth adjust factors must be positive")
	}
	if config.Analysis.Workers < 1 {
		return errors.ConfigInvalid("BOOT_WORKERS must be >= 1")
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

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
