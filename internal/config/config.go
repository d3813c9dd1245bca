package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ErrInvalid marks configuration values that cannot drive a render run.
var ErrInvalid = errors.New("invalid configuration")

// Config represents the complete demo renderer configuration
type Config struct {
	Output    OutputConfig
	Dataset   DatasetConfig
	Synthetic SyntheticConfig
	Model     ModelConfig
	Specs     SpecConfig
}

// OutputConfig holds chart output settings
type OutputConfig struct {
	Dir string
}

// DatasetConfig holds tabular input settings. When File is empty the
// renderer falls back to the seeded synthetic rolling-line dataset and
// the remaining fields are ignored.
type DatasetConfig struct {
	File       string
	Features   []string
	Target     string
	IDColumn   string
	Category   string
	SizeColumn string
}

// SyntheticConfig holds generator settings for the fallback dataset
type SyntheticConfig struct {
	Heats      int
	Seed       int64
	NoiseSigma float64
}

// ModelConfig selects the regressor: a LightGBM model file when
// LightGBM is set, otherwise an OLS fit on the dataset itself.
type ModelConfig struct {
	LightGBM string
}

// SpecConfig holds optional engineering limits for the attribute
// control charts. Unset bounds are derived from the data.
type SpecConfig struct {
	Lower *float64
	Upper *float64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Output:    loadOutputConfig(),
		Dataset:   loadDatasetConfig(),
		Synthetic: loadSyntheticConfig(),
		Model:     loadModelConfig(),
		Specs:     loadSpecConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

func loadOutputConfig() OutputConfig {
	return OutputConfig{
		Dir: getEnvOrDefault("REGVIZ_OUT_DIR", "charts"),
	}
}

func loadDatasetConfig() DatasetConfig {
	return DatasetConfig{
		File:       getEnvOrDefault("REGVIZ_DATA_FILE", ""),
		Features:   splitList(os.Getenv("REGVIZ_FEATURES")),
		Target:     getEnvOrDefault("REGVIZ_TARGET", ""),
		IDColumn:   getEnvOrDefault("REGVIZ_ID_COLUMN", ""),
		Category:   getEnvOrDefault("REGVIZ_CATEGORY", ""),
		SizeColumn: getEnvOrDefault("REGVIZ_SIZE_COLUMN", ""),
	}
}

func loadSyntheticConfig() SyntheticConfig {
	return SyntheticConfig{
		Heats:      getEnvIntOrDefault("REGVIZ_HEATS", 120),
		Seed:       getEnvInt64OrDefault("REGVIZ_SEED", 42),
		NoiseSigma: getEnvFloatOrDefault("REGVIZ_NOISE_SIGMA", 4.0),
	}
}

func loadModelConfig() ModelConfig {
	return ModelConfig{
		LightGBM: getEnvOrDefault("REGVIZ_LGBM_MODEL", ""),
	}
}

func loadSpecConfig() SpecConfig {
	return SpecConfig{
		Lower: lookupEnvFloat("REGVIZ_SPEC_LOWER"),
		Upper: lookupEnvFloat("REGVIZ_SPEC_UPPER"),
	}
}

func validateConfig(config *Config) error {
	if config.Output.Dir == "" {
		return fmt.Errorf("%w: output directory is required", ErrInvalid)
	}
	if config.Dataset.File != "" {
		if len(config.Dataset.Features) == 0 {
			return fmt.Errorf("%w: REGVIZ_FEATURES is required when REGVIZ_DATA_FILE is set", ErrInvalid)
		}
		if config.Dataset.Target == "" {
			return fmt.Errorf("%w: REGVIZ_TARGET is required when REGVIZ_DATA_FILE is set", ErrInvalid)
		}
		if config.Dataset.IDColumn == "" {
			return fmt.Errorf("%w: REGVIZ_ID_COLUMN is required when REGVIZ_DATA_FILE is set", ErrInvalid)
		}
	}
	if config.Synthetic.Heats < 2 {
		return fmt.Errorf("%w: synthetic heats must be at least 2, got %d", ErrInvalid, config.Synthetic.Heats)
	}
	if config.Synthetic.NoiseSigma < 0 {
		return fmt.Errorf("%w: noise sigma must not be negative, got %g", ErrInvalid, config.Synthetic.NoiseSigma)
	}
	if config.Specs.Lower != nil && config.Specs.Upper != nil && *config.Specs.Lower >= *config.Specs.Upper {
		return fmt.Errorf("%w: lower spec limit %g must be below upper spec limit %g",
			ErrInvalid, *config.Specs.Lower, *config.Specs.Upper)
	}
	return nil
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
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

func lookupEnvFloat(key string) *float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return &floatValue
		}
	}
	return nil
}
