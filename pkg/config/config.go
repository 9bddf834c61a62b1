package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the calculator
// All environment variables are read here and nowhere else.
type Config struct {
	Env string // development, staging, production

	// Grading
	Grading GradingConfig

	// Input limits enforced before a course reaches the aggregator
	Limits LimitsConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// GradingConfig selects the grading scale
type GradingConfig struct {
	Scale     string // built-in scale name, or the name of the scale in ScaleFile
	ScaleFile string // optional YAML file with a custom scale
}

// LimitsConfig holds the accepted ranges for user input
type LimitsConfig struct {
	ScoreMin float64
	ScoreMax float64
	UnitsMin int
	UnitsMax int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Env: getEnv("ENV", "development"),

		Grading: GradingConfig{
			Scale:     getEnv("GPA_SCALE", "five_point"),
			ScaleFile: getEnv("GPA_SCALE_FILE", ""),
		},

		Limits: LimitsConfig{
			ScoreMin: getEnvAsFloat("SCORE_MIN", 0),
			ScoreMax: getEnvAsFloat("SCORE_MAX", 100),
			UnitsMin: getEnvAsInt("UNITS_MIN", 1),
			UnitsMax: getEnvAsInt("UNITS_MAX", 6),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Default returns the configuration used when no environment is set
func Default() *Config {
	return &Config{
		Env:       "development",
		Grading:   GradingConfig{Scale: "five_point"},
		Limits:    LimitsConfig{ScoreMin: 0, ScoreMax: 100, UnitsMin: 1, UnitsMax: 6},
		LogLevel:  "info",
		LogFormat: "console",
	}
}

// Validate checks if configuration values are consistent. Call it again after
// overriding fields loaded by Load.
func (c *Config) Validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Grading.Scale == "" {
		return fmt.Errorf("GPA_SCALE is required")
	}

	if c.Limits.ScoreMin >= c.Limits.ScoreMax {
		return fmt.Errorf("SCORE_MIN must be less than SCORE_MAX")
	}

	if c.Limits.UnitsMin < 1 {
		return fmt.Errorf("UNITS_MIN must be at least 1")
	}
	if c.Limits.UnitsMin > c.Limits.UnitsMax {
		return fmt.Errorf("UNITS_MIN must not exceed UNITS_MAX")
	}

	if c.LogFormat != "console" && c.LogFormat != "pretty" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be one of: console, pretty, json")
	}

	return nil
}

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{".env"}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}
