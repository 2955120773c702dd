package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

type Config struct {
	Environment string
	LogLevel    slog.Level
	LogFile     string // empty logs to stdout
	RedisURL    string // empty runs without Redis
	DataDir     string
	Scenario    string // scenario file to start with; empty shows the picker
	Profile     string // preferences profile
	Seed        uint64 // 0 picks a random seed
	// ResumeSession continues a saved session instead of starting a new one.
	ResumeSession string
}

func Load() (*Config, error) {
	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),
		LogFile:     getEnv("LOG_FILE", "nights.log"),
		RedisURL:    os.Getenv("REDIS_URL"),
		DataDir:     getEnv("DATA_DIR", "./data"),
		Scenario:    os.Getenv("SCENARIO"),
		Profile:     getEnv("PROFILE", "default"),

		ResumeSession: os.Getenv("RESUME_SESSION"),
	}

	if raw := os.Getenv("SEED"); raw != "" {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid SEED %q: %w", raw, err)
		}
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Environment {
	case "development", "production", "test":
	default:
		return fmt.Errorf("invalid ENVIRONMENT %q (expected development, production or test)", c.Environment)
	}
	if strings.TrimSpace(c.Profile) == "" {
		return fmt.Errorf("PROFILE must not be blank")
	}
	if c.Scenario != "" && !strings.HasSuffix(c.Scenario, ".json") {
		return fmt.Errorf("SCENARIO must name a .json file, got %q", c.Scenario)
	}
	if c.ResumeSession != "" {
		if _, err := uuid.Parse(c.ResumeSession); err != nil {
			return fmt.Errorf("invalid RESUME_SESSION %q: %w", c.ResumeSession, err)
		}
	}
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
