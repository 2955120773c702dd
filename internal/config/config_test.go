package config

import (
	"log/slog"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ENVIRONMENT", "LOG_LEVEL", "LOG_FILE", "REDIS_URL", "DATA_DIR", "SCENARIO", "PROFILE", "SEED", "RESUME_SESSION"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Environment != "development" {
		t.Errorf("Expected development, got %s", cfg.Environment)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("Expected info level, got %v", cfg.LogLevel)
	}
	if cfg.LogFile != "nights.log" || cfg.DataDir != "./data" || cfg.Profile != "default" {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
	if cfg.RedisURL != "" || cfg.Seed != 0 {
		t.Errorf("Expected no redis and no seed, got %+v", cfg)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("SCENARIO", "cellar.json")
	t.Setenv("SEED", "42")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.LogLevel != slog.LevelWarn {
		t.Errorf("Expected warn level, got %v", cfg.LogLevel)
	}
	if cfg.Seed != 42 || cfg.Scenario != "cellar.json" || cfg.RedisURL == "" {
		t.Errorf("Unexpected config: %+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad seed", "SEED", "-1"},
		{"bad environment", "ENVIRONMENT", "staging"},
		{"bad scenario", "SCENARIO", "cellar.yaml"},
		{"bad session", "RESUME_SESSION", "not-a-uuid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ENVIRONMENT", "development")
			t.Setenv("SEED", "")
			t.Setenv("SCENARIO", "")
			t.Setenv("RESUME_SESSION", "")
			t.Setenv(tt.key, tt.val)
			if _, err := Load(); err == nil {
				t.Errorf("Expected error for %s=%q", tt.key, tt.val)
			}
		})
	}
}
