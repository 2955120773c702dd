package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jwebster45206/nights-engine/internal/config"
)

func TestNew_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, &config.Config{Environment: "production", LogLevel: slog.LevelInfo})
	log.Info("Night begun", "night", 2)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("Expected JSON output, got %q: %v", buf.String(), err)
	}
	if rec["msg"] != "Night begun" || rec["night"] != float64(2) {
		t.Errorf("Unexpected record: %v", rec)
	}
}

func TestNew_DevelopmentWritesTextAndFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, &config.Config{Environment: "development", LogLevel: slog.LevelWarn})
	log.Info("hidden")
	log.Warn("shown", "night", 1)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Info should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "msg=shown") || !strings.Contains(out, "night=1") {
		t.Errorf("Expected text record, got %q", out)
	}
}

func TestSetup_LogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nights.log")
	log, closer, err := Setup(&config.Config{Environment: "development", LogLevel: slog.LevelInfo, LogFile: path})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	WithSession(log, "abc").Info("to file")
	if err := closer.Close(); err != nil {
		t.Fatalf("Failed to close log file: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "session_id=abc") {
		t.Errorf("Expected session id in log file, got %q", data)
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, &config.Config{Environment: "production", LogLevel: slog.LevelInfo})
	WithError(log, os.ErrNotExist).Error("Background write failed")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("Expected JSON output, got %q: %v", buf.String(), err)
	}
	if rec["error"] != os.ErrNotExist.Error() {
		t.Errorf("Expected error attribute, got %v", rec)
	}
}
