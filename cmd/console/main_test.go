package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun_ReturnsExitCodeOnFailure(t *testing.T) {
	defer slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	t.Run("bad config", func(t *testing.T) {
		t.Setenv("SEED", "not-a-number")
		assert.Equal(t, 1, run())
	})

	t.Run("storage fails after logging is up", func(t *testing.T) {
		logFile := filepath.Join(t.TempDir(), "nights.log")
		t.Setenv("LOG_FILE", logFile)
		t.Setenv("REDIS_URL", "http://localhost:6379")

		assert.Equal(t, 1, run())
		assert.FileExists(t, logFile)
	})
}
