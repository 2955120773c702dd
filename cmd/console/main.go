package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jwebster45206/nights-engine/internal/config"
	"github.com/jwebster45206/nights-engine/internal/logger"
	"github.com/jwebster45206/nights-engine/internal/services/events"
	"github.com/jwebster45206/nights-engine/internal/services/history"
	redisstorage "github.com/jwebster45206/nights-engine/internal/storage"
	"github.com/jwebster45206/nights-engine/pkg/session"
	"github.com/jwebster45206/nights-engine/pkg/storage"
)

func main() {
	os.Exit(run())
}

// run holds the program body so deferred cleanup happens before main exits.
func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	log, closer, err := logger.Setup(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		return 1
	}
	defer func() {
		_ = closer.Close()
	}()

	store, bc, hist, err := openStorage(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open storage: %v\n", err)
		return 1
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Failed to close storage", "error", err)
		}
	}()

	prefs := loadPreferences(store, cfg.Profile, log)

	opts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if prefs.Fullscreen {
		opts = append(opts, tea.WithAltScreen())
	}

	p := tea.NewProgram(NewGameUI(cfg, store, bc, hist, prefs, log), opts...)
	if _, err := p.Run(); err != nil {
		log.Error("Program exited with error", "error", err)
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		return 1
	}
	return 0
}

// openStorage connects to Redis when REDIS_URL is set. Without it the game
// runs on in-memory storage with scenarios read from DATA_DIR, and events and
// history are not recorded.
func openStorage(cfg *config.Config, log *slog.Logger) (storage.Storage, *events.Broadcaster, *history.History, error) {
	if cfg.RedisURL == "" {
		log.Info("REDIS_URL not set, using in-memory storage", "data_dir", cfg.DataDir)
		mock, err := newLocalStorage(cfg.DataDir, log)
		if err != nil {
			return nil, nil, nil, err
		}
		return mock, nil, nil, nil
	}

	rs, err := redisstorage.NewRedisStorage(cfg.RedisURL, cfg.DataDir, log)
	if err != nil {
		return nil, nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := rs.WaitForConnection(ctx, 5, time.Second); err != nil {
		_ = rs.Close()
		return nil, nil, nil, fmt.Errorf("redis not reachable: %w", err)
	}

	return rs, events.NewBroadcaster(rs.Client(), log), history.New(rs.Client(), log), nil
}

// newLocalStorage fills a MockStorage with every scenario under dataDir.
func newLocalStorage(dataDir string, log *slog.Logger) (*storage.MockStorage, error) {
	files, err := redisstorage.ListScenarioFiles(dataDir, log)
	if err != nil {
		return nil, err
	}

	mock := storage.NewMockStorage()
	for name, file := range files {
		sc, err := redisstorage.LoadScenario(filepath.Join(dataDir, "scenarios", file))
		if err != nil {
			log.Warn("Skipping scenario", "name", name, "error", err)
			continue
		}
		mock.AddScenario(file, sc)
	}
	return mock, nil
}

func loadPreferences(store storage.Storage, profile string, log *slog.Logger) session.Preferences {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	prefs, err := store.LoadPreferences(ctx, profile)
	if err != nil {
		log.Warn("Failed to load preferences, using defaults", "profile", profile, "error", err)
		return session.DefaultPreferences()
	}
	return prefs
}
