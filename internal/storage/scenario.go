package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jwebster45206/nights-engine/pkg/scenario"
)

// Scenario operations (filesystem-backed)

func (r *RedisStorage) ListScenarios(ctx context.Context) (map[string]string, error) {
	return listScenarios(r.dataDir, r.logger.Warn)
}

func (r *RedisStorage) GetScenario(ctx context.Context, filename string) (*scenario.Scenario, error) {
	r.logger.Debug("Loading scenario", "filename", filename, "dataDir", r.dataDir)
	return LoadScenario(filepath.Join(r.dataDir, "scenarios", filename))
}

// ListScenarioFiles lists the scenarios under dataDir without a Redis
// connection.
func ListScenarioFiles(dataDir string, logger *slog.Logger) (map[string]string, error) {
	return listScenarios(dataDir, logger.Warn)
}

// LoadScenario reads a scenario file. The file name overrides any
// file_name in the JSON.
func LoadScenario(path string) (*scenario.Scenario, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("scenario not found: %s", filepath.Base(path))
		}
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var s scenario.Scenario
	if err := json.Unmarshal(file, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scenario: %w", err)
	}
	s.FileName = filepath.Base(path)

	return &s, nil
}

// listScenarios maps scenario names to file names. Unreadable files are
// skipped and reported through warn.
func listScenarios(dataDir string, warn func(msg string, args ...any)) (map[string]string, error) {
	scenariosDir := filepath.Join(dataDir, "scenarios")
	scenarios := make(map[string]string)

	err := filepath.WalkDir(scenariosDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == scenariosDir {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		s, err := LoadScenario(path)
		if err != nil {
			warn("Skipping scenario file", "path", path, "error", err)
			return nil
		}
		scenarios[s.Name] = s.FileName
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}

	return scenarios, nil
}
