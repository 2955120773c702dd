package storage

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func writeScenario(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, "scenarios", name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create scenarios dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("Failed to write scenario: %v", err)
	}
	return path
}

func TestLoadScenario_FileNameFromPath(t *testing.T) {
	dir := t.TempDir()
	path := writeScenario(t, dir, "cellar.json", `{"name":"The Cellar","file_name":"other.json","candidates":[{"id":"left_glass"}]}`)

	s, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s.FileName != "cellar.json" {
		t.Errorf("Expected file name from path, got %q", s.FileName)
	}
	if len(s.Candidates) != 1 || s.Candidates[0].ID != "left_glass" {
		t.Errorf("Unexpected candidates: %+v", s.Candidates)
	}
}

func TestLoadScenario_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadScenario(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}

	path := writeScenario(t, dir, "broken.json", `{"name":`)
	if _, err := LoadScenario(path); err == nil {
		t.Error("Expected error for malformed JSON")
	}
}

func TestListScenarioFiles_SkipsBadFiles(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "cellar.json", `{"name":"The Cellar","candidates":[{"id":"a"}]}`)
	writeScenario(t, dir, "attic.json", `{"name":"The Attic","candidates":[{"id":"b"}]}`)
	writeScenario(t, dir, "broken.json", `not json`)
	writeScenario(t, dir, "notes.txt", `ignored`)

	files, err := ListScenarioFiles(dir, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("Expected 2 scenarios, got %d: %v", len(files), files)
	}
	if files["The Cellar"] != "cellar.json" || files["The Attic"] != "attic.json" {
		t.Errorf("Unexpected scenario map: %v", files)
	}
}
