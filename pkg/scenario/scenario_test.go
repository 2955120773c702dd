package scenario

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jwebster45206/nights-engine/pkg/night"
)

const cellarJSON = `{
	"name": "The Cellar",
	"story": "Four nights. One glass is wine.",
	"candidates": [
		{"id": "left_glass"},
		{"id": "middle_glass", "display_name": "Crystal Flute"},
		{"id": "right_glass", "description": "A chipped rim."}
	],
	"max_night": 3,
	"night_seconds": 60,
	"intro_seconds": 2.5,
	"selection": "Fixed",
	"fixed_index": 1,
	"failure": {"shake_seconds": 0.5, "shake_magnitude": 0.3, "delay_seconds": 0.2},
	"palettes": [{"correct": "ruby", "incorrect": ["murky", "brick"]}],
	"lights": [{"name": "table_lamp", "off_seconds": 5, "return_intensity": 1500}],
	"panting_intervals": [4, 2]
}`

func TestScenario_NightConfig(t *testing.T) {
	var s Scenario
	if err := json.Unmarshal([]byte(cellarJSON), &s); err != nil {
		t.Fatalf("Failed to unmarshal scenario: %v", err)
	}

	cfg, err := s.NightConfig()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.StartNight != 1 || cfg.MaxNight != 3 {
		t.Errorf("Expected nights 1..3, got %d..%d", cfg.StartNight, cfg.MaxNight)
	}
	if cfg.NightDuration != time.Minute {
		t.Errorf("Expected 60s nights, got %s", cfg.NightDuration)
	}
	if cfg.IntroDuration != 2500*time.Millisecond {
		t.Errorf("Expected 2.5s intro, got %s", cfg.IntroDuration)
	}
	if cfg.Selection != night.SelectFixed || cfg.FixedIndex != 1 {
		t.Errorf("Expected fixed selection at 1, got %s at %d", cfg.Selection, cfg.FixedIndex)
	}
	if cfg.Success != night.DefaultConfig().Success {
		t.Errorf("Expected default success consequence, got %+v", cfg.Success)
	}
	if cfg.Failure.ShakeMagnitude != 0.3 || cfg.Failure.Delay != 200*time.Millisecond {
		t.Errorf("Unexpected failure consequence: %+v", cfg.Failure)
	}
	if len(cfg.Lights) != 1 || cfg.Lights[0].Off != 5*time.Second {
		t.Errorf("Unexpected lights: %+v", cfg.Lights)
	}
	if len(cfg.PantingIntervals) != 2 || cfg.PantingIntervals[1] != 2*time.Second {
		t.Errorf("Unexpected panting intervals: %v", cfg.PantingIntervals)
	}

	ids := s.CandidateIDs()
	if len(ids) != 3 || ids[1] != "middle_glass" {
		t.Errorf("Unexpected candidate ids: %v", ids)
	}
}

func TestCandidate_Label(t *testing.T) {
	tests := []struct {
		c    Candidate
		want string
	}{
		{Candidate{ID: "left_glass"}, "Left Glass"},
		{Candidate{ID: "middle_glass", DisplayName: "Crystal Flute"}, "Crystal Flute"},
	}
	for _, tt := range tests {
		if got := tt.c.Label(); got != tt.want {
			t.Errorf("Label(%q) = %q, want %q", tt.c.ID, got, tt.want)
		}
	}
}

func TestScenario_Validate(t *testing.T) {
	tests := []struct {
		name    string
		s       Scenario
		wantErr error
	}{
		{
			name: "valid",
			s:    Scenario{Name: "ok", Candidates: []Candidate{{ID: "a"}, {ID: "b"}}},
		},
		{
			name:    "no candidates",
			s:       Scenario{Name: "empty"},
			wantErr: night.ErrEmptyCandidates,
		},
		{
			name:    "max before start",
			s:       Scenario{Name: "bad", Candidates: []Candidate{{ID: "a"}}, StartNight: 3, MaxNight: 2},
			wantErr: night.ErrInvalidConfig,
		},
		{
			name:    "unknown selection",
			s:       Scenario{Name: "bad", Candidates: []Candidate{{ID: "a"}}, Selection: "weighted"},
			wantErr: night.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestScenario_ValidateDuplicateIDs(t *testing.T) {
	s := Scenario{Name: "dup", Candidates: []Candidate{{ID: "a"}, {ID: "a"}, {ID: ""}}}
	if err := s.Validate(); err == nil {
		t.Error("Expected duplicate and empty ids to be rejected")
	}
}
