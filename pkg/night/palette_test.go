package night

import (
	"math/rand/v2"
	"testing"
	"time"
)

func TestAssignPalette(t *testing.T) {
	palettes := []Palette{
		{Correct: "ruby", Incorrect: []string{"brick", "rust"}},
		{Correct: "garnet", Incorrect: []string{"ink"}},
	}
	candidates := []CandidateID{"A", "B", "C", "D"}
	r := rand.New(rand.NewPCG(7, 7))

	got := AssignPalette(palettes, 1, candidates, "C", r)
	if len(got) != len(candidates) {
		t.Fatalf("Expected %d assignments, got %d", len(candidates), len(got))
	}
	if got["C"] != "ruby" {
		t.Errorf("Expected correct glass to get ruby, got %q", got["C"])
	}
	for _, id := range []CandidateID{"A", "B", "D"} {
		if got[id] != "brick" && got[id] != "rust" {
			t.Errorf("Expected incorrect material for %s, got %q", id, got[id])
		}
	}

	// Nights past the last palette reuse it.
	got = AssignPalette(palettes, 9, candidates, "A", r)
	if got["A"] != "garnet" || got["B"] != "ink" {
		t.Errorf("Expected last palette, got %v", got)
	}
}

func TestAssignPalette_NothingToAssign(t *testing.T) {
	ids := []CandidateID{"A", "B"}
	if got := AssignPalette(nil, 1, ids, "A", nil); got != nil {
		t.Errorf("Expected nil without palettes, got %v", got)
	}
	if got := AssignPalette([]Palette{{Correct: "ruby"}}, 1, ids, "A", nil); got != nil {
		t.Errorf("Expected nil without incorrect materials, got %v", got)
	}
}

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{90 * time.Second, "01:30"},
		{89*time.Second + 100*time.Millisecond, "01:30"},
		{time.Millisecond, "00:01"},
		{0, "00:00"},
		{-time.Second, "00:00"},
		{10 * time.Minute, "10:00"},
	}
	for _, tt := range tests {
		if got := FormatCountdown(tt.in); got != tt.want {
			t.Errorf("FormatCountdown(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPickers(t *testing.T) {
	if got := (FixedPicker{Index: -3}).Pick(1, 3); got != 0 {
		t.Errorf("Expected clamp to 0, got %d", got)
	}
	seq := SequencePicker{Indexes: []int{2, 0}}
	if got := seq.Pick(1, 3); got != 2 {
		t.Errorf("Expected 2 on night 1, got %d", got)
	}
	if got := seq.Pick(4, 3); got != 0 {
		t.Errorf("Expected last entry to repeat, got %d", got)
	}
	r := RandomPicker{Rand: rand.New(rand.NewPCG(1, 2))}
	for i := 0; i < 100; i++ {
		if got := r.Pick(1, 3); got < 0 || got > 2 {
			t.Fatalf("Random pick out of range: %d", got)
		}
	}
}
