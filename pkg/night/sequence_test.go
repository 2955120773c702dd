package night

import (
	"testing"
	"time"
)

func TestSequence_Advance(t *testing.T) {
	cons := Consequence{ShakeDuration: 300 * time.Millisecond, ShakeMagnitude: 0.1, Delay: 600 * time.Millisecond}

	tests := []struct {
		name  string
		steps []time.Duration
		want  Phase
	}{
		{"starts shaking", nil, PhaseShakingCamera},
		{"mid shake", []time.Duration{100 * time.Millisecond}, PhaseShakingCamera},
		{"shake boundary", []time.Duration{300 * time.Millisecond}, PhaseWaitingBeforeReveal},
		{"remainder carries", []time.Duration{800 * time.Millisecond}, PhaseWaitingBeforeReveal},
		{"done in one step", []time.Duration{time.Second}, PhaseDone},
		{"done over many steps", []time.Duration{
			200 * time.Millisecond, 200 * time.Millisecond, 200 * time.Millisecond, 300 * time.Millisecond,
		}, PhaseDone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSequence(cons)
			for _, dt := range tt.steps {
				s.Advance(dt)
			}
			if s.Phase() != tt.want {
				t.Errorf("Expected phase %s, got %s", tt.want, s.Phase())
			}
		})
	}
}

func TestSequence_ZeroLengthCompletesOnFirstAdvance(t *testing.T) {
	s := NewSequence(Consequence{})
	if s.Done() {
		t.Fatal("Sequence should not be done before advancing")
	}
	if got := s.Advance(0); got != PhaseDone {
		t.Errorf("Expected done after zero advance, got %s", got)
	}
	if got := s.Advance(time.Second); got != PhaseDone {
		t.Errorf("Done sequence should stay done, got %s", got)
	}
}

func TestSequence_Magnitude(t *testing.T) {
	s := NewSequence(Consequence{ShakeDuration: time.Second, ShakeMagnitude: 0.25, Delay: time.Second})
	if s.Magnitude() != 0.25 {
		t.Errorf("Expected magnitude 0.25 while shaking, got %v", s.Magnitude())
	}
	s.Advance(time.Second)
	if s.Magnitude() != 0 {
		t.Errorf("Expected no magnitude after shaking, got %v", s.Magnitude())
	}
}
