package night

import (
	"fmt"
	"time"
)

// Phase is a step of a consequence sequence.
type Phase int

const (
	PhaseNone Phase = iota
	PhaseShakingCamera
	PhaseWaitingBeforeReveal
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseNone:
		return "none"
	case PhaseShakingCamera:
		return "shaking_camera"
	case PhaseWaitingBeforeReveal:
		return "waiting_before_reveal"
	case PhaseDone:
		return "done"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Sequence runs shake-then-pause. It is advanced by elapsed time and cannot
// be cancelled once started.
type Sequence struct {
	cons    Consequence
	phase   Phase
	elapsed time.Duration
}

// NewSequence starts a sequence in the shaking phase.
func NewSequence(c Consequence) *Sequence {
	return &Sequence{cons: c, phase: PhaseShakingCamera}
}

// Phase is the current step.
func (s *Sequence) Phase() Phase { return s.phase }

func (s *Sequence) Done() bool { return s.phase == PhaseDone }

// Magnitude is the shake amplitude while shaking, zero otherwise.
func (s *Sequence) Magnitude() float64 {
	if s.phase != PhaseShakingCamera {
		return 0
	}
	return s.cons.ShakeMagnitude
}

// Advance consumes dt, carrying any remainder into the following phases.
// A zero-length phase completes on the first Advance, even with dt == 0.
func (s *Sequence) Advance(dt time.Duration) Phase {
	for {
		var length time.Duration
		switch s.phase {
		case PhaseShakingCamera:
			length = s.cons.ShakeDuration
		case PhaseWaitingBeforeReveal:
			length = s.cons.Delay
		default:
			return s.phase
		}

		left := length - s.elapsed
		if dt < left {
			s.elapsed += dt
			return s.phase
		}
		dt -= left
		s.elapsed = 0
		s.phase++
	}
}
