// Package session holds the records a host persists between scene reloads.
package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/nights-engine/pkg/night"
)

// Session is the persisted record of one run. ResumeNight is the night the
// next engine instance starts at; zero means the configured start night.
type Session struct {
	ID          uuid.UUID `json:"id"`
	Scenario    string    `json:"scenario"`
	ResumeNight int       `json:"resume_night,omitempty"`
	Night       int       `json:"night"`
	MaxNight    int       `json:"max_night"`
	Status      string    `json:"status"`
	Outcome     string    `json:"outcome,omitempty"`
	Reason      string    `json:"reason,omitempty"`
	Restarts    int       `json:"restarts,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func New(scenario string) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.New(),
		Scenario:  scenario,
		Status:    night.StatusIdle.String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ResumeAt returns the night to begin at, falling back to start.
func (s *Session) ResumeAt(start int) int {
	if s == nil || s.ResumeNight <= 0 {
		return start
	}
	return s.ResumeNight
}

// Record copies the engine's current progress into the session.
func (s *Session) Record(n, maxNight int, status night.Status, result night.Result) {
	s.Night = n
	s.MaxNight = maxNight
	s.Status = status.String()
	s.Outcome = ""
	s.Reason = ""
	if result.Outcome != night.OutcomeNone {
		s.Outcome = result.Outcome.String()
	}
	if result.Reason != night.ReasonNone {
		s.Reason = result.Reason.String()
	}
}

// Ended reports whether the run finished.
func (s *Session) Ended() bool {
	return s.Status == night.StatusEnded.String()
}
