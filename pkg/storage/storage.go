package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/jwebster45206/nights-engine/pkg/scenario"
	"github.com/jwebster45206/nights-engine/pkg/session"
)

// Storage defines a unified interface for all storage operations
// This interface combines session persistence (Redis) with scenario loading (filesystem)
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Session operations (Redis-backed). LoadSession returns nil, nil when
	// the session does not exist.
	SaveSession(ctx context.Context, s *session.Session) error
	LoadSession(ctx context.Context, id uuid.UUID) (*session.Session, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error

	// Preference operations (Redis-backed). LoadPreferences returns the
	// defaults for an unknown profile.
	SavePreferences(ctx context.Context, profile string, p session.Preferences) error
	LoadPreferences(ctx context.Context, profile string) (session.Preferences, error)

	// Scenario operations (filesystem-backed)
	ListScenarios(ctx context.Context) (map[string]string, error)
	GetScenario(ctx context.Context, filename string) (*scenario.Scenario, error)
}
