package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jwebster45206/nights-engine/pkg/scenario"
	"github.com/jwebster45206/nights-engine/pkg/session"
)

// MockStorage is an in-memory Storage. It backs tests and lets the console
// run without Redis.
type MockStorage struct {
	mu          sync.RWMutex
	sessions    map[uuid.UUID]session.Session
	preferences map[string]session.Preferences
	scenarios   map[string]*scenario.Scenario
	pingError   error
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage
func NewMockStorage() *MockStorage {
	return &MockStorage{
		sessions:    make(map[uuid.UUID]session.Session),
		preferences: make(map[string]session.Preferences),
		scenarios:   make(map[string]*scenario.Scenario),
	}
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MockStorage) Close() error {
	return nil
}

// SaveSession stores a copy so later mutations by the caller are not seen.
func (m *MockStorage) SaveSession(ctx context.Context, s *session.Session) error {
	if s == nil {
		return errors.New("session cannot be nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = *s
	return nil
}

func (m *MockStorage) LoadSession(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, exists := m.sessions[id]
	if !exists {
		return nil, nil
	}
	return &s, nil
}

func (m *MockStorage) DeleteSession(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *MockStorage) SavePreferences(ctx context.Context, profile string, p session.Preferences) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.preferences[profile] = p
	return nil
}

func (m *MockStorage) LoadPreferences(ctx context.Context, profile string) (session.Preferences, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, exists := m.preferences[profile]
	if !exists {
		return session.DefaultPreferences(), nil
	}
	return p, nil
}

// AddScenario registers a scenario under filename
func (m *MockStorage) AddScenario(filename string, s *scenario.Scenario) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scenarios[filename] = s
}

func (m *MockStorage) ListScenarios(ctx context.Context) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]string)
	for filename, s := range m.scenarios {
		result[s.Name] = filename
	}
	return result, nil
}

func (m *MockStorage) GetScenario(ctx context.Context, filename string) (*scenario.Scenario, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, exists := m.scenarios[filename]
	if !exists {
		return nil, fmt.Errorf("scenario not found: %s", filename)
	}
	return s, nil
}
