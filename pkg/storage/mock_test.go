package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jwebster45206/nights-engine/pkg/scenario"
	"github.com/jwebster45206/nights-engine/pkg/session"
)

func TestMockStorage_SessionLifecycle(t *testing.T) {
	m := NewMockStorage()
	ctx := context.Background()

	s := session.New("cellar.json")
	s.ResumeNight = 2
	if err := m.SaveSession(ctx, s); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}

	s.ResumeNight = 4 // must not leak into the stored copy
	loaded, err := m.LoadSession(ctx, s.ID)
	if err != nil {
		t.Fatalf("Failed to load session: %v", err)
	}
	if loaded == nil || loaded.ResumeNight != 2 {
		t.Fatalf("Expected stored resume night 2, got %+v", loaded)
	}

	if err := m.DeleteSession(ctx, s.ID); err != nil {
		t.Fatalf("Failed to delete session: %v", err)
	}
	loaded, err = m.LoadSession(ctx, s.ID)
	if err != nil || loaded != nil {
		t.Errorf("Expected nil after delete, got %+v, %v", loaded, err)
	}

	if err := m.SaveSession(ctx, nil); err == nil {
		t.Error("Expected error saving nil session")
	}
}

func TestMockStorage_LoadUnknownSession(t *testing.T) {
	loaded, err := NewMockStorage().LoadSession(context.Background(), uuid.New())
	if err != nil || loaded != nil {
		t.Errorf("Expected nil, nil for unknown session, got %+v, %v", loaded, err)
	}
}

func TestMockStorage_Preferences(t *testing.T) {
	m := NewMockStorage()
	ctx := context.Background()

	p, err := m.LoadPreferences(ctx, "default")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if p != session.DefaultPreferences() {
		t.Errorf("Expected defaults, got %+v", p)
	}

	want := session.Preferences{Sensitivity: 0.5, MasterVolume: 0.3, Fullscreen: true}
	if err := m.SavePreferences(ctx, "default", want); err != nil {
		t.Fatalf("Failed to save preferences: %v", err)
	}
	p, _ = m.LoadPreferences(ctx, "default")
	if p != want {
		t.Errorf("Expected %+v, got %+v", want, p)
	}
}

func TestMockStorage_Scenarios(t *testing.T) {
	m := NewMockStorage()
	ctx := context.Background()
	m.AddScenario("cellar.json", &scenario.Scenario{Name: "The Cellar"})

	list, err := m.ListScenarios(ctx)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if list["The Cellar"] != "cellar.json" {
		t.Errorf("Expected cellar.json, got %v", list)
	}

	if _, err := m.GetScenario(ctx, "missing.json"); err == nil {
		t.Error("Expected error for missing scenario")
	}
}

func TestMockStorage_Ping(t *testing.T) {
	m := NewMockStorage()
	if err := m.Ping(context.Background()); err != nil {
		t.Fatalf("Expected ping to succeed, got %v", err)
	}
	boom := errors.New("down")
	m.SetPingError(boom)
	if err := m.Ping(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Expected ping error, got %v", err)
	}
}
