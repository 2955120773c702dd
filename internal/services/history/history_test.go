package history

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func setupTestHistory(t *testing.T) (*History, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return New(rdb, logger), mr
}

func TestHistory_AppendAndRecent(t *testing.T) {
	h, _ := setupTestHistory(t)
	ctx := context.Background()
	id := uuid.New()

	entries := []Entry{
		{Night: 1, Outcome: "advanced", Elapsed: 40},
		{Night: 2, Outcome: "advanced", Elapsed: 12.5},
		{Night: 3, Outcome: "lose", Reason: "wrong_choice", Elapsed: 88},
	}
	for _, e := range entries {
		if err := h.Append(ctx, id, e); err != nil {
			t.Fatalf("Failed to append: %v", err)
		}
	}

	depth, err := h.Depth(ctx, id)
	if err != nil {
		t.Fatalf("Failed to get depth: %v", err)
	}
	if depth != 3 {
		t.Errorf("Expected depth 3, got %d", depth)
	}

	recent, err := h.Recent(ctx, id, 2)
	if err != nil {
		t.Fatalf("Failed to read recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(recent))
	}
	if recent[0].Night != 2 || recent[1].Reason != "wrong_choice" {
		t.Errorf("Unexpected entries: %+v", recent)
	}
	if recent[1].At.IsZero() {
		t.Error("Expected timestamp to be set")
	}
}

func TestHistory_Trim(t *testing.T) {
	h, _ := setupTestHistory(t)
	ctx := context.Background()
	id := uuid.New()

	for i := 0; i < MaxEntries+10; i++ {
		if err := h.Append(ctx, id, Entry{Night: i, Outcome: "advanced"}); err != nil {
			t.Fatalf("Failed to append: %v", err)
		}
	}

	depth, _ := h.Depth(ctx, id)
	if depth != MaxEntries {
		t.Errorf("Expected depth %d, got %d", MaxEntries, depth)
	}
	recent, _ := h.Recent(ctx, id, 1)
	if len(recent) != 1 || recent[0].Night != MaxEntries+9 {
		t.Errorf("Expected newest entry kept, got %+v", recent)
	}
}

func TestHistory_SkipsMalformed(t *testing.T) {
	h, mr := setupTestHistory(t)
	ctx := context.Background()
	id := uuid.New()

	if _, err := mr.RPush(key(id), "garbage"); err != nil {
		t.Fatalf("Failed to seed list: %v", err)
	}
	if err := h.Append(ctx, id, Entry{Night: 1, Outcome: "win"}); err != nil {
		t.Fatalf("Failed to append: %v", err)
	}

	recent, err := h.Recent(ctx, id, 10)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(recent) != 1 || recent[0].Outcome != "win" {
		t.Errorf("Expected malformed entry skipped, got %+v", recent)
	}

	none, err := h.Recent(ctx, id, 0)
	if err != nil || none != nil {
		t.Errorf("Expected nil for n=0, got %v, %v", none, err)
	}
}
