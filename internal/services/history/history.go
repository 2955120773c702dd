// Package history keeps a short per-session log of how each night went.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// MaxEntries caps each session's list.
const MaxEntries = 50

// Entry records one resolved night.
type Entry struct {
	Night   int       `json:"night"`
	Outcome string    `json:"outcome"` // "advanced", "win" or "lose"
	Reason  string    `json:"reason,omitempty"`
	Elapsed float64   `json:"elapsed_seconds"`
	At      time.Time `json:"at"`
}

// History stores entries in a Redis list per session.
type History struct {
	rdb    *redis.Client
	logger *slog.Logger
}

func New(rdb *redis.Client, logger *slog.Logger) *History {
	return &History{rdb: rdb, logger: logger}
}

func key(sessionID uuid.UUID) string {
	return fmt.Sprintf("history:%s", sessionID)
}

// Append adds an entry and trims the list to MaxEntries.
func (h *History) Append(ctx context.Context, sessionID uuid.UUID, e Entry) error {
	if e.At.IsZero() {
		e.At = time.Now()
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal history entry: %w", err)
	}

	k := key(sessionID)
	pipe := h.rdb.TxPipeline()
	pipe.RPush(ctx, k, data)
	pipe.LTrim(ctx, k, -MaxEntries, -1)
	if _, err := pipe.Exec(ctx); err != nil {
		h.logger.Error("Failed to append history entry",
			"error", err,
			"session_id", sessionID,
			"key", k)
		return fmt.Errorf("failed to append history entry: %w", err)
	}

	h.logger.Debug("Appended history entry",
		"session_id", sessionID,
		"night", e.Night,
		"outcome", e.Outcome)
	return nil
}

// Recent returns up to n entries, oldest first.
func (h *History) Recent(ctx context.Context, sessionID uuid.UUID, n int) ([]Entry, error) {
	if n <= 0 {
		return nil, nil
	}
	raw, err := h.rdb.LRange(ctx, key(sessionID), int64(-n), -1).Result()
	if err != nil {
		h.logger.Error("Failed to read history", "error", err, "session_id", sessionID)
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	entries := make([]Entry, 0, len(raw))
	for _, item := range raw {
		var e Entry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			h.logger.Warn("Skipping malformed history entry", "session_id", sessionID, "error", err)
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Depth returns the number of stored entries.
func (h *History) Depth(ctx context.Context, sessionID uuid.UUID) (int, error) {
	n, err := h.rdb.LLen(ctx, key(sessionID)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get history depth: %w", err)
	}
	return int(n), nil
}
