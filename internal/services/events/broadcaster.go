package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// EventType represents the type of event being broadcast
type EventType string

const (
	EventTypeNightBegan     EventType = "night.began"
	EventTypeNightResolving EventType = "night.resolving"
	EventTypeGameWon        EventType = "game.won"
	EventTypeGameLost       EventType = "game.lost"
	EventTypeGameRestarted  EventType = "game.restarted"
)

// Event represents a generic event structure
type Event struct {
	Type   EventType      `json:"type"`
	GameID string         `json:"game_id,omitempty"`
	Data   map[string]any `json:"data,omitempty"`
}

// Broadcaster publishes night events to Redis Pub/Sub so other processes can
// follow a run.
type Broadcaster struct {
	redisClient *redis.Client
	logger      *slog.Logger
}

// NewBroadcaster creates a new event broadcaster
func NewBroadcaster(redisClient *redis.Client, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		redisClient: redisClient,
		logger:      logger,
	}
}

// Channel is the Pub/Sub channel for a session.
func Channel(gameID uuid.UUID) string {
	return fmt.Sprintf("night-events:%s", gameID.String())
}

func (b *Broadcaster) PublishNightBegan(ctx context.Context, gameID uuid.UUID, night, maxNight int) error {
	return b.publishToGame(ctx, gameID, Event{
		Type: EventTypeNightBegan,
		Data: map[string]any{
			"night":     night,
			"max_night": maxNight,
		},
	})
}

func (b *Broadcaster) PublishNightResolving(ctx context.Context, gameID uuid.UUID, night int, candidate string) error {
	return b.publishToGame(ctx, gameID, Event{
		Type: EventTypeNightResolving,
		Data: map[string]any{
			"night":     night,
			"candidate": candidate,
		},
	})
}

// PublishOutcome publishes game.won or game.lost.
func (b *Broadcaster) PublishOutcome(ctx context.Context, gameID uuid.UUID, night int, won bool, reason string) error {
	event := Event{
		Type: EventTypeGameLost,
		Data: map[string]any{
			"night":  night,
			"reason": reason,
		},
	}
	if won {
		event.Type = EventTypeGameWon
		delete(event.Data, "reason")
	}
	return b.publishToGame(ctx, gameID, event)
}

func (b *Broadcaster) PublishRestarted(ctx context.Context, gameID uuid.UUID, night int) error {
	return b.publishToGame(ctx, gameID, Event{
		Type: EventTypeGameRestarted,
		Data: map[string]any{"night": night},
	})
}

// publishToGame publishes an event to the game-specific channel
func (b *Broadcaster) publishToGame(ctx context.Context, gameID uuid.UUID, event Event) error {
	channel := Channel(gameID)
	event.GameID = gameID.String()

	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("Failed to marshal event", "error", err, "event", event)
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.redisClient.Publish(ctx, channel, data).Err(); err != nil {
		b.logger.Error("Failed to publish event", "error", err, "channel", channel)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	b.logger.Debug("Event published",
		"channel", channel,
		"event_type", event.Type,
	)

	return nil
}
