package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/ravenlog/pkg/entity"
	"github.com/jwebster45206/ravenlog/pkg/gamelog"
)

// EventType represents the type of event being broadcast
type EventType string

const (
	EventTypeLogAppended     EventType = "log.appended"
	EventTypeChoiceCommitted EventType = "choice.committed"
	EventTypeRecordRejected  EventType = "record.rejected"
)

// Event represents a generic event structure
type Event struct {
	Type   EventType              `json:"type"`
	GameID string                 `json:"game_id,omitempty"`
	Data   map[string]interface{} `json:"data,omitempty"`
}

// Channel returns the pub/sub channel of one game.
func Channel(gameID uuid.UUID) string {
	return fmt.Sprintf("game-events:%s", gameID.String())
}

// Broadcaster publishes events to Redis Pub/Sub for SSE distribution
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

// PublishLogAppended publishes a log.appended event carrying the stored entry
// and its narration.
func (b *Broadcaster) PublishLogAppended(ctx context.Context, gameID uuid.UUID, index int, entry gamelog.Entry, text string) error {
	event := Event{
		Type:   EventTypeLogAppended,
		GameID: gameID.String(),
		Data: map[string]interface{}{
			"index": index,
			"entry": entry,
			"text":  text,
		},
	}
	return b.publishToGame(ctx, gameID, event)
}

// PublishChoiceCommitted publishes a choice.committed event
func (b *Broadcaster) PublishChoiceCommitted(ctx context.Context, gameID uuid.UUID, house, vassal entity.HouseID) error {
	event := Event{
		Type:   EventTypeChoiceCommitted,
		GameID: gameID.String(),
		Data: map[string]interface{}{
			"house":  house,
			"vassal": vassal,
		},
	}
	return b.publishToGame(ctx, gameID, event)
}

// PublishRecordRejected reports a queued request the worker could not apply
func (b *Broadcaster) PublishRecordRejected(ctx context.Context, gameID uuid.UUID, requestID, reason string) error {
	event := Event{
		Type:   EventTypeRecordRejected,
		GameID: gameID.String(),
		Data: map[string]interface{}{
			"request_id": requestID,
			"reason":     reason,
		},
	}
	return b.publishToGame(ctx, gameID, event)
}

// publishToGame publishes an event to the game-specific channel
func (b *Broadcaster) publishToGame(ctx context.Context, gameID uuid.UUID, event Event) error {
	channel := Channel(gameID)

	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("Failed to marshal event", "error", err, "event_type", event.Type)
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
