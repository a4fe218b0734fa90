package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/ravenlog/pkg/gamelog"
)

// Game log operations (Redis-backed). Each game is one list of JSON entries
// in append order.

func logKey(gameID uuid.UUID) string {
	return "gamelog:" + gameID.String()
}

func (r *RedisStorage) AppendEntry(ctx context.Context, gameID uuid.UUID, entry gamelog.Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		r.logger.Error("Failed to marshal log entry", "game_id", gameID, "error", err)
		return fmt.Errorf("failed to marshal log entry: %w", err)
	}

	if err := r.client.RPush(ctx, logKey(gameID), data).Err(); err != nil {
		r.logger.Error("Failed to append log entry", "game_id", gameID, "error", err)
		return fmt.Errorf("failed to append log entry: %w", err)
	}
	return nil
}

// LoadEntries returns the stored log; an unknown game has an empty log. An
// entry of a kind this build does not know is kept as a placeholder.
func (r *RedisStorage) LoadEntries(ctx context.Context, gameID uuid.UUID) ([]gamelog.Entry, error) {
	raw, err := r.client.LRange(ctx, logKey(gameID), 0, -1).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		r.logger.Error("Failed to load game log", "game_id", gameID, "error", err)
		return nil, fmt.Errorf("failed to load game log: %w", err)
	}

	entries := make([]gamelog.Entry, 0, len(raw))
	for i, item := range raw {
		entry, err := gamelog.DecodeStoredEntry([]byte(item))
		if err != nil {
			r.logger.Error("Failed to unmarshal log entry", "game_id", gameID, "index", i, "error", err)
			return nil, fmt.Errorf("failed to unmarshal log entry %d: %w", i, err)
		}
		if entry.Unknown != nil {
			r.logger.Warn("Stored log entry has unknown kind", "game_id", gameID, "index", i, "kind", entry.Unknown.Kind)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r *RedisStorage) DeleteLog(ctx context.Context, gameID uuid.UUID) error {
	if err := r.client.Del(ctx, logKey(gameID)).Err(); err != nil {
		r.logger.Error("Failed to delete game log", "game_id", gameID, "error", err)
		return fmt.Errorf("failed to delete game log: %w", err)
	}
	return nil
}
