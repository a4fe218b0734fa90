package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/ravenlog/pkg/queue"
)

// readyKey lists games with pending requests. A game id may appear more than
// once; a wakeup for a game whose queue is already drained is harmless.
const readyKey = "ingest-ready"

// ErrUnreadable marks a queued request that could not be parsed. It has
// already been removed from the queue.
var ErrUnreadable = errors.New("unreadable request")

func pendingKey(gameID uuid.UUID) string {
	return fmt.Sprintf("ingest:%s", gameID.String())
}

// IngestQueue holds requests per game in arrival order. Only the worker
// holding a game's lock pops from that game's list, so each game's requests
// are applied in the order they were enqueued.
type IngestQueue struct {
	client *Client
}

func NewIngestQueue(client *Client) *IngestQueue {
	return &IngestQueue{client: client}
}

// Enqueue appends req to its game's queue and signals the game as ready.
func (q *IngestQueue) Enqueue(ctx context.Context, req *queue.Request) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	data, err := req.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to serialize request: %w", err)
	}

	_, err = q.client.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, pendingKey(req.GameID), data)
		pipe.RPush(ctx, readyKey, req.GameID.String())
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to enqueue request: %w", err)
	}

	q.client.logger.Debug("Enqueued request",
		"request_id", req.RequestID,
		"type", req.Type,
		"game_id", req.GameID.String())
	return nil
}

// Return puts req back at the head of its game's queue, for requests that
// failed for reasons unrelated to their content.
func (q *IngestQueue) Return(ctx context.Context, req *queue.Request) error {
	data, err := req.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to serialize request: %w", err)
	}
	_, err = q.client.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, pendingKey(req.GameID), data)
		pipe.RPush(ctx, readyKey, req.GameID.String())
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to return request: %w", err)
	}
	return nil
}

// NextGame blocks up to timeout for a game with pending requests. ok is false
// when the wait timed out.
func (q *IngestQueue) NextGame(ctx context.Context, timeout time.Duration) (gameID uuid.UUID, ok bool, err error) {
	result, err := q.client.rdb.BLPop(ctx, timeout, readyKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, fmt.Errorf("failed to wait for ready game: %w", err)
	}

	// BLPop returns [key, value]
	if len(result) != 2 {
		return uuid.Nil, false, fmt.Errorf("unexpected BLPop result: %v", result)
	}
	gameID, err = uuid.Parse(result[1])
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("bad game id on ready list: %w", err)
	}
	return gameID, true, nil
}

// MarkReady signals gameID again, for a worker that could not take its lock.
func (q *IngestQueue) MarkReady(ctx context.Context, gameID uuid.UUID) error {
	if err := q.client.rdb.RPush(ctx, readyKey, gameID.String()).Err(); err != nil {
		return fmt.Errorf("failed to mark game ready: %w", err)
	}
	return nil
}

// Pop removes and returns the oldest request for gameID, or nil when the
// queue is empty. An unparsable request is dropped and reported as an error.
func (q *IngestQueue) Pop(ctx context.Context, gameID uuid.UUID) (*queue.Request, error) {
	result, err := q.client.rdb.LPop(ctx, pendingKey(gameID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Queue is empty
		}
		return nil, fmt.Errorf("failed to dequeue request: %w", err)
	}

	req, err := queue.FromJSON([]byte(result))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return req, nil
}

// Depth returns the number of requests queued for a game
func (q *IngestQueue) Depth(ctx context.Context, gameID uuid.UUID) (int, error) {
	count, err := q.client.rdb.LLen(ctx, pendingKey(gameID)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get queue depth: %w", err)
	}
	return int(count), nil
}

// Clear removes all requests for a game
func (q *IngestQueue) Clear(ctx context.Context, gameID uuid.UUID) error {
	if err := q.client.rdb.Del(ctx, pendingKey(gameID)).Err(); err != nil {
		return fmt.Errorf("failed to clear ingest queue: %w", err)
	}
	return nil
}
