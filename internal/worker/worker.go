package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/ravenlog/internal/services/queue"
)

const (
	workerTimeout  = 5 * time.Second
	requestTimeout = 10 * time.Second
	lockTTL        = 30 * time.Second
	lockRetryDelay = 100 * time.Millisecond
)

var (
	// Only the owner may release or extend a game lock.
	releaseScript = redis.NewScript(`
		if redis.call("get", KEYS[1]) == ARGV[1] then
			return redis.call("del", KEYS[1])
		else
			return 0
		end
	`)
	extendScript = redis.NewScript(`
		if redis.call("get", KEYS[1]) == ARGV[1] then
			return redis.call("pexpire", KEYS[1], ARGV[2])
		else
			return 0
		end
	`)
)

// RejectPublisher tells listeners about requests that could not be applied.
type RejectPublisher interface {
	PublishRecordRejected(ctx context.Context, gameID uuid.UUID, requestID, reason string) error
}

// Worker drains the ingest queue one game at a time
type Worker struct {
	id          string
	queue       *queue.IngestQueue
	processor   *Processor
	publisher   RejectPublisher
	redisClient *redis.Client
	log         *slog.Logger
	ctx         context.Context
	cancel      context.CancelFunc
	pollTimeout time.Duration
}

// New creates a new worker instance
func New(ingestQueue *queue.IngestQueue, processor *Processor, redisClient *redis.Client, publisher RejectPublisher, log *slog.Logger, workerID string) *Worker {
	ctx, cancel := context.WithCancel(context.Background())

	if workerID == "" {
		workerID = fmt.Sprintf("worker-%s", uuid.New().String()[:8])
	}

	return &Worker{
		id:          workerID,
		queue:       ingestQueue,
		processor:   processor,
		publisher:   publisher,
		redisClient: redisClient,
		log:         log,
		ctx:         ctx,
		cancel:      cancel,
		pollTimeout: workerTimeout,
	}
}

// Start processes games from the queue until Stop is called
func (w *Worker) Start() error {
	w.log.Info("Worker starting", "worker_id", w.id)

	for {
		select {
		case <-w.ctx.Done():
			w.log.Info("Worker shutting down", "worker_id", w.id)
			return nil
		default:
			if err := w.processNextGame(); err != nil {
				w.log.Error("Error processing game queue", "error", err, "worker_id", w.id)
				// Continue processing even on error
				w.sleep(time.Second)
			}
		}
	}
}

// Stop gracefully shuts down the worker
func (w *Worker) Stop() {
	w.log.Info("Worker stop requested", "worker_id", w.id)
	w.cancel()
}

func (w *Worker) sleep(d time.Duration) {
	select {
	case <-w.ctx.Done():
	case <-time.After(d):
	}
}

// processNextGame waits for a game with pending requests and drains it
func (w *Worker) processNextGame() error {
	gameID, ok, err := w.queue.NextGame(w.ctx, w.pollTimeout)
	if err != nil {
		if w.ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to wait for work: %w", err)
	}
	if !ok {
		// Timed out with nothing to do - this is normal
		return nil
	}

	locked, err := w.acquireGameLock(gameID)
	if err != nil {
		w.markReady(gameID)
		return fmt.Errorf("failed to acquire game lock: %w", err)
	}
	if !locked {
		// Another worker is draining this game; signal it again in case
		// that worker finishes before seeing the new request.
		w.log.Debug("Game already locked, re-queueing",
			"worker_id", w.id,
			"game_id", gameID.String(),
		)
		w.markReady(gameID)
		w.sleep(lockRetryDelay)
		return nil
	}

	defer w.releaseGameLock(gameID)
	return w.drain(gameID)
}

// drain applies the game's requests in order until its queue is empty
func (w *Worker) drain(gameID uuid.UUID) error {
	for {
		if w.ctx.Err() != nil {
			w.markReady(gameID)
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		err := w.processOne(ctx, gameID)
		cancel()
		if errors.Is(err, errDrained) {
			return nil
		}
		if err != nil {
			return err
		}
		w.extendGameLock(gameID)
	}
}

var errDrained = errors.New("queue drained")

func (w *Worker) processOne(ctx context.Context, gameID uuid.UUID) error {
	req, err := w.queue.Pop(ctx, gameID)
	if err != nil {
		if errors.Is(err, queue.ErrUnreadable) {
			w.log.Error("Dropped unreadable request", "error", err, "game_id", gameID.String())
			return nil
		}
		w.markReady(gameID)
		return err
	}
	if req == nil {
		return errDrained
	}

	start := time.Now()
	err = w.processor.Apply(ctx, req)

	var rejected *RejectedError
	switch {
	case err == nil:
		w.log.Info("Request applied",
			"worker_id", w.id,
			"request_id", req.RequestID,
			"type", req.Type,
			"game_id", gameID.String(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil

	case errors.As(err, &rejected):
		w.log.Warn("Request rejected",
			"worker_id", w.id,
			"request_id", req.RequestID,
			"type", req.Type,
			"game_id", gameID.String(),
			"error", rejected.Err,
		)
		if pubErr := w.publisher.PublishRecordRejected(ctx, gameID, req.RequestID, rejected.Err.Error()); pubErr != nil {
			w.log.Error("Failed to publish rejection", "error", pubErr)
		}
		return nil

	default:
		// Put it back so the next attempt sees the same order.
		if retErr := w.queue.Return(ctx, req); retErr != nil {
			w.log.Error("Failed to return request to queue",
				"error", retErr,
				"request_id", req.RequestID,
			)
		}
		return fmt.Errorf("failed to apply request %s: %w", req.RequestID, err)
	}
}

func (w *Worker) markReady(gameID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	if err := w.queue.MarkReady(ctx, gameID); err != nil {
		w.log.Error("Failed to mark game ready", "error", err, "game_id", gameID.String())
	}
}

func lockKey(gameID uuid.UUID) string {
	return fmt.Sprintf("game-lock:%s", gameID.String())
}

// acquireGameLock attempts to acquire a lock for a game
// Returns true if lock was acquired, false if already locked
func (w *Worker) acquireGameLock(gameID uuid.UUID) (bool, error) {
	return w.redisClient.SetNX(w.ctx, lockKey(gameID), w.id, lockTTL).Result()
}

func (w *Worker) extendGameLock(gameID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	if err := extendScript.Run(ctx, w.redisClient, []string{lockKey(gameID)}, w.id, lockTTL.Milliseconds()).Err(); err != nil {
		w.log.Error("Failed to extend game lock", "error", err, "game_id", gameID.String())
	}
}

// releaseGameLock releases the lock for a game
func (w *Worker) releaseGameLock(gameID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	if err := releaseScript.Run(ctx, w.redisClient, []string{lockKey(gameID)}, w.id).Err(); err != nil {
		w.log.Error("Failed to release game lock", "error", err, "game_id", gameID.String())
	}
}

// Pool runs several workers over one queue.
type Pool struct {
	workers []*Worker
	log     *slog.Logger
	wg      sync.WaitGroup
}

// NewPool builds n workers sharing the queue, processor and Redis client.
func NewPool(n int, ingestQueue *queue.IngestQueue, processor *Processor, redisClient *redis.Client, publisher RejectPublisher, log *slog.Logger) *Pool {
	p := &Pool{log: log}
	for i := 0; i < n; i++ {
		p.workers = append(p.workers, New(ingestQueue, processor, redisClient, publisher, log, ""))
	}
	return p
}

// Start launches every worker in its own goroutine.
func (p *Pool) Start() {
	for _, w := range p.workers {
		p.wg.Add(1)
		go func(w *Worker) {
			defer p.wg.Done()
			if err := w.Start(); err != nil {
				p.log.Error("Worker error", "error", err, "worker_id", w.id)
			}
		}(w)
	}
}

// Stop asks every worker to finish its current request and waits for them
// to exit.
func (p *Pool) Stop() {
	for _, w := range p.workers {
		w.Stop()
	}
	p.wg.Wait()
}
