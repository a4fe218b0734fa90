package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jwebster45206/ravenlog/pkg/choice"
	"github.com/jwebster45206/ravenlog/pkg/entity"
	"github.com/jwebster45206/ravenlog/pkg/gamelog"
	"github.com/jwebster45206/ravenlog/pkg/queue"
	"github.com/jwebster45206/ravenlog/pkg/resolve"
	"github.com/jwebster45206/ravenlog/pkg/session"
)

// SessionSource hands out the live session of a game.
type SessionSource interface {
	Get(ctx context.Context, id uuid.UUID) (*session.Session, error)
}

// RejectedError marks a request whose content can never be applied.
// Retrying it would fail the same way.
type RejectedError struct {
	RequestID string
	Err       error
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("request %s rejected: %v", e.RequestID, e.Err)
}

func (e *RejectedError) Unwrap() error { return e.Err }

// Processor applies queued requests to game sessions.
type Processor struct {
	sessions SessionSource
	logger   *slog.Logger
}

func NewProcessor(sessions SessionSource, logger *slog.Logger) *Processor {
	return &Processor{sessions: sessions, logger: logger}
}

// Apply runs req against its game's session. Content errors come back as
// *RejectedError; anything else is worth retrying.
func (p *Processor) Apply(ctx context.Context, req *queue.Request) error {
	sess, err := p.sessions.Get(ctx, req.GameID)
	if err != nil {
		return fmt.Errorf("failed to open game %s: %w", req.GameID, err)
	}

	switch req.Type {
	case queue.RequestTypeRecord:
		_, err = sess.Ingest(ctx, req.Record)
	case queue.RequestTypeChoice:
		viewer := make(choice.Houses, len(req.Viewer))
		for i, h := range req.Viewer {
			viewer[i] = entity.HouseID(h)
		}
		err = sess.Choose(ctx, viewer, entity.HouseID(req.Target))
	default:
		err = &RejectedError{RequestID: req.RequestID, Err: fmt.Errorf("unknown request type: %s", req.Type)}
	}

	if err != nil && isContentError(err) {
		return &RejectedError{RequestID: req.RequestID, Err: err}
	}
	return err
}

func isContentError(err error) bool {
	for _, target := range []error{
		gamelog.ErrMalformed,
		gamelog.ErrUnknownKind,
		resolve.ErrUnresolved,
		entity.ErrNotFound,
		choice.ErrNotInControl,
		choice.ErrInvalidTarget,
		choice.ErrClosed,
		session.ErrNoPendingChoice,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
