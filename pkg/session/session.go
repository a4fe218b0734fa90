// Package session ties one game's log to its catalog, its store and its
// live-update publisher.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/ravenlog/pkg/choice"
	"github.com/jwebster45206/ravenlog/pkg/entity"
	"github.com/jwebster45206/ravenlog/pkg/gamelog"
	"github.com/jwebster45206/ravenlog/pkg/narrate"
	"github.com/jwebster45206/ravenlog/pkg/resolve"
	"github.com/jwebster45206/ravenlog/pkg/storage"
)

// ErrNoPendingChoice is returned when a game has no open decision.
var ErrNoPendingChoice = errors.New("no pending choice")

// claimTimeout bounds the store write made on behalf of a committed choice.
const claimTimeout = 5 * time.Second

// Publisher receives notifications about a game. Failures are logged and
// never undo a stored entry.
type Publisher interface {
	PublishLogAppended(ctx context.Context, gameID uuid.UUID, index int, entry gamelog.Entry, text string) error
	PublishChoiceCommitted(ctx context.Context, gameID uuid.UUID, house, vassal entity.HouseID) error
}

// Session is one game. Appends are serialized so the stored order and the
// in-memory order always agree.
type Session struct {
	ID uuid.UUID

	mu        sync.Mutex
	catalog   *entity.Catalog
	log       *gamelog.Log
	resolver  *resolve.Resolver
	store     storage.Storage
	publisher Publisher
	logger    *slog.Logger
	now       func() time.Time
	claim     *choice.VassalClaim
}

// Option configures a Session.
type Option func(*Session)

func WithPublisher(p Publisher) Option {
	return func(s *Session) { s.publisher = p }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// Open loads a game's stored log and replays it into memory. A game with no
// stored entries starts empty.
func Open(ctx context.Context, id uuid.UUID, catalog *entity.Catalog, store storage.Storage, opts ...Option) (*Session, error) {
	if catalog == nil {
		return nil, fmt.Errorf("session %s: nil catalog", id)
	}
	s := &Session{
		ID:       id,
		catalog:  catalog,
		resolver: resolve.New(catalog),
		store:    store,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = gamelog.NewLog(gamelog.WithClock(s.now), gamelog.WithLogger(s.logger))

	entries, err := store.LoadEntries(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load game log: %w", err)
	}
	for i, entry := range entries {
		if err := s.log.AppendEntry(entry); err != nil {
			return nil, fmt.Errorf("stored entry %d: %w", i, err)
		}
	}
	s.logger.Debug("Session opened", "game_id", id, "entries", len(entries))
	return s, nil
}

func (s *Session) Catalog() *entity.Catalog   { return s.catalog }
func (s *Session) Resolver() *resolve.Resolver { return s.resolver }

// Ingest decodes one wire record and appends it.
func (s *Session) Ingest(ctx context.Context, data []byte) (gamelog.Entry, error) {
	e, err := gamelog.Decode(data)
	if err != nil {
		var unknown *gamelog.UnknownKindError
		if errors.As(err, &unknown) {
			s.logger.Warn("Skipping log record of unknown kind", "game_id", s.ID, "kind", unknown.Kind)
		}
		return gamelog.Entry{}, err
	}
	return s.Append(ctx, e)
}

// Append validates and resolves e, stores it, then adds it to the in-memory
// log. A record that cannot be resolved against the catalog is rejected
// before anything is stored. The log keeps its own copy of e.
func (s *Session) Append(ctx context.Context, e gamelog.Event) (gamelog.Entry, error) {
	if err := gamelog.Check(e); err != nil {
		return gamelog.Entry{}, err
	}
	e, err := gamelog.Clone(e)
	if err != nil {
		return gamelog.Entry{}, err
	}
	view, err := s.resolver.Resolve(e)
	if err != nil {
		return gamelog.Entry{}, err
	}

	s.mu.Lock()
	entry := gamelog.Entry{Time: s.now(), Event: e}
	if err := s.store.AppendEntry(ctx, s.ID, entry); err != nil {
		s.mu.Unlock()
		return gamelog.Entry{}, fmt.Errorf("failed to store log entry: %w", err)
	}
	if err := s.log.AppendEntry(entry); err != nil {
		s.mu.Unlock()
		return gamelog.Entry{}, err
	}
	index := s.log.Len() - 1
	s.mu.Unlock()

	s.logger.Debug("Log entry appended", "game_id", s.ID, "kind", e.Kind(), "index", index)
	if s.publisher != nil {
		if err := s.publisher.PublishLogAppended(ctx, s.ID, index, entry, narrate.Text(view)); err != nil {
			s.logger.Warn("Failed to publish log entry", "game_id", s.ID, "error", err)
		}
	}
	return entry, nil
}

// Entries returns a snapshot of the log in append order. Its events are
// shared with the log and must not be modified.
func (s *Session) Entries() []gamelog.Entry {
	return s.log.Entries()
}

// Resolved resolves a snapshot of the log; entries that fail carry their
// error and the rest still resolve.
func (s *Session) Resolved() []resolve.ResolvedEntry {
	return s.resolver.ResolveAll(s.log.Entries())
}

// OpenVassalClaim starts the vassal decision for this turn, replacing any
// earlier one. Each committed claim is appended to the log as vassal-claimed.
func (s *Session) OpenVassalClaim(claimants, vassals []entity.HouseID) (*choice.VassalClaim, error) {
	c, err := s.catalog.Houses.GetAll(claimants)
	if err != nil {
		return nil, fmt.Errorf("claimants: %w", err)
	}
	v, err := s.catalog.Houses.GetAll(vassals)
	if err != nil {
		return nil, fmt.Errorf("vassals: %w", err)
	}

	claim, err := choice.NewVassalClaim(c, v, choice.OnClaim(s.recordClaim))
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.claim = claim
	s.mu.Unlock()
	s.logger.Info("Vassal claim opened", "game_id", s.ID, "claimants", claimants, "vassals", vassals)
	return claim, nil
}

// Choice returns the pending decision, or nil.
func (s *Session) Choice() *choice.VassalClaim {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.claim
}

// Choose commits viewer's pick of target for the pending decision. The claim
// is appended under ctx, bounded by claimTimeout.
func (s *Session) Choose(ctx context.Context, viewer choice.Viewer, target entity.HouseID) error {
	claim := s.Choice()
	if claim == nil {
		return ErrNoPendingChoice
	}
	house, err := s.catalog.Houses.Get(target)
	if err != nil {
		return fmt.Errorf("%w: %v", choice.ErrInvalidTarget, err)
	}
	return claim.Choose(ctx, viewer, house)
}

func (s *Session) recordClaim(ctx context.Context, c choice.Claim) error {
	ctx, cancel := context.WithTimeout(ctx, claimTimeout)
	defer cancel()

	if _, err := s.Append(ctx, &gamelog.VassalClaimed{House: c.House.ID, Vassal: c.Vassal.ID}); err != nil {
		return err
	}
	if s.publisher != nil {
		if err := s.publisher.PublishChoiceCommitted(ctx, s.ID, c.House.ID, c.Vassal.ID); err != nil {
			s.logger.Warn("Failed to publish choice", "game_id", s.ID, "error", err)
		}
	}
	return nil
}
