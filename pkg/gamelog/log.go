package gamelog

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Log is the append-only record of one game. Appends are serialized; readers
// receive copies, so a snapshot never changes after it is taken.
type Log struct {
	mu      sync.RWMutex
	entries []Entry
	now     func() time.Time
	logger  *slog.Logger
}

// Option configures a Log.
type Option func(*Log)

// WithClock sets the time source used to stamp appended entries.
func WithClock(now func() time.Time) Option {
	return func(l *Log) { l.now = now }
}

// WithLogger sets the logger used for ingestion warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Log) { l.logger = logger }
}

// NewLog creates an empty log.
func NewLog(opts ...Option) *Log {
	l := &Log{
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Append validates e, stamps it and adds a copy to the end of the log.
// Changing e afterwards does not change the entry.
func (l *Log) Append(e Event) (Entry, error) {
	if err := Check(e); err != nil {
		return Entry{}, err
	}
	e, err := Clone(e)
	if err != nil {
		return Entry{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entry := Entry{Time: l.now(), Event: e}
	l.entries = append(l.entries, entry)
	return entry, nil
}

// AppendEntry restores a previously stored entry, keeping its timestamp. A
// placeholder for an unknown kind keeps its slot so later indexes match the
// stored log.
func (l *Log) AppendEntry(entry Entry) error {
	if entry.Event != nil || entry.Unknown == nil {
		if err := Check(entry.Event); err != nil {
			return err
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, entry)
	return nil
}

// Ingest decodes one wire record and appends it. Nothing is appended on error.
func (l *Log) Ingest(data []byte) (Entry, error) {
	e, err := Decode(data)
	if err != nil {
		var unknown *UnknownKindError
		if errors.As(err, &unknown) {
			// A producer newer than this build; keep going but make it visible.
			l.logger.Warn("Skipping log record of unknown kind", "kind", unknown.Kind)
		}
		return Entry{}, err
	}
	return l.Append(e)
}

// Entries returns a copy of the log in append order. The events are shared
// with the log and must be treated as read-only.
func (l *Log) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Check reports whether e may be appended to a log: it must be non-nil, of a
// known kind and pass its own Validate.
func Check(e Event) error {
	if e == nil {
		return &MalformedError{Err: errors.New("nil event")}
	}
	if !e.Kind().IsKnown() {
		return &UnknownKindError{Kind: e.Kind()}
	}
	if err := e.Validate(); err != nil {
		return &MalformedError{Kind: e.Kind(), Err: fmt.Errorf("invalid payload: %w", err)}
	}
	return nil
}
