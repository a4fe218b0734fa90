package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/jwebster45206/ravenlog/pkg/entity"
	"github.com/jwebster45206/ravenlog/pkg/storage"
)

// Manager keeps the open sessions of a server. Every game uses the catalog
// named at construction; it is loaded once, on first use.
type Manager struct {
	store       storage.Storage
	catalogName string
	opts        []Option

	mu       sync.Mutex
	catalog  *entity.Catalog
	sessions map[uuid.UUID]*Session
}

func NewManager(store storage.Storage, catalogName string, opts ...Option) *Manager {
	return &Manager{
		store:       store,
		catalogName: catalogName,
		opts:        opts,
		sessions:    make(map[uuid.UUID]*Session),
	}
}

// Create starts a new, empty game.
func (m *Manager) Create(ctx context.Context) (*Session, error) {
	return m.Get(ctx, uuid.New())
}

// Get returns the session of a game, opening it from storage if needed. A
// game id with nothing stored yields an empty log.
func (m *Manager) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	if m.catalog == nil {
		c, err := m.store.LoadCatalog(ctx, m.catalogName)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog %q: %w", m.catalogName, err)
		}
		m.catalog = c
	}

	s, err := Open(ctx, id, m.catalog, m.store, m.opts...)
	if err != nil {
		return nil, err
	}
	m.sessions[id] = s
	return s, nil
}

// Delete removes a game's stored log and its cached session.
func (m *Manager) Delete(ctx context.Context, id uuid.UUID) error {
	if err := m.store.DeleteLog(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game %s: %w", id, err)
	}
	m.Forget(id)
	return nil
}

// Forget drops a cached session so the next Get reloads it from storage.
func (m *Manager) Forget(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}
