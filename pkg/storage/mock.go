package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/jwebster45206/ravenlog/pkg/entity"
	"github.com/jwebster45206/ravenlog/pkg/gamelog"
)

// MockStorage is a mock implementation of Storage for testing
type MockStorage struct {
	mu        sync.RWMutex
	logs      map[uuid.UUID][]gamelog.Entry
	catalogs  map[string]*entity.Catalog
	pingError error
	appendErr error
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage
func NewMockStorage() *MockStorage {
	return &MockStorage{
		logs:     make(map[uuid.UUID][]gamelog.Entry),
		catalogs: make(map[string]*entity.Catalog),
	}
}

// SetPingSuccess configures the mock to succeed on ping
func (m *MockStorage) SetPingSuccess() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = nil
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// SetAppendError makes every following AppendEntry fail with err (nil clears it)
func (m *MockStorage) SetAppendError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appendErr = err
}

// Ping mocks storage ping
func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

// Close mocks storage close
func (m *MockStorage) Close() error {
	return nil
}

// AppendEntry mocks appending an entry to a game log. Like the Redis client
// it fails once ctx is done.
func (m *MockStorage) AppendEntry(ctx context.Context, gameID uuid.UUID, entry gamelog.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if entry.Event == nil {
		return fmt.Errorf("entry has no event")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.appendErr != nil {
		return m.appendErr
	}
	m.logs[gameID] = append(m.logs[gameID], entry)
	return nil
}

// LoadEntries mocks loading a game log; an unknown game has an empty log
func (m *MockStorage) LoadEntries(ctx context.Context, gameID uuid.UUID) ([]gamelog.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]gamelog.Entry, len(m.logs[gameID]))
	copy(out, m.logs[gameID])
	return out, nil
}

// CountEntries returns the number of stored entries of a game log (for testing)
func (m *MockStorage) CountEntries(ctx context.Context, gameID uuid.UUID) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.logs[gameID]), nil
}

// DeleteLog mocks deleting a game log
func (m *MockStorage) DeleteLog(ctx context.Context, gameID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.logs, gameID)
	return nil
}

// ListCatalogs mocks listing catalog names
func (m *MockStorage) ListCatalogs(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.catalogs))
	for name := range m.catalogs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// LoadCatalog mocks loading a catalog by name
func (m *MockStorage) LoadCatalog(ctx context.Context, name string) (*entity.Catalog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.catalogs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCatalogNotFound, name)
	}
	return c, nil
}

// AddCatalog adds a catalog to the mock storage (for testing)
func (m *MockStorage) AddCatalog(name string, c *entity.Catalog) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.catalogs[name] = c
}
