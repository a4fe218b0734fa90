package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jwebster45206/ravenlog/pkg/entity"
	"github.com/jwebster45206/ravenlog/pkg/gamelog"
)

// ErrCatalogNotFound is returned when no catalog exists under a name.
var ErrCatalogNotFound = errors.New("catalog not found")

// Storage defines a unified interface for all storage operations
// This interface combines game log persistence (Redis) with catalog loading (filesystem)
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Game log operations (Redis-backed). Entries keep append order.
	AppendEntry(ctx context.Context, gameID uuid.UUID, entry gamelog.Entry) error
	LoadEntries(ctx context.Context, gameID uuid.UUID) ([]gamelog.Entry, error)
	DeleteLog(ctx context.Context, gameID uuid.UUID) error

	// Catalog operations (filesystem-backed)
	ListCatalogs(ctx context.Context) ([]string, error)
	LoadCatalog(ctx context.Context, name string) (*entity.Catalog, error)
}
