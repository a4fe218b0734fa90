package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jwebster45206/ravenlog/pkg/entity"
	pkgstorage "github.com/jwebster45206/ravenlog/pkg/storage"
)

// Catalog operations (filesystem-backed). A catalog named "base" lives in
// <dataDir>/catalogs/base.yaml.

func (r *RedisStorage) ListCatalogs(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(r.dataDir, "catalogs"))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read catalogs directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".yaml" {
			names = append(names, strings.TrimSuffix(entry.Name(), ".yaml"))
		}
	}
	sort.Strings(names)
	return names, nil
}

func (r *RedisStorage) LoadCatalog(ctx context.Context, name string) (*entity.Catalog, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return nil, fmt.Errorf("invalid catalog name %q", name)
	}
	path := filepath.Join(r.dataDir, "catalogs", name+".yaml")
	r.logger.Debug("Loading catalog", "name", name, "path", path)

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", pkgstorage.ErrCatalogNotFound, name)
		}
		return nil, fmt.Errorf("failed to stat catalog file: %w", err)
	}

	c, err := entity.LoadCatalog(path)
	if err != nil {
		r.logger.Error("Failed to load catalog", "path", path, "error", err)
		return nil, err
	}
	return c, nil
}
