package entity_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jwebster45206/ravenlog/pkg/entity"
	"github.com/jwebster45206/ravenlog/pkg/entity/entitytest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCatalog(t *testing.T) {
	c := entitytest.Catalog(t)

	assert.Equal(t, "test-base", c.Name)
	assert.Equal(t, 6, c.Houses.Len())
	assert.Equal(t, 4, c.UnitTypes.Len())

	stark, err := c.Houses.Get("stark")
	require.NoError(t, err)
	assert.Equal(t, "Stark", stark.Name)
	assert.Equal(t, 3, stark.HouseCards.Len())

	eddard, err := c.HouseCard("stark", "eddard-stark")
	require.NoError(t, err)
	assert.Equal(t, 4, eddard.CombatStrength)
	assert.Equal(t, 2, eddard.SwordIcons)

	order, err := c.Orders.Get(1)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderTypeID("march-plus-one"), order.Type.ID)
	assert.True(t, order.Type.Star)

	card, err := c.WildlingCards.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Silence at the Wall", card.Type.Name)

	sea, err := c.Regions.Get("bay-of-ice")
	require.NoError(t, err)
	assert.Equal(t, entity.RegionSea, sea.Type)
}

func TestCatalog_HouseCardScopedToHouse(t *testing.T) {
	c := entitytest.Catalog(t)

	// Eddard belongs to Stark, not Lannister.
	_, err := c.HouseCard("lannister", "eddard-stark")
	assert.ErrorIs(t, err, entity.ErrNotFound)

	_, err = c.HouseCard("tully", "eddard-stark")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestParseCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "missing name",
			yaml:    "houses: [{id: stark, name: Stark}]",
			wantErr: "catalog name is required",
		},
		{
			name:    "no houses",
			yaml:    "name: empty",
			wantErr: "at least one house is required",
		},
		{
			name:    "duplicate house",
			yaml:    "name: dup\nhouses: [{id: stark, name: Stark}, {id: stark, name: Stark}]",
			wantErr: "duplicate house id stark",
		},
		{
			name:    "house without name",
			yaml:    "name: x\nhouses: [{id: stark}]",
			wantErr: "house stark name is required",
		},
		{
			name:    "order with unknown type",
			yaml:    "name: x\nhouses: [{id: stark, name: Stark}]\norders: [{id: 0, type: march}]",
			wantErr: "order 0",
		},
		{
			name:    "unknown key",
			yaml:    "name: x\nhouses: [{id: stark, name: Stark, colour: grey}]",
			wantErr: "parsing catalog",
		},
		{
			name:    "bad region type",
			yaml:    "name: x\nhouses: [{id: stark, name: Stark}]\nregions: [{id: moat-cailin, name: Moat Cailin, type: swamp}]",
			wantErr: "unknown type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := entity.ParseCatalog([]byte(tt.yaml))
			if err == nil {
				t.Fatalf("Expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "base.yaml")
	require.NoError(t, os.WriteFile(path, []byte(entitytest.CatalogYAML), 0o644))

	c, err := entity.LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, 11, c.Regions.Len())

	_, err = entity.LoadCatalog(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadCatalog_Shipped(t *testing.T) {
	c, err := entity.LoadCatalog(filepath.Join("..", "..", "data", "catalogs", "base.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "base", c.Name)
	assert.Equal(t, 6, c.Houses.Len())
	for _, h := range c.Houses.Values() {
		assert.Equal(t, 7, h.HouseCards.Len(), "house %s", h.ID)
	}
	assert.Equal(t, 57, c.Regions.Len())
	assert.Equal(t, 90, c.Orders.Len())
	assert.Equal(t, 17, c.WesterosCardTypes.Len())
	assert.Equal(t, 9, c.WildlingCards.Len())

	port, err := c.Regions.Get("pyke-port")
	require.NoError(t, err)
	assert.Equal(t, entity.RegionPort, port.Type)
}
