package shipdata

import (
	"errors"
	"fmt"

	"github.com/samdwyer/shipyard/internal/component"
)

// ErrUnknownTile is returned when a ship file names a tile the catalog
// does not have.
var ErrUnknownTile = errors.New("shipdata: unknown tile")

// Catalog holds loaded tile definitions and builds tiles from them.
type Catalog struct {
	tiles map[string]*TileDef
	all   []TileDef
}

// NewCatalog creates a catalog from tile definitions. Every definition is
// built once so a broken catalog fails here rather than mid-game.
func NewCatalog(tiles []TileDef) (*Catalog, error) {
	c := &Catalog{
		tiles: make(map[string]*TileDef, len(tiles)),
		all:   tiles,
	}
	for i := range tiles {
		def := &tiles[i]
		if _, dup := c.tiles[def.ID]; dup {
			return nil, fmt.Errorf("duplicate tile id %q", def.ID)
		}
		if _, err := def.Build(); err != nil {
			return nil, err
		}
		if _, err := ParseHexColor(def.Color); err != nil {
			return nil, fmt.Errorf("tile %s: %w", def.ID, err)
		}
		c.tiles[def.ID] = def
	}
	return c, nil
}

// LoadCatalog loads and creates a catalog from the embedded tiles.json.
func LoadCatalog() (*Catalog, error) {
	tiles, err := LoadTiles()
	if err != nil {
		return nil, err
	}
	if len(tiles) == 0 {
		return nil, errors.New("no tiles loaded from tiles.json")
	}
	return NewCatalog(tiles)
}

// GetByID returns the tile definition with the given ID, or nil if not found.
func (c *Catalog) GetByID(id string) *TileDef {
	return c.tiles[id]
}

// Build creates a new tile from the definition with the given ID.
func (c *Catalog) Build(id string) (*component.Tile, error) {
	def := c.tiles[id]
	if def == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTile, id)
	}
	return def.Build()
}

// All returns all tile definitions.
func (c *Catalog) All() []TileDef {
	return c.all
}

// Count returns the number of tiles in the catalog.
func (c *Catalog) Count() int {
	return len(c.all)
}
