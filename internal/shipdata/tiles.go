package shipdata

import (
	"fmt"

	"github.com/samdwyer/shipyard/internal/component"
)

// TileDef defines a catalog tile loaded from JSON. Sides are listed
// clockwise from north in base orientation.
type TileDef struct {
	ID       string    `json:"id"`                // Unique identifier (e.g., "cabin-1")
	Category string    `json:"category"`          // One of component.Category's names
	Sides    [4]string `json:"sides"`             // Connector names, N E S W
	Humans   int       `json:"humans,omitempty"`  // Cabin crew at boarding
	Aliens   int       `json:"aliens,omitempty"`  // Cabin alien capacity
	Command  bool      `json:"command,omitempty"` // True for the command cabin
	Slots    int       `json:"slots,omitempty"`   // Cargo slots
	Special  bool      `json:"special,omitempty"` // Cargo accepts red goods
	Charges  int       `json:"charges,omitempty"` // Battery charges
	Double   bool      `json:"double,omitempty"`  // Double cannon or engine
	Covers   []string  `json:"covers,omitempty"`  // Shield directions
	Species  string    `json:"species,omitempty"` // Life support species
	Color    string    `json:"color"`             // Hex color for rendering
}

// TilesFile represents the structure of tiles.json.
type TilesFile struct {
	Tiles []TileDef `json:"tiles"`
}

// LoadTiles loads tile definitions from the embedded tiles.json file.
func LoadTiles() ([]TileDef, error) {
	file, err := loadEmbedded[TilesFile]("tiles.json")
	if err != nil {
		return nil, err
	}
	return file.Tiles, nil
}

// Build creates a fresh, unplaced tile from the definition.
func (d *TileDef) Build() (*component.Tile, error) {
	var sides [4]component.Connector
	for i, name := range d.Sides {
		c, ok := component.ParseConnector(name)
		if !ok {
			return nil, fmt.Errorf("tile %s: unknown connector %q", d.ID, name)
		}
		sides[i] = c
	}

	payload, err := d.payload()
	if err != nil {
		return nil, err
	}

	t := component.New(d.ID, sides, payload)
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("tile %s: %w", d.ID, err)
	}
	return t, nil
}

func (d *TileDef) payload() (component.Payload, error) {
	switch d.Category {
	case "structural":
		return component.Structural{}, nil
	case "cabin":
		return component.Cabin{Humans: d.Humans, Aliens: d.Aliens, Command: d.Command}, nil
	case "cargo":
		return component.Cargo{Slots: d.Slots, Special: d.Special}, nil
	case "battery":
		return component.Battery{Charges: d.Charges}, nil
	case "cannon":
		return component.Cannon{Double: d.Double}, nil
	case "engine":
		return component.Engine{Double: d.Double}, nil
	case "shield":
		if len(d.Covers) != 2 {
			return nil, fmt.Errorf("tile %s: shield covers %d directions, want 2", d.ID, len(d.Covers))
		}
		var covers [2]component.Direction
		for i, name := range d.Covers {
			dir, ok := component.ParseDirection(name)
			if !ok {
				return nil, fmt.Errorf("tile %s: unknown direction %q", d.ID, name)
			}
			covers[i] = dir
		}
		return component.Shield{Covers: covers}, nil
	case "life_support":
		return component.LifeSupport{Species: d.Species}, nil
	default:
		return nil, fmt.Errorf("tile %s: unknown category %q", d.ID, d.Category)
	}
}
