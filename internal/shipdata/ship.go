package shipdata

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/samdwyer/shipyard/internal/board"
)

// Placement puts one catalog tile on the board.
type Placement struct {
	Tile     string `yaml:"tile"`
	Row      int    `yaml:"row"`
	Col      int    `yaml:"col"`
	Rotation int    `yaml:"rotation"` // clockwise quarter turns
}

// ShipFile is a player's built ship as stored on disk. The command cabin
// is implied by the board and is not listed in Tiles; Command is only
// written, as false, once the cabin has been destroyed.
type ShipFile struct {
	Player  string      `yaml:"player"`
	Board   string      `yaml:"board"`
	Command *bool       `yaml:"command,omitempty"`
	Tiles   []Placement `yaml:"tiles"`
}

// HasCommand reports whether the board's command cabin is still aboard.
func (sf *ShipFile) HasCommand() bool {
	return sf.Command == nil || *sf.Command
}

// ReadShip decodes a ship file.
func ReadShip(r io.Reader) (*ShipFile, error) {
	var sf ShipFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&sf); err != nil {
		return nil, fmt.Errorf("failed to parse ship file: %w", err)
	}
	if sf.Player == "" {
		sf.Player = "player"
	}
	return &sf, nil
}

// LoadShip reads a ship file from disk.
func LoadShip(path string) (*ShipFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ship file: %w", err)
	}
	defer f.Close()
	return ReadShip(f)
}

// Write encodes the ship file as YAML.
func (sf *ShipFile) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(sf); err != nil {
		return err
	}
	return enc.Close()
}

// Assemble builds the ship's board. boardID is used when the file names no
// board of its own.
func (sf *ShipFile) Assemble(catalog *Catalog, boards []BoardDef, boardID string) (*board.Graph, error) {
	if sf.Board != "" {
		boardID = sf.Board
	}
	def := FindBoard(boards, boardID)
	if def == nil {
		return nil, fmt.Errorf("unknown board %q", boardID)
	}
	var g *board.Graph
	var err error
	if sf.HasCommand() {
		g, err = def.NewGraph(catalog)
	} else {
		g, err = def.Outline()
	}
	if err != nil {
		return nil, err
	}

	for i, p := range sf.Tiles {
		t, err := catalog.Build(p.Tile)
		if err != nil {
			return nil, fmt.Errorf("tiles[%d]: %w", i, err)
		}
		if err := t.Rotate(p.Rotation); err != nil {
			return nil, fmt.Errorf("tiles[%d]: %w", i, err)
		}
		at := board.Coordinate{Row: p.Row, Col: p.Col}
		if err := g.Place(at, t); err != nil {
			return nil, fmt.Errorf("tiles[%d] %s at %s: %w", i, p.Tile, at, err)
		}
	}
	return g, nil
}

// NewShipFile records g as a ship file on the given board. A command
// cabin on the board's command cell is implied and left out; without one
// the file says so.
func NewShipFile(player string, def *BoardDef, g *board.Graph) *ShipFile {
	sf := &ShipFile{Player: player, Board: def.ID}
	if t, ok := g.At(def.Command); !ok || !t.IsCommand() {
		sf.Command = new(bool)
	}
	for _, at := range g.Occupied() {
		t, _ := g.At(at)
		if at == def.Command && t.IsCommand() {
			continue
		}
		sf.Tiles = append(sf.Tiles, Placement{
			Tile:     t.ID,
			Row:      at.Row,
			Col:      at.Col,
			Rotation: t.Rotation(),
		})
	}
	return sf
}
