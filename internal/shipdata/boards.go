package shipdata

import (
	"errors"
	"fmt"

	"github.com/samdwyer/shipyard/internal/board"
)

// CommandTile is the catalog tile every ship starts from.
const CommandTile = "command-blue"

// BoardDef defines a ship board outline loaded from JSON.
type BoardDef struct {
	ID      string           `json:"id"`      // Unique identifier (e.g., "level-2")
	Name    string           `json:"name"`    // Display name
	Layout  []string         `json:"layout"`  // Rows of 'x' (usable) and '.' (unusable)
	Command board.Coordinate `json:"command"` // Where the command cabin sits
}

// BoardsFile represents the structure of boards.json.
type BoardsFile struct {
	Boards []BoardDef `json:"boards"`
}

// LoadBoards loads board definitions from the embedded boards.json file.
func LoadBoards() ([]BoardDef, error) {
	file, err := loadEmbedded[BoardsFile]("boards.json")
	if err != nil {
		return nil, err
	}
	if len(file.Boards) == 0 {
		return nil, errors.New("no boards loaded from boards.json")
	}
	return file.Boards, nil
}

// FindBoard returns the board definition with the given ID, or nil.
func FindBoard(boards []BoardDef, id string) *BoardDef {
	for i := range boards {
		if boards[i].ID == id {
			return &boards[i]
		}
	}
	return nil
}

// Outline builds an empty board from the layout.
func (d *BoardDef) Outline() (*board.Graph, error) {
	g, err := board.NewFromLayout(d.Layout)
	if err != nil {
		return nil, fmt.Errorf("board %s: %w", d.ID, err)
	}
	return g, nil
}

// NewGraph builds the outline with the command cabin in place.
func (d *BoardDef) NewGraph(catalog *Catalog) (*board.Graph, error) {
	g, err := d.Outline()
	if err != nil {
		return nil, err
	}
	cabin, err := catalog.Build(CommandTile)
	if err != nil {
		return nil, err
	}
	if err := g.Place(d.Command, cabin); err != nil {
		return nil, fmt.Errorf("board %s: command cabin: %w", d.ID, err)
	}
	return g, nil
}
