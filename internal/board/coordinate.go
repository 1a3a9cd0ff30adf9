package board

import (
	"fmt"

	"github.com/samdwyer/shipyard/internal/component"
)

// Coordinate is a (row, column) cell on a ship board.
type Coordinate struct {
	Row int `yaml:"row" json:"row"`
	Col int `yaml:"col" json:"col"`
}

// String returns the coordinate as "(r, c)".
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Col)
}

// Step returns the neighboring coordinate in the given direction.
func (c Coordinate) Step(d component.Direction) Coordinate {
	dr, dc := d.Delta()
	return Coordinate{Row: c.Row + dr, Col: c.Col + dc}
}

// Less orders coordinates row-major.
func (c Coordinate) Less(other Coordinate) bool {
	if c.Row != other.Row {
		return c.Row < other.Row
	}
	return c.Col < other.Col
}

// NeighborDirection returns the direction from a to b if they are grid
// neighbors.
func NeighborDirection(a, b Coordinate) (component.Direction, bool) {
	for _, d := range component.Directions {
		if a.Step(d) == b {
			return d, true
		}
	}
	return component.North, false
}
