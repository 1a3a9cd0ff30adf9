package integrity

import (
	"github.com/samdwyer/shipyard/internal/board"
	"github.com/samdwyer/shipyard/internal/component"
)

// CrewOracle answers whether a placed tile currently carries a human.
// It is supplied by whatever tracks crew on the ship and is only read.
type CrewOracle interface {
	HasHumanOccupant(at board.Coordinate, tile *component.Tile) bool
}

// CrewFunc adapts a function to CrewOracle.
type CrewFunc func(at board.Coordinate, tile *component.Tile) bool

// HasHumanOccupant calls f.
func (f CrewFunc) HasHumanOccupant(at board.Coordinate, tile *component.Tile) bool {
	return f(at, tile)
}

// CabinCrew reports the crew a cabin was boarded with.
type CabinCrew struct{}

// HasHumanOccupant returns true for cabins with at least one human.
func (CabinCrew) HasHumanOccupant(_ board.Coordinate, tile *component.Tile) bool {
	return tile.Humans() > 0
}
