package game

import (
	"testing"

	"go.uber.org/goleak"

	"github.com/samdwyer/shipyard/internal/board"
	"github.com/samdwyer/shipyard/internal/component"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const (
	none = component.ConnectorNone
	one  = component.ConnectorSingle
	two  = component.ConnectorDouble
	uni  = component.ConnectorUniversal
)

func at(r, c int) board.Coordinate {
	return board.Coordinate{Row: r, Col: c}
}

// sides lists connectors north, east, south, west.
func sides(n, e, s, w component.Connector) [4]component.Connector {
	return [4]component.Connector{n, e, s, w}
}

func cabin(id string, humans int, s [4]component.Connector) *component.Tile {
	return component.New(id, s, component.Cabin{Humans: humans})
}

func hull(id string, s [4]component.Connector) *component.Tile {
	return component.New(id, s, component.Structural{})
}

// chain is a cabin welded to two hull segments in a row.
func chain(t *testing.T) *board.Graph {
	t.Helper()
	g := board.New(1, 3)
	mustPlace(t, g, at(0, 0), cabin("cab", 2, sides(none, uni, none, none)))
	mustPlace(t, g, at(0, 1), hull("mid", sides(none, uni, none, uni)))
	mustPlace(t, g, at(0, 2), hull("end", sides(none, none, none, uni)))
	return g
}

// split has two crewed halves joined by an illegal weld between (0, 1)
// and (0, 2). Validating it offers {(0, 0) (0, 1)} and {(0, 2)}.
func split(t *testing.T) *board.Graph {
	t.Helper()
	g := board.New(1, 3)
	mustPlace(t, g, at(0, 1), cabin("A", 1, sides(none, one, none, uni)))
	mustPlace(t, g, at(0, 2), cabin("B", 1, sides(none, none, none, two)))
	mustPlace(t, g, at(0, 0), hull("C", sides(none, uni, none, none)))
	return g
}

func mustPlace(t *testing.T, g *board.Graph, c board.Coordinate, tile *component.Tile) {
	t.Helper()
	if err := g.Place(c, tile); err != nil {
		t.Fatalf("Place(%s): %v", c, err)
	}
}
