// Package board holds the grid of tiles that makes up one player's ship.
package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samdwyer/shipyard/internal/component"
)

const (
	// Default board dimensions (level 2 ship board)
	DefaultRows = 5
	DefaultCols = 7
)

var (
	ErrOutOfBounds = errors.New("board: coordinate out of bounds")
	ErrInvalidCell = errors.New("board: cell is not part of the ship outline")
	ErrOccupied    = errors.New("board: cell already occupied")
	ErrEmpty       = errors.New("board: cell is empty")
	ErrBadLayout   = errors.New("board: malformed layout")
)

// Graph maps coordinates to placed tiles. Adjacency is not stored; it is
// derived from grid positions on demand.
type Graph struct {
	Rows  int
	Cols  int
	mask  [][]bool // nil means every in-bounds cell is usable
	tiles map[Coordinate]*component.Tile
	order []Coordinate // placement order
}

// New creates an empty rectangular board where every cell is usable.
func New(rows, cols int) *Graph {
	return &Graph{
		Rows:  rows,
		Cols:  cols,
		tiles: make(map[Coordinate]*component.Tile),
		order: make([]Coordinate, 0),
	}
}

// NewFromLayout creates an empty board shaped by a layout. Each string is a
// row; 'x' marks a usable cell and '.' an unusable one.
func NewFromLayout(layout []string) (*Graph, error) {
	if len(layout) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrBadLayout)
	}
	cols := len(layout[0])
	mask := make([][]bool, len(layout))
	for r, row := range layout {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrBadLayout, r, len(row), cols)
		}
		mask[r] = make([]bool, cols)
		for c, ch := range row {
			switch ch {
			case 'x', 'X':
				mask[r][c] = true
			case '.':
			default:
				return nil, fmt.Errorf("%w: unexpected %q at row %d", ErrBadLayout, ch, r)
			}
		}
	}

	g := New(len(layout), cols)
	g.mask = mask
	return g, nil
}

// InBounds returns true if the coordinate lies inside the board rectangle.
func (g *Graph) InBounds(c Coordinate) bool {
	return c.Row >= 0 && c.Row < g.Rows && c.Col >= 0 && c.Col < g.Cols
}

// IsUsable returns true if a tile may be placed at the coordinate.
func (g *Graph) IsUsable(c Coordinate) bool {
	if !g.InBounds(c) {
		return false
	}
	return g.mask == nil || g.mask[c.Row][c.Col]
}

// Place fixes a tile at the coordinate. The tile's rotation is frozen.
func (g *Graph) Place(c Coordinate, t *component.Tile) error {
	switch {
	case !g.InBounds(c):
		return fmt.Errorf("place %s at %s: %w", t.ID, c, ErrOutOfBounds)
	case !g.IsUsable(c):
		return fmt.Errorf("place %s at %s: %w", t.ID, c, ErrInvalidCell)
	}
	if _, ok := g.tiles[c]; ok {
		return fmt.Errorf("place %s at %s: %w", t.ID, c, ErrOccupied)
	}

	t.Fix()
	g.tiles[c] = t
	g.order = append(g.order, c)
	return nil
}

// Remove takes the tile off the coordinate. Neighbors are left alone;
// whatever falls off as a result is for the integrity check to decide.
func (g *Graph) Remove(c Coordinate) (*component.Tile, error) {
	t, ok := g.tiles[c]
	if !ok {
		return nil, fmt.Errorf("remove %s: %w", c, ErrEmpty)
	}
	delete(g.tiles, c)
	for i, o := range g.order {
		if o == c {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	return t, nil
}

// At returns the tile at the coordinate.
func (g *Graph) At(c Coordinate) (*component.Tile, bool) {
	t, ok := g.tiles[c]
	return t, ok
}

// Occupied returns every occupied coordinate in placement order.
func (g *Graph) Occupied() []Coordinate {
	out := make([]Coordinate, len(g.order))
	copy(out, g.order)
	return out
}

// Len returns the number of placed tiles.
func (g *Graph) Len() int {
	return len(g.tiles)
}

// NeighborDirection returns the direction from a to b when both are
// occupied grid neighbors.
func (g *Graph) NeighborDirection(a, b Coordinate) (component.Direction, bool) {
	if _, ok := g.tiles[a]; !ok {
		return component.North, false
	}
	if _, ok := g.tiles[b]; !ok {
		return component.North, false
	}
	return NeighborDirection(a, b)
}

// Neighbor is an occupied cell next to another one.
type Neighbor struct {
	At        Coordinate
	Direction component.Direction // from the origin cell to At
}

// Neighbors returns the occupied cells adjacent to c, clockwise from north.
func (g *Graph) Neighbors(c Coordinate) []Neighbor {
	out := make([]Neighbor, 0, 4)
	for _, d := range component.Directions {
		n := c.Step(d)
		if _, ok := g.tiles[n]; ok {
			out = append(out, Neighbor{At: n, Direction: d})
		}
	}
	return out
}

// Edge returns the combined status of the shared edge between two
// occupied neighbors.
func (g *Graph) Edge(a, b Coordinate) (component.Status, bool) {
	d, ok := g.NeighborDirection(a, b)
	if !ok {
		return component.StatusSeparate, false
	}
	ta, tb := g.tiles[a], g.tiles[b]
	return component.EdgeStatus(ta.Side(d), tb.Side(d.Opposite())), true
}

// Snapshot returns a copy that later mutations of g do not affect. Placed
// tiles are immutable, so they are shared.
func (g *Graph) Snapshot() *Graph {
	s := &Graph{
		Rows:  g.Rows,
		Cols:  g.Cols,
		mask:  g.mask,
		tiles: make(map[Coordinate]*component.Tile, len(g.tiles)),
		order: g.Occupied(),
	}
	for c, t := range g.tiles {
		s.tiles[c] = t
	}
	return s
}

// String draws the board one character per cell.
func (g *Graph) String() string {
	var sb strings.Builder
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			coord := Coordinate{Row: r, Col: c}
			switch t, ok := g.tiles[coord]; {
			case ok:
				sb.WriteRune(t.Glyph())
			case g.IsUsable(coord):
				sb.WriteByte('.')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
