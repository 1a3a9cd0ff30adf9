package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/shipyard/internal/board"
	"github.com/samdwyer/shipyard/internal/component"
)

// Each board cell is drawn as a 3x3 block with one column of spacing.
const (
	cellWidth  = 4
	cellHeight = 3
	originX    = 2
	originY    = 1
)

// View is everything one frame shows.
type View struct {
	Board  *board.Graph
	Cursor board.Coordinate
	// Highlight marks the fragment currently offered to the player.
	Highlight []board.Coordinate
	// Doomed marks tiles that will be removed.
	Doomed []board.Coordinate
	// Color picks a tile's foreground; nil uses the terminal default.
	Color  func(*component.Tile) tcell.Color
	Status []string
}

// Renderer handles drawing the ship to the screen.
type Renderer struct {
	canvas Canvas
}

// NewRenderer creates a new renderer for the given canvas.
func NewRenderer(canvas Canvas) *Renderer {
	return &Renderer{canvas: canvas}
}

// Render draws the board, overlays and status lines.
func (r *Renderer) Render(v View) {
	r.canvas.Clear()

	highlight := toSet(v.Highlight)
	doomed := toSet(v.Doomed)

	g := v.Board
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			at := board.Coordinate{Row: row, Col: col}
			if !g.IsUsable(at) {
				continue
			}
			style := tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
			tile, ok := g.At(at)
			if ok {
				style = tcell.StyleDefault
				if v.Color != nil {
					style = style.Foreground(v.Color(tile))
				}
			}
			switch {
			case doomed[at]:
				style = style.Background(tcell.ColorDarkRed)
			case highlight[at]:
				style = style.Background(tcell.ColorNavy)
			}
			if at == v.Cursor {
				style = style.Reverse(true)
			}
			r.drawCell(at, tile, style)
		}
	}

	y := originY + g.Rows*cellHeight + 1
	for i, line := range v.Status {
		r.RenderMessage(line, y+i)
	}

	r.canvas.Show()
}

// drawCell draws one board cell. An empty usable cell shows a dot.
func (r *Renderer) drawCell(at board.Coordinate, tile *component.Tile, style tcell.Style) {
	block := CellBlock(tile)
	x0, y0 := CellOrigin(at)
	for dy := range block {
		for dx := range block[dy] {
			r.canvas.SetContent(x0+dx, y0+dy, block[dy][dx], style)
		}
	}
}

// RenderMessage displays a message on one line of the screen.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, ch := range []rune(msg) {
		r.canvas.SetContent(originX+i, y, ch, style)
	}
}

// CellOrigin returns the screen position of a cell's top-left corner.
func CellOrigin(at board.Coordinate) (x, y int) {
	return originX + at.Col*cellWidth, originY + at.Row*cellHeight
}

// CellBlock returns the 3x3 runes drawn for a tile: its glyph in the
// middle and each side's connector on the matching edge.
func CellBlock(tile *component.Tile) [3][3]rune {
	block := [3][3]rune{
		{' ', ' ', ' '},
		{' ', '.', ' '},
		{' ', ' ', ' '},
	}
	if tile == nil {
		return block
	}
	block[1][1] = tile.Glyph()
	block[0][1] = ConnectorRune(tile.Side(component.North), component.North)
	block[1][2] = ConnectorRune(tile.Side(component.East), component.East)
	block[2][1] = ConnectorRune(tile.Side(component.South), component.South)
	block[1][0] = ConnectorRune(tile.Side(component.West), component.West)
	return block
}

// ConnectorRune returns the rune for a connector on side d. Pipes show how
// many they carry; mounts point outward.
func ConnectorRune(c component.Connector, d component.Direction) rune {
	switch c {
	case component.ConnectorSingle:
		return '1'
	case component.ConnectorDouble:
		return '2'
	case component.ConnectorUniversal:
		return '3'
	case component.ConnectorCannonMount:
		return [4]rune{'^', '>', 'v', '<'}[d]
	case component.ConnectorEngineMount:
		return '#'
	default:
		return ' '
	}
}

func toSet(coords []board.Coordinate) map[board.Coordinate]bool {
	set := make(map[board.Coordinate]bool, len(coords))
	for _, c := range coords {
		set[c] = true
	}
	return set
}
