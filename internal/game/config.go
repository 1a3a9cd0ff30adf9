package game

import (
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/samdwyer/shipyard/internal/component"
)

// Config holds interactive session options.
type Config struct {
	// Title is shown on the first status line, usually the ship file name.
	Title string

	// Color picks a tile's foreground. Nil draws with the terminal default.
	Color func(*component.Tile) tcell.Color

	// Logger receives session events. Nil discards them; the terminal is
	// owned by the board view.
	Logger *zap.Logger
}
