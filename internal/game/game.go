package game

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/shipyard/internal/board"
	"github.com/samdwyer/shipyard/internal/telemetry"
	"github.com/samdwyer/shipyard/internal/ui"
)

// Game is an interactive session over one ship: the player knocks tiles
// out and picks which fragment survives when the ship splits.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	ship     *Ship
	cfg      Config
	logger   *zap.Logger
	cursor   board.Coordinate
	mode     Mode
	choice   *ChoiceState
	message  string
	running  bool
}

// New creates a session on the terminal.
func New(ship *Ship, cfg Config) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	g := newGame(ship, cfg)
	g.screen = screen
	g.renderer = ui.NewRenderer(screen)
	return g, nil
}

// newGame creates a session without a screen.
func newGame(ship *Ship, cfg Config) *Game {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Game{
		ship:    ship,
		cfg:     cfg,
		logger:  logger,
		mode:    ModeInspect,
		message: "Arrows move, x destroys a tile, v validates, q quits.",
		running: true,
	}
	if occupied := ship.Board().Occupied(); len(occupied) > 0 {
		g.cursor = occupied[0]
	}
	return g
}

// Run executes the main session loop.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")

	ctx, initSpan := tracer.Start(ctx, "game.init")
	initSpan.SetAttributes(
		attribute.String("player", g.ship.Player),
		attribute.Int("ship.tiles", g.ship.Board().Len()),
	)

	// A ship loaded with loose fragments is settled before play.
	result, err := g.ship.Validate(ctx)
	initSpan.End()
	if err != nil {
		g.Close()
		return err
	}
	g.settle(ctx, result)

	for g.running {
		g.renderer.Render(g.view(ctx))
		g.handleInput(ctx)
	}

	g.Close()
	return nil
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKey(ctx, ev.Key(), ev.Rune())
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKey processes one key press.
func (g *Game) handleKey(ctx context.Context, key tcell.Key, r rune) {
	if key == tcell.KeyEscape || key == tcell.KeyCtrlC || (key == tcell.KeyRune && (r == 'q' || r == 'Q')) {
		g.running = false
		return
	}

	switch g.mode {
	case ModeInspect:
		g.handleInspectKey(ctx, key, r)
	case ModeChoose:
		g.handleChooseKey(ctx, key, r)
	}
}

func (g *Game) handleInspectKey(ctx context.Context, key tcell.Key, r rune) {
	switch key {
	case tcell.KeyUp:
		g.moveCursor(-1, 0)
	case tcell.KeyDown:
		g.moveCursor(1, 0)
	case tcell.KeyLeft:
		g.moveCursor(0, -1)
	case tcell.KeyRight:
		g.moveCursor(0, 1)
	case tcell.KeyDelete:
		g.destroyAtCursor(ctx)
	case tcell.KeyRune:
		switch r {
		case 'x', 'X':
			g.destroyAtCursor(ctx)
		case 'v', 'V':
			g.validate(ctx)
		}
	}
}

func (g *Game) handleChooseKey(ctx context.Context, key tcell.Key, r rune) {
	switch key {
	case tcell.KeyRight, tcell.KeyDown, tcell.KeyTab:
		g.choice.Next()
	case tcell.KeyLeft, tcell.KeyUp, tcell.KeyBacktab:
		g.choice.Prev()
	case tcell.KeyEnter:
		g.confirmChoice(ctx)
	case tcell.KeyRune:
		if r >= '0' && r <= '9' && !g.choice.Select(int(r-'0')) {
			g.choice.LastMessage = fmt.Sprintf("No fragment %c.", r)
		}
	}
}

// moveCursor moves the cursor, staying on the board.
func (g *Game) moveCursor(dRow, dCol int) {
	next := board.Coordinate{Row: g.cursor.Row + dRow, Col: g.cursor.Col + dCol}
	if g.ship.Board().InBounds(next) {
		g.cursor = next
	}
}

// destroyAtCursor knocks out the tile under the cursor and checks what
// is still attached.
func (g *Game) destroyAtCursor(ctx context.Context) {
	if err := g.ship.Destroy(g.cursor); err != nil {
		g.message = fmt.Sprintf("Cannot destroy %s: %v", g.cursor, err)
		return
	}
	g.logger.Debug("Tile destroyed from the board view", zap.Stringer("at", g.cursor))
	g.validate(ctx)
}

func (g *Game) validate(ctx context.Context) {
	result, err := g.ship.Validate(ctx)
	if err != nil {
		g.message = "Validation failed: " + err.Error()
		return
	}
	g.settle(ctx, result)
}

// view assembles the next frame.
func (g *Game) view(ctx context.Context) ui.View {
	v := ui.View{
		Board:  g.ship.Board(),
		Cursor: g.cursor,
		Color:  g.cfg.Color,
	}
	title := g.cfg.Title
	if title == "" {
		title = g.ship.Player
	}
	v.Status = append(v.Status, fmt.Sprintf("%s  [%s]  crew %d", title, g.mode, g.ship.Roster().Total()))

	switch g.mode {
	case ModeChoose:
		v.Highlight = g.choice.Candidate()
		v.Doomed = g.choice.Preview(ctx)
		v.Status = append(v.Status,
			fmt.Sprintf("Fragment %d of %d: %d tiles kept, %d lost.",
				g.choice.Selected, g.choice.Count(), len(v.Highlight), len(v.Doomed)),
			"Left/right to browse, 0-9 to jump, enter to keep.",
			g.choice.LastMessage)
	default:
		v.Status = append(v.Status, g.message)
	}
	return v
}

// Close cleans up session resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
		g.screen = nil
	}
}
