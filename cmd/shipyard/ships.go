package main

import (
	"go.uber.org/zap"

	"github.com/samdwyer/shipyard/internal/board"
	"github.com/samdwyer/shipyard/internal/game"
	"github.com/samdwyer/shipyard/internal/integrity"
	"github.com/samdwyer/shipyard/internal/shipdata"
)

// loadedShip is a ship file assembled onto its board.
type loadedShip struct {
	file    *shipdata.ShipFile
	def     *shipdata.BoardDef
	graph   *board.Graph
	catalog *shipdata.Catalog
}

// loadShip reads and assembles a ship file using the configured defaults.
func loadShip(path string) (*loadedShip, error) {
	catalog, err := shipdata.LoadCatalog()
	if err != nil {
		return nil, err
	}
	boards, err := shipdata.LoadBoards()
	if err != nil {
		return nil, err
	}

	sf, err := shipdata.LoadShip(path)
	if err != nil {
		return nil, err
	}
	g, err := sf.Assemble(catalog, boards, cfg.Board)
	if err != nil {
		return nil, err
	}

	id := sf.Board
	if id == "" {
		id = cfg.Board
	}
	logger.Debug("Ship loaded",
		zap.String("path", path),
		zap.String("player", sf.Player),
		zap.String("board", id),
		zap.Int("tiles", g.Len()))

	return &loadedShip{
		file:    sf,
		def:     shipdata.FindBoard(boards, id),
		graph:   g,
		catalog: catalog,
	}, nil
}

// analyzer returns an analyzer for the configured rear.
func analyzer() (*integrity.Analyzer, error) {
	rear, err := cfg.RearDirection()
	if err != nil {
		return nil, err
	}
	return integrity.NewAnalyzer(integrity.WithRear(rear)), nil
}

// newShip wraps a loaded ship for resolution.
func (l *loadedShip) newShip() (*game.Ship, error) {
	a, err := analyzer()
	if err != nil {
		return nil, err
	}
	return game.NewShip(l.file.Player, l.graph, game.WithLogger(logger), game.WithAnalyzer(a)), nil
}
