package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/samdwyer/shipyard/internal/board"
	"github.com/samdwyer/shipyard/internal/component"
	"github.com/samdwyer/shipyard/internal/game"
	"github.com/samdwyer/shipyard/internal/shipdata"
)

var (
	keep    int
	outPath string
)

// errChoiceNeeded is returned by resolve when the ship splits and no
// --keep was given.
var errChoiceNeeded = errors.New("ship split: rerun with --keep to pick the surviving fragment")

// checkCmd reports what would fall off without changing anything.
var checkCmd = &cobra.Command{
	Use:   "check [ship.yaml]",
	Short: "Report which parts of a ship are still attached",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

// resolveCmd applies the integrity check.
var resolveCmd = &cobra.Command{
	Use:   "resolve [ship.yaml]",
	Short: "Remove detached parts, asking for --keep when the ship splits",
	Long: `Runs the integrity check and removes everything that broke off.

If the ship splits into several crewed fragments, --keep picks which one
survives. Without it the fragments are listed and nothing changes.

Example:
  shipyard resolve ship.yaml --keep 1 --out ship-after.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

// fleetCmd checks several players' ships at once.
var fleetCmd = &cobra.Command{
	Use:   "fleet [ship.yaml...]",
	Short: "Resolve several ships in parallel and summarize each",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFleet,
}

// playCmd opens the board view.
var playCmd = &cobra.Command{
	Use:   "play [ship.yaml]",
	Short: "Knock tiles off a ship in the terminal and pick fragments",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlay,
}

// tilesCmd lists the tile catalog.
var tilesCmd = &cobra.Command{
	Use:   "tiles",
	Short: "List the tile catalog",
	Args:  cobra.NoArgs,
	RunE:  runTiles,
}

func runCheck(cmd *cobra.Command, args []string) error {
	ship, err := loadShip(args[0])
	if err != nil {
		return err
	}
	a, err := analyzer()
	if err != nil {
		return err
	}

	problem := a.Analyze(cmd.Context(), ship.graph, game.NewRoster(ship.graph))
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n%s\n", ship.file.Player, ship.def.Name, ship.graph)
	switch {
	case problem.Intact():
		fmt.Fprintln(out, "intact")
	default:
		fmt.Fprint(out, problem)
	}
	return nil
}

func runResolve(cmd *cobra.Command, args []string) error {
	loaded, err := loadShip(args[0])
	if err != nil {
		return err
	}
	ship, err := loaded.newShip()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	provider := game.ChoiceFunc(func(_ context.Context, req game.ChoiceRequest) (int, error) {
		if keep < 0 {
			fmt.Fprintf(out, "%s's ship split into %d fragments:\n", req.Player, len(req.Candidates))
			for i, c := range req.Candidates {
				fmt.Fprintf(out, "  [%d] %s\n", i, formatCoordinates(c))
			}
			return 0, errChoiceNeeded
		}
		choice := keep
		// A rejected index would be offered again; answer only once.
		keep = -1
		return choice, nil
	})

	result, err := ship.ResolveWith(cmd.Context(), provider)
	if err != nil {
		return err
	}

	logger.Info("Ship resolved",
		zap.String("player", ship.Player),
		zap.Stringer("outcome", result.Plan.Outcome),
		zap.Int("removed", len(result.Plan.Remove)))

	after := ship.Board()
	fmt.Fprintf(out, "%s: %s, removed %d tile(s)\n%s\n",
		ship.Player, result.Plan.Outcome, len(result.Plan.Remove), after)

	if outPath != "" {
		return saveShip(outPath, shipdata.NewShipFile(ship.Player, loaded.def, after))
	}
	return nil
}

// saveShip writes sf to path. A failed close is reported like a failed
// write, since buffered data may not have reached the disk.
func saveShip(path string, sf *shipdata.ShipFile) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := sf.Write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func runFleet(cmd *cobra.Command, args []string) error {
	ships := make([]*game.Ship, 0, len(args))
	for _, path := range args {
		loaded, err := loadShip(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		ship, err := loaded.newShip()
		if err != nil {
			return err
		}
		ships = append(ships, ship)
	}

	results, err := game.ValidateFleet(cmd.Context(), ships)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, result := range results {
		switch result.State {
		case game.StatePendingChoice:
			fmt.Fprintf(out, "%-12s split into %d fragments\n", ships[i].Player, len(result.Problem.ToKeep))
		default:
			fmt.Fprintf(out, "%-12s %s, removed %d\n", ships[i].Player, result.Plan.Outcome, len(result.Plan.Remove))
		}
	}
	return nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	loaded, err := loadShip(args[0])
	if err != nil {
		return err
	}
	ship, err := loaded.newShip()
	if err != nil {
		return err
	}

	g, err := game.New(ship, game.Config{
		Title:  args[0],
		Color:  loaded.catalog.TileColor,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize board view: %w", err)
	}
	return g.Run(cmd.Context())
}

func runTiles(cmd *cobra.Command, args []string) error {
	catalog, err := shipdata.LoadCatalog()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-14s %-13s %s\n", "ID", "CATEGORY", "N E S W")
	for _, def := range catalog.All() {
		tile, err := catalog.Build(def.ID)
		if err != nil {
			return err
		}
		sides := make([]string, 0, len(component.Directions))
		for _, d := range component.Directions {
			sides = append(sides, tile.Side(d).String())
		}
		fmt.Fprintf(out, "%-14s %-13s %s\n", def.ID, tile.Category(), strings.Join(sides, " "))
	}
	return nil
}

func formatCoordinates(coords []board.Coordinate) string {
	parts := make([]string, len(coords))
	for i, c := range coords {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
