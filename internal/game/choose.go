package game

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/shipyard/internal/board"
	"github.com/samdwyer/shipyard/internal/integrity"
	"github.com/samdwyer/shipyard/internal/telemetry"
)

// ChoiceState holds the fragment picker shown while a split is pending.
type ChoiceState struct {
	Problem     *integrity.Problem
	Selected    int    // index into Problem.ToKeep
	LastMessage string // message to display from the last action
}

// NewChoiceState creates a picker for a problem that needs a choice.
func NewChoiceState(p *integrity.Problem) *ChoiceState {
	return &ChoiceState{
		Problem:     p,
		LastMessage: fmt.Sprintf("Ship split into %d fragments. Pick one to keep.", len(p.ToKeep)),
	}
}

// Count returns the number of candidate fragments.
func (cs *ChoiceState) Count() int {
	return len(cs.Problem.ToKeep)
}

// Next selects the following fragment, wrapping around.
func (cs *ChoiceState) Next() {
	cs.Selected = (cs.Selected + 1) % cs.Count()
}

// Prev selects the preceding fragment, wrapping around.
func (cs *ChoiceState) Prev() {
	cs.Selected = (cs.Selected - 1 + cs.Count()) % cs.Count()
}

// Select jumps to fragment i. It returns false if there is no such fragment.
func (cs *ChoiceState) Select(i int) bool {
	if i < 0 || i >= cs.Count() {
		return false
	}
	cs.Selected = i
	return true
}

// Candidate returns the tiles of the selected fragment.
func (cs *ChoiceState) Candidate() []board.Coordinate {
	return cs.Problem.ToKeep[cs.Selected].Coordinates()
}

// Preview returns what keeping the selected fragment would remove.
func (cs *ChoiceState) Preview(ctx context.Context) []board.Coordinate {
	plan, err := integrity.Resolve(ctx, cs.Problem, integrity.Pick(cs.Selected))
	if err != nil {
		return nil
	}
	return plan.Remove
}

// =============================================================================
// Choice Methods on Game
// =============================================================================

// enterChoose switches to the fragment picker.
func (g *Game) enterChoose(ctx context.Context, p *integrity.Problem) {
	tracer := telemetry.Tracer("game")
	_, span := tracer.Start(ctx, "game.choose_start")
	span.SetAttributes(
		attribute.String("problem", p.ID.String()),
		attribute.Int("candidates", len(p.ToKeep)),
	)
	span.End()

	g.choice = NewChoiceState(p)
	g.mode = ModeChoose
}

// confirmChoice keeps the selected fragment.
func (g *Game) confirmChoice(ctx context.Context) {
	result, err := g.ship.Choose(ctx, g.choice.Selected)
	if err != nil {
		g.choice.LastMessage = "Cannot keep that fragment: " + err.Error()
		return
	}
	g.choice = nil
	g.settle(ctx, result)
}

// settle moves the session on after a validation or choice.
func (g *Game) settle(ctx context.Context, result Result) {
	switch {
	case result.State == StatePendingChoice:
		g.enterChoose(ctx, result.Problem)
	case g.ship.Lost():
		g.mode = ModeLost
		g.message = fmt.Sprintf("Ship lost (%s). Press q to quit.", result.Plan.Outcome)
	case len(result.Plan.Remove) > 0:
		g.mode = ModeInspect
		g.message = fmt.Sprintf("%d tiles fell off.", len(result.Plan.Remove))
	default:
		g.mode = ModeInspect
		g.message = "Ship intact."
	}
}
