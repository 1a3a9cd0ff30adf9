package game

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/samdwyer/shipyard/internal/board"
	"github.com/samdwyer/shipyard/internal/component"
	"github.com/samdwyer/shipyard/internal/integrity"
	"github.com/samdwyer/shipyard/internal/telemetry"
)

var (
	ErrResolutionPending = errors.New("game: resolution pending")
	ErrNothingPending    = errors.New("game: no resolution pending")
	ErrShipLost          = errors.New("game: ship is lost")
)

// ChoiceRequest asks a player which fragment of their ship survives.
type ChoiceRequest struct {
	ShipID     uuid.UUID
	Player     string
	ProblemID  uuid.UUID
	Candidates [][]board.Coordinate
}

// ChoiceProvider obtains a player's decision. Timeouts and default choices
// are the provider's business; the ship only waits for an index.
type ChoiceProvider interface {
	ChooseCluster(ctx context.Context, req ChoiceRequest) (int, error)
}

// ChoiceFunc adapts a function to ChoiceProvider.
type ChoiceFunc func(ctx context.Context, req ChoiceRequest) (int, error)

// ChooseCluster calls f.
func (f ChoiceFunc) ChooseCluster(ctx context.Context, req ChoiceRequest) (int, error) {
	return f(ctx, req)
}

// Result describes one completed or suspended resolution cycle.
type Result struct {
	Problem *integrity.Problem
	Plan    integrity.MutationPlan // zero while pending
	State   State
}

// Ship owns one player's board and serializes every structural change to
// it. While a resolution is pending, the board is frozen.
type Ship struct {
	ID     uuid.UUID
	Player string

	mu       sync.Mutex
	graph    *board.Graph
	roster   *Roster
	analyzer *integrity.Analyzer
	logger   *zap.Logger
	state    State
	pending  *integrity.Problem
	lost     bool
}

// Option configures a Ship.
type Option func(*Ship)

// WithLogger sets the ship's logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Ship) {
		s.logger = logger
	}
}

// WithAnalyzer sets the integrity analyzer.
func WithAnalyzer(a *integrity.Analyzer) Option {
	return func(s *Ship) {
		s.analyzer = a
	}
}

// WithRoster replaces the crew roster built from the board's cabins.
func WithRoster(r *Roster) Option {
	return func(s *Ship) {
		s.roster = r
	}
}

// NewShip wraps a board for the given player.
func NewShip(player string, g *board.Graph, opts ...Option) *Ship {
	s := &Ship{
		ID:       uuid.New(),
		Player:   player,
		graph:    g,
		analyzer: integrity.NewAnalyzer(),
		logger:   zap.NewNop(),
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.roster == nil {
		s.roster = NewRoster(g)
	}
	s.logger = s.logger.With(zap.String("player", player), zap.String("ship", s.ID.String()))
	return s
}

// State returns the ship's resolution state.
func (s *Ship) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Pending returns the problem awaiting a choice, or nil.
func (s *Ship) Pending() *integrity.Problem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Lost returns true once the ship has no surviving fragment or no crew.
func (s *Ship) Lost() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lost
}

// Board returns a snapshot of the ship's board.
func (s *Ship) Board() *board.Graph {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.graph.Snapshot()
}

// Roster returns the crew roster.
func (s *Ship) Roster() *Roster {
	return s.roster
}

// Place adds a tile while building. New cabins are boarded with their crew.
func (s *Ship) Place(c board.Coordinate, t *component.Tile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.mutable(); err != nil {
		return err
	}
	if err := s.graph.Place(c, t); err != nil {
		return err
	}
	s.roster.Board(c, t.Humans())
	s.logger.Debug("Tile placed", zap.String("tile", t.ID), zap.Stringer("at", c))
	return nil
}

// Destroy removes one tile, as from a hit in flight. Nothing else falls
// off until Validate runs.
func (s *Ship) Destroy(c board.Coordinate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.mutable(); err != nil {
		return err
	}
	t, err := s.graph.Remove(c)
	if err != nil {
		return err
	}
	lost := s.roster.Lose([]board.Coordinate{c})
	s.logger.Info("Tile destroyed", zap.String("tile", t.ID), zap.Stringer("at", c), zap.Int("crew_lost", lost))
	return nil
}

// Validate runs the integrity check. A problem with zero or one candidate
// is applied at once; with more, the ship waits in StatePendingChoice.
func (s *Ship) Validate(ctx context.Context) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.validate")
	defer span.End()
	span.SetAttributes(attribute.String("player", s.Player))

	if err := s.mutable(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "ship not mutable")
		return Result{State: s.state}, err
	}

	problem := s.analyzer.Analyze(ctx, s.graph, s.roster)
	s.state = StateAnalyzed
	s.logger.Debug("Integrity analyzed",
		zap.String("problem", problem.ID.String()),
		zap.Stringer("rear", s.analyzer.Rear()),
		zap.Int("to_remove", len(problem.ToRemove)),
		zap.Int("to_keep", len(problem.ToKeep)),
		zap.Bool("no_inhabitants", problem.NoInhabitants))

	if problem.NeedsChoice() {
		s.state = StatePendingChoice
		s.pending = problem
		span.SetAttributes(attribute.Int("candidates", len(problem.ToKeep)))
		s.logger.Info("Ship split, waiting for a choice", zap.Int("candidates", len(problem.ToKeep)))
		return Result{Problem: problem, State: s.state}, nil
	}

	s.state = StateAutoResolved
	plan, err := integrity.Resolve(ctx, problem, integrity.NoChoice)
	if err != nil {
		// A problem with at most one candidate never needs a choice.
		panic(&integrity.InvariantError{Rule: "auto-resolve", Message: err.Error()})
	}
	return s.apply(problem, plan)
}

// Choose settles a pending resolution. An invalid index leaves the ship
// pending so the player can be asked again.
func (s *Ship) Choose(ctx context.Context, index int) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.choose")
	defer span.End()
	span.SetAttributes(attribute.String("player", s.Player), attribute.Int("choice", index))

	if s.state != StatePendingChoice {
		span.RecordError(ErrNothingPending)
		span.SetStatus(codes.Error, "nothing pending")
		return Result{State: s.state}, ErrNothingPending
	}

	problem := s.pending
	plan, err := integrity.Resolve(ctx, problem, integrity.Pick(index))
	if err != nil {
		s.logger.Warn("Rejected fragment choice", zap.Int("choice", index), zap.Error(err))
		return Result{Problem: problem, State: s.state}, err
	}
	s.pending = nil
	return s.apply(problem, plan)
}

// Cancel abandons a pending resolution and leaves the board as it was.
func (s *Ship) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePendingChoice {
		return ErrNothingPending
	}
	s.logger.Info("Resolution cancelled", zap.String("problem", s.pending.ID.String()))
	s.pending = nil
	s.state = StateIdle
	return nil
}

// ResolveWith validates the ship and, if it splits, asks provider which
// fragment to keep. Invalid answers are asked again.
func (s *Ship) ResolveWith(ctx context.Context, provider ChoiceProvider) (Result, error) {
	result, err := s.Validate(ctx)
	if err != nil || result.State != StatePendingChoice {
		return result, err
	}

	req := ChoiceRequest{
		ShipID:     s.ID,
		Player:     s.Player,
		ProblemID:  result.Problem.ID,
		Candidates: result.Problem.Candidates(),
	}
	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		index, err := provider.ChooseCluster(ctx, req)
		if err != nil {
			return result, fmt.Errorf("choose fragment for %s: %w", s.Player, err)
		}
		chosen, err := s.Choose(ctx, index)
		if integrity.IsInvalidChoice(err) {
			continue
		}
		return chosen, err
	}
}

// mutable reports why the board cannot change right now, if it cannot.
// Caller holds s.mu.
func (s *Ship) mutable() error {
	switch {
	case s.state == StatePendingChoice:
		return ErrResolutionPending
	case s.lost:
		return ErrShipLost
	}
	return nil
}

// apply carries out a plan and returns the ship to idle. Caller holds s.mu.
func (s *Ship) apply(problem *integrity.Problem, plan integrity.MutationPlan) (Result, error) {
	if _, err := integrity.Apply(plan, s.graph); err != nil {
		s.state = StateIdle
		return Result{Problem: problem, State: s.state}, err
	}
	crewLost := s.roster.Lose(plan.Remove)
	s.state = StateApplied

	switch plan.Outcome {
	case integrity.OutcomeEmptyShip, integrity.OutcomeUnsalvageable:
		s.lost = true
		s.logger.Warn("Ship lost", zap.Stringer("outcome", plan.Outcome), zap.Int("removed", len(plan.Remove)))
	case integrity.OutcomeTrimmed:
		s.logger.Info("Fragments removed", zap.Int("removed", len(plan.Remove)), zap.Int("crew_lost", crewLost))
	}

	result := Result{Problem: problem, Plan: plan, State: s.state}
	s.state = StateIdle
	return result, nil
}
