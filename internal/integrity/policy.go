package integrity

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/zyedidia/generic/mapset"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/shipyard/internal/board"
	"github.com/samdwyer/shipyard/internal/telemetry"
)

// Choice is an optional index into Problem.ToKeep.
type Choice struct {
	index int
	set   bool
}

// NoChoice is the absent choice.
var NoChoice = Choice{}

// Pick chooses the candidate at index i.
func Pick(i int) Choice {
	return Choice{index: i, set: true}
}

// Index returns the chosen index, if one was given.
func (c Choice) Index() (int, bool) {
	return c.index, c.set
}

// String returns the index or "none".
func (c Choice) String() string {
	if !c.set {
		return "none"
	}
	return fmt.Sprintf("%d", c.index)
}

// Outcome classifies a mutation plan.
type Outcome int

const (
	// OutcomeIntact means nothing is removed.
	OutcomeIntact Outcome = iota
	// OutcomeTrimmed means some tiles are removed and one cluster survives.
	OutcomeTrimmed
	// OutcomeUnsalvageable means no cluster survives.
	OutcomeUnsalvageable
	// OutcomeEmptyShip means no human is left aboard; the player is out.
	OutcomeEmptyShip
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeIntact:
		return "intact"
	case OutcomeTrimmed:
		return "trimmed"
	case OutcomeUnsalvageable:
		return "unsalvageable"
	case OutcomeEmptyShip:
		return "empty_ship"
	default:
		return "unknown"
	}
}

// MutationPlan is the set of tile removals that settles a Problem.
type MutationPlan struct {
	ProblemID uuid.UUID
	Outcome   Outcome
	Remove    []board.Coordinate // row-major
	Kept      *Cluster           // nil unless one cluster survives
}

// Resolve turns a problem into a mutation plan.
//
// With no candidates every ToRemove tile goes. With one candidate it is
// kept and shields its tiles from ToRemove. With two or more a choice is
// required; everything outside the chosen cluster goes, and so does any
// chosen tile that also sits in a ToRemove cluster.
//
// A choice given when none is needed, missing when one is needed, or out
// of range fails with ErrInvalidChoice.
func Resolve(ctx context.Context, problem *Problem, choice Choice) (MutationPlan, error) {
	tracer := telemetry.Tracer("integrity")
	_, span := tracer.Start(ctx, "integrity.resolve")
	defer span.End()
	span.SetAttributes(
		attribute.String("integrity.problem_id", problem.ID.String()),
		attribute.Int("integrity.to_keep", len(problem.ToKeep)),
		attribute.String("integrity.choice", choice.String()),
	)

	plan, err := resolve(problem, choice)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid choice")
		return MutationPlan{}, err
	}
	span.SetAttributes(
		attribute.String("integrity.outcome", plan.Outcome.String()),
		attribute.Int("integrity.removed", len(plan.Remove)),
	)
	return plan, nil
}

func resolve(problem *Problem, choice Choice) (MutationPlan, error) {
	plan := MutationPlan{ProblemID: problem.ID}
	idx, given := choice.Index()
	n := len(problem.ToKeep)

	switch {
	case n <= 1 && given:
		return plan, fmt.Errorf("%w: index %d given but %d candidate(s) need no choice", ErrInvalidChoice, idx, n)
	case n >= 2 && !given:
		return plan, fmt.Errorf("%w: %d candidates need a choice", ErrInvalidChoice, n)
	case n >= 2 && (idx < 0 || idx >= n):
		return plan, fmt.Errorf("%w: index %d outside [0, %d)", ErrInvalidChoice, idx, n)
	}

	remove := mapset.New[board.Coordinate]()
	switch {
	case problem.NoInhabitants:
		plan.Outcome = OutcomeEmptyShip
		return plan, nil

	case n == 0:
		plan.Outcome = OutcomeUnsalvageable
		for _, c := range problem.ToRemove {
			c.Each(func(m board.Coordinate) { remove.Put(m) })
		}

	case n == 1:
		kept := problem.ToKeep[0]
		plan.Kept = kept
		for _, c := range problem.ToRemove {
			c.Each(func(m board.Coordinate) {
				if !kept.Has(m) {
					remove.Put(m)
				}
			})
		}

	default:
		kept := problem.ToKeep[idx]
		plan.Kept = kept
		for i, c := range problem.ToKeep {
			if i == idx {
				continue
			}
			c.Each(func(m board.Coordinate) {
				if !kept.Has(m) {
					remove.Put(m)
				}
			})
		}
		for _, c := range problem.ToRemove {
			c.Each(func(m board.Coordinate) { remove.Put(m) })
		}
	}

	plan.Remove = make([]board.Coordinate, 0, remove.Size())
	remove.Each(func(m board.Coordinate) {
		plan.Remove = append(plan.Remove, m)
	})
	sort.Slice(plan.Remove, func(i, j int) bool { return plan.Remove[i].Less(plan.Remove[j]) })

	if plan.Outcome != OutcomeUnsalvageable {
		if len(plan.Remove) == 0 {
			plan.Outcome = OutcomeIntact
		} else {
			plan.Outcome = OutcomeTrimmed
		}
	}
	return plan, nil
}

// Apply removes the planned tiles from g. It checks every coordinate first
// so a stale plan leaves g untouched.
func Apply(plan MutationPlan, g *board.Graph) (*board.Graph, error) {
	for _, c := range plan.Remove {
		if _, ok := g.At(c); !ok {
			return g, fmt.Errorf("apply plan %s: %s: %w", plan.ProblemID, c, board.ErrEmpty)
		}
	}
	for _, c := range plan.Remove {
		if _, err := g.Remove(c); err != nil {
			return g, fmt.Errorf("apply plan %s: %w", plan.ProblemID, err)
		}
	}
	return g, nil
}
