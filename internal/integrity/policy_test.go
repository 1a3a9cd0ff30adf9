package integrity

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/shipyard/internal/board"
)

func twoCandidates() *Problem {
	return &Problem{
		ID: uuid.New(),
		ToKeep: []*Cluster{
			NewCluster(at(0, 0), at(0, 1)),
			NewCluster(at(0, 2)),
		},
	}
}

func TestResolveRejectsInvalidChoices(t *testing.T) {
	ctx := context.Background()
	single := &Problem{ID: uuid.New(), ToKeep: []*Cluster{NewCluster(at(0, 0))}}
	empty := &Problem{ID: uuid.New()}

	tests := []struct {
		name    string
		problem *Problem
		choice  Choice
	}{
		{"missing choice", twoCandidates(), NoChoice},
		{"index past end", twoCandidates(), Pick(5)},
		{"negative index", twoCandidates(), Pick(-1)},
		{"choice for single candidate", single, Pick(0)},
		{"choice for empty problem", empty, Pick(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(ctx, tt.problem, tt.choice)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidChoice))
			assert.True(t, IsInvalidChoice(err))
		})
	}
}

func TestResolveSingleCandidateDominatesRemovals(t *testing.T) {
	p := &Problem{
		ID:       uuid.New(),
		ToKeep:   []*Cluster{NewCluster(at(0, 0), at(0, 1))},
		ToRemove: []*Cluster{NewCluster(at(0, 1), at(0, 2)), NewCluster(at(1, 1))},
	}

	plan, err := Resolve(context.Background(), p, NoChoice)
	require.NoError(t, err)
	assert.Equal(t, []board.Coordinate{at(0, 2), at(1, 1)}, plan.Remove)
	assert.Same(t, p.ToKeep[0], plan.Kept)
	assert.Equal(t, p.ID, plan.ProblemID)
}

func TestResolveChosenCandidate(t *testing.T) {
	p := twoCandidates()
	p.ToKeep = append(p.ToKeep, NewCluster(at(0, 1), at(1, 1)))
	p.ToRemove = []*Cluster{NewCluster(at(0, 0), at(2, 2))}

	plan, err := Resolve(context.Background(), p, Pick(2))
	require.NoError(t, err)
	// (0,1) is shared with the chosen cluster and survives; (0,0) is
	// in the chosen cluster's sibling and in ToRemove, so it goes.
	assert.Equal(t, []board.Coordinate{at(0, 0), at(0, 2), at(2, 2)}, plan.Remove)

	// Chosen tiles that also sit in ToRemove are removed.
	plan, err = Resolve(context.Background(), p, Pick(0))
	require.NoError(t, err)
	assert.Equal(t, []board.Coordinate{at(0, 0), at(0, 2), at(1, 1), at(2, 2)}, plan.Remove)
}

func TestResolveIntact(t *testing.T) {
	p := &Problem{ID: uuid.New(), ToKeep: []*Cluster{NewCluster(at(0, 0))}}
	plan, err := Resolve(context.Background(), p, NoChoice)
	require.NoError(t, err)
	assert.Equal(t, OutcomeIntact, plan.Outcome)
	assert.Empty(t, plan.Remove)
}

func TestApplyLeavesBoardUntouchedOnStalePlan(t *testing.T) {
	g := build(t, 1, 2,
		placement{at(0, 0), hull("a", sides(none, none, none, none))},
	)
	plan := MutationPlan{ProblemID: uuid.New(), Remove: []board.Coordinate{at(0, 0), at(0, 1)}}

	_, err := Apply(plan, g)
	require.ErrorIs(t, err, board.ErrEmpty)
	assert.Equal(t, 1, g.Len())
}

func TestOutcomeAndChoiceStrings(t *testing.T) {
	assert.Equal(t, "none", NoChoice.String())
	assert.Equal(t, "3", Pick(3).String())
	assert.Equal(t, "empty_ship", OutcomeEmptyShip.String())
	assert.Equal(t, "unknown", Outcome(42).String())
}

func TestProblemString(t *testing.T) {
	p := twoCandidates()
	assert.Contains(t, p.String(), "[1] keep {(0, 2)}")
	assert.Equal(t, "no inhabitants: ship is lost", (&Problem{NoInhabitants: true}).String())
	assert.Equal(t, [][]board.Coordinate{{at(0, 0), at(0, 1)}, {at(0, 2)}}, p.Candidates())
}
