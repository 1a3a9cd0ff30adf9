package integrity

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/samdwyer/shipyard/internal/board"
)

// Problem is the outcome of one analysis pass.
//
// ToRemove clusters are deleted unconditionally. ToKeep clusters are
// mutually exclusive candidates of which exactly one survives: none means
// the ship is lost, one is kept automatically, and two or more need an
// outside decision. NoInhabitants is the terminal condition of a ship with
// no human left on board; both cluster lists are empty when it is set.
type Problem struct {
	ID            uuid.UUID
	ToRemove      []*Cluster
	ToKeep        []*Cluster
	NoInhabitants bool
}

// NeedsChoice returns true when a player must pick the surviving cluster.
func (p *Problem) NeedsChoice() bool {
	return len(p.ToKeep) >= 2
}

// Unsalvageable returns true when no cluster can survive.
func (p *Problem) Unsalvageable() bool {
	return len(p.ToKeep) == 0
}

// Intact returns true when nothing has to be removed.
func (p *Problem) Intact() bool {
	return !p.NoInhabitants && len(p.ToRemove) == 0 && len(p.ToKeep) == 1
}

// Candidates returns the ToKeep clusters as coordinate lists for display.
func (p *Problem) Candidates() [][]board.Coordinate {
	out := make([][]board.Coordinate, len(p.ToKeep))
	for i, c := range p.ToKeep {
		out[i] = c.Coordinates()
	}
	return out
}

// String summarises the problem for logs and the CLI.
func (p *Problem) String() string {
	if p.NoInhabitants {
		return "no inhabitants: ship is lost"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "remove %d cluster(s), keep %d candidate(s)\n", len(p.ToRemove), len(p.ToKeep))
	for _, c := range p.ToRemove {
		fmt.Fprintf(&sb, "  remove %s\n", c)
	}
	for i, c := range p.ToKeep {
		fmt.Fprintf(&sb, "  [%d] keep %s\n", i, c)
	}
	return sb.String()
}
