// Package integrity decides whether a ship is still one legal vessel and,
// when it is not, which fragments must go and which may stay.
package integrity

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/zyedidia/generic/mapset"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/shipyard/internal/board"
	"github.com/samdwyer/shipyard/internal/component"
	"github.com/samdwyer/shipyard/internal/telemetry"
)

// DefaultRear is the direction engines must exhaust toward.
const DefaultRear = component.South

// Analyzer runs integrity passes. It holds configuration only and may be
// shared between goroutines.
type Analyzer struct {
	rear component.Direction
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithRear sets the direction engines must face.
func WithRear(d component.Direction) Option {
	return func(a *Analyzer) {
		a.rear = d
	}
}

// NewAnalyzer creates an analyzer with the given options.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{rear: DefaultRear}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Rear returns the direction engines must face.
func (a *Analyzer) Rear() component.Direction {
	return a.rear
}

// Analyze runs a pass with default settings.
func Analyze(ctx context.Context, g *board.Graph, crew CrewOracle) *Problem {
	return NewAnalyzer().Analyze(ctx, g, crew)
}

// Analyze inspects a snapshot of g and reports what has to be removed and
// which candidate fragments may survive. It does not modify g.
func (a *Analyzer) Analyze(ctx context.Context, g *board.Graph, crew CrewOracle) *Problem {
	tracer := telemetry.Tracer("integrity")
	_, span := tracer.Start(ctx, "integrity.analyze")
	defer span.End()

	startTime := time.Now()
	p := newPass(g.Snapshot(), crew, a.rear)
	problem := &Problem{ID: uuid.New()}

	if !p.anyInhabited() {
		problem.NoInhabitants = true
		span.SetAttributes(
			attribute.Int("ship.tiles", p.g.Len()),
			attribute.Bool("integrity.no_inhabitants", true),
		)
		return problem
	}

	for _, c := range p.g.Occupied() {
		t, _ := p.g.At(c)
		if p.intrinsicallyWrong(t) {
			p.excluded.Put(c)
			wrong := NewCluster(c)
			wrong.SetAnchor(c)
			problem.ToRemove = append(problem.ToRemove, wrong)
		}
	}

	candidates := p.split(p.buildClusters())
	keep, drop := p.filterInhabited(candidates)
	problem.ToKeep = keep
	problem.ToRemove = append(problem.ToRemove, drop...)
	sortByKey(problem.ToRemove)

	p.checkCoverage(problem)

	span.SetAttributes(
		attribute.String("integrity.problem_id", problem.ID.String()),
		attribute.Int("ship.tiles", p.g.Len()),
		attribute.Int("integrity.intrinsically_wrong", p.excluded.Size()),
		attribute.Int("integrity.to_remove", len(problem.ToRemove)),
		attribute.Int("integrity.to_keep", len(problem.ToKeep)),
		attribute.Int64("integrity.analysis_us", time.Since(startTime).Microseconds()),
	)
	return problem
}

// pass is the working state of one analysis.
type pass struct {
	g        *board.Graph
	crew     CrewOracle
	rear     component.Direction
	rank     map[board.Coordinate]int // placement order
	excluded mapset.Set[board.Coordinate]
}

func newPass(g *board.Graph, crew CrewOracle, rear component.Direction) *pass {
	p := &pass{
		g:        g,
		crew:     crew,
		rear:     rear,
		rank:     make(map[board.Coordinate]int, g.Len()),
		excluded: mapset.New[board.Coordinate](),
	}
	for i, c := range g.Occupied() {
		p.rank[c] = i
	}
	return p
}

func (p *pass) inhabitedAt(c board.Coordinate) bool {
	t, ok := p.g.At(c)
	return ok && p.crew.HasHumanOccupant(c, t)
}

func (p *pass) anyInhabited() bool {
	for _, c := range p.g.Occupied() {
		if p.inhabitedAt(c) {
			return true
		}
	}
	return false
}

// intrinsicallyWrong reports tiles that are invalid on their own,
// whatever their neighbors.
func (p *pass) intrinsicallyWrong(t *component.Tile) bool {
	switch t.Category() {
	case component.CategoryEngine:
		d, ok := t.MountDirection()
		return !ok || d != p.rear
	case component.CategoryStructural, component.CategoryCabin, component.CategoryCargo,
		component.CategoryBattery, component.CategoryCannon, component.CategoryShield,
		component.CategoryLifeSupport:
		return false
	default:
		panic(&InvariantError{Rule: "tile-category", Message: fmt.Sprintf("tile %s has category %v", t.ID, t.Category())})
	}
}

// touching reports whether two tiles are structurally joined, legally or
// not. Only smooth-against-smooth edges keep neighbors apart.
func (p *pass) touching(a, b board.Coordinate) bool {
	status, ok := p.g.Edge(a, b)
	return ok && status != component.StatusSeparate
}

func (p *pass) illegal(a, b board.Coordinate) bool {
	status, ok := p.g.Edge(a, b)
	return ok && status == component.StatusIllegal
}

// buildClusters groups tiles in placement order. A tile touching no known
// cluster seeds a new one, a tile touching one joins it, and a tile touching
// several bridges them into a single merged cluster.
func (p *pass) buildClusters() []*Cluster {
	ar := &arena{}
	owner := make(map[board.Coordinate]handle)

	for _, c := range p.g.Occupied() {
		if p.excluded.Has(c) {
			continue
		}

		var joined []handle
		for _, n := range p.g.Neighbors(c) {
			if p.excluded.Has(n.At) || !p.touching(c, n.At) {
				continue
			}
			h, ok := owner[n.At]
			if !ok {
				continue // placed later, will find us
			}
			if !containsHandle(joined, h) {
				joined = append(joined, h)
			}
		}

		switch len(joined) {
		case 0:
			seed := NewCluster(c)
			seed.SetAnchor(c)
			owner[c] = ar.add(seed)
		case 1:
			ar.get(joined[0]).Add(c)
			owner[c] = joined[0]
		default:
			sort.Slice(joined, func(i, j int) bool { return joined[i] < joined[j] })
			merged := NewCluster()
			for _, h := range joined {
				merged.Absorb(ar.get(h))
				ar.retire(h)
			}
			merged.Add(c)
			nh := ar.add(merged)
			merged.Each(func(m board.Coordinate) {
				owner[m] = nh
			})
		}
	}

	out := make([]*Cluster, 0)
	for _, h := range ar.handles() {
		cl := ar.get(h)
		cl.Each(func(m board.Coordinate) {
			if owner[m] != h {
				panic(&InvariantError{Rule: "cluster-overlap", Message: fmt.Sprintf("%s claimed by clusters %d and %d", m, owner[m], h)})
			}
		})
		p.anchorCommand(cl)
		out = append(out, cl)
	}
	return out
}

// split resolves illegal welds. A cluster holding an illegal pair (a, b)
// is replaced by two alternatives, what a still reaches without b and what b
// still reaches without a; both go back on the queue until no alternative
// holds an illegal pair.
func (p *pass) split(clusters []*Cluster) []*Cluster {
	queue := append([]*Cluster(nil), clusters...)
	seen := make(map[string]bool)
	var final []*Cluster

	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]

		key := c.key()
		if seen[key] {
			continue
		}
		seen[key] = true

		a, b, ok := p.illegalPair(c)
		if !ok {
			final = append(final, c)
			continue
		}
		queue = append(queue,
			p.reach(a, c.Without(b)),
			p.reach(b, c.Without(a)),
		)
	}

	final = pruneDominated(final)
	p.order(final)
	return final
}

// illegalPair returns the earliest placed tile with an illegal edge inside
// the cluster, together with that neighbor.
func (p *pass) illegalPair(c *Cluster) (board.Coordinate, board.Coordinate, bool) {
	for _, m := range p.byRank(c) {
		for _, n := range p.g.Neighbors(m) {
			if c.Has(n.At) && p.illegal(m, n.At) {
				return m, n.At, true
			}
		}
	}
	return board.Coordinate{}, board.Coordinate{}, false
}

// reach collects the members of within that start touches, directly or
// through other members.
func (p *pass) reach(start board.Coordinate, within *Cluster) *Cluster {
	out := NewCluster()
	out.SetAnchor(start)
	visited := mapset.New[board.Coordinate]()
	queue := []board.Coordinate{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited.Has(current) || !within.Has(current) {
			continue
		}
		visited.Put(current)
		out.Add(current)

		for _, n := range p.g.Neighbors(current) {
			if !visited.Has(n.At) && p.touching(current, n.At) {
				queue = append(queue, n.At)
			}
		}
	}

	p.anchorCommand(out)
	return out
}

// filterInhabited drops candidates with no human aboard. The tiles of a
// dropped candidate that no surviving candidate holds are returned as
// removal clusters. A tile shared by several dropped candidates goes to the
// one with the smallest key, so the grouping ignores placement order.
func (p *pass) filterInhabited(candidates []*Cluster) (keep, drop []*Cluster) {
	claimed := mapset.New[board.Coordinate]()
	var uninhabited []*Cluster

	for _, c := range candidates {
		if p.inhabited(c) {
			keep = append(keep, c)
			c.Each(func(m board.Coordinate) { claimed.Put(m) })
		} else {
			uninhabited = append(uninhabited, c)
		}
	}
	sortByKey(uninhabited)

	for _, c := range uninhabited {
		rest := NewCluster()
		c.Each(func(m board.Coordinate) {
			if !claimed.Has(m) {
				rest.Add(m)
				claimed.Put(m)
			}
		})
		if rest.Size() == 0 {
			continue
		}
		if anchor, ok := c.Anchor(); ok && rest.Has(anchor) {
			rest.SetAnchor(anchor)
		}
		drop = append(drop, rest)
	}
	return keep, drop
}

func (p *pass) inhabited(c *Cluster) bool {
	found := false
	c.Each(func(m board.Coordinate) {
		if !found && p.inhabitedAt(m) {
			found = true
		}
	})
	return found
}

// anchorCommand makes the command cabin the anchor of the cluster holding it.
func (p *pass) anchorCommand(c *Cluster) {
	c.Each(func(m board.Coordinate) {
		if t, ok := p.g.At(m); ok && t.IsCommand() {
			c.SetAnchor(m)
		}
	})
}

// byRank lists the members of c in placement order.
func (p *pass) byRank(c *Cluster) []board.Coordinate {
	members := c.Coordinates()
	sort.SliceStable(members, func(i, j int) bool { return p.rank[members[i]] < p.rank[members[j]] })
	return members
}

// order sorts candidates by their earliest placed tile, then by size, so
// the result does not depend on discovery order.
func (p *pass) order(clusters []*Cluster) {
	first := make(map[*Cluster]int, len(clusters))
	for _, c := range clusters {
		first[c] = p.rank[p.byRank(c)[0]]
	}
	sort.SliceStable(clusters, func(i, j int) bool {
		fi, fj := first[clusters[i]], first[clusters[j]]
		if fi != fj {
			return fi < fj
		}
		return clusters[i].Size() > clusters[j].Size()
	})
}

func sortByKey(clusters []*Cluster) {
	sort.SliceStable(clusters, func(i, j int) bool { return clusters[i].key() < clusters[j].key() })
}

// checkCoverage panics unless every tile of the board is in some cluster
// and intrinsically wrong tiles stay out of every candidate.
func (p *pass) checkCoverage(problem *Problem) {
	seen := mapset.New[board.Coordinate]()
	for _, c := range problem.ToRemove {
		c.Each(func(m board.Coordinate) { seen.Put(m) })
	}
	for _, c := range problem.ToKeep {
		c.Each(func(m board.Coordinate) {
			if p.excluded.Has(m) {
				panic(&InvariantError{Rule: "wrong-tile-kept", Message: fmt.Sprintf("intrinsically wrong tile %s is a candidate", m)})
			}
			seen.Put(m)
		})
	}
	for _, c := range p.g.Occupied() {
		if !seen.Has(c) {
			panic(&InvariantError{Rule: "coverage", Message: fmt.Sprintf("tile %s is in no cluster", c)})
		}
	}
}

// pruneDominated drops candidates that are strict subsets of another one.
func pruneDominated(clusters []*Cluster) []*Cluster {
	out := make([]*Cluster, 0, len(clusters))
	for i, c := range clusters {
		dominated := false
		for j, other := range clusters {
			if i != j && other.Size() > c.Size() && other.Contains(c) {
				dominated = true
				break
			}
		}
		if !dominated {
			out = append(out, c)
		}
	}
	return out
}

func containsHandle(hs []handle, h handle) bool {
	for _, x := range hs {
		if x == h {
			return true
		}
	}
	return false
}
