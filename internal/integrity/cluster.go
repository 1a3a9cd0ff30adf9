package integrity

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/shipyard/internal/board"
)

// Cluster is a set of tiles treated as one structural unit, with an
// optional anchor tile (the seed, or the command cabin when present).
type Cluster struct {
	tiles     mapset.Set[board.Coordinate]
	anchor    board.Coordinate
	hasAnchor bool
}

// NewCluster creates a cluster holding the given coordinates.
func NewCluster(coords ...board.Coordinate) *Cluster {
	c := &Cluster{tiles: mapset.New[board.Coordinate]()}
	for _, coord := range coords {
		c.tiles.Put(coord)
	}
	return c
}

// Add puts a coordinate into the cluster.
func (c *Cluster) Add(coord board.Coordinate) {
	c.tiles.Put(coord)
}

// Has returns true if the coordinate belongs to the cluster.
func (c *Cluster) Has(coord board.Coordinate) bool {
	return c.tiles.Has(coord)
}

// Size returns the number of tiles in the cluster.
func (c *Cluster) Size() int {
	return c.tiles.Size()
}

// SetAnchor marks a member as the cluster's anchor.
func (c *Cluster) SetAnchor(coord board.Coordinate) {
	c.anchor = coord
	c.hasAnchor = true
}

// Anchor returns the anchor tile, if any.
func (c *Cluster) Anchor() (board.Coordinate, bool) {
	return c.anchor, c.hasAnchor
}

// Coordinates returns the members in row-major order.
func (c *Cluster) Coordinates() []board.Coordinate {
	out := make([]board.Coordinate, 0, c.tiles.Size())
	c.tiles.Each(func(coord board.Coordinate) {
		out = append(out, coord)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Each calls fn for every member in no particular order.
func (c *Cluster) Each(fn func(board.Coordinate)) {
	c.tiles.Each(fn)
}

// Absorb adds every member of other. The anchor is kept unless c has none.
func (c *Cluster) Absorb(other *Cluster) {
	other.tiles.Each(func(coord board.Coordinate) {
		c.tiles.Put(coord)
	})
	if !c.hasAnchor && other.hasAnchor {
		c.SetAnchor(other.anchor)
	}
}

// Without returns a copy of c lacking the given coordinates.
func (c *Cluster) Without(coords ...board.Coordinate) *Cluster {
	out := NewCluster()
	c.tiles.Each(func(coord board.Coordinate) {
		out.tiles.Put(coord)
	})
	for _, coord := range coords {
		out.tiles.Remove(coord)
	}
	if c.hasAnchor && out.Has(c.anchor) {
		out.SetAnchor(c.anchor)
	}
	return out
}

// Contains returns true if every member of other is in c.
func (c *Cluster) Contains(other *Cluster) bool {
	all := true
	other.tiles.Each(func(coord board.Coordinate) {
		if !c.tiles.Has(coord) {
			all = false
		}
	})
	return all
}

// Equal returns true if both clusters hold the same tiles.
func (c *Cluster) Equal(other *Cluster) bool {
	return c.Size() == other.Size() && c.Contains(other)
}

// key identifies a cluster's contents for de-duplication.
func (c *Cluster) key() string {
	var sb strings.Builder
	for _, coord := range c.Coordinates() {
		fmt.Fprintf(&sb, "%d,%d;", coord.Row, coord.Col)
	}
	return sb.String()
}

// String lists the members.
func (c *Cluster) String() string {
	parts := make([]string, 0, c.Size())
	for _, coord := range c.Coordinates() {
		parts = append(parts, coord.String())
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// handle addresses a cluster in an arena.
type handle int

// arena owns the clusters of one analysis pass. Merges and splits retire
// old handles and issue new ones; a retired handle is never reused.
type arena struct {
	clusters []*Cluster
	live     []bool
}

func (a *arena) add(c *Cluster) handle {
	a.clusters = append(a.clusters, c)
	a.live = append(a.live, true)
	return handle(len(a.clusters) - 1)
}

func (a *arena) get(h handle) *Cluster {
	if !a.live[h] {
		panic(&InvariantError{Rule: "arena-retired", Message: fmt.Sprintf("cluster handle %d used after retirement", h)})
	}
	return a.clusters[h]
}

func (a *arena) retire(h handle) {
	a.live[h] = false
}

// handles returns the live handles in issue order.
func (a *arena) handles() []handle {
	out := make([]handle, 0, len(a.clusters))
	for h, ok := range a.live {
		if ok {
			out = append(out, handle(h))
		}
	}
	return out
}
