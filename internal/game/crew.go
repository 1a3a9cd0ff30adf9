package game

import (
	"sync"

	"github.com/samdwyer/shipyard/internal/board"
	"github.com/samdwyer/shipyard/internal/component"
)

// Roster tracks the humans aboard each cabin of one ship.
type Roster struct {
	mu     sync.RWMutex
	humans map[board.Coordinate]int
}

// NewRoster boards every cabin of g with its starting crew.
func NewRoster(g *board.Graph) *Roster {
	r := &Roster{humans: make(map[board.Coordinate]int)}
	for _, c := range g.Occupied() {
		if t, ok := g.At(c); ok && t.Humans() > 0 {
			r.humans[c] = t.Humans()
		}
	}
	return r
}

// HasHumanOccupant returns true if at least one human is in the cabin at c.
func (r *Roster) HasHumanOccupant(c board.Coordinate, _ *component.Tile) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.humans[c] > 0
}

// Board adds crew to the tile at c.
func (r *Roster) Board(c board.Coordinate, n int) {
	if n <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.humans[c] += n
}

// Lose drops everyone aboard the given tiles.
func (r *Roster) Lose(coords []board.Coordinate) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	lost := 0
	for _, c := range coords {
		lost += r.humans[c]
		delete(r.humans, c)
	}
	return lost
}

// Total returns the number of humans aboard.
func (r *Roster) Total() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := 0
	for _, n := range r.humans {
		total += n
	}
	return total
}
