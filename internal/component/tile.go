package component

import (
	"errors"
	"fmt"
)

var (
	ErrTilePlaced = errors.New("component: tile already placed")
	ErrBadMount   = errors.New("component: mount sides do not match category")
	ErrNoPayload  = errors.New("component: tile has no payload")
	ErrMissingID  = errors.New("component: tile has no id")
)

// Category is the closed set of tile kinds.
type Category int

const (
	CategoryStructural Category = iota
	CategoryCabin
	CategoryCargo
	CategoryBattery
	CategoryCannon
	CategoryEngine
	CategoryShield
	CategoryLifeSupport
)

// String returns a human-readable category name.
func (c Category) String() string {
	switch c {
	case CategoryStructural:
		return "structural"
	case CategoryCabin:
		return "cabin"
	case CategoryCargo:
		return "cargo"
	case CategoryBattery:
		return "battery"
	case CategoryCannon:
		return "cannon"
	case CategoryEngine:
		return "engine"
	case CategoryShield:
		return "shield"
	case CategoryLifeSupport:
		return "life_support"
	default:
		return "unknown"
	}
}

// Payload is the category-specific part of a tile. The set of
// implementations is closed: only the types in this file satisfy it.
type Payload interface {
	category() Category
}

// Structural is a bare hull segment.
type Structural struct{}

// Cabin houses crew. The command cabin is the ship's starting tile.
type Cabin struct {
	Humans  int
	Aliens  int
	Command bool
}

// Cargo holds goods.
type Cargo struct {
	Slots   int
	Special bool
}

// Battery stores energy charges.
type Battery struct {
	Charges int
}

// Cannon fires through its mount side.
type Cannon struct {
	Double bool
}

// Engine thrusts through its mount side.
type Engine struct {
	Double bool
}

// Shield protects two adjacent directions, given in base orientation.
type Shield struct {
	Covers [2]Direction
}

// LifeSupport sustains one alien species in neighboring cabins.
type LifeSupport struct {
	Species string
}

func (Structural) category() Category  { return CategoryStructural }
func (Cabin) category() Category       { return CategoryCabin }
func (Cargo) category() Category       { return CategoryCargo }
func (Battery) category() Category     { return CategoryBattery }
func (Cannon) category() Category      { return CategoryCannon }
func (Engine) category() Category      { return CategoryEngine }
func (Shield) category() Category      { return CategoryShield }
func (LifeSupport) category() Category { return CategoryLifeSupport }

// Tile is one piece of a ship. Sides are stored in base orientation and
// resolved through the rotation, which is frozen once the tile is placed.
type Tile struct {
	ID       string
	Payload  Payload
	sides    [4]Connector
	rotation int
	placed   bool
}

// New creates an unplaced tile in base orientation.
func New(id string, sides [4]Connector, payload Payload) *Tile {
	return &Tile{ID: id, Payload: payload, sides: sides}
}

// Validate checks that mount sides agree with the category: engines carry
// exactly one engine mount, cannons exactly one cannon mount, others none.
func (t *Tile) Validate() error {
	if t.ID == "" {
		return ErrMissingID
	}
	if t.Payload == nil {
		return fmt.Errorf("%s: %w", t.ID, ErrNoPayload)
	}
	engines, cannons := 0, 0
	for _, c := range t.sides {
		switch c {
		case ConnectorEngineMount:
			engines++
		case ConnectorCannonMount:
			cannons++
		}
	}
	wantEngines, wantCannons := 0, 0
	switch t.Category() {
	case CategoryEngine:
		wantEngines = 1
	case CategoryCannon:
		wantCannons = 1
	}
	if engines != wantEngines || cannons != wantCannons {
		return fmt.Errorf("%s (%s): %w", t.ID, t.Category(), ErrBadMount)
	}
	return nil
}

// Category returns the tile's kind.
func (t *Tile) Category() Category {
	switch p := t.Payload.(type) {
	case Structural, Cabin, Cargo, Battery, Cannon, Engine, Shield, LifeSupport:
		return p.category()
	case nil:
		return CategoryStructural
	default:
		panic(fmt.Sprintf("component: unknown payload %T", p))
	}
}

// Side returns the connector currently facing the given direction.
func (t *Tile) Side(d Direction) Connector {
	return t.sides[d.Rotate(-t.rotation)]
}

// BaseSides returns the sides in base orientation.
func (t *Tile) BaseSides() [4]Connector {
	return t.sides
}

// Rotation returns the number of clockwise quarter turns applied.
func (t *Tile) Rotation() int {
	return t.rotation
}

// Rotate turns the tile clockwise. It fails once the tile is on a board.
func (t *Tile) Rotate(quarters int) error {
	if t.placed {
		return fmt.Errorf("rotate %s: %w", t.ID, ErrTilePlaced)
	}
	t.rotation = ((t.rotation+quarters)%4 + 4) % 4
	return nil
}

// Placed returns true once the tile has been fixed to a board.
func (t *Tile) Placed() bool {
	return t.placed
}

// Fix freezes the tile's orientation. Boards call this on placement.
func (t *Tile) Fix() {
	t.placed = true
}

// Clone returns an unplaced copy with the same orientation.
func (t *Tile) Clone() *Tile {
	c := *t
	c.placed = false
	return &c
}

// MountDirection returns the current direction of the tile's mount side,
// if it has one.
func (t *Tile) MountDirection() (Direction, bool) {
	for _, d := range Directions {
		if t.Side(d).IsMount() {
			return d, true
		}
	}
	return North, false
}

// Humans returns the human crew a cabin starts with; zero for other tiles.
func (t *Tile) Humans() int {
	if c, ok := t.Payload.(Cabin); ok {
		return c.Humans
	}
	return 0
}

// IsCommand returns true for the command cabin.
func (t *Tile) IsCommand() bool {
	c, ok := t.Payload.(Cabin)
	return ok && c.Command
}

// Glyph returns the single character used to draw the tile.
func (t *Tile) Glyph() rune {
	switch t.Category() {
	case CategoryStructural:
		return '+'
	case CategoryCabin:
		if t.IsCommand() {
			return '@'
		}
		return 'C'
	case CategoryCargo:
		return '$'
	case CategoryBattery:
		return 'B'
	case CategoryCannon:
		return 'G'
	case CategoryEngine:
		return 'E'
	case CategoryShield:
		return 'S'
	case CategoryLifeSupport:
		return 'L'
	default:
		return '?'
	}
}
