package component

// Direction is a compass direction on the ship board.
// North is toward the bow, South toward the stern.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists all directions in clockwise order.
var Directions = [4]Direction{North, East, South, West}

// String returns a human-readable direction name.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// ParseDirection converts a direction name back to a Direction.
func ParseDirection(name string) (Direction, bool) {
	for _, d := range Directions {
		if d.String() == name {
			return d, true
		}
	}
	return North, false
}

// Opposite returns the direction facing the other way.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Rotate turns the direction clockwise by the given number of quarter turns.
func (d Direction) Rotate(quarters int) Direction {
	return Direction(((int(d)+quarters)%4 + 4) % 4)
}

// Delta returns the row and column offsets of one step in this direction.
func (d Direction) Delta() (dr, dc int) {
	switch d {
	case North:
		return -1, 0
	case East:
		return 0, 1
	case South:
		return 1, 0
	case West:
		return 0, -1
	default:
		return 0, 0
	}
}
