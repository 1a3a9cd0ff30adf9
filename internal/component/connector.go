// Package component models ship tiles and the connectors on their sides.
package component

// Connector is the kind of fitting carried by one side of a tile.
type Connector int

const (
	// ConnectorNone is a smooth side with nothing to weld to.
	ConnectorNone Connector = iota
	// ConnectorSingle is a single pipe connector.
	ConnectorSingle
	// ConnectorDouble is a double pipe connector.
	ConnectorDouble
	// ConnectorUniversal fits both single and double connectors.
	ConnectorUniversal
	// ConnectorCannonMount is the barrel side of a cannon.
	ConnectorCannonMount
	// ConnectorEngineMount is the exhaust side of an engine.
	ConnectorEngineMount
)

// String returns a human-readable connector name.
func (c Connector) String() string {
	switch c {
	case ConnectorNone:
		return "none"
	case ConnectorSingle:
		return "single"
	case ConnectorDouble:
		return "double"
	case ConnectorUniversal:
		return "universal"
	case ConnectorCannonMount:
		return "cannon"
	case ConnectorEngineMount:
		return "engine"
	default:
		return "unknown"
	}
}

// ParseConnector converts a connector name back to a Connector.
func ParseConnector(name string) (Connector, bool) {
	for c := ConnectorNone; c <= ConnectorEngineMount; c++ {
		if c.String() == name {
			return c, true
		}
	}
	return ConnectorNone, false
}

// IsPipe returns true for connectors that can carry a weld.
func (c Connector) IsPipe() bool {
	return c == ConnectorSingle || c == ConnectorDouble || c == ConnectorUniversal
}

// IsMount returns true for cannon and engine mounts.
func (c Connector) IsMount() bool {
	return c == ConnectorCannonMount || c == ConnectorEngineMount
}

// Compatible reports whether two facing connectors may be welded.
// Single fits single or universal, double fits double or universal and
// universal fits any pipe. Everything else is incompatible.
func Compatible(a, b Connector) bool {
	switch a {
	case ConnectorSingle:
		return b == ConnectorSingle || b == ConnectorUniversal
	case ConnectorDouble:
		return b == ConnectorDouble || b == ConnectorUniversal
	case ConnectorUniversal:
		return b.IsPipe()
	default:
		return false
	}
}

// Status is the state of a shared edge between two placed tiles.
type Status int

const (
	// StatusWelded means the two sides are legally joined.
	StatusWelded Status = iota
	// StatusSeparate means the tiles touch without a joint (e.g. two smooth sides).
	StatusSeparate
	// StatusIllegal means the tiles touch in a way the rules forbid.
	StatusIllegal
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusWelded:
		return "welded"
	case StatusSeparate:
		return "separate"
	case StatusIllegal:
		return "illegal"
	default:
		return "unknown"
	}
}

// Worst returns the more severe of two statuses.
func Worst(a, b Status) Status {
	if a > b {
		return a
	}
	return b
}

// Perspective judges an edge from one side only: own is the connector on the
// judging tile, facing the connector on its neighbor.
//
// A mount side is blocked by any neighbor. A pipe accepts only a compatible
// pipe and is illegal against anything else. A smooth side never objects.
func Perspective(own, facing Connector) Status {
	switch {
	case own.IsMount():
		return StatusIllegal
	case own == ConnectorNone:
		return StatusSeparate
	case Compatible(own, facing):
		return StatusWelded
	default:
		return StatusIllegal
	}
}

// EdgeStatus combines both one-directional judgements of an edge.
func EdgeStatus(a, b Connector) Status {
	return Worst(Perspective(a, b), Perspective(b, a))
}
