// Package game runs integrity resolution for player ships and drives the
// interactive terminal session.
package game

// State is a ship's position in the resolution cycle:
// Idle → Analyzed → AutoResolved | PendingChoice → Applied → Idle.
type State int

const (
	// StateIdle accepts structural changes.
	StateIdle State = iota
	// StateAnalyzed holds a fresh integrity problem.
	StateAnalyzed
	// StateAutoResolved means the problem settled without a player decision.
	StateAutoResolved
	// StatePendingChoice waits for the player to pick a surviving fragment.
	StatePendingChoice
	// StateApplied means the removals have been made.
	StateApplied
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAnalyzed:
		return "analyzed"
	case StateAutoResolved:
		return "auto_resolved"
	case StatePendingChoice:
		return "pending_choice"
	case StateApplied:
		return "applied"
	default:
		return "unknown"
	}
}

// Mode is what the interactive session is doing.
type Mode int

const (
	// ModeInspect lets the player move the cursor and knock out tiles.
	ModeInspect Mode = iota
	// ModeChoose asks the player which fragment to keep.
	ModeChoose
	// ModeLost is shown once the ship can no longer fly.
	ModeLost
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeInspect:
		return "inspect"
	case ModeChoose:
		return "choose"
	case ModeLost:
		return "lost"
	default:
		return "unknown"
	}
}
