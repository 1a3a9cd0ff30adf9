package integrity

import (
	"errors"
	"fmt"
)

// ErrInvalidChoice is returned when a cluster index is missing, superfluous
// or out of range. The board is never touched when it is returned.
var ErrInvalidChoice = errors.New("integrity: invalid choice")

// IsInvalidChoice reports whether err is an invalid-choice error.
func IsInvalidChoice(err error) bool { return errors.Is(err, ErrInvalidChoice) }

// InvariantError signals a broken internal invariant. It is raised with
// panic: an analysis pass that hits one cannot produce a trustworthy
// partition.
//
// Rule is a stable identifier for the violated invariant.
type InvariantError struct {
	Rule    string
	Message string
}

func (e *InvariantError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("integrity invariant %s: %s", e.Rule, e.Message)
}
