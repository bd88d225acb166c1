package lifecycle

import "fmt"

// State is the position of a Run in the lifecycle.
type State int

const (
	Created State = iota
	Configured
	Built
	Tested
	Benchmarked
	Packaged
	Done
	Failed
)

var stateNames = [...]string{
	Created:     "created",
	Configured:  "configured",
	Built:       "built",
	Tested:      "tested",
	Benchmarked: "benchmarked",
	Packaged:    "packaged",
	Done:        "done",
	Failed:      "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// IsTerminal reports whether no further transition is possible from s.
func (s State) IsTerminal() bool {
	return s == Done || s == Failed
}

func isAllowedTransition(from, to State) bool {
	if from.IsTerminal() {
		return false
	}
	if to == Failed {
		return true
	}
	switch from {
	case Created:
		return to == Configured
	case Configured:
		return to == Built
	case Built:
		return to == Tested
	case Tested:
		return to == Benchmarked || to == Packaged
	case Benchmarked:
		return to == Packaged
	case Packaged:
		return to == Done
	}
	return false
}
