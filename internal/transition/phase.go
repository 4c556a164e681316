// Package transition runs the enter/exit lifecycle of routed views.
//
// Each navigation to a new key mounts a view instance that enters, becomes
// visible once its enter animation has elapsed, and exits when the next key
// arrives. Timers are cancelled when an instance is superseded, and any
// callback that still fires is checked against the instance it was armed for.
package transition

import "fmt"

// Phase is the position of an instance in its lifecycle.
type Phase int

const (
	Entering Phase = iota
	Visible
	Exiting
	Unmounted
)

func (p Phase) String() string {
	switch p {
	case Entering:
		return "entering"
	case Visible:
		return "visible"
	case Exiting:
		return "exiting"
	case Unmounted:
		return "unmounted"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Mode decides whether entering and exiting views overlap.
type Mode string

const (
	// Crossfade renders the exiting and entering views together.
	Crossfade Mode = "crossfade"
	// Sequential mounts the entering view only after the exit completes.
	Sequential Mode = "sequential"
)

// ParseMode converts a config value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case Crossfade, Sequential:
		return Mode(s), nil
	case "":
		return Crossfade, nil
	default:
		return "", fmt.Errorf("unknown transition mode %q (want %s or %s)", s, Crossfade, Sequential)
	}
}

// Instance is a snapshot of one mounted view.
type Instance struct {
	ID    uint64
	Key   string
	Phase Phase
}

// EventKind classifies controller events.
type EventKind int

const (
	Mounted EventKind = iota
	PhaseChanged
	Removed
)

func (k EventKind) String() string {
	switch k {
	case Mounted:
		return "mounted"
	case PhaseChanged:
		return "phase-changed"
	case Removed:
		return "removed"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event reports one state change. Seq increases by one per event.
type Event struct {
	Seq      uint64
	Kind     EventKind
	Instance Instance
}
