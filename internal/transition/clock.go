package transition

import "time"

// Timer is a pending callback that can be cancelled.
type Timer interface {
	// Stop prevents the callback from running, reporting false if it already
	// ran or was already stopped.
	Stop() bool
}

// Clock schedules phase callbacks.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemClock returns a Clock backed by the time package.
func SystemClock() Clock { return systemClock{} }
