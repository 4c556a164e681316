package transition

import (
	"log/slog"
	"sync"
	"time"
)

// Default animation timings, matching the site's scale-and-fade transition.
const (
	DefaultEnter = 500 * time.Millisecond
	DefaultExit  = 500 * time.Millisecond
)

// Listener receives events in the order they happen. It runs with the
// controller locked and must not call back into the controller.
type Listener func(Event)

// Config holds controller settings.
type Config struct {
	Mode     Mode
	Enter    time.Duration
	Exit     time.Duration
	Clock    Clock
	Listener Listener
	Logger   *slog.Logger
}

type instance struct {
	id    uint64
	key   string
	phase Phase
	timer Timer
}

func (in *instance) snapshot() Instance {
	return Instance{ID: in.id, Key: in.key, Phase: in.phase}
}

func (in *instance) stopTimer() {
	if in.timer != nil {
		in.timer.Stop()
		in.timer = nil
	}
}

// Controller owns the lifecycle of the views for one navigation context.
// At most two instances are mounted at a time: the current one (entering or
// visible) and the one leaving (exiting). In sequential mode the incoming
// instance waits, unmounted, until the exit completes.
type Controller struct {
	mu       sync.Mutex
	mode     Mode
	enter    time.Duration
	exit     time.Duration
	clock    Clock
	listener Listener
	logger   *slog.Logger

	nextID  uint64
	seq     uint64
	current *instance
	leaving *instance
	waiting *instance
	closed  bool
}

// NewController creates a controller with nothing mounted.
func NewController(cfg Config) *Controller {
	c := &Controller{
		mode:     cfg.Mode,
		enter:    cfg.Enter,
		exit:     cfg.Exit,
		clock:    cfg.Clock,
		listener: cfg.Listener,
		logger:   cfg.Logger,
	}
	if c.mode == "" {
		c.mode = Crossfade
	}
	if c.clock == nil {
		c.clock = SystemClock()
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return c
}

// Mode returns the overlap policy in effect.
func (c *Controller) Mode() Mode { return c.mode }

// Navigate makes key the current view. It reports false when key is already
// the newest view, in which case nothing changes.
func (c *Controller) Navigate(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	if newest := c.newest(); newest != nil && newest.key == key {
		return false
	}

	// A view still animating out is cut short: last navigation wins.
	if c.leaving != nil {
		c.remove(c.leaving)
		c.leaving = nil
	}
	c.waiting = nil

	if out := c.current; out != nil {
		c.current = nil
		c.leaving = out
		c.beginExit(out)
	}

	c.nextID++
	in := &instance{id: c.nextID, key: key, phase: Entering}
	if c.mode == Sequential && c.leaving != nil {
		c.waiting = in
		return true
	}
	c.mount(in)
	return true
}

// Current returns the key of the newest view, or "" before any navigation.
func (c *Controller) Current() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if newest := c.newest(); newest != nil {
		return newest.key
	}
	return ""
}

// Snapshot returns the mounted instances in render order, leaving view
// first, together with the sequence number of the last event they reflect.
func (c *Controller) Snapshot() ([]Instance, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Instance, 0, 2)
	if c.leaving != nil {
		out = append(out, c.leaving.snapshot())
	}
	if c.current != nil {
		out = append(out, c.current.snapshot())
	}
	return out, c.seq
}

// Close unmounts everything and stops all timers. Later calls to Navigate
// are ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	if c.leaving != nil {
		c.remove(c.leaving)
		c.leaving = nil
	}
	if c.current != nil {
		c.remove(c.current)
		c.current = nil
	}
	c.waiting = nil
}

func (c *Controller) newest() *instance {
	if c.waiting != nil {
		return c.waiting
	}
	return c.current
}

func (c *Controller) mount(in *instance) {
	c.current = in
	c.emit(Mounted, in)
	in.timer = c.schedule(c.enter, in, Entering)
}

func (c *Controller) beginExit(in *instance) {
	in.stopTimer()
	in.phase = Exiting
	c.emit(PhaseChanged, in)
	in.timer = c.schedule(c.exit, in, Exiting)
}

func (c *Controller) remove(in *instance) {
	in.stopTimer()
	in.phase = Unmounted
	c.emit(Removed, in)
}

// schedule arms the timer that ends the given phase. Non-positive durations
// complete immediately.
func (c *Controller) schedule(d time.Duration, in *instance, phase Phase) Timer {
	if d <= 0 {
		c.complete(in, phase)
		return nil
	}
	id := in.id
	return c.clock.AfterFunc(d, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.fire(id, phase)
	})
}

// fire runs a timer callback, dropping it if its instance has moved on.
func (c *Controller) fire(id uint64, phase Phase) {
	var in *instance
	switch {
	case c.current != nil && c.current.id == id:
		in = c.current
	case c.leaving != nil && c.leaving.id == id:
		in = c.leaving
	}
	if in == nil || in.phase != phase {
		c.logger.Debug("ignoring stale transition timer", "instance", id, "phase", phase.String())
		return
	}
	in.timer = nil
	c.complete(in, phase)
}

func (c *Controller) complete(in *instance, phase Phase) {
	switch phase {
	case Entering:
		in.phase = Visible
		c.emit(PhaseChanged, in)
	case Exiting:
		c.remove(in)
		if c.leaving == in {
			c.leaving = nil
		}
		if next := c.waiting; next != nil && c.leaving == nil {
			c.waiting = nil
			c.mount(next)
		}
	}
}

func (c *Controller) emit(kind EventKind, in *instance) {
	c.seq++
	if c.listener != nil {
		c.listener(Event{Seq: c.seq, Kind: kind, Instance: in.snapshot()})
	}
}
