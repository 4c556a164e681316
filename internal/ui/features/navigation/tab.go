package navigation

import (
	"sync"
	"time"

	"github.com/leapstack-labs/portfolio/internal/route"
	"github.com/leapstack-labs/portfolio/internal/transition"
)

// maxQueue bounds the events a tab buffers for a stream that is not
// draining. Past it the queue is dropped and the stream resyncs.
const maxQueue = 64

// Tab is the navigation state of one page load: its transition controller
// and the events waiting to be streamed to the browser.
type Tab struct {
	id    string
	owner string
	ctrl  *transition.Controller
	now   func() time.Time

	// nav serializes Navigate so match bookkeeping follows controller order.
	nav sync.Mutex

	mu       sync.Mutex
	queue    []transition.Event
	resync   bool
	matches  map[string]route.Match
	stream   *Stream
	gen      uint64
	lastSeen time.Time
}

// Stream is one outlet connection attached to a tab. Only the newest stream
// of a tab receives events; attaching another closes Done on the previous
// one.
type Stream struct {
	tab  *Tab
	gen  uint64
	wake chan struct{}
	done chan struct{}
}

func newTab(id, owner string, cfg transition.Config, now func() time.Time) *Tab {
	t := &Tab{
		id:       id,
		owner:    owner,
		now:      now,
		matches:  make(map[string]route.Match),
		lastSeen: now(),
	}
	cfg.Listener = t.enqueue
	t.ctrl = transition.NewController(cfg)
	return t
}

func (t *Tab) ID() string { return t.id }

// Owner is the visitor id of the session that opened the tab.
func (t *Tab) Owner() string { return t.owner }

// Navigate moves the tab to m, reporting whether the view changed.
func (t *Tab) Navigate(m route.Match) bool {
	t.nav.Lock()
	defer t.nav.Unlock()

	key := m.Key()
	t.mu.Lock()
	t.matches[key] = m
	t.lastSeen = t.now()
	t.mu.Unlock()

	changed := t.ctrl.Navigate(key)
	t.prune()
	return changed
}

// Empty reports whether the tab has never been navigated.
func (t *Tab) Empty() bool { return t.ctrl.Current() == "" }

// Current returns the match of the newest view.
func (t *Tab) Current() (route.Match, bool) {
	return t.Match(t.ctrl.Current())
}

// Match returns the route match recorded for a view key.
func (t *Tab) Match(key string) (route.Match, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	m, ok := t.matches[key]
	return m, ok
}

// Resync returns the mounted instances and discards every queued event
// they already reflect.
func (t *Tab) Resync() []transition.Instance {
	instances, seq := t.ctrl.Snapshot()

	t.mu.Lock()
	defer t.mu.Unlock()
	t.trimLocked(seq)
	return instances
}

// Drain removes and returns the queued events. When the queue overflowed it
// returns resync=true and no events; the caller must Resync instead.
func (t *Tab) Drain() (events []transition.Event, resync bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.drainLocked()
}

func (t *Tab) trimLocked(seq uint64) {
	kept := t.queue[:0]
	for _, e := range t.queue {
		if e.Seq > seq {
			kept = append(kept, e)
		}
	}
	t.queue = kept
	t.resync = false
}

func (t *Tab) drainLocked() ([]transition.Event, bool) {
	if t.resync {
		return nil, true
	}
	events := t.queue
	t.queue = nil
	return events, false
}

// attach makes a new stream current, superseding the previous one.
func (t *Tab) attach() *Stream {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stream != nil {
		close(t.stream.done)
	}
	t.gen++
	s := &Stream{
		tab:  t,
		gen:  t.gen,
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	t.stream = s
	t.lastSeen = t.now()
	return s
}

// idleSince reports when the tab was last used, and false while a stream
// is attached.
func (t *Tab) idleSince() (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastSeen, t.stream == nil
}

func (t *Tab) close() { t.ctrl.Close() }

// enqueue runs with the controller locked.
func (t *Tab) enqueue(e transition.Event) {
	t.mu.Lock()
	if len(t.queue) >= maxQueue {
		t.queue = nil
		t.resync = true
	} else if !t.resync {
		t.queue = append(t.queue, e)
	}
	var wake chan struct{}
	if t.stream != nil {
		wake = t.stream.wake
	}
	t.mu.Unlock()

	if wake != nil {
		select {
		case wake <- struct{}{}:
		default:
		}
	}
}

// prune forgets matches no view or queued event refers to.
func (t *Tab) prune() {
	instances, _ := t.ctrl.Snapshot()
	current := t.ctrl.Current()

	t.mu.Lock()
	defer t.mu.Unlock()
	live := map[string]bool{current: true}
	for _, in := range instances {
		live[in.Key] = true
	}
	for _, e := range t.queue {
		live[e.Instance.Key] = true
	}
	for key := range t.matches {
		if !live[key] {
			delete(t.matches, key)
		}
	}
}

func (s *Stream) Tab() *Tab { return s.tab }

// Wake signals when events are queued for this stream.
func (s *Stream) Wake() <-chan struct{} { return s.wake }

// Done is closed once a newer stream attaches to the tab.
func (s *Stream) Done() <-chan struct{} { return s.done }

// Resync is Tab.Resync for the current stream. A superseded stream gets
// ok=false and leaves the queue to its successor.
func (s *Stream) Resync() (instances []transition.Instance, ok bool) {
	t := s.tab
	instances, seq := t.ctrl.Snapshot()

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.gen != s.gen {
		return nil, false
	}
	t.trimLocked(seq)
	return instances, true
}

// Drain is Tab.Drain for the current stream. A superseded stream drains
// nothing.
func (s *Stream) Drain() (events []transition.Event, resync bool) {
	t := s.tab
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.gen != s.gen {
		return nil, false
	}
	return t.drainLocked()
}

// Release detaches the stream. The tab stays open until swept.
func (s *Stream) Release() {
	t := s.tab
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stream == s {
		t.stream = nil
	}
	t.lastSeen = t.now()
}
