package transition

import (
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/portfolio/internal/testutil"
)

type fakeTimer struct {
	clock   *fakeClock
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// fakeClock fires callbacks only when advanced.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && t.at <= c.now {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()
	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.f()
	}
}

// misfire runs every stopped callback, as a timer racing its Stop would.
func (c *fakeClock) misfire() {
	c.mu.Lock()
	var stale []*fakeTimer
	for _, t := range c.timers {
		if t.stopped {
			stale = append(stale, t)
		}
	}
	c.mu.Unlock()
	for _, t := range stale {
		t.f()
	}
}

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) listen(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) kinds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Kind.String()+":"+e.Instance.Key+":"+e.Instance.Phase.String())
	}
	return out
}

func newTestController(mode Mode) (*Controller, *fakeClock, *recorder) {
	clock := &fakeClock{}
	rec := &recorder{}
	c := NewController(Config{
		Mode:     mode,
		Enter:    100 * time.Millisecond,
		Exit:     200 * time.Millisecond,
		Clock:    clock,
		Listener: rec.listen,
	})
	return c, clock, rec
}

func keys(instances []Instance) []string {
	out := make([]string, 0, len(instances))
	for _, in := range instances {
		out = append(out, in.Key+":"+in.Phase.String())
	}
	return out
}

func TestController_FirstNavigationEntersThenSettles(t *testing.T) {
	c, clock, rec := newTestController(Crossfade)

	assert.True(t, c.Navigate("home"))
	got, _ := c.Snapshot()
	assert.Equal(t, []string{"home:entering"}, keys(got))

	clock.Advance(100 * time.Millisecond)
	got, _ = c.Snapshot()
	assert.Equal(t, []string{"home:visible"}, keys(got))
	assert.Equal(t, []string{"mounted:home:entering", "phase-changed:home:visible"}, rec.kinds())
}

func TestController_CrossfadeOverlapsViews(t *testing.T) {
	c, clock, rec := newTestController(Crossfade)

	c.Navigate("home")
	clock.Advance(100 * time.Millisecond)
	c.Navigate("projects")

	got, _ := c.Snapshot()
	assert.Equal(t, []string{"home:exiting", "projects:entering"}, keys(got))

	clock.Advance(100 * time.Millisecond)
	got, _ = c.Snapshot()
	assert.Equal(t, []string{"home:exiting", "projects:visible"}, keys(got))

	clock.Advance(100 * time.Millisecond)
	got, _ = c.Snapshot()
	assert.Equal(t, []string{"projects:visible"}, keys(got))

	assert.Equal(t, []string{
		"mounted:home:entering",
		"phase-changed:home:visible",
		"phase-changed:home:exiting",
		"mounted:projects:entering",
		"phase-changed:projects:visible",
		"removed:home:unmounted",
	}, rec.kinds())
}

func TestController_SequentialWaitsForExit(t *testing.T) {
	c, clock, rec := newTestController(Sequential)

	c.Navigate("home")
	clock.Advance(100 * time.Millisecond)
	c.Navigate("about")

	got, _ := c.Snapshot()
	assert.Equal(t, []string{"home:exiting"}, keys(got))
	assert.Equal(t, "about", c.Current())

	clock.Advance(200 * time.Millisecond)
	got, _ = c.Snapshot()
	assert.Equal(t, []string{"about:entering"}, keys(got))

	clock.Advance(100 * time.Millisecond)
	got, _ = c.Snapshot()
	assert.Equal(t, []string{"about:visible"}, keys(got))

	assert.Equal(t, []string{
		"mounted:home:entering",
		"phase-changed:home:visible",
		"phase-changed:home:exiting",
		"removed:home:unmounted",
		"mounted:about:entering",
		"phase-changed:about:visible",
	}, rec.kinds())
}

func TestController_SameKeyIsNoop(t *testing.T) {
	c, clock, rec := newTestController(Crossfade)

	c.Navigate("home")
	clock.Advance(time.Second)
	before := len(rec.kinds())

	assert.False(t, c.Navigate("home"))
	assert.Len(t, rec.kinds(), before)
	got, _ := c.Snapshot()
	assert.Equal(t, []string{"home:visible"}, keys(got))
}

func TestController_SameKeyWhilePendingIsNoop(t *testing.T) {
	c, clock, _ := newTestController(Sequential)

	c.Navigate("home")
	clock.Advance(time.Second)
	c.Navigate("about")
	assert.False(t, c.Navigate("about"))

	clock.Advance(200 * time.Millisecond)
	got, _ := c.Snapshot()
	assert.Equal(t, []string{"about:entering"}, keys(got))
}

func TestController_RapidNavigationLastWins(t *testing.T) {
	for _, mode := range []Mode{Crossfade, Sequential} {
		t.Run(string(mode), func(t *testing.T) {
			c, clock, _ := newTestController(mode)

			c.Navigate("a")
			c.Navigate("b")
			c.Navigate("c")
			c.Navigate("d")

			got, _ := c.Snapshot()
			assert.LessOrEqual(t, len(got), 2)
			assert.Equal(t, "d", c.Current())

			clock.Advance(time.Second)
			clock.Advance(time.Second)
			got, _ = c.Snapshot()
			assert.Equal(t, []string{"d:visible"}, keys(got))
		})
	}
}

func TestController_AtMostOneEnteringAndOneExiting(t *testing.T) {
	c, clock, rec := newTestController(Crossfade)

	mounted := map[uint64]Phase{}
	check := func() {
		entering, exiting := 0, 0
		for _, p := range mounted {
			switch p {
			case Entering, Visible:
				entering++
			case Exiting:
				exiting++
			}
		}
		require.LessOrEqual(t, entering, 1)
		require.LessOrEqual(t, exiting, 1)
	}
	steps := []string{"a", "b", "c", "b", "a", "d"}
	for i, key := range steps {
		c.Navigate(key)
		clock.Advance(time.Duration(i*40) * time.Millisecond)
	}
	clock.Advance(time.Second)

	for _, e := range rec.events {
		if e.Kind == Removed {
			delete(mounted, e.Instance.ID)
		} else {
			mounted[e.Instance.ID] = e.Instance.Phase
		}
		check()
	}
}

func TestController_StaleTimersAreIgnored(t *testing.T) {
	c, clock, rec := newTestController(Crossfade)

	c.Navigate("home")
	c.Navigate("projects")
	c.Navigate("about")
	before := rec.kinds()

	// Callbacks for superseded instances must not resurrect or re-remove them.
	clock.misfire()
	assert.Equal(t, before, rec.kinds())

	got, _ := c.Snapshot()
	assert.Equal(t, []string{"projects:exiting", "about:entering"}, keys(got))
}

func TestController_StaleTimersAreLogged(t *testing.T) {
	logger, logs := testutil.NewCaptureLogger()
	clock := &fakeClock{}
	c := NewController(Config{
		Enter:  100 * time.Millisecond,
		Exit:   200 * time.Millisecond,
		Clock:  clock,
		Logger: logger,
	})

	c.Navigate("home")
	c.Navigate("projects")
	c.Navigate("about")
	clock.misfire()

	assert.Contains(t, logs.Messages(slog.LevelDebug), "ignoring stale transition timer")
	_, ok := logs.Attr("ignoring stale transition timer", "phase")
	assert.True(t, ok)
}

func TestController_EventSequence(t *testing.T) {
	c, clock, rec := newTestController(Crossfade)

	c.Navigate("home")
	clock.Advance(time.Second)
	c.Navigate("about")

	_, seq := c.Snapshot()
	require.NotEmpty(t, rec.events)
	for i, e := range rec.events {
		assert.Equal(t, uint64(i+1), e.Seq)
	}
	assert.Equal(t, rec.events[len(rec.events)-1].Seq, seq)
}

func TestController_ZeroDurationsSettleImmediately(t *testing.T) {
	rec := &recorder{}
	c := NewController(Config{Clock: &fakeClock{}, Listener: rec.listen})

	c.Navigate("home")
	c.Navigate("about")

	got, _ := c.Snapshot()
	assert.Equal(t, []string{"about:visible"}, keys(got))
	assert.Equal(t, []string{
		"mounted:home:entering",
		"phase-changed:home:visible",
		"phase-changed:home:exiting",
		"removed:home:unmounted",
		"mounted:about:entering",
		"phase-changed:about:visible",
	}, rec.kinds())
}

func TestController_ZeroDurationsSequential(t *testing.T) {
	c := NewController(Config{Mode: Sequential, Clock: &fakeClock{}})

	c.Navigate("home")
	c.Navigate("about")

	got, _ := c.Snapshot()
	assert.Equal(t, []string{"about:visible"}, keys(got))
}

func TestController_Close(t *testing.T) {
	c, clock, rec := newTestController(Crossfade)

	c.Navigate("home")
	clock.Advance(time.Second)
	c.Navigate("about")
	c.Close()

	got, _ := c.Snapshot()
	assert.Empty(t, got)
	assert.False(t, c.Navigate("contact"))

	before := rec.kinds()
	clock.Advance(time.Second)
	clock.misfire()
	assert.Equal(t, before, rec.kinds())

	c.Close()
	assert.Equal(t, before, rec.kinds())
}

func TestController_DefaultsToCrossfade(t *testing.T) {
	c := NewController(Config{})
	assert.Equal(t, Crossfade, c.Mode())
	c.Close()
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", Crossfade, false},
		{"crossfade", Crossfade, false},
		{"sequential", Sequential, false},
		{"wait", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
