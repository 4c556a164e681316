// Package navigation serves the portfolio pages and drives page transitions
// from the server. Every page load opens a tab with its own transition
// controller; in-app navigation goes through /navigate and the resulting
// enter/exit phases stream to the browser over /outlet.
package navigation

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/leapstack-labs/portfolio/internal/transition"
)

// Hub defaults.
const (
	DefaultIdleTimeout       = 10 * time.Minute
	DefaultMaxTabsPerVisitor = 16
	DefaultMaxTabs           = 4096
)

// ErrTabOwner is returned when a tab id is presented by a visitor other than
// the one that opened it.
var ErrTabOwner = errors.New("tab belongs to another visitor")

// HubConfig holds hub settings.
type HubConfig struct {
	Transition        transition.Config
	IdleTimeout       time.Duration
	MaxTabsPerVisitor int
	// MaxTabs caps the open tabs across all visitors.
	MaxTabs int
	Logger  *slog.Logger
	Now     func() time.Time
}

// Hub tracks the open tabs.
type Hub struct {
	cfg    HubConfig
	logger *slog.Logger

	mu   sync.Mutex
	tabs map[string]*Tab
}

// NewHub creates an empty hub.
func NewHub(cfg HubConfig) *Hub {
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.MaxTabsPerVisitor <= 0 {
		cfg.MaxTabsPerVisitor = DefaultMaxTabsPerVisitor
	}
	if cfg.MaxTabs <= 0 {
		cfg.MaxTabs = DefaultMaxTabs
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Transition.Logger == nil {
		cfg.Transition.Logger = cfg.Logger
	}
	return &Hub{
		cfg:    cfg,
		logger: cfg.Logger,
		tabs:   make(map[string]*Tab),
	}
}

// Open returns the tab with id, creating it for owner when unknown. A tab
// presented by another visitor is refused with ErrTabOwner. Over the
// per-visitor or global limit, the least recently used idle tab is evicted.
func (h *Hub) Open(id, owner string) (*Tab, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.open(id, owner)
}

// Attach opens the tab like Open and attaches a new stream to it. The tab is
// not swept while the stream is attached; call Release when done.
func (h *Hub) Attach(id, owner string) (*Stream, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	t, err := h.open(id, owner)
	if err != nil {
		return nil, err
	}
	return t.attach(), nil
}

func (h *Hub) open(id, owner string) (*Tab, error) {
	if t, ok := h.tabs[id]; ok {
		if t.owner != owner {
			return nil, ErrTabOwner
		}
		return t, nil
	}
	if owner != "" {
		h.evictOldest(func(t *Tab) bool { return t.owner == owner }, h.cfg.MaxTabsPerVisitor)
	}
	h.evictOldest(func(*Tab) bool { return true }, h.cfg.MaxTabs)
	t := newTab(id, owner, h.cfg.Transition, h.cfg.Now)
	h.tabs[id] = t
	h.logger.Debug("tab opened", "tab", id, "visitor", owner)
	return t, nil
}

// Lookup returns an open tab.
func (h *Hub) Lookup(id string) (*Tab, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	t, ok := h.tabs[id]
	return t, ok
}

// Len returns the number of open tabs.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.tabs)
}

// Sweep closes tabs idle for longer than the idle timeout and returns how
// many it removed.
func (h *Hub) Sweep() int {
	cutoff := h.cfg.Now().Add(-h.cfg.IdleTimeout)

	h.mu.Lock()
	defer h.mu.Unlock()
	removed := 0
	for id, t := range h.tabs {
		last, idle := t.idleSince()
		if idle && last.Before(cutoff) {
			t.close()
			delete(h.tabs, id)
			removed++
		}
	}
	if removed > 0 {
		h.logger.Debug("swept idle tabs", "removed", removed, "open", len(h.tabs))
	}
	return removed
}

// Run sweeps on a ticker until ctx is cancelled, then closes every tab.
func (h *Hub) Run(ctx context.Context) error {
	ticker := time.NewTicker(h.cfg.IdleTimeout / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			h.Close()
			return nil
		case <-ticker.C:
			h.Sweep()
		}
	}
}

// Close closes and forgets every tab.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, t := range h.tabs {
		t.close()
		delete(h.tabs, id)
	}
}

// evictOldest drops the least recently used idle tab among those matching
// when they number limit or more. It runs with h.mu held.
func (h *Hub) evictOldest(matching func(*Tab) bool, limit int) {
	var (
		count      int
		oldestID   string
		oldestSeen time.Time
	)
	for id, t := range h.tabs {
		if !matching(t) {
			continue
		}
		count++
		last, idle := t.idleSince()
		if idle && (oldestID == "" || last.Before(oldestSeen)) {
			oldestID, oldestSeen = id, last
		}
	}
	if count < limit || oldestID == "" {
		return
	}
	h.tabs[oldestID].close()
	delete(h.tabs, oldestID)
	h.logger.Debug("evicted tab over limit", "tab", oldestID, "limit", limit)
}
