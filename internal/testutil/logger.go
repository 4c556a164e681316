// Package testutil provides test utilities for structured logging.
package testutil

import (
	"context"
	"log/slog"
	"sync"
	"testing"
)

// NewTestLogger returns a logger that writes to t.Log().
// Logs only appear on test failure or when running with -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (n int, err error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// Capture collects log records so tests can assert on what was logged.
type Capture struct {
	mu      sync.Mutex
	records []slog.Record
}

// NewCaptureLogger returns a debug-level logger whose records land in the
// returned Capture.
func NewCaptureLogger() (*slog.Logger, *Capture) {
	c := &Capture{}
	return slog.New(captureHandler{c: c}), c
}

// Messages returns the messages logged at level or above, in order.
func (c *Capture) Messages(level slog.Level) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []string
	for _, r := range c.records {
		if r.Level >= level {
			out = append(out, r.Message)
		}
	}
	return out
}

// Attr returns the value of key on the first record with msg.
func (c *Capture) Attr(msg, key string) (slog.Value, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range c.records {
		if r.Message != msg {
			continue
		}
		var (
			found slog.Value
			ok    bool
		)
		r.Attrs(func(a slog.Attr) bool {
			if a.Key == key {
				found, ok = a.Value, true
				return false
			}
			return true
		})
		return found, ok
	}
	return slog.Value{}, false
}

type captureHandler struct {
	c     *Capture
	attrs []slog.Attr
}

func (captureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h captureHandler) Handle(_ context.Context, r slog.Record) error {
	r = r.Clone()
	r.AddAttrs(h.attrs...)
	h.c.mu.Lock()
	h.c.records = append(h.c.records, r)
	h.c.mu.Unlock()
	return nil
}

func (h captureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return captureHandler{c: h.c, attrs: append(append([]slog.Attr{}, h.attrs...), attrs...)}
}

func (h captureHandler) WithGroup(string) slog.Handler { return h }
