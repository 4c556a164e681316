// Package features provides shared test utilities for UI feature tests.
package features

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/portfolio/internal/catalog"
	"github.com/leapstack-labs/portfolio/internal/ui/notifier"
	"github.com/leapstack-labs/portfolio/internal/ui/pages"
)

// TestProjects is a small catalog whose insertion order differs from its
// title order.
func TestProjects() []catalog.ProjectRecord {
	return []catalog.ProjectRecord{
		{ID: 1, Slug: "zeta-robot", Title: "Zeta Robot", Description: "Walks.", Tech: []string{"C"}},
		{ID: 2, Slug: "alpha-site", Title: "Alpha Site", GitHub: "https://github.com/example/alpha"},
	}
}

// TestProfile is the profile used by handler tests.
func TestProfile() pages.Profile {
	return pages.Profile{
		SiteTitle: "Test Portfolio",
		Owner:     "Test Owner",
		Email:     "owner@example.com",
		Intro:     []string{"Welcome."},
	}
}

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	Catalog      *catalog.Holder
	Notifier     *notifier.Notifier
	SessionStore *sessions.CookieStore
}

// SetupTestFixture creates a fixture serving records, or TestProjects when
// none are given.
func SetupTestFixture(t *testing.T, records ...catalog.ProjectRecord) *TestFixture {
	t.Helper()

	if len(records) == 0 {
		records = TestProjects()
	}
	cat, err := catalog.New(records, catalog.WithSource("test"))
	require.NoError(t, err)

	return &TestFixture{
		Catalog:      catalog.NewHolder(cat),
		Notifier:     notifier.New(),
		SessionStore: NewTestSessionStore(),
	}
}

// RequestWithSignals encodes signals into the datastar query parameter, the
// way the browser sends them with @get.
func RequestWithSignals(t *testing.T, r *http.Request, signals any) *http.Request {
	t.Helper()
	b, err := json.Marshal(signals)
	require.NoError(t, err)
	q := r.URL.Query()
	q.Set("datastar", string(b))
	r.URL.RawQuery = q.Encode()
	return r
}

// RequestWithTimeout wraps a request with a context timeout. The context is
// cancelled when the test ends.
func RequestWithTimeout(t *testing.T, r *http.Request, timeout time.Duration) *http.Request {
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	t.Cleanup(cancel)
	return r.WithContext(ctx)
}

// CountEvents counts the SSE events of the given type in body.
func CountEvents(body, eventType string) int {
	return strings.Count(body, "event: "+eventType+"\n")
}

// SessionCookie returns the session cookie set by a response, for replay on
// a follow-up request.
func SessionCookie(h http.Header, name string) *http.Cookie {
	for _, c := range (&http.Response{Header: h}).Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// NewTestSessionStore creates a session store for testing.
func NewTestSessionStore() *sessions.CookieStore {
	return sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))
}

