package navigation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/portfolio/internal/catalog"
	"github.com/leapstack-labs/portfolio/internal/route"
	"github.com/leapstack-labs/portfolio/internal/transition"
	"github.com/leapstack-labs/portfolio/internal/ui/components"
	"github.com/leapstack-labs/portfolio/internal/ui/notifier"
	"github.com/leapstack-labs/portfolio/internal/ui/pages"
)

const (
	sessionName = "portfolio"
	visitorKey  = "visitor"
)

// Site is what the handlers serve.
type Site struct {
	Catalog *catalog.Holder
	Router  *route.Router
	Shell   pages.Shell
}

// View renders the page for m against the catalog in service.
func (s Site) View(m route.Match) pages.View {
	return pages.Render(m, s.Catalog.Load(), s.Shell.Profile)
}

// Handlers provides HTTP handlers for page loads and in-app navigation.
type Handlers struct {
	site         Site
	hub          *Hub
	sessionStore sessions.Store
	notifier     *notifier.Notifier
	logger       *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(site Site, hub *Hub, sessionStore sessions.Store, notify *notifier.Notifier, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handlers{
		site:         site,
		hub:          hub,
		sessionStore: sessionStore,
		notifier:     notify,
		logger:       logger,
	}
}

// signals are the datastar signals every navigation request carries.
type signals struct {
	Tab  string `json:"tab"`
	Path string `json:"path"`
}

func readSignals(r *http.Request) (signals, error) {
	var sig signals
	if err := datastar.ReadSignals(r, &sig); err != nil {
		return sig, fmt.Errorf("read signals: %w", err)
	}
	if _, err := uuid.Parse(sig.Tab); err != nil {
		return sig, fmt.Errorf("invalid tab %q", sig.Tab)
	}
	return sig, nil
}

// Page renders the full document for any page path under a fresh tab id.
// The tab itself is opened by the first outlet or navigate request that
// presents the id, so page loads that never stream hold no server state.
func (h *Handlers) Page(w http.ResponseWriter, r *http.Request) {
	path := r.URL.EscapedPath()
	m := h.site.Router.Resolve(path)
	view := h.site.View(m)
	h.visitorID(w, r)

	// A tab's first mount is instance 1; the outlet adopts this view when it
	// opens the tab at the same path.
	first := transition.Instance{ID: 1, Key: m.Key(), Phase: transition.Entering}

	shell := h.site.Shell
	shell.Tab = uuid.NewString()
	shell.Path = path
	doc := shell.Document(view, components.View(first, view.Body))

	var buf bytes.Buffer
	if err := doc.Render(r.Context(), &buf); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	// Each response carries its own tab id.
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(view.Status)
	_, _ = buf.WriteTo(w)
}

// Navigate moves the caller's tab to the path in the "to" query parameter.
// The view swap itself is delivered over the tab's outlet stream; this
// response updates the header, the path signal and the browser history.
func (h *Handlers) Navigate(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	to := query.Get("to")
	if !isLocalPath(to) {
		http.Error(w, "navigate: to must be a local path", http.StatusBadRequest)
		return
	}
	sig, err := readSignals(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tab, err := h.hub.Open(sig.Tab, h.visitorID(w, r))
	if err != nil {
		h.tabError(w, sig.Tab, err)
		return
	}
	if tab.Empty() && isLocalPath(sig.Path) {
		tab.Navigate(h.site.Router.Resolve(sig.Path))
	}
	m := h.site.Router.Resolve(to)
	changed := tab.Navigate(m)
	view := h.site.View(m)
	h.logger.Debug("navigate", "tab", tab.ID(), "path", to, "page", string(view.Page), "changed", changed)

	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElementTempl(components.Header(h.site.Shell.Profile.SiteTitle, view.Page)); err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	if err := sse.MarshalAndPatchSignals(map[string]string{"path": to}); err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	title := components.DocumentTitle(view.Title, h.site.Shell.Profile.SiteTitle)
	if err := sse.ExecuteScript(historyScript(title, to, query.Get("replace") != "")); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// Outlet is the long-lived SSE endpoint that keeps a tab's outlet in step
// with its transition controller. It starts with a full resync, then
// streams mounts, phase changes and removals as they happen. A catalog
// update triggers another full resync. A second stream for the same tab
// supersedes this one, which then returns.
func (h *Handlers) Outlet(w http.ResponseWriter, r *http.Request) {
	sig, err := readSignals(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	stream, err := h.hub.Attach(sig.Tab, h.visitorID(w, r))
	if err != nil {
		h.tabError(w, sig.Tab, err)
		return
	}
	defer stream.Release()
	tab := stream.Tab()

	// A tab the server no longer knows (restart, sweep) picks up where the
	// browser says it is.
	if tab.Empty() && isLocalPath(sig.Path) {
		tab.Navigate(h.site.Router.Resolve(sig.Path))
	}

	updates := h.notifier.Subscribe()
	defer h.notifier.Unsubscribe(updates)

	sse := datastar.NewSSE(w, r)
	if err := h.sendOutlet(sse, stream); err != nil {
		_ = sse.ConsoleError(err)
	}

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-stream.Done():
			h.logger.Debug("outlet stream superseded", "tab", tab.ID())
			return
		case <-updates:
			if err := h.sendOutlet(sse, stream); err != nil {
				_ = sse.ConsoleError(err)
			}
		case <-stream.Wake():
			events, resync := stream.Drain()
			if resync {
				if err := h.sendOutlet(sse, stream); err != nil {
					_ = sse.ConsoleError(err)
				}
				continue
			}
			for _, e := range events {
				if err := h.sendEvent(sse, tab, e); err != nil {
					_ = sse.ConsoleError(err)
					// Don't return - the next resync repairs the outlet
				}
			}
		}
	}
}

// sendOutlet replaces the whole outlet with the tab's current views. It sends
// nothing once the stream is superseded.
func (h *Handlers) sendOutlet(sse *datastar.ServerSentEventGenerator, stream *Stream) error {
	instances, ok := stream.Resync()
	if !ok {
		return nil
	}
	views := h.renderViews(stream.Tab(), instances)
	return sse.PatchElementTempl(components.Outlet(h.site.Shell.Timing, views...))
}

func (h *Handlers) tabError(w http.ResponseWriter, id string, err error) {
	if errors.Is(err, ErrTabOwner) {
		h.logger.Debug("tab refused", "tab", id, "error", err)
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func (h *Handlers) sendEvent(sse *datastar.ServerSentEventGenerator, tab *Tab, e transition.Event) error {
	if e.Kind == transition.Removed {
		return sse.RemoveElement("#" + components.ViewID(e.Instance.ID))
	}
	view, ok := h.renderView(tab, e.Instance)
	if !ok {
		return nil
	}
	if e.Kind == transition.Mounted {
		return sse.PatchElementTempl(view,
			datastar.WithSelectorID(components.OutletID),
			datastar.WithModeAppend(),
		)
	}
	return sse.PatchElementTempl(view)
}

func (h *Handlers) renderViews(tab *Tab, instances []transition.Instance) []templ.Component {
	views := make([]templ.Component, 0, len(instances))
	for _, in := range instances {
		if view, ok := h.renderView(tab, in); ok {
			views = append(views, view)
		}
	}
	return views
}

func (h *Handlers) renderView(tab *Tab, in transition.Instance) (templ.Component, bool) {
	m, ok := tab.Match(in.Key)
	if !ok {
		h.logger.Debug("no match recorded for view", "tab", tab.ID(), "key", in.Key)
		return nil, false
	}
	return components.View(in, h.site.View(m).Body), true
}

// visitorID returns the visitor id from the session cookie, issuing one on
// first contact. It must run before the response is written.
func (h *Handlers) visitorID(w http.ResponseWriter, r *http.Request) string {
	sess, err := h.sessionStore.Get(r, sessionName)
	if err != nil {
		h.logger.Debug("discarding unreadable session", "error", err)
	}
	if sess == nil {
		return ""
	}
	if id, ok := sess.Values[visitorKey].(string); ok && id != "" {
		return id
	}
	id := uuid.NewString()
	sess.Values[visitorKey] = id
	if err := sess.Save(r, w); err != nil {
		h.logger.Warn("failed to save session", "error", err)
	}
	return id
}

func isLocalPath(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//")
}

func historyScript(title, path string, replace bool) string {
	t, _ := json.Marshal(title)
	p, _ := json.Marshal(path)
	method := "pushState"
	if replace {
		method = "replaceState"
	}
	return fmt.Sprintf("document.title = %s; if (location.pathname !== %s) { history.%s(null, '', %s); }", t, p, method, p)
}
