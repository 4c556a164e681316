// Package router sets up HTTP routes for the portfolio server.
package router

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	navigationFeature "github.com/leapstack-labs/portfolio/internal/ui/features/navigation"
	"github.com/leapstack-labs/portfolio/internal/ui/notifier"
	"github.com/leapstack-labs/portfolio/internal/ui/resources"
)

// HealthPath answers liveness probes.
const HealthPath = "/healthz"

// SetupRoutes configures all routes for the portfolio server.
func SetupRoutes(
	router chi.Router,
	site navigationFeature.Site,
	hub *navigationFeature.Hub,
	sessionStore sessions.Store,
	notify *notifier.Notifier,
	logger *slog.Logger,
	isDev bool,
) error {
	// Hot reload endpoint for dev mode
	if isDev {
		setupReload(router)
	}

	router.Handle("/static/*", resources.Handler())

	router.Get(HealthPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	// Pages last: the navigation feature owns the catch-all.
	return navigationFeature.SetupRoutes(router, site, hub, sessionStore, notify, logger)
}

func setupReload(router chi.Router) {
	reloadChan := make(chan struct{}, 1)
	var hotReloadOnce sync.Once

	router.Get("/reload", func(w http.ResponseWriter, r *http.Request) {
		sse := datastar.NewSSE(w, r)
		reload := func() { _ = sse.ExecuteScript("window.location.reload()") }
		hotReloadOnce.Do(reload)
		select {
		case <-reloadChan:
			reload()
		case <-r.Context().Done():
		}
	})

	router.Get("/hotreload", func(w http.ResponseWriter, _ *http.Request) {
		select {
		case reloadChan <- struct{}{}:
		default:
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}
