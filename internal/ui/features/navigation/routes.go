package navigation

import (
	"errors"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/portfolio/internal/ui/notifier"
)

// SetupRoutes configures the page and navigation routes. Pages are served
// from the catch-all, so more specific routes must be registered on the same
// router.
func SetupRoutes(
	router chi.Router,
	site Site,
	hub *Hub,
	sessionStore sessions.Store,
	notify *notifier.Notifier,
	logger *slog.Logger,
) error {
	if site.Catalog == nil || site.Router == nil {
		return errors.New("navigation: site needs a catalog and a router")
	}
	handlers := NewHandlers(site, hub, sessionStore, notify, logger)

	router.Get("/outlet", handlers.Outlet)
	router.Get("/navigate", handlers.Navigate)
	router.Get("/", handlers.Page)
	router.Get("/*", handlers.Page)

	return nil
}
