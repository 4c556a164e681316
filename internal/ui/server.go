// Package ui serves the portfolio site over HTTP.
package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/portfolio/internal/catalog"
	"github.com/leapstack-labs/portfolio/internal/route"
	"github.com/leapstack-labs/portfolio/internal/transition"
	"github.com/leapstack-labs/portfolio/internal/ui/components"
	"github.com/leapstack-labs/portfolio/internal/ui/features/navigation"
	"github.com/leapstack-labs/portfolio/internal/ui/notifier"
	"github.com/leapstack-labs/portfolio/internal/ui/pages"
	"github.com/leapstack-labs/portfolio/internal/ui/resources"
	"github.com/leapstack-labs/portfolio/internal/ui/router"
)

const reloadDebounce = 100 * time.Millisecond

// Server is the portfolio web server.
type Server struct {
	catalog        *catalog.Holder
	catalogPath    string
	catalogOptions []catalog.Option
	router         *route.Router
	shell          pages.Shell
	hub            *navigation.Hub
	sessionStore   *sessions.CookieStore
	port           int
	watch          bool
	dev            bool
	logger         *slog.Logger
	notifier       *notifier.Notifier
}

// Config holds configuration for the server.
type Config struct {
	Catalog *catalog.Holder
	// CatalogPath is the payload file reloaded in watch mode. Empty means the
	// embedded catalog, which is never reloaded.
	CatalogPath    string
	CatalogOptions []catalog.Option
	Router         *route.Router
	Profile        pages.Profile
	Transition     transition.Config
	Port           int
	Watch          bool
	Dev            bool
	SessionSecret  string
	IdleTimeout    time.Duration
	Logger         *slog.Logger
}

// NewServer creates a new server instance. A random session key is used when
// no secret is configured, so visitor cookies do not survive a restart.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	secret := []byte(cfg.SessionSecret)
	if len(secret) == 0 {
		secret = securecookie.GenerateRandomKey(32)
	}
	sessionStore := sessions.NewCookieStore(secret)
	sessionStore.MaxAge(86400 * 30) // 30 days
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	rt := cfg.Router
	if rt == nil {
		rt = route.Default()
	}

	tc := cfg.Transition
	if tc.Logger == nil {
		tc.Logger = logger
	}

	return &Server{
		catalog:        cfg.Catalog,
		catalogPath:    cfg.CatalogPath,
		catalogOptions: cfg.CatalogOptions,
		router:         rt,
		shell: pages.Shell{
			Profile:    cfg.Profile,
			Timing:     components.Timing{Enter: tc.Enter, Exit: tc.Exit},
			Dev:        cfg.Dev,
			StaticPath: resources.StaticPath,
		},
		hub: navigation.NewHub(navigation.HubConfig{
			Transition:  tc,
			IdleTimeout: cfg.IdleTimeout,
			Logger:      logger,
		}),
		sessionStore: sessionStore,
		port:         cfg.Port,
		watch:        cfg.Watch,
		dev:          cfg.Dev,
		logger:       logger,
		notifier:     notifier.New(),
	}
}

// Handler builds the HTTP handler with middleware and all routes.
func (s *Server) Handler() (http.Handler, error) {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	site := navigation.Site{Catalog: s.catalog, Router: s.router, Shell: s.shell}
	if err := router.SetupRoutes(r, site, s.hub, s.sessionStore, s.notifier, s.logger, s.IsDev()); err != nil {
		return nil, fmt.Errorf("failed to setup routes: %w", err)
	}
	return r, nil
}

// Serve listens on the configured port and blocks until the context is
// cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.logger.Info("starting portfolio server", "addr", fmt.Sprintf("http://localhost:%d", s.port))
	return s.ServeListener(ctx, ln)
}

// ServeListener serves on ln until the context is cancelled. The listener is
// closed on return.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	handler, err := s.Handler()
	if err != nil {
		_ = ln.Close()
		return err
	}

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Sweep idle tabs; closes every controller on shutdown.
	eg.Go(func() error {
		return s.hub.Run(egctx)
	})

	if s.watch && s.catalogPath != "" {
		eg.Go(func() error {
			return s.watchCatalog(egctx)
		})
	}

	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down portfolio server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// IsDev reports whether hot reload endpoints are served.
func (s *Server) IsDev() bool {
	return s.dev
}

// Notifier returns the server's notifier for catalog updates.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}

// Hub returns the tab registry.
func (s *Server) Hub() *navigation.Hub {
	return s.hub
}

// Reload re-reads the catalog file. On error the current catalog keeps
// serving and open streams are left alone.
func (s *Server) Reload() error {
	if s.catalogPath == "" {
		return errors.New("reload: no catalog file configured")
	}
	cat, err := catalog.LoadFile(s.catalogPath, s.catalogOptions...)
	if err != nil {
		return fmt.Errorf("reload catalog: %w", err)
	}
	s.catalog.Store(cat)
	streams := s.notifier.Broadcast()
	s.logger.Info("catalog reloaded", "projects", cat.Len(), "streams", streams)
	return nil
}

// watchCatalog reloads the catalog whenever its file changes. The parent
// directory is watched because editors often replace files by rename.
func (s *Server) watchCatalog(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	target, err := filepath.Abs(s.catalogPath)
	if err != nil {
		return fmt.Errorf("resolve catalog path: %w", err)
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		s.logger.Error("failed to watch catalog directory", "error", err)
		// Don't fail - continue without watching
	}

	// Debounce timer
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if name, err := filepath.Abs(event.Name); err != nil || name != target {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(reloadDebounce, func() {
				s.logger.Debug("catalog changed, reloading", "file", event.Name)
				if err := s.Reload(); err != nil {
					s.logger.Error("catalog reload failed, keeping previous catalog", "error", err)
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher error", "error", err)
		}
	}
}
