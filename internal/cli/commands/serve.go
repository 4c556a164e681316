package commands

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/portfolio/internal/catalog"
	"github.com/leapstack-labs/portfolio/internal/ui"
)

// NewServeCommand creates the serve command. Its flags map onto the server
// and transition config keys.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the portfolio site",
		Long: `Start a web server for the portfolio.

Navigation between pages runs through the transition controller: the old page
exits while the new one enters, streamed to the browser over server-sent
events. With --watch, edits to the catalog file are picked up live.`,
		Example: `  # Serve on the default port
  portfolio serve

  # Serve on a custom port without opening a browser
  portfolio serve --port 3000 --open=false

  # Let each page leave before the next one enters
  portfolio serve --mode sequential --exit 300ms`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd)
		},
	}

	cmd.Flags().Int("port", 0, "Port to serve on (default: 8765)")
	cmd.Flags().Bool("watch", true, "Reload the catalog file when it changes")
	cmd.Flags().Bool("open", true, "Open the site in a browser")
	cmd.Flags().Bool("dev", false, "Serve hot reload endpoints")
	cmd.Flags().String("session-secret", "", "Key for visitor cookies (default: random per run)")
	cmd.Flags().Duration("idle-timeout", 0, "Drop navigation state for tabs idle this long")
	cmd.Flags().String("mode", "", "Transition mode (crossfade|sequential)")
	cmd.Flags().Duration("enter", 0, "Enter transition duration")
	cmd.Flags().Duration("exit", 0, "Exit transition duration")

	_ = cmd.RegisterFlagCompletionFunc("mode", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"crossfade", "sequential"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runServe(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	logger := cmdCtx.Logger
	r := cmdCtx.Renderer

	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	opts, err := catalogOptions(cfg)
	if err != nil {
		return err
	}

	server := ui.NewServer(ui.Config{
		Catalog:        catalog.NewHolder(cat),
		CatalogPath:    cfg.Catalog,
		CatalogOptions: opts,
		Profile:        cfg.Site.Profile(),
		Transition:     cfg.Transition.Controller(),
		Port:           cfg.Server.Port,
		Watch:          cfg.Server.Watch,
		Dev:            cfg.Server.Dev,
		SessionSecret:  cfg.Server.SessionSecret,
		IdleTimeout:    cfg.Server.IdleTimeout,
		Logger:         logger,
	})

	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	if cfg.Server.AutoOpen {
		go openBrowser(url)
	}

	r.Printf("Serving %d projects from %s\n", cat.Len(), catalogSource(cfg))
	r.Printf("Starting portfolio server on %s\n", url)
	r.Println("Press Ctrl+C to stop")

	return server.Serve(cmd.Context())
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url) //nolint:noctx
	case "linux":
		cmd = exec.Command("xdg-open", url) //nolint:noctx
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url) //nolint:noctx
	default:
		return
	}

	_ = cmd.Start()
}
