package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/portfolio/internal/catalog"
	"github.com/leapstack-labs/portfolio/internal/cli/config"
	"github.com/leapstack-labs/portfolio/internal/cli/output"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext for cmd.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Helper functions shared across commands

// getConfig returns the current configuration, or the defaults when none
// was loaded.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.Default()
}

// catalogOptions returns the build options the configuration implies.
func catalogOptions(cfg *config.Config) ([]catalog.Option, error) {
	tag, err := cfg.LanguageTag()
	if err != nil {
		return nil, err
	}
	return []catalog.Option{catalog.WithLocale(tag)}, nil
}

// loadCatalog opens the configured catalog, or the embedded one.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if err := cfg.ValidateCatalog(); err != nil {
		return nil, err
	}
	opts, err := catalogOptions(cfg)
	if err != nil {
		return nil, err
	}
	cat, err := catalog.Open(cfg.Catalog, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return cat, nil
}

// catalogSource names where the catalog comes from.
func catalogSource(cfg *config.Config) string {
	if cfg.Catalog == "" {
		return "(embedded)"
	}
	return cfg.Catalog
}
