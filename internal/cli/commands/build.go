package commands

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/portfolio/internal/cli/output"
	"github.com/leapstack-labs/portfolio/internal/site"
	"github.com/leapstack-labs/portfolio/internal/ui/components"
)

// NewBuildCommand creates the build command.
func NewBuildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Export the portfolio as a static site",
		Long: `Render every page to HTML files that any static host can serve.

Each route is written to <path>/index.html, unknown paths get 404.html, and
the stylesheet is copied under static/. Pages are rendered settled, without
transitions or live streams.`,
		Example: `  # Build into the configured output directory
  portfolio build

  # Build unminified into ./public
  portfolio build --out public --minify=false

  # Report the build as JSON
  portfolio build --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd)
		},
	}

	cmd.Flags().String("out", "", "Output directory (default: dist)")
	cmd.Flags().Bool("minify", true, "Minify CSS and JavaScript")

	return cmd
}

// buildOutput is the JSON shape of a build report.
type buildOutput struct {
	OutputDir string      `json:"output_dir"`
	Pages     []site.Page `json:"pages"`
	Assets    []string    `json:"assets"`
}

func runBuild(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	builder, err := site.NewBuilder(site.Config{
		Catalog: cat,
		Profile: cfg.Site.Profile(),
		Timing:  components.Timing{Enter: cfg.Transition.Enter, Exit: cfg.Transition.Exit},
		Minify:  cfg.Build.Minify,
	})
	if err != nil {
		return err
	}

	cmdCtx.Logger.Debug("building site", "output_dir", cfg.Build.OutputDir, "projects", cat.Len())
	res, err := builder.Build(cmd.Context(), cfg.Build.OutputDir)
	if err != nil {
		return fmt.Errorf("failed to build site: %w", err)
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(buildOutput{OutputDir: res.OutputDir, Pages: res.Pages, Assets: res.Assets})
	}

	r.Header(1, "Build")
	for _, p := range res.Pages {
		status := "success"
		if p.Status != http.StatusOK {
			status = "info"
		}
		r.StatusLine(p.File, status, fmt.Sprintf("(%d)", p.Status))
	}
	for _, a := range res.Assets {
		r.StatusLine(a, "success", "")
	}
	r.Println("")
	r.Success(fmt.Sprintf("Built %d pages and %d assets into %s", len(res.Pages), len(res.Assets), res.OutputDir))
	return nil
}
