package commands

import (
	"fmt"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/portfolio/internal/cli/output"
	"github.com/leapstack-labs/portfolio/internal/site"
	"github.com/leapstack-labs/portfolio/internal/ui/components"
)

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <path>",
		Short: "Render the page a path resolves to",
		Long: `Resolve a request path and render the page it shows, as the static
export would.

Output adapts to environment:
  - Terminal: the HTML document
  - Piped/Scripted: the page converted to Markdown
  - JSON: page metadata with the HTML`,
		Example: `  # Render a project page
  portfolio render /projects/cnc-machine-simulator

  # Read the about page as Markdown
  portfolio render /about --output markdown

  # Check what an unknown path returns
  portfolio render /missing --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0])
		},
	}

	return cmd
}

// renderOutput is the JSON shape of a rendered page.
type renderOutput struct {
	site.Page
	HTML string `json:"html"`
}

func runRender(cmd *cobra.Command, path string) error {
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
	})
	if err != nil {
		return err
	}

	page, html, err := builder.Render(cmd.Context(), path)
	if err != nil {
		return err
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(renderOutput{Page: page, HTML: string(html)})
	case output.ModeMarkdown:
		md, err := htmltomarkdown.ConvertString(string(html))
		if err != nil {
			return fmt.Errorf("failed to convert %s to markdown: %w", path, err)
		}
		r.Println(md)
		return nil
	default:
		r.Println(string(html))
		return nil
	}
}
