package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/portfolio/internal/catalog"
	"github.com/leapstack-labs/portfolio/internal/cli/output"
	"github.com/leapstack-labs/portfolio/internal/route"
)

// Project orders accepted by --order.
const (
	OrderTitle   = "title"
	OrderCatalog = "catalog"
)

// NewProjectsCommand creates the projects command.
func NewProjectsCommand() *cobra.Command {
	var order string

	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"ls"},
		Short:   "List the projects in the catalog",
		Long: `List every project in the catalog with its slug, title, technologies and
detail page path.

Projects are listed by title, as the projects page shows them, unless
--order catalog asks for payload order.`,
		Example: `  # List projects as a table
  portfolio projects

  # List in payload order as JSON
  portfolio projects --order catalog --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProjects(cmd, order)
		},
	}

	cmd.Flags().StringVar(&order, "order", OrderTitle, "Sort order (title|catalog)")
	_ = cmd.RegisterFlagCompletionFunc("order", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{OrderTitle, OrderCatalog}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// projectOutput is the JSON shape of a listed project.
type projectOutput struct {
	catalog.ProjectRecord
	Path    string `json:"path"`
	Pending bool   `json:"pending"`
}

func runProjects(cmd *cobra.Command, order string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	cat, err := loadCatalog(cmdCtx.Cfg)
	if err != nil {
		return err
	}

	var records []catalog.ProjectRecord
	switch order {
	case OrderTitle:
		records = cat.ListSortedByTitle()
	case OrderCatalog:
		records = cat.List()
	default:
		return fmt.Errorf("unknown order %q (want %s or %s)", order, OrderTitle, OrderCatalog)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		out := make([]projectOutput, 0, len(records))
		for _, p := range records {
			out = append(out, projectOutput{ProjectRecord: p, Path: route.ProjectPath(p.Slug), Pending: p.Pending()})
		}
		return r.JSON(out)
	default:
		r.Header(1, fmt.Sprintf("Projects (%d total)", len(records)))
		if len(records) == 0 {
			r.Muted("No projects in " + catalogSource(cmdCtx.Cfg))
			return nil
		}
		rows := make([][]string, 0, len(records))
		for _, p := range records {
			rows = append(rows, []string{p.Slug, p.Title, strings.Join(p.Tech, ", "), route.ProjectPath(p.Slug)})
		}
		r.Table([]string{"Slug", "Title", "Technologies", "Path"}, rows)
		return nil
	}
}
