package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/portfolio/internal/catalog"
	"github.com/leapstack-labs/portfolio/internal/cli/output"
)

// ErrCatalogInvalid is returned when validate finds problems, so the process
// exits non-zero after the report is printed.
var ErrCatalogInvalid = errors.New("catalog has validation issues")

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the project catalog for problems",
		Long: `Load the project catalog and report every problem it has.

Every record needs a positive id, a URL-safe slug and a title, and ids and
slugs must be unique. The command exits non-zero when any issue is found.`,
		Example: `  # Validate the configured catalog
  portfolio validate

  # Validate another file and report as JSON
  portfolio validate --catalog drafts/projects.yaml --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd)
		},
	}

	return cmd
}

// issueOutput is the JSON shape of a single catalog issue.
type issueOutput struct {
	Index   int    `json:"index"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// validateOutput is the JSON shape of a validation report.
type validateOutput struct {
	Valid    bool          `json:"valid"`
	Source   string        `json:"source"`
	Projects int           `json:"projects"`
	Issues   []issueOutput `json:"issues"`
	Error    string        `json:"error,omitempty"`
}

func runValidate(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer
	source := catalogSource(cfg)

	cat, err := loadCatalog(cfg)
	report := validateOutput{Valid: err == nil, Source: source, Issues: []issueOutput{}}

	var verr *catalog.ValidationError
	switch {
	case err == nil:
		report.Projects = cat.Len()
	case errors.As(err, &verr):
		for _, issue := range verr.Issues {
			report.Issues = append(report.Issues, issueOutput{Index: issue.Index, Field: issue.Field, Message: issue.Msg})
		}
	default:
		report.Error = err.Error()
	}

	if r.EffectiveMode() == output.ModeJSON {
		if jerr := r.JSON(report); jerr != nil {
			return jerr
		}
		if !report.Valid {
			return ErrCatalogInvalid
		}
		return nil
	}

	r.Header(1, "Validate "+source)
	if report.Valid {
		r.Success(fmt.Sprintf("%d projects, no issues", report.Projects))
		return nil
	}
	if report.Error != "" {
		r.StatusLine(source, "failed", report.Error)
		return ErrCatalogInvalid
	}
	for _, issue := range verr.Issues {
		r.StatusLine(fmt.Sprintf("projects[%d].%s", issue.Index, issue.Field), "failed", issue.Msg)
	}
	r.Println("")
	r.Error(fmt.Sprintf("%d issues found", len(verr.Issues)))
	return ErrCatalogInvalid
}
