package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/portfolio/internal/transition"
	"github.com/leapstack-labs/portfolio/internal/ui/components"
)

// Shell wraps views in the full HTML document.
type Shell struct {
	Profile    Profile
	Timing     components.Timing
	Static     bool
	Dev        bool
	StaticPath func(name string) string
	// Tab and Path are set per page load.
	Tab  string
	Path string
}

// Document renders the page for v with the given views in the outlet. The
// title and active navigation entry come from v.
func (s Shell) Document(v View, views ...templ.Component) templ.Component {
	layout := components.Layout(components.Document{
		Title:      v.Title,
		SiteTitle:  s.Profile.SiteTitle,
		Owner:      s.Profile.Owner,
		Page:       v.Page,
		Static:     s.Static,
		Dev:        s.Dev,
		StaticPath: s.StaticPath,
		Tab:        s.Tab,
		Path:       s.Path,
	})
	outlet := components.Outlet(s.Timing, views...)
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return layout.Render(templ.WithChildren(ctx, outlet), w)
	})
}

// Settled renders v alone, already visible. Used where there is no
// transition to run, such as exported files.
func (s Shell) Settled(key string, v View) templ.Component {
	in := transition.Instance{ID: 1, Key: key, Phase: transition.Visible}
	return s.Document(v, components.View(in, v.Body))
}
