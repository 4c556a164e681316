package components

import (
	"strings"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/portfolio/internal/catalog"
	"github.com/leapstack-labs/portfolio/internal/route"
	"github.com/leapstack-labs/portfolio/internal/ui/markup"
)

// PendingDescription stands in for a project whose write-up is not ready.
const PendingDescription = "Details coming soon."

// ProjectCard renders the summary of one project. Links that are absent on
// the record are omitted.
func ProjectCard(p catalog.ProjectRecord) templ.Component {
	return markup.Component(func(w *markup.Writer) {
		w.Raw(`<article class="project-card"`)
		w.Attr("id", "project-"+p.Slug)
		w.Raw("><h3>")
		w.Render(NavLink(route.ProjectPath(p.Slug), p.Title, false))
		w.Raw("</h3>")
		w.Render(Description(p))
		if len(p.Tech) > 0 {
			w.Raw("<p><strong>Technologies:</strong> ")
			w.Text(strings.Join(p.Tech, ", "))
			w.Raw("</p>")
		}
		if p.HasGitHub() || p.HasLiveDemo() {
			w.Raw(`<p class="project-links">`)
			if p.HasGitHub() {
				w.Render(ExternalLink(p.GitHub, "View on GitHub"))
			}
			if p.HasLiveDemo() {
				w.Render(ExternalLink(p.LiveDemo, "Live Demo"))
			}
			w.Raw("</p>")
		}
		w.Raw("</article>")
	})
}

// Description renders the project write-up, or the pending placeholder.
func Description(p catalog.ProjectRecord) templ.Component {
	return markup.Component(func(w *markup.Writer) {
		if p.Pending() {
			w.Raw(`<p class="pending">`)
			w.Text(PendingDescription)
			w.Raw("</p>")
			return
		}
		w.Raw("<p>")
		w.Text(p.Description)
		w.Raw("</p>")
	})
}
