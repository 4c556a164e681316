package components

import (
	"github.com/a-h/templ"

	"github.com/leapstack-labs/portfolio/internal/route"
	"github.com/leapstack-labs/portfolio/internal/ui/markup"
)

type navItem struct {
	path  string
	label string
	pages []route.PageKind
}

var navItems = []navItem{
	{route.HomePath, "Home", []route.PageKind{route.Home}},
	{route.ProjectsPath, "Projects", []route.PageKind{route.Projects, route.ProjectDetail}},
	{route.AboutPath, "About Me", []route.PageKind{route.About}},
	{route.ContactPath, "Contact", []route.PageKind{route.Contact}},
}

// Header renders the navigation bar that persists across pages. The link
// for the active page is marked current.
func Header(siteTitle string, active route.PageKind) templ.Component {
	return markup.Component(func(w *markup.Writer) {
		w.Raw(`<header id="site-header" class="site-header color-cycle"><nav aria-label="Main">`)
		w.Raw(`<span class="site-name">`)
		w.Text(siteTitle)
		w.Raw("</span><ul>")
		for _, item := range navItems {
			current := false
			for _, p := range item.pages {
				if p == active {
					current = true
				}
			}
			w.Raw("<li>")
			w.Render(NavLink(item.path, item.label, current))
			w.Raw("</li>")
		}
		w.Raw("</ul></nav></header>")
	})
}

func Footer(owner string) templ.Component {
	return markup.Component(func(w *markup.Writer) {
		w.Raw(`<footer class="site-footer"><p>&copy; `)
		w.Text(owner)
		w.Raw("</p></footer>")
	})
}

// Hero frames content in the highlighted intro box.
func Hero(content templ.Component) templ.Component {
	return markup.Component(func(w *markup.Writer) {
		w.Raw(`<div class="hero">`)
		w.Render(content)
		w.Raw("</div>")
	})
}

func Divider() templ.Component {
	return markup.Component(func(w *markup.Writer) {
		w.Raw(`<hr class="divider color-cycle">`)
	})
}
