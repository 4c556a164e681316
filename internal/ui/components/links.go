// Package components holds the HTML building blocks shared by every page:
// the document layout, navigation header, footer, hero, divider, the outlet
// that hosts transitioning views, and the project card.
package components

import (
	"net/url"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/portfolio/internal/ui/markup"
)

// NavigateAction is the datastar expression that asks the server to move the
// visitor to path.
func NavigateAction(path string) string {
	return "@get('/navigate?to=" + url.QueryEscape(path) + "')"
}

// NavLink renders an in-app link. The href works without scripting; with
// datastar loaded the click is routed through the transition stream.
// Current marks the link as the active page.
func NavLink(path, label string, current bool) templ.Component {
	return markup.Component(func(w *markup.Writer) {
		w.Raw("<a")
		w.URL("href", path)
		w.Attr("data-on:click__prevent", NavigateAction(path))
		if current {
			w.Raw(` aria-current="page"`)
		}
		w.Raw(">")
		w.Text(label)
		w.Raw("</a>")
	})
}

// ExternalLink opens href in a new tab.
func ExternalLink(href, label string) templ.Component {
	return markup.Component(func(w *markup.Writer) {
		w.Raw("<a")
		w.URL("href", href)
		w.Raw(` target="_blank" rel="noopener noreferrer">`)
		w.Text(label)
		w.Raw("</a>")
	})
}
