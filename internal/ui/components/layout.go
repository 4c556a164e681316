package components

import (
	"encoding/json"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/portfolio/internal/route"
	"github.com/leapstack-labs/portfolio/internal/ui/markup"
)

// DatastarScript is the client bundle that drives navigation and patches.
const DatastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"

// Document describes the page shell around a rendered outlet.
type Document struct {
	Title     string
	SiteTitle string
	Owner     string
	Page      route.PageKind
	// Static drops every live stream so the output works as plain files.
	Static bool
	// Dev subscribes to the hot reload stream.
	Dev bool
	// Tab identifies this page load to the navigation streams.
	Tab string
	// Path is the request path, echoed back when the outlet reconnects.
	Path string
	// StaticPath maps an asset name to its URL.
	StaticPath func(name string) string
}

// DocumentTitle joins the page title with the site title.
func DocumentTitle(title, site string) string {
	switch {
	case title == "":
		return site
	case site == "":
		return title
	default:
		return title + " - " + site
	}
}

// Layout renders the full HTML document. The children are placed inside the
// outlet.
func Layout(doc Document) templ.Component {
	static := doc.StaticPath
	if static == nil {
		static = func(name string) string { return "/static/" + name }
	}
	return markup.Component(func(w *markup.Writer) {
		w.Raw(`<!doctype html><html lang="en"><head><meta charset="utf-8">`)
		w.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		w.Raw("<title>")
		w.Text(DocumentTitle(doc.Title, doc.SiteTitle))
		w.Raw("</title><link rel=\"stylesheet\"")
		w.URL("href", static("site.css"))
		w.Raw(">")
		if !doc.Static {
			w.Raw(`<script type="module"`)
			w.URL("src", DatastarScript)
			w.Raw("></script>")
		}
		if doc.Static {
			w.Raw("</head><body>")
		} else {
			w.Raw("</head><body")
			w.Attr("data-signals", signals(doc.Tab, doc.Path))
			w.Raw(">")
			w.Raw(`<div id="streams" hidden data-init="@get('/outlet')"></div>`)
			w.Raw(`<div id="history" hidden data-on:popstate__window="@get('/navigate?replace=1&amp;to=' + encodeURIComponent(location.pathname))"></div>`)
			if doc.Dev {
				w.Raw(`<div id="hotreload" hidden data-init="@get('/reload', {retry: 'always', retryMaxCount: 1000})"></div>`)
			}
		}
		w.Render(Header(doc.SiteTitle, doc.Page))
		w.Raw("<main>")
		w.Children()
		w.Raw("</main>")
		w.Render(Footer(doc.Owner))
		w.Raw("</body></html>")
	})
}

func signals(tab, path string) string {
	b, _ := json.Marshal(map[string]string{"tab": tab, "path": path})
	return string(b)
}
