// Package pages renders the body of every portfolio page from a resolved
// route. Rendering is a pure function of the match, the catalog and the
// profile.
package pages

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/portfolio/internal/catalog"
	"github.com/leapstack-labs/portfolio/internal/route"
	"github.com/leapstack-labs/portfolio/internal/ui/components"
	"github.com/leapstack-labs/portfolio/internal/ui/markup"
)

// Copy for the fallback and placeholder views.
const (
	NotFoundHeading = "404"
	NotFoundMessage = "Whoops! The page you're looking for is not real."
	BackToHome      = "Back to Home"
	ProjectNotFound = "Project not found."
	NothingHereYet  = "Nothing here yet."
	NoProjects      = "No projects yet."
)

// View is a rendered page body with the metadata the response needs.
type View struct {
	Page   route.PageKind
	Title  string
	Status int
	Body   templ.Component
}

// Render builds the view for m. Page kinds it does not know render the
// not-found view.
func Render(m route.Match, cat *catalog.Catalog, p Profile) View {
	switch m.Page {
	case route.Home:
		return View{Page: m.Page, Title: "Home", Status: http.StatusOK, Body: home(p)}
	case route.Projects:
		return View{Page: m.Page, Title: "Projects", Status: http.StatusOK, Body: projectList(cat.ListSortedByTitle())}
	case route.ProjectDetail:
		return projectDetail(m, cat, p)
	case route.About:
		return View{Page: m.Page, Title: "About Me", Status: http.StatusOK, Body: about(p)}
	case route.Contact:
		return View{Page: m.Page, Title: "Contact", Status: http.StatusOK, Body: contact(p)}
	default:
		return View{Page: route.NotFound, Title: "Page not found", Status: http.StatusNotFound, Body: notFound()}
	}
}

func home(p Profile) templ.Component {
	return markup.Component(func(w *markup.Writer) {
		w.Raw(`<div class="home-content"><div class="intro-box">`)
		w.Render(components.Hero(markup.Component(func(w *markup.Writer) {
			w.Raw("<h1>")
			w.Text(p.SiteTitle)
			w.Raw("</h1>")
			if p.Tagline != "" {
				w.Raw(`<p class="tagline">`)
				w.Text(p.Tagline)
				w.Raw("</p>")
			}
		})))
		w.Render(components.Divider())
		paragraphs(w, p.Intro)
		w.Raw("</div></div>")
	})
}

func projectList(records []catalog.ProjectRecord) templ.Component {
	return markup.Component(func(w *markup.Writer) {
		w.Raw(`<div class="projects-page"><h2>My Projects</h2>`)
		if len(records) == 0 {
			w.Raw(`<p class="empty">`)
			w.Text(NoProjects)
			w.Raw("</p>")
		}
		for _, rec := range records {
			w.Render(components.ProjectCard(rec))
		}
		w.Raw("</div>")
	})
}

// projectDetail keeps the detail page kind on a slug miss: the URL stays
// where the visitor put it and the page explains the project is unknown.
func projectDetail(m route.Match, cat *catalog.Catalog, p Profile) View {
	rec, ok := cat.FindBySlug(m.Param(route.ParamSlug))
	if !ok {
		return View{
			Page:   route.ProjectDetail,
			Title:  "Project not found",
			Status: http.StatusNotFound,
			Body: markup.Component(func(w *markup.Writer) {
				w.Raw(`<div class="project-missing"><p>`)
				w.Text(ProjectNotFound)
				w.Raw("</p><p>")
				w.Render(components.NavLink(route.ProjectsPath, "Back to Projects", false))
				w.Raw("</p></div>")
			}),
		}
	}
	return View{
		Page:   route.ProjectDetail,
		Title:  rec.Title,
		Status: http.StatusOK,
		Body: markup.Component(func(w *markup.Writer) {
			w.Raw(`<article class="project-detail"`)
			w.Attr("data-slug", rec.Slug)
			w.Raw("><h1>")
			w.Text(rec.Title)
			w.Raw("</h1>")
			w.Render(components.Description(rec))
			if len(rec.Tech) > 0 {
				w.Raw(`<ul class="tech">`)
				for _, t := range rec.Tech {
					w.Raw("<li>")
					w.Text(t)
					w.Raw("</li>")
				}
				w.Raw("</ul>")
			}
			if rec.HasGitHub() || rec.HasLiveDemo() {
				w.Raw(`<p class="project-links">`)
				if rec.HasGitHub() {
					w.Render(components.ExternalLink(rec.GitHub, "View on GitHub"))
				}
				if rec.HasLiveDemo() {
					w.Render(components.ExternalLink(rec.LiveDemo, "Live Demo"))
				}
				w.Raw("</p>")
			}
			if len(rec.Images) > 0 {
				w.Raw(`<div class="image-grid">`)
				for i, img := range rec.Images {
					w.Raw(`<div class="image-wrapper"><img`)
					w.URL("src", p.ImageURL(img))
					w.Attr("alt", ScreenshotAlt(rec.Title, i))
					w.Raw(` loading="lazy"></div>`)
				}
				w.Raw("</div>")
			}
			w.Raw("</article>")
		}),
	}
}

// ScreenshotAlt is the alt text of the i-th (zero-based) project image.
func ScreenshotAlt(title string, i int) string {
	return title + " screenshot " + strconv.Itoa(i+1)
}

func about(p Profile) templ.Component {
	return markup.Component(func(w *markup.Writer) {
		w.Raw(`<div class="about-page"><h2>About Me</h2>`)
		text := nonBlank(p.About)
		if len(text) == 0 {
			w.Raw(`<p class="empty">`)
			w.Text(NothingHereYet)
			w.Raw("</p>")
		}
		paragraphs(w, text)
		w.Raw("</div>")
	})
}

func contact(p Profile) templ.Component {
	return markup.Component(func(w *markup.Writer) {
		w.Raw(`<div class="contact-page"><h2>Contact</h2>`)
		if p.Email != "" {
			w.Raw("<p>Email me at: <a")
			w.URL("href", "mailto:"+p.Email)
			w.Raw(">")
			w.Text(p.Email)
			w.Raw("</a></p>")
		}
		if p.LinkedIn != "" {
			w.Raw("<p>Find me on ")
			w.Render(components.ExternalLink(p.LinkedIn, "LinkedIn"))
			w.Raw("</p>")
		}
		if p.GitHub != "" {
			w.Raw("<p>Code lives on ")
			w.Render(components.ExternalLink(p.GitHub, "GitHub"))
			w.Raw("</p>")
		}
		w.Raw("</div>")
	})
}

func notFound() templ.Component {
	return markup.Component(func(w *markup.Writer) {
		w.Raw(`<div class="not-found"><h1>`)
		w.Text(NotFoundHeading)
		w.Raw("</h1><p>")
		w.Text(NotFoundMessage)
		w.Raw(`</p><p class="back">`)
		w.Render(components.NavLink(route.HomePath, BackToHome, false))
		w.Raw("</p></div>")
	})
}

func paragraphs(w *markup.Writer, text []string) {
	for _, para := range nonBlank(text) {
		w.Raw("<p>")
		w.Text(para)
		w.Raw("</p>")
	}
}

func nonBlank(text []string) []string {
	out := make([]string, 0, len(text))
	for _, para := range text {
		if para = strings.TrimSpace(para); para != "" {
			out = append(out, para)
		}
	}
	return out
}
