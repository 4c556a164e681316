package route

import "net/url"

// Paths and patterns for the page routes.
const (
	HomePath       = "/"
	ProjectsPath   = "/projects"
	ProjectPattern = "/projects/:" + ParamSlug
	AboutPath      = "/about"
	ContactPath    = "/contact"
)

// ProjectPath returns the detail page path for slug.
func ProjectPath(slug string) string {
	return ProjectsPath + "/" + url.PathEscape(slug)
}

// PathFor returns the canonical path that resolves to m, or "" for the
// fallback page.
func PathFor(m Match) string {
	switch m.Page {
	case Home:
		return HomePath
	case Projects:
		return ProjectsPath
	case ProjectDetail:
		return ProjectPath(m.Param(ParamSlug))
	case About:
		return AboutPath
	case Contact:
		return ContactPath
	default:
		return ""
	}
}
