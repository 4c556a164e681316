// Package route resolves request paths to portfolio pages.
//
// Routes are evaluated in table order and the first match wins. The
// not-found fallback is not part of the table, so no ordering mistake can
// make it shadow a real route.
package route

import (
	"sort"
	"strings"
)

// PageKind identifies one of the fixed page variants.
type PageKind string

const (
	Home          PageKind = "home"
	Projects      PageKind = "projects"
	ProjectDetail PageKind = "project-detail"
	About         PageKind = "about"
	Contact       PageKind = "contact"
	NotFound      PageKind = "not-found"
)

// ParamSlug is the path parameter captured by the project detail route.
const ParamSlug = "slug"

// Match is the result of resolving one path.
type Match struct {
	Page   PageKind
	Params map[string]string
	Path   string // the path that was resolved, as requested
}

// Param returns a captured parameter, or "" when absent.
func (m Match) Param(name string) string {
	return m.Params[name]
}

// Key identifies the logical page instance: two matches with the same key
// are the same view, whatever path spelled them.
func (m Match) Key() string {
	if len(m.Params) == 0 {
		return string(m.Page)
	}
	names := make([]string, 0, len(m.Params))
	for name := range m.Params {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(string(m.Page))
	for i, name := range names {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(m.Params[name])
	}
	return b.String()
}

// IsNotFound reports whether the path matched no route.
func (m Match) IsNotFound() bool { return m.Page == NotFound }
