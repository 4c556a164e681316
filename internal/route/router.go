package route

import (
	"fmt"
	"net/url"
	"strings"
)

// PatternError reports a route pattern the router refuses to register.
type PatternError struct {
	Pattern string
	Reason  string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("route pattern %q: %s", e.Pattern, e.Reason)
}

// Route binds a pattern to a page. Segments starting with ':' capture one
// non-empty path segment under that name.
type Route struct {
	Pattern string
	Page    PageKind
}

type segment struct {
	literal string
	param   string // non-empty for ":name" segments
}

type compiled struct {
	route    Route
	segments []segment
}

// Router resolves paths against an ordered route table.
type Router struct {
	routes   []compiled
	fallback PageKind
}

// New compiles routes in order. fallback is returned for every path that
// matches none of them.
func New(fallback PageKind, routes ...Route) (*Router, error) {
	if fallback == "" {
		return nil, fmt.Errorf("route: fallback page is required")
	}
	r := &Router{fallback: fallback, routes: make([]compiled, 0, len(routes))}
	seen := make(map[string]bool, len(routes))

	for _, rt := range routes {
		segs, err := compile(rt.Pattern)
		if err != nil {
			return nil, err
		}
		shape := shapeOf(segs)
		if seen[shape] {
			return nil, &PatternError{Pattern: rt.Pattern, Reason: "duplicates an earlier route"}
		}
		seen[shape] = true
		r.routes = append(r.routes, compiled{route: rt, segments: segs})
	}
	return r, nil
}

// MustNew is like New but panics on an invalid table.
func MustNew(fallback PageKind, routes ...Route) *Router {
	r, err := New(fallback, routes...)
	if err != nil {
		panic(err)
	}
	return r
}

// Default returns the portfolio's route table.
func Default() *Router {
	return MustNew(NotFound,
		Route{Pattern: HomePath, Page: Home},
		Route{Pattern: ProjectsPath, Page: Projects},
		Route{Pattern: ProjectPattern, Page: ProjectDetail},
		Route{Pattern: AboutPath, Page: About},
		Route{Pattern: ContactPath, Page: Contact},
	)
}

// Routes returns the table in evaluation order.
func (r *Router) Routes() []Route {
	out := make([]Route, len(r.routes))
	for i, c := range r.routes {
		out[i] = c.route
	}
	return out
}

// Resolve maps path to exactly one match. Matching is case-sensitive and
// trailing slashes are significant. path may be URL-escaped; captured
// parameters are unescaped.
func (r *Router) Resolve(path string) Match {
	if strings.HasPrefix(path, "/") {
		parts := strings.Split(path[1:], "/")
		for _, c := range r.routes {
			if params, ok := c.match(parts); ok {
				return Match{Page: c.route.Page, Params: params, Path: path}
			}
		}
	}
	return Match{Page: r.fallback, Path: path}
}

func (c compiled) match(parts []string) (map[string]string, bool) {
	if len(parts) != len(c.segments) {
		return nil, false
	}
	var params map[string]string
	for i, seg := range c.segments {
		part := parts[i]
		if seg.param == "" {
			if part != seg.literal {
				return nil, false
			}
			continue
		}
		if part == "" {
			return nil, false
		}
		value, err := url.PathUnescape(part)
		if err != nil {
			return nil, false
		}
		if params == nil {
			params = make(map[string]string, 1)
		}
		params[seg.param] = value
	}
	return params, true
}

func compile(pattern string) ([]segment, error) {
	if !strings.HasPrefix(pattern, "/") {
		return nil, &PatternError{Pattern: pattern, Reason: "must start with /"}
	}
	if pattern == "/" {
		return []segment{{literal: ""}}, nil
	}
	parts := strings.Split(pattern[1:], "/")
	segs := make([]segment, len(parts))
	names := make(map[string]bool)
	for i, part := range parts {
		switch {
		case part == "":
			return nil, &PatternError{Pattern: pattern, Reason: "empty segment"}
		case strings.Contains(part, "*"):
			return nil, &PatternError{Pattern: pattern, Reason: "wildcards are not allowed; unmatched paths use the fallback"}
		case strings.HasPrefix(part, ":"):
			name := part[1:]
			if name == "" {
				return nil, &PatternError{Pattern: pattern, Reason: "unnamed parameter"}
			}
			if names[name] {
				return nil, &PatternError{Pattern: pattern, Reason: fmt.Sprintf("parameter %q repeated", name)}
			}
			names[name] = true
			segs[i] = segment{param: name}
		default:
			segs[i] = segment{literal: part}
		}
	}
	return segs, nil
}

// shapeOf normalizes parameter names so "/p/:a" and "/p/:b" collide.
func shapeOf(segs []segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteByte('/')
		if s.param != "" {
			b.WriteByte(':')
		} else {
			b.WriteString(s.literal)
		}
	}
	return b.String()
}
