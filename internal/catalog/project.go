// Package catalog holds the portfolio's project records.
//
// A Catalog is built once from a static payload and never mutated afterward.
// Callers receive copies, so nothing they do to a returned record or slice is
// visible through the catalog.
package catalog

import "slices"

// ProjectRecord describes one portfolio project.
type ProjectRecord struct {
	ID          int      `yaml:"id" json:"id"`
	Slug        string   `yaml:"slug" json:"slug"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Tech        []string `yaml:"tech" json:"tech"`
	GitHub      string   `yaml:"github" json:"github,omitempty"`
	LiveDemo    string   `yaml:"live_demo" json:"live_demo,omitempty"`
	Images      []string `yaml:"images" json:"images"`
}

// HasGitHub reports whether a repository link should be rendered.
func (p ProjectRecord) HasGitHub() bool { return p.GitHub != "" }

// HasLiveDemo reports whether a demo link should be rendered.
func (p ProjectRecord) HasLiveDemo() bool { return p.LiveDemo != "" }

// Pending reports whether the description is still to be written.
func (p ProjectRecord) Pending() bool { return p.Description == "" }

func (p ProjectRecord) clone() ProjectRecord {
	p.Tech = slices.Clone(p.Tech)
	p.Images = slices.Clone(p.Images)
	return p
}
