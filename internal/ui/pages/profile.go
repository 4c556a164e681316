package pages

import (
	"net/url"
	"strings"
)

// Profile is the owner-specific copy shown around the catalog.
type Profile struct {
	SiteTitle string
	Owner     string
	Tagline   string
	Email     string
	LinkedIn  string
	GitHub    string
	Intro     []string
	About     []string
	// AssetBaseURL, when set, is the base that relative image references
	// resolve against.
	AssetBaseURL string
}

// ImageURL resolves an image reference from the catalog. References pass
// through unchanged without a base URL or when they are already absolute.
func (p Profile) ImageURL(ref string) string {
	if p.AssetBaseURL == "" {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil || u.IsAbs() {
		return ref
	}
	base := p.AssetBaseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	return b.ResolveReference(u).String()
}
