// Package site exports the portfolio as a static site. Every route is
// rendered settled, without transitions, into an index.html under its path so
// the result can be hosted on GitHub Pages or any file server.
package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/leapstack-labs/portfolio/internal/catalog"
	"github.com/leapstack-labs/portfolio/internal/route"
	"github.com/leapstack-labs/portfolio/internal/ui/components"
	"github.com/leapstack-labs/portfolio/internal/ui/pages"
	"github.com/leapstack-labs/portfolio/internal/ui/resources"
)

// NotFoundFile is the page static hosts serve for unknown paths.
const NotFoundFile = "404.html"

// Config holds what a build renders.
type Config struct {
	Catalog *catalog.Catalog
	Router  *route.Router
	Profile pages.Profile
	Timing  components.Timing
	// Assets defaults to the embedded static files.
	Assets fs.FS
	Minify bool
}

// Page is one exported HTML file.
type Page struct {
	Path   string `json:"path"` // request path, "" for the not-found page
	File   string `json:"file"` // slash-separated, relative to the output directory
	Title  string `json:"title"`
	Status int    `json:"status"`
}

// Result describes a finished build.
type Result struct {
	OutputDir string
	Pages     []Page
	Assets    []string
}

// Builder renders the site to disk.
type Builder struct {
	cfg   Config
	shell pages.Shell
}

// NewBuilder creates a builder. The catalog is required.
func NewBuilder(cfg Config) (*Builder, error) {
	if cfg.Catalog == nil {
		return nil, errors.New("site: catalog is required")
	}
	if cfg.Router == nil {
		cfg.Router = route.Default()
	}
	if cfg.Assets == nil {
		cfg.Assets = resources.FS()
	}
	return &Builder{
		cfg: cfg,
		shell: pages.Shell{
			Profile:    cfg.Profile,
			Timing:     cfg.Timing,
			Static:     true,
			StaticPath: resources.StaticPath,
		},
	}, nil
}

// Paths lists every request path the site answers with a real page, in a
// stable order: fixed pages first, then projects by title.
func Paths(cat *catalog.Catalog) []string {
	paths := []string{route.HomePath, route.ProjectsPath, route.AboutPath, route.ContactPath}
	for _, p := range cat.ListSortedByTitle() {
		paths = append(paths, route.ProjectPath(p.Slug))
	}
	return paths
}

// FileFor maps a request path to the file that serves it.
func FileFor(requestPath string) string {
	trimmed := strings.Trim(requestPath, "/")
	if trimmed == "" {
		return "index.html"
	}
	return path.Join(trimmed, "index.html")
}

// Render renders a single request path to HTML.
func (b *Builder) Render(ctx context.Context, requestPath string) (Page, []byte, error) {
	m := b.cfg.Router.Resolve(requestPath)
	return b.render(ctx, m, FileFor(requestPath))
}

func (b *Builder) render(ctx context.Context, m route.Match, file string) (Page, []byte, error) {
	v := pages.Render(m, b.cfg.Catalog, b.cfg.Profile)
	var buf bytes.Buffer
	if err := b.shell.Settled(m.Key(), v).Render(ctx, &buf); err != nil {
		return Page{}, nil, fmt.Errorf("render %s: %w", file, err)
	}
	return Page{Path: m.Path, File: file, Title: v.Title, Status: v.Status}, buf.Bytes(), nil
}

// Build writes every page, the not-found page and the static assets under
// outputDir.
func (b *Builder) Build(ctx context.Context, outputDir string) (*Result, error) {
	if err := os.MkdirAll(outputDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	res := &Result{OutputDir: outputDir}

	for _, p := range Paths(b.cfg.Catalog) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, html, err := b.Render(ctx, p)
		if err != nil {
			return nil, err
		}
		if err := writeFile(outputDir, page.File, html); err != nil {
			return nil, err
		}
		res.Pages = append(res.Pages, page)
	}

	page, html, err := b.render(ctx, route.Match{Page: route.NotFound}, NotFoundFile)
	if err != nil {
		return nil, err
	}
	if err := writeFile(outputDir, page.File, html); err != nil {
		return nil, err
	}
	res.Pages = append(res.Pages, page)

	assets, err := resources.Collect(b.cfg.Assets, b.cfg.Minify)
	if err != nil {
		return nil, fmt.Errorf("failed to collect static files: %w", err)
	}
	for name, data := range assets {
		file := strings.TrimPrefix(resources.StaticPath(name), "/")
		if err := writeFile(outputDir, file, data); err != nil {
			return nil, err
		}
		res.Assets = append(res.Assets, file)
	}
	sort.Strings(res.Assets)

	return res, nil
}

// NotFound reports how many exported pages answer with a not-found status.
func (r *Result) NotFound() int {
	n := 0
	for _, p := range r.Pages {
		if p.Status == http.StatusNotFound {
			n++
		}
	}
	return n
}

func writeFile(outputDir, file string, data []byte) error {
	target := filepath.Join(outputDir, filepath.FromSlash(file))
	if err := os.MkdirAll(filepath.Dir(target), 0750); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(target), err)
	}
	if err := os.WriteFile(target, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", file, err)
	}
	return nil
}
