package catalog

import (
	"fmt"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Catalog is an immutable, ordered collection of project records.
// It is safe for concurrent use.
type Catalog struct {
	records []ProjectRecord
	bySlug  map[string]int
	byTitle []int // indexes into records, display order
}

type options struct {
	locale language.Tag
	source string
}

// Option configures catalog construction.
type Option func(*options)

// WithLocale selects the collation locale used for title ordering.
func WithLocale(tag language.Tag) Option {
	return func(o *options) { o.locale = tag }
}

// WithSource names the payload origin in validation errors.
func WithSource(source string) Option {
	return func(o *options) { o.source = source }
}

// New validates records and builds a catalog that keeps their order.
// Any duplicate or missing required field fails the whole build.
func New(records []ProjectRecord, opts ...Option) (*Catalog, error) {
	o := options{locale: language.English}
	for _, opt := range opts {
		opt(&o)
	}

	if issues := validate(records); len(issues) > 0 {
		return nil, &ValidationError{Source: o.source, Issues: issues}
	}

	c := &Catalog{
		records: make([]ProjectRecord, len(records)),
		bySlug:  make(map[string]int, len(records)),
		byTitle: make([]int, len(records)),
	}
	for i, rec := range records {
		c.records[i] = rec.clone()
		c.bySlug[rec.Slug] = i
		c.byTitle[i] = i
	}

	// Collators keep scratch buffers, so one is built per catalog and only
	// used here, before the catalog is shared.
	col := collate.New(o.locale, collate.IgnoreCase)
	slices.SortStableFunc(c.byTitle, func(a, b int) int {
		return col.CompareString(c.records[a].Title, c.records[b].Title)
	})

	return c, nil
}

// MustNew is like New but panics on invalid records. Intended for tests and
// compiled-in fixtures.
func MustNew(records []ProjectRecord, opts ...Option) *Catalog {
	c, err := New(records, opts...)
	if err != nil {
		panic(fmt.Sprintf("catalog: %v", err))
	}
	return c
}

// Len returns the number of records.
func (c *Catalog) Len() int { return len(c.records) }

// List returns every record in insertion order.
func (c *Catalog) List() []ProjectRecord {
	out := make([]ProjectRecord, len(c.records))
	for i, rec := range c.records {
		out[i] = rec.clone()
	}
	return out
}

// FindBySlug returns the record with exactly this slug.
// Unknown, empty and malformed slugs all report false.
func (c *Catalog) FindBySlug(slug string) (ProjectRecord, bool) {
	if slug == "" {
		return ProjectRecord{}, false
	}
	i, ok := c.bySlug[slug]
	if !ok {
		return ProjectRecord{}, false
	}
	return c.records[i].clone(), true
}

// ListSortedByTitle returns a new slice ordered by case-insensitive title
// collation. Equal titles keep their insertion order.
func (c *Catalog) ListSortedByTitle() []ProjectRecord {
	out := make([]ProjectRecord, len(c.byTitle))
	for i, idx := range c.byTitle {
		out[i] = c.records[idx].clone()
	}
	return out
}
