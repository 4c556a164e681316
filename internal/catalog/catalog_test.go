package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

func fixture(t *testing.T) *Catalog {
	t.Helper()
	c, err := New([]ProjectRecord{
		{ID: 1, Slug: "z", Title: "Zeta", Tech: []string{"Go"}},
		{ID: 2, Slug: "a", Title: "Alpha", Images: []string{"alpha.png"}},
		{ID: 3, Slug: "b", Title: "beta"},
		{ID: 4, Slug: "a2", Title: "alpha"},
	})
	require.NoError(t, err)
	return c
}

func titles(records []ProjectRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Title
	}
	return out
}

func TestCatalog_List(t *testing.T) {
	c := fixture(t)

	assert.Equal(t, 4, c.Len())
	assert.Equal(t, []string{"Zeta", "Alpha", "beta", "alpha"}, titles(c.List()))
}

func TestCatalog_FindBySlug(t *testing.T) {
	c := fixture(t)

	for _, rec := range c.List() {
		got, ok := c.FindBySlug(rec.Slug)
		require.True(t, ok, "slug %q should be found", rec.Slug)
		assert.Equal(t, rec, got)
	}

	tests := []struct {
		name string
		slug string
	}{
		{name: "empty", slug: ""},
		{name: "unknown", slug: "missing"},
		{name: "case differs", slug: "Z"},
		{name: "malformed", slug: "a/b"},
		{name: "whitespace", slug: " a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := c.FindBySlug(tt.slug)
			assert.False(t, ok)
		})
	}
}

func TestCatalog_ListSortedByTitle(t *testing.T) {
	c := fixture(t)

	sorted := c.ListSortedByTitle()

	// Equal titles under case folding keep insertion order.
	assert.Equal(t, []string{"Alpha", "alpha", "beta", "Zeta"}, titles(sorted))
	assert.ElementsMatch(t, c.List(), sorted, "sorted view must be a permutation")

	col := collate.New(language.English, collate.IgnoreCase)
	for i := 0; i+1 < len(sorted); i++ {
		assert.LessOrEqual(t, col.CompareString(sorted[i].Title, sorted[i+1].Title), 0)
	}

	assert.Equal(t, sorted, c.ListSortedByTitle(), "ordering must be idempotent")
	assert.Equal(t, []string{"Zeta", "Alpha", "beta", "alpha"}, titles(c.List()), "backing order must not change")
}

func TestCatalog_ReturnsCopies(t *testing.T) {
	c := fixture(t)

	list := c.List()
	list[0].Title = "mutated"
	list[0].Tech[0] = "Rust"

	rec, ok := c.FindBySlug("a")
	require.True(t, ok)
	rec.Images[0] = "other.png"

	fresh, _ := c.FindBySlug("z")
	assert.Equal(t, "Zeta", fresh.Title)
	assert.Equal(t, []string{"Go"}, fresh.Tech)

	again, _ := c.FindBySlug("a")
	assert.Equal(t, []string{"alpha.png"}, again.Images)
}

func TestCatalog_InputNotAliased(t *testing.T) {
	records := []ProjectRecord{{ID: 1, Slug: "x", Title: "X", Tech: []string{"Go"}}}
	c := MustNew(records)

	records[0].Tech[0] = "Rust"
	records[0].Title = "Y"

	got, _ := c.FindBySlug("x")
	assert.Equal(t, "X", got.Title)
	assert.Equal(t, []string{"Go"}, got.Tech)
}

func TestCatalog_Empty(t *testing.T) {
	c, err := New(nil)
	require.NoError(t, err)

	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.List())
	assert.Empty(t, c.ListSortedByTitle())
	_, ok := c.FindBySlug("anything")
	assert.False(t, ok)
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name      string
		records   []ProjectRecord
		wantField string
		wantMsg   string
	}{
		{
			name: "duplicate slug",
			records: []ProjectRecord{
				{ID: 1, Slug: "dup", Title: "One"},
				{ID: 2, Slug: "dup", Title: "Two"},
			},
			wantField: "slug",
			wantMsg:   `projects[1].slug: "dup" already used by projects[0]`,
		},
		{
			name: "duplicate id",
			records: []ProjectRecord{
				{ID: 7, Slug: "one", Title: "One"},
				{ID: 7, Slug: "two", Title: "Two"},
			},
			wantField: "id",
			wantMsg:   "projects[1].id: 7 already used by projects[0]",
		},
		{
			name:      "missing id",
			records:   []ProjectRecord{{Slug: "one", Title: "One"}},
			wantField: "id",
			wantMsg:   "projects[0].id: is required",
		},
		{
			name:      "negative id",
			records:   []ProjectRecord{{ID: -1, Slug: "one", Title: "One"}},
			wantField: "id",
			wantMsg:   "must be positive",
		},
		{
			name:      "missing slug",
			records:   []ProjectRecord{{ID: 1, Title: "One"}},
			wantField: "slug",
			wantMsg:   "projects[0].slug: is required",
		},
		{
			name:      "slug with slash",
			records:   []ProjectRecord{{ID: 1, Slug: "a/b", Title: "One"}},
			wantField: "slug",
			wantMsg:   "is not URL-safe",
		},
		{
			name:      "missing title",
			records:   []ProjectRecord{{ID: 1, Slug: "one", Title: "  "}},
			wantField: "title",
			wantMsg:   "projects[0].title: is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.records)
			require.Error(t, err)
			assert.Nil(t, c)
			assert.ErrorIs(t, err, ErrInvalidCatalog)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.True(t, verr.HasField(tt.wantField), "expected issue on %s, got %v", tt.wantField, verr.Issues)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestNew_ReportsEveryIssue(t *testing.T) {
	_, err := New([]ProjectRecord{
		{ID: 1, Slug: "dup", Title: ""},
		{ID: 1, Slug: "dup", Title: "Two"},
	}, WithSource("fixture.yaml"))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Issues, 3)
	assert.Contains(t, err.Error(), "fixture.yaml")
}

func TestMustNew_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustNew([]ProjectRecord{{ID: 1, Slug: "dup", Title: "A"}, {ID: 2, Slug: "dup", Title: "B"}})
	})
}

func TestValidSlug(t *testing.T) {
	valid := []string{"a", "cnc-machine-simulator", "v1.2", "under_score", "tilde~", "MixedCase"}
	invalid := []string{"", ".", "..", "a b", "a/b", "a?b", "a#b", "é", "a%20b"}

	for _, s := range valid {
		assert.True(t, ValidSlug(s), "%q should be valid", s)
	}
	for _, s := range invalid {
		assert.False(t, ValidSlug(s), "%q should be invalid", s)
	}
}

func TestProjectRecord_Helpers(t *testing.T) {
	rec := ProjectRecord{GitHub: "https://github.com/x/y"}

	assert.True(t, rec.HasGitHub())
	assert.False(t, rec.HasLiveDemo())
	assert.True(t, rec.Pending())
}

func TestHolder_Swap(t *testing.T) {
	first := MustNew([]ProjectRecord{{ID: 1, Slug: "a", Title: "A"}})
	second := MustNew([]ProjectRecord{{ID: 1, Slug: "b", Title: "B"}})

	h := NewHolder(first)
	assert.Same(t, first, h.Load())

	h.Store(second)
	assert.Same(t, second, h.Load())
	_, ok := first.FindBySlug("a")
	assert.True(t, ok, "stored catalogs are never mutated")
}
