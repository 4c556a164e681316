package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPayload = `
projects:
  - id: 1
    slug: z
    title: Zeta
    description: Last letter.
    tech: [Go, templ]
    github: https://github.com/example/zeta
  - id: 2
    slug: a
    title: Alpha
    live_demo: https://alpha.example.com
    images: [alpha-1.png, alpha-2.png]
`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(validPayload))
	require.NoError(t, err)

	require.Equal(t, 2, c.Len())
	zeta, ok := c.FindBySlug("z")
	require.True(t, ok)
	assert.Equal(t, ProjectRecord{
		ID:          1,
		Slug:        "z",
		Title:       "Zeta",
		Description: "Last letter.",
		Tech:        []string{"Go", "templ"},
		GitHub:      "https://github.com/example/zeta",
	}, zeta)

	alpha, ok := c.FindBySlug("a")
	require.True(t, ok)
	assert.Equal(t, "https://alpha.example.com", alpha.LiveDemo)
	assert.Equal(t, []string{"alpha-1.png", "alpha-2.png"}, alpha.Images)
	assert.True(t, alpha.Pending())
}

func TestParse_RejectsDuplicateSlug(t *testing.T) {
	payload := `
projects:
  - {id: 1, slug: dup, title: One}
  - {id: 2, slug: dup, title: Two}
`
	_, err := Parse([]byte(payload))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCatalog)
	assert.Contains(t, err.Error(), `"dup" already used`)
}

func TestParse_RejectsUnknownField(t *testing.T) {
	payload := `
projects:
  - {id: 1, slug: one, title: One, liveDemo: https://example.com}
`
	_, err := Parse([]byte(payload))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCatalog)
	assert.Contains(t, err.Error(), "liveDemo")
}

func TestParse_RejectsWrongType(t *testing.T) {
	_, err := Parse([]byte("projects:\n  - {id: one, slug: one, title: One}\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCatalog)
}

func TestParse_EmptyPayload(t *testing.T) {
	c, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestLoad_Reader(t *testing.T) {
	c, err := Load(strings.NewReader(validPayload))
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "Zeta"}, titles(c.ListSortedByTitle()))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "projects.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validPayload), 0600))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
}

func TestLoadFile_NamesSourceInErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("projects:\n  - {id: 1, title: No Slug}\n"), 0600))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
	assert.Contains(t, err.Error(), "projects[0].slug: is required")
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	require.Positive(t, c.Len())

	for _, rec := range c.List() {
		assert.True(t, ValidSlug(rec.Slug))
		assert.NotEmpty(t, rec.Title)
	}

	rec, ok := c.FindBySlug("cnc-machine-simulator")
	require.True(t, ok)
	assert.False(t, rec.HasLiveDemo())
}

func TestOpen(t *testing.T) {
	embedded, err := Open("")
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "projects.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validPayload), 0600))
	fromFile, err := Open(path)
	require.NoError(t, err)

	assert.NotEqual(t, embedded.List(), fromFile.List())
}
