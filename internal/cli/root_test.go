package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/portfolio/internal/cli/commands"
	"github.com/leapstack-labs/portfolio/internal/cli/config"
	"github.com/leapstack-labs/portfolio/internal/cli/testutil"
)

// execute runs the root command with args inside a fresh test project and
// returns stdout.
func execute(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)
	t.Chdir(dir)

	cmd := NewRootCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand_Metadata(t *testing.T) {
	cmd := NewRootCmd()
	assert.Equal(t, "portfolio", cmd.Use)

	for _, name := range []string{"serve", "build", "projects", "render", "validate", "version", "completion"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
	for _, flag := range []string{"config", "catalog", "locale", "verbose", "output", "log-level", "log-format"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "portfolio v"+Version)
}

func TestProjectsCommand(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantSlugs []string
	}{
		{name: "title order", args: []string{"projects", "-o", "json"}, wantSlugs: []string{"alpha-site", "zeta-robot"}},
		{name: "catalog order", args: []string{"projects", "--order", "catalog", "-o", "json"}, wantSlugs: []string{"zeta-robot", "alpha-site"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, testutil.SetupTestProject(t), tt.args...)
			require.NoError(t, err)

			var got []struct {
				Slug    string `json:"slug"`
				Path    string `json:"path"`
				Pending bool   `json:"pending"`
			}
			require.NoError(t, json.Unmarshal([]byte(out), &got))
			require.Len(t, got, len(tt.wantSlugs))
			for i, slug := range tt.wantSlugs {
				assert.Equal(t, slug, got[i].Slug)
				assert.Equal(t, "/projects/"+slug, got[i].Path)
				assert.Equal(t, slug == "alpha-site", got[i].Pending)
			}
		})
	}
}

func TestProjectsCommand_Markdown(t *testing.T) {
	out, err := execute(t, testutil.SetupTestProject(t), "projects", "-o", "markdown")
	require.NoError(t, err)

	testutil.AssertNoANSI(t, out)
	testutil.AssertValidMarkdown(t, out)
	assert.Contains(t, out, "# Projects (2 total)")
	assert.Contains(t, out, "zeta-robot")
	assert.Contains(t, out, "/projects/alpha-site")
}

func TestProjectsCommand_UnknownOrder(t *testing.T) {
	_, err := execute(t, testutil.SetupTestProject(t), "projects", "--order", "random")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown order")
}

func TestBuildCommand(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	out, err := execute(t, dir, "build", "-o", "json")
	require.NoError(t, err)

	var got struct {
		OutputDir string `json:"output_dir"`
		Pages     []struct {
			File   string `json:"file"`
			Status int    `json:"status"`
		} `json:"pages"`
		Assets []string `json:"assets"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	dist := filepath.Join(dir, "dist")
	assert.Equal(t, dist, got.OutputDir)
	assert.Len(t, got.Pages, 7)
	for _, file := range []string{"index.html", "projects/zeta-robot/index.html", "404.html", "static/site.css"} {
		assert.FileExists(t, filepath.Join(dist, filepath.FromSlash(file)))
	}
}

func TestBuildCommand_OutFlagRelativeToWorkDir(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	_, err := execute(t, dir, "build", "--out", "public", "--minify=false")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "public", "index.html"))
}

func TestRenderCommand(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantTitle  string
		wantStatus int
	}{
		{name: "about", path: "/about", wantTitle: "About Me", wantStatus: 200},
		{name: "project", path: "/projects/zeta-robot", wantTitle: "Zeta Robot", wantStatus: 200},
		{name: "unknown slug", path: "/projects/nope", wantTitle: "Project not found", wantStatus: 404},
		{name: "unknown path", path: "/missing", wantTitle: "Page not found", wantStatus: 404},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, testutil.SetupTestProject(t), "render", tt.path, "-o", "json")
			require.NoError(t, err)

			var got struct {
				Path   string `json:"path"`
				Title  string `json:"title"`
				Status int    `json:"status"`
				HTML   string `json:"html"`
			}
			require.NoError(t, json.Unmarshal([]byte(out), &got))
			assert.Equal(t, tt.wantTitle, got.Title)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Contains(t, got.HTML, "<title>"+tt.wantTitle+" - Test Portfolio</title>")
		})
	}
}

func TestRenderCommand_Markdown(t *testing.T) {
	out, err := execute(t, testutil.SetupTestProject(t), "render", "/projects/zeta-robot", "-o", "markdown")
	require.NoError(t, err)
	testutil.AssertValidMarkdown(t, out)
	assert.Contains(t, out, "Zeta Robot")
	assert.NotContains(t, out, "<html")
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, testutil.SetupTestProject(t), "validate", "-o", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "2 projects, no issues")
}

func TestValidateCommand_Invalid(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	bad := `projects:
  - id: 1
    slug: Bad Slug
    title: One
  - id: 1
    slug: two
    title: one
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "projects.yaml"), []byte(bad), 0600))

	out, err := execute(t, dir, "validate", "-o", "json")
	require.ErrorIs(t, err, commands.ErrCatalogInvalid)

	var got struct {
		Valid  bool `json:"valid"`
		Issues []struct {
			Field string `json:"field"`
		} `json:"issues"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.False(t, got.Valid)
	assert.NotEmpty(t, got.Issues)
}

func TestValidateCommand_MissingCatalog(t *testing.T) {
	_, err := execute(t, t.TempDir(), "validate", "--catalog", "nope.yaml", "-o", "markdown")
	require.ErrorIs(t, err, commands.ErrCatalogInvalid)
}

func TestInvalidConfiguration(t *testing.T) {
	_, err := execute(t, testutil.SetupTestProject(t), "projects", "--output", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestCompletionCommand(t *testing.T) {
	out, err := execute(t, t.TempDir(), "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "portfolio")
}
