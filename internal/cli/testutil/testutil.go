// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

// ProjectsYAML is the catalog written by SetupTestProject. Its insertion
// order differs from its title order.
const ProjectsYAML = `projects:
  - id: 1
    slug: zeta-robot
    title: Zeta Robot
    description: A robot that walks.
    tech: [C, ROS]
    github: https://github.com/example/zeta
    images: [zeta.png]
  - id: 2
    slug: alpha-site
    title: Alpha Site
    description: ""
    tech: []
    images: []
`

// ConfigYAML is the portfolio.yaml written by SetupTestProject.
const ConfigYAML = `catalog: projects.yaml
site:
  title: Test Portfolio
  owner: Test Owner
  email: owner@example.com
build:
  output_dir: dist
`

// SetupTestProject creates a temporary project with a config file and a
// two-project catalog, and returns its directory.
func SetupTestProject(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	files := map[string]string{
		"portfolio.yaml": ConfigYAML,
		"projects.yaml":  ProjectsYAML,
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte(body), 0600); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}
	return tmpDir
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertValidMarkdown performs basic markdown validation.
// It checks for unclosed code fences and basic structure.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	// Check for balanced code fences
	fenceCount := strings.Count(md, "```")
	if fenceCount%2 != 0 {
		t.Errorf("unbalanced code fences in markdown: found %d occurrences", fenceCount)
	}

	// Check that headers have content
	lines := strings.Split(md, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
			t.Errorf("empty header at line %d: %q", i+1, line)
		}
	}
}
