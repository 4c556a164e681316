// Package resources provides static asset handling for the UI server.
package resources

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// StaticDirectoryPath is the path to static assets from the project root.
const StaticDirectoryPath = "internal/ui/resources/static"

// StaticPath returns the URL path for a static asset.
func StaticPath(name string) string {
	return "/static/" + name
}

// Minify shrinks CSS and JavaScript sources. Other files are returned as is.
func Minify(name string, data []byte) ([]byte, error) {
	var loader api.Loader
	switch strings.ToLower(path.Ext(name)) {
	case ".css":
		loader = api.LoaderCSS
	case ".js", ".mjs":
		loader = api.LoaderJS
	default:
		return data, nil
	}

	result := api.Transform(string(data), api.TransformOptions{
		Loader:            loader,
		Sourcefile:        name,
		MinifyWhitespace:  true,
		MinifySyntax:      true,
		MinifyIdentifiers: loader == api.LoaderJS,
	})
	if len(result.Errors) > 0 {
		msgs := make([]string, 0, len(result.Errors))
		for _, m := range result.Errors {
			msgs = append(msgs, m.Text)
		}
		return nil, fmt.Errorf("minify %s: %s", name, strings.Join(msgs, "; "))
	}
	return result.Code, nil
}

// Collect reads every file in fsys, minifying each when minify is set.
// Keys are slash-separated paths relative to the root of fsys.
func Collect(fsys fs.FS, minify bool) (map[string][]byte, error) {
	out := make(map[string][]byte)
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		if minify {
			if data, err = Minify(p, data); err != nil {
				return err
			}
		}
		out[p] = data
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("collect assets: %w", err)
	}
	return out, nil
}
