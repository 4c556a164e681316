//go:build dev

package resources

import (
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
)

// getStaticDir derives the absolute path to the static directory
// relative to this source file, regardless of where the binary is run from.
func getStaticDir() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return StaticDirectoryPath
	}
	return filepath.Join(filepath.Dir(filename), "static")
}

// FS returns the static assets straight from the source tree.
func FS() fs.FS {
	return os.DirFS(getStaticDir())
}

// Handler returns an HTTP handler for serving static files.
// In dev mode, files are served directly from the filesystem for hot reloading.
func Handler() http.Handler {
	staticDir := getStaticDir()
	slog.Info("static assets served from filesystem", "path", staticDir)

	return http.StripPrefix("/static/", http.FileServer(http.FS(FS())))
}
