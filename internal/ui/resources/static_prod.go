//go:build !dev

package resources

import (
	"bytes"
	"embed"
	"io/fs"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"
)

//go:embed static/*
var staticFS embed.FS

// FS returns the static assets.
func FS() fs.FS {
	fsys, _ := fs.Sub(staticFS, "static")
	return fsys
}

// Handler returns an HTTP handler for serving static files.
// In production mode, files are embedded in the binary and minified once.
func Handler() http.Handler {
	assets, err := Collect(FS(), true)
	if err != nil {
		slog.Warn("serving unminified assets", "error", err)
		if assets, err = Collect(FS(), false); err != nil {
			slog.Error("embedded assets unreadable", "error", err)
		}
	}
	started := time.Now()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/static/")
		data, ok := assets[name]
		if !ok {
			http.NotFound(w, r)
			return
		}
		if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
			w.Header().Set("Content-Type", ct)
		}
		// Cache embedded static assets for 1 year (they never change in prod)
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		http.ServeContent(w, r, name, started, bytes.NewReader(data))
	})
}
