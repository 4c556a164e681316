// Package markup writes HTML for hand-built templ components.
package markup

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Writer writes markup and keeps the first error, so a component can be
// written straight through and report failure once at the end.
type Writer struct {
	ctx context.Context
	w   io.Writer
	err error
}

// Component adapts fn into a templ.Component.
func Component(fn func(w *Writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		mw := &Writer{ctx: ctx, w: w}
		fn(mw)
		return mw.err
	})
}

// Raw writes parts unescaped.
func (w *Writer) Raw(parts ...string) {
	for _, s := range parts {
		if w.err != nil {
			return
		}
		_, w.err = io.WriteString(w.w, s)
	}
}

// Text writes s as escaped character data.
func (w *Writer) Text(s string) {
	w.Raw(templ.EscapeString(s))
}

// Attr writes ` name="value"` with value escaped.
func (w *Writer) Attr(name, value string) {
	w.Raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

// URL writes a sanitized URL attribute.
func (w *Writer) URL(name, value string) {
	w.Attr(name, string(templ.URL(value)))
}

// Render writes a nested component.
func (w *Writer) Render(c templ.Component) {
	if w.err != nil || c == nil {
		return
	}
	w.err = c.Render(w.ctx, w.w)
}

// Children renders the block passed with templ.WithChildren. The block
// itself sees no children.
func (w *Writer) Children() {
	if w.err != nil {
		return
	}
	w.err = templ.GetChildren(w.ctx).Render(templ.ClearChildren(w.ctx), w.w)
}

// Err returns the first write error.
func (w *Writer) Err() error { return w.err }
