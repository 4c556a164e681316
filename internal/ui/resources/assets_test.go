package resources

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinify(t *testing.T) {
	css, err := Minify("a.css", []byte(".view {\n  opacity: 0;\n}\n"))
	require.NoError(t, err)
	assert.Equal(t, ".view{opacity:0}\n", string(css))

	js, err := Minify("a.js", []byte("function f(longName) {\n  return longName + 1;\n}\nf(1);\n"))
	require.NoError(t, err)
	assert.NotContains(t, string(js), "longName")

	raw := []byte("not minified")
	out, err := Minify("a.txt", raw)
	require.NoError(t, err)
	assert.Equal(t, raw, out)

	_, err = Minify("bad.js", []byte("function ("))
	assert.Error(t, err)
}

func TestCollect(t *testing.T) {
	fsys := fstest.MapFS{
		"site.css":     {Data: []byte("a {  color: red; }")},
		"img/logo.svg": {Data: []byte("<svg/>")},
	}

	assets, err := Collect(fsys, true)
	require.NoError(t, err)
	assert.Len(t, assets, 2)
	assert.Equal(t, "a{color:red}\n", string(assets["site.css"]))
	assert.Equal(t, "<svg/>", string(assets["img/logo.svg"]))

	assets, err = Collect(fsys, false)
	require.NoError(t, err)
	assert.Equal(t, "a {  color: red; }", string(assets["site.css"]))
}

func TestHandler_ServesStylesheet(t *testing.T) {
	h := Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/site.css", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "view-enter")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/missing.css", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStaticPath(t *testing.T) {
	assert.Equal(t, "/static/site.css", StaticPath("site.css"))
}
