package output

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestNewStyles_PlainWhenNotTerminal(t *testing.T) {
	s := NewStyles(&bytes.Buffer{}, false)

	assert.Equal(t, termenv.Ascii, s.Profile)
	assert.Equal(t, "ok", s.Success.Render("ok"))
	assert.Equal(t, "alpha-site", s.Slug.Render("alpha-site"))
}

func TestNewStyles_NoColorOnTerminal(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	s := NewStyles(&bytes.Buffer{}, true)

	assert.Equal(t, termenv.Ascii, s.Profile)
	assert.NotContains(t, s.Error.Render("failed"), "\x1b[")
}

func TestRenderer_TextModeOffTerminalHasNoEscapes(t *testing.T) {
	r, out, _ := newBuffers(ModeText, false)
	r.Println(r.Styles.Header.Render("Projects"))

	assert.Equal(t, "Projects\n", out.String())
}
