package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles used in text mode. Colors are dropped
// when the writer is not a terminal or NO_COLOR is set.
type Styles struct {
	// Profile is the color profile the styles render with.
	Profile termenv.Profile

	Header        lipgloss.Style
	Bold          lipgloss.Style
	Muted         lipgloss.Style
	Success       lipgloss.Style
	Warning       lipgloss.Style
	Error         lipgloss.Style
	Info          lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusFailed  lipgloss.Style
	Slug          lipgloss.Style
}

// NewStyles builds styles bound to w's color profile.
func NewStyles(w io.Writer, isTTY bool) *Styles {
	re := lipgloss.NewRenderer(w)
	if !isTTY || termenv.EnvNoColor() {
		re.SetColorProfile(termenv.Ascii)
	}
	return &Styles{
		Profile:       re.ColorProfile(),
		Header:        re.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Underline(true),
		Bold:          re.NewStyle().Bold(true),
		Muted:         re.NewStyle().Foreground(lipgloss.Color("8")),
		Success:       re.NewStyle().Foreground(lipgloss.Color("10")),
		Warning:       re.NewStyle().Foreground(lipgloss.Color("11")),
		Error:         re.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Info:          re.NewStyle().Foreground(lipgloss.Color("14")),
		StatusSuccess: re.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		StatusFailed:  re.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Slug:          re.NewStyle().Foreground(lipgloss.Color("13")),
	}
}
