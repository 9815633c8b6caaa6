package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// markdown renders a fixed markdown document and caches the result for the
// last width it was asked for.
type markdown struct {
	source string
	style  string
	width  int
	out    string
}

func newMarkdown(source string) *markdown {
	return &markdown{source: source}
}

// glamourStyle picks the glamour standard style closest to theme.
func glamourStyle(t Theme) string {
	switch t.Name {
	case BuiltinThemes[ThemeLight].Name:
		return "light"
	case BuiltinThemes[ThemeDracula].Name:
		return "dracula"
	default:
		return "dark"
	}
}

// Render returns the document wrapped to width. If glamour fails the raw
// markdown is wrapped instead.
func (m *markdown) Render(width int, t Theme) string {
	style := glamourStyle(t)
	if width == m.width && style == m.style && m.out != "" {
		return m.out
	}

	out := wrap(m.source, width)
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
		glamour.WithColorProfile(termenv.ANSI256),
	)
	if err == nil {
		if rendered, rerr := r.Render(m.source); rerr == nil {
			out = strings.Trim(rendered, "\n")
		}
	}

	m.width, m.style, m.out = width, style, out
	return out
}
