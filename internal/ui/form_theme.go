package ui

import (
	"charm.land/bubbles/v2/help"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"
)

// FormTheme returns a huh theme built from t, used by the interactive
// "config init" form.
func FormTheme(t Theme) huh.Theme {
	primary := lipgloss.Color(t.Primary)
	secondary := lipgloss.Color(t.Secondary)
	text := lipgloss.Color(t.Text)
	muted := lipgloss.Color(t.TextMuted)
	warning := lipgloss.Color(t.Warning)

	return huh.ThemeFunc(func(isDark bool) *huh.Styles {
		s := huh.ThemeBase(isDark)

		// Focused field: left border indicator
		s.Focused.Base = lipgloss.NewStyle().
			PaddingLeft(1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(primary)
		s.Focused.Card = s.Focused.Base
		s.Focused.Title = lipgloss.NewStyle().Foreground(text).Bold(true)
		s.Focused.Description = lipgloss.NewStyle().Foreground(muted).Italic(true)
		s.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(warning).SetString(" *")
		s.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(warning)

		s.Focused.SelectSelector = lipgloss.NewStyle().Foreground(primary).SetString("> ")
		s.Focused.NextIndicator = lipgloss.NewStyle().Foreground(primary).MarginLeft(1).SetString("→")
		s.Focused.PrevIndicator = lipgloss.NewStyle().Foreground(primary).MarginRight(1).SetString("←")
		s.Focused.Option = lipgloss.NewStyle().Foreground(text)
		s.Focused.SelectedOption = lipgloss.NewStyle().Foreground(secondary)

		s.Focused.FocusedButton = lipgloss.NewStyle().
			Padding(0, 2).
			MarginRight(1).
			Foreground(lipgloss.Color(t.TextInverse)).
			Background(primary)
		s.Focused.BlurredButton = lipgloss.NewStyle().
			Padding(0, 2).
			MarginRight(1).
			Foreground(muted)

		s.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(primary)
		s.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(muted)
		s.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(primary)
		s.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(text)

		// Blurred field: same look without the border
		s.Blurred = s.Focused
		s.Blurred.Base = lipgloss.NewStyle().PaddingLeft(2)
		s.Blurred.Card = s.Blurred.Base
		s.Blurred.NextIndicator = lipgloss.NewStyle()
		s.Blurred.PrevIndicator = lipgloss.NewStyle()

		s.Group.Title = lipgloss.NewStyle().Foreground(secondary).Bold(true)
		s.Group.Description = lipgloss.NewStyle().Foreground(muted)

		s.FieldSeparator = lipgloss.NewStyle().SetString("\n")
		s.Help = help.New().Styles

		return s
	})
}
