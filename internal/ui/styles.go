package ui

import "charm.land/lipgloss/v2"

// Styles is the full set of lipgloss styles derived from one Theme.
// Build it with NewStyles and treat it as read-only.
type Styles struct {
	Theme Theme

	// Page
	Root    lipgloss.Style // whole panel background
	Content lipgloss.Style // body text

	// Blocks
	Block      lipgloss.Style // bordered container
	BlockTitle lipgloss.Style

	// Tabs
	Tab         lipgloss.Style
	TabSelected lipgloss.Style
	TabDivider  lipgloss.Style

	// Key binding hints (Home panel)
	BindingKey  lipgloss.Style
	BindingDesc lipgloss.Style

	// Note list
	ListItem     lipgloss.Style
	ListSelected lipgloss.Style

	// Status bar
	StatusMode    lipgloss.Style
	StatusKey     lipgloss.Style
	StatusDesc    lipgloss.Style
	StatusDivider lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusError   lipgloss.Style

	// Misc
	FPS lipgloss.Style
}

// NewStyles builds Styles from theme.
func NewStyles(t Theme) Styles {
	bg := lipgloss.Color(t.Bg)
	text := lipgloss.Color(t.Text)
	muted := lipgloss.Color(t.TextMuted)
	primary := lipgloss.Color(t.Primary)
	secondary := lipgloss.Color(t.Secondary)
	border := lipgloss.Color(t.Border)
	keyBg := lipgloss.Color(t.GetBgKey())

	return Styles{
		Theme: t,

		Root: lipgloss.NewStyle().
			Background(bg),
		Content: lipgloss.NewStyle().
			Foreground(text).
			Background(bg),

		Block: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Background(bg),
		BlockTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			Background(bg),

		Tab: lipgloss.NewStyle().
			Foreground(muted).
			Background(bg).
			Padding(0, 1),
		TabSelected: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(t.TextInverse)).
			Background(lipgloss.Color(t.GetBgSelected())).
			Padding(0, 1),
		TabDivider: lipgloss.NewStyle().
			Foreground(border).
			Background(bg),

		BindingKey: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Border)).
			Background(keyBg),
		BindingDesc: lipgloss.NewStyle().
			Foreground(secondary).
			Background(keyBg),

		ListItem: lipgloss.NewStyle().
			Foreground(text).
			Background(bg).
			PaddingLeft(2),
		ListSelected: lipgloss.NewStyle().
			Bold(true).
			Foreground(secondary).
			Background(bg).
			PaddingLeft(0),

		StatusMode: lipgloss.NewStyle().
			Faint(true).
			Foreground(text),
		StatusKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(secondary),
		StatusDesc: lipgloss.NewStyle().
			Foreground(muted),
		StatusDivider: lipgloss.NewStyle().
			Foreground(border),
		StatusInfo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)).
			Italic(true),
		StatusError: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Error)).
			Bold(true),

		FPS: lipgloss.NewStyle().
			Foreground(muted),
	}
}
