package ui

// Theme defines a complete color palette for the application.
// Themes are plain values: panels receive the Styles built from one at
// registration time, so switching themes never touches shared state.
type Theme struct {
	// Name is the display name of the theme
	Name string

	// Primary is the main accent color (titles, selected tab)
	Primary string
	// Secondary is the secondary accent color (key descriptions, list cursor)
	Secondary string

	// Background colors
	Bg         string // Main background
	BgSelected string // Selected item background (defaults to Primary if empty)
	BgKey      string // Background behind key binding hints

	// Text colors
	Text        string // Primary text
	TextMuted   string // Secondary/muted text
	TextInverse string // Text on colored backgrounds

	// Semantic colors
	Warning string
	Error   string
	Info    string

	// Border colors
	Border      string // Default borders
	BorderFocus string // Focused element borders (defaults to Primary if empty)
}

// GetBgSelected returns the selected background color, defaulting to Primary
func (t Theme) GetBgSelected() string {
	if t.BgSelected != "" {
		return t.BgSelected
	}
	return t.Primary
}

// GetBorderFocus returns the focused border color, defaulting to Primary
func (t Theme) GetBorderFocus() string {
	if t.BorderFocus != "" {
		return t.BorderFocus
	}
	return t.Primary
}

// GetBgKey returns the key hint background, defaulting to Bg
func (t Theme) GetBgKey() string {
	if t.BgKey != "" {
		return t.BgKey
	}
	return t.Bg
}

// ThemeName is a type for theme identifiers
type ThemeName string

// Available theme names
const (
	ThemeRatatui    ThemeName = "ratatui"
	ThemeDarkPurple ThemeName = "dark-purple"
	ThemeNord       ThemeName = "nord"
	ThemeDracula    ThemeName = "dracula"
	ThemeGruvbox    ThemeName = "gruvbox"
	ThemeTokyoNight ThemeName = "tokyo-night"
	ThemeCatppuccin ThemeName = "catppuccin"
	ThemeLight      ThemeName = "light"
)

// DefaultTheme is the default theme name
const DefaultTheme = ThemeRatatui

// BuiltinThemes contains all built-in themes
var BuiltinThemes = map[ThemeName]Theme{
	ThemeRatatui: {
		Name:        "Ratatui",
		Primary:     "#87FFFF", // light cyan
		Secondary:   "#87FFFF",
		Bg:          "#101830", // dark blue
		BgSelected:  "#EEEEEE",
		BgKey:       "#000000",
		Text:        "#BCBCBC", // light gray
		TextMuted:   "#808080", // mid gray
		TextInverse: "#101830",
		Warning:     "#C0C060", // light yellow
		Error:       "#D70000",
		Info:        "#4060C0", // light blue
		Border:      "#EEEEEE",
		BorderFocus: "#40C060", // light green
	},
	ThemeDarkPurple: {
		Name:        "Dark Purple",
		Primary:     "#7C3AED",
		Secondary:   "#06B6D4",
		Bg:          "#1F2937",
		Text:        "#F9FAFB",
		TextMuted:   "#9CA3AF",
		TextInverse: "#1F2937",
		Warning:     "#F59E0B",
		Error:       "#EF4444",
		Info:        "#06B6D4",
		Border:      "#374151",
	},
	ThemeNord: {
		Name:        "Nord",
		Primary:     "#88C0D0",
		Secondary:   "#81A1C1",
		Bg:          "#2E3440",
		Text:        "#ECEFF4",
		TextMuted:   "#D8DEE9",
		TextInverse: "#2E3440",
		Warning:     "#EBCB8B",
		Error:       "#BF616A",
		Info:        "#81A1C1",
		Border:      "#4C566A",
	},
	ThemeDracula: {
		Name:        "Dracula",
		Primary:     "#BD93F9",
		Secondary:   "#8BE9FD",
		Bg:          "#282A36",
		Text:        "#F8F8F2",
		TextMuted:   "#6272A4",
		TextInverse: "#282A36",
		Warning:     "#FFB86C",
		Error:       "#FF5555",
		Info:        "#8BE9FD",
		Border:      "#44475A",
	},
	ThemeGruvbox: {
		Name:        "Gruvbox Dark",
		Primary:     "#FE8019",
		Secondary:   "#83A598",
		Bg:          "#282828",
		Text:        "#EBDBB2",
		TextMuted:   "#A89984",
		TextInverse: "#282828",
		Warning:     "#FE8019",
		Error:       "#FB4934",
		Info:        "#83A598",
		Border:      "#504945",
	},
	ThemeTokyoNight: {
		Name:        "Tokyo Night",
		Primary:     "#7AA2F7",
		Secondary:   "#BB9AF7",
		Bg:          "#1A1B26",
		Text:        "#C0CAF5",
		TextMuted:   "#565F89",
		TextInverse: "#1A1B26",
		Warning:     "#E0AF68",
		Error:       "#F7768E",
		Info:        "#7DCFFF",
		Border:      "#3B4261",
	},
	ThemeCatppuccin: {
		Name:        "Catppuccin Mocha",
		Primary:     "#CBA6F7",
		Secondary:   "#89DCEB",
		Bg:          "#1E1E2E",
		Text:        "#CDD6F4",
		TextMuted:   "#6C7086",
		TextInverse: "#1E1E2E",
		Warning:     "#FAB387",
		Error:       "#F38BA8",
		Info:        "#89DCEB",
		Border:      "#313244",
	},
	ThemeLight: {
		Name:        "Light",
		Primary:     "#6366F1",
		Secondary:   "#0891B2",
		Bg:          "#FFFFFF",
		BgSelected:  "#E0E7FF",
		Text:        "#1F2937",
		TextMuted:   "#6B7280",
		TextInverse: "#FFFFFF",
		Warning:     "#D97706",
		Error:       "#DC2626",
		Info:        "#0891B2",
		Border:      "#D1D5DB",
		BorderFocus: "#6366F1",
	},
}

// ThemeNames returns a list of all available theme names in display order
func ThemeNames() []ThemeName {
	return []ThemeName{
		ThemeRatatui,
		ThemeDarkPurple,
		ThemeNord,
		ThemeDracula,
		ThemeGruvbox,
		ThemeTokyoNight,
		ThemeCatppuccin,
		ThemeLight,
	}
}

// LookupTheme returns the named theme and whether it exists.
func LookupTheme(name string) (Theme, bool) {
	t, ok := BuiltinThemes[ThemeName(name)]
	return t, ok
}

// GetTheme returns a theme by name, defaulting to Ratatui if not found
func GetTheme(name string) Theme {
	if theme, ok := LookupTheme(name); ok {
		return theme
	}
	return BuiltinThemes[DefaultTheme]
}
