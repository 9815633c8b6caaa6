package ui

// Layout constants for panel sizing
const (
	// TabsHeight is the height of the tab strip in lines
	TabsHeight = 1

	// StatusBarHeight is the height of the Keys status bar
	StatusBarHeight = 1

	// FPSHeight is the height of the FPS counter
	FPSHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// PageMarginY is the vertical margin around Home and Note content
	PageMarginY = 2

	// KeyBindingsHeight is the minimum height of the Home key bindings block
	KeyBindingsHeight = 5

	// DefaultWrapWidth is the default width for text wrapping when the area is unknown
	DefaultWrapWidth = 80
)

// Separators
const (
	// ChordSeparator joins several chords bound to the same action
	ChordSeparator = " | "

	// StatusSeparator separates status bar sections
	StatusSeparator = "  |  "
)
