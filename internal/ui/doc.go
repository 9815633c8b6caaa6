// Package ui provides the panels of the panes terminal application.
//
// # Overview
//
// Every panel implements component.Component. Panels never talk to each other
// or to the terminal: they receive Actions through Update and draw into the
// rectangle the dispatcher hands them. Drawing goes through an ultraviolet
// screen buffer; text is styled with lipgloss first and then placed with
// uv.NewStyledString, cut to the rectangle so a panel cannot paint outside it.
//
// # Layout
//
// The dispatcher stacks the active panels vertically:
//
//	┌─────────────────────────────────────────────────────┐
//	│ Home or Note (fills the screen)                     │
//	│   tabs, then the mode specific blocks               │
//	├─────────────────────────────────────────────────────┤
//	│ Keys status bar (1 line)                            │
//	├─────────────────────────────────────────────────────┤
//	│ FPS counter (1 line, optional)                      │
//	└─────────────────────────────────────────────────────┘
//
// # Panels
//
// Home: tab strip, welcome text rendered from markdown with glamour, and the
// Home key bindings grouped by action.
//
// Note: tab strip, a notes list moved by NextNote and PrevNote, and the text
// of the selected note. Yank copies the selected note to the clipboard.
//
// Keys: status bar active in every mode. It keeps its own copy of the mode,
// updated from ModeChanged, and shows the short help for that mode's
// bindings plus the latest Status or Error message.
//
// FPS: counts Tick and Render actions per second.
//
// # Styles
//
// Themes are immutable Theme values. NewStyles builds the lipgloss styles for
// one theme; each panel rebuilds its Styles when a config is registered, so a
// reload that changes the theme applies on the next frame.
package ui
