package config

import (
	"github.com/zhubert/panes/internal/action"
	"github.com/zhubert/panes/internal/keys"
	"github.com/zhubert/panes/internal/mode"
)

// Built-in values used when the config file leaves them out.
const (
	DefaultTheme     = "ratatui"
	DefaultTickRate  = 4.0
	DefaultFrameRate = 30.0
)

var defaultNotes = []string{
	"Press <tab> to switch between Home and Note.",
	"Use <j> and <k> to move through notes.",
	"Press <y> to copy the selected note.",
	"Edit the config file and press <C-r> to reload it.",
}

func bind(a action.Type, chord ...string) keys.Binding {
	return keys.Binding{Keys: chord, Action: action.New(a)}
}

// globalBindings apply in every mode.
func globalBindings() []keys.Binding {
	return []keys.Binding{
		bind(action.Quit, "q"),
		bind(action.Quit, keys.CtrlC),
		bind(action.Quit, keys.CtrlD),
		bind(action.Suspend, keys.CtrlZ),
		bind(action.Switch, keys.Tab),
		bind(action.ClearScreen, keys.CtrlL),
		bind(action.ReloadConfig, keys.CtrlR),
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	home := globalBindings()

	note := append(globalBindings(),
		bind(action.NextNote, "j"),
		bind(action.NextNote, keys.Down),
		bind(action.PrevNote, "k"),
		bind(action.PrevNote, keys.Up),
		bind(action.Yank, "y"),
		bind(action.Yank, keys.CtrlY),
	)

	return &Config{
		Keybindings: map[mode.Mode][]keys.Binding{
			mode.Home: home,
			mode.Note: note,
		},
		Theme:         DefaultTheme,
		TickRate:      DefaultTickRate,
		FrameRate:     DefaultFrameRate,
		Notifications: true,
		Notes:         append([]string(nil), defaultNotes...),
	}
}
