package app

import (
	"github.com/zhubert/panes/internal/clipboard"
	"github.com/zhubert/panes/internal/config"
	"github.com/zhubert/panes/internal/layout"
	"github.com/zhubert/panes/internal/ui"
)

// PanelSlots returns the application's panels top to bottom: the mode panels
// share the page, then the status bar, then the optional FPS line.
func PanelSlots(clip clipboard.Writer) []Slot {
	return []Slot{
		{Name: "home", Component: ui.NewHome(), Size: layout.Fill(1)},
		{Name: "note", Component: ui.NewNote(clip), Size: layout.Fill(1)},
		{Name: "keys", Component: ui.NewKeys(), Size: layout.Length(ui.StatusBarHeight)},
		{
			Name:      "fps",
			Component: ui.NewFPS(),
			Size:      layout.Length(ui.FPSHeight),
			Visible:   func(cfg *config.Config) bool { return cfg.ShowFPS },
		},
	}
}
