// Package scenarios contains built-in demo scenarios for panes.
package scenarios

import (
	"time"

	"github.com/zhubert/panes/internal/demo"
)

// Basic walks through the two modes:
// - the Home page with its key bindings
// - switching to Note mode and moving through the notes
// - yanking a note and seeing the status bar confirm it
var Basic = &demo.Scenario{
	Name:        "basic",
	Description: "Switch modes, browse notes, yank one",
	Width:       100,
	Height:      30,
	Setup:       demo.DefaultSetup(),
	Steps: steps(
		[]demo.Step{
			demo.Wait(1 * time.Second),
			demo.Annotate("Home mode"),
			demo.Capture(),

			demo.KeyWithDesc("tab", "Switch to Note mode"),
			demo.Annotate("Note mode"),
			demo.Capture(),
		},
		demo.Keys("j", "j"),
		[]demo.Step{
			demo.Capture(),
			demo.KeyWithDesc("k", "Back up one note"),
			demo.Capture(),

			demo.KeyWithDesc("y", "Copy the selected note"),
			demo.Annotate("Yanked to the clipboard"),
			demo.Capture(),

			demo.Wait(2 * time.Second),
			demo.KeyWithDesc("tab", "Back to Home"),
			demo.Capture(),
		},
	),
}

// Themes shows the same pages under a different theme with the FPS counter.
var Themes = &demo.Scenario{
	Name:        "themes",
	Description: "Dracula theme with the FPS counter",
	Width:       100,
	Height:      30,
	Setup: &demo.ScenarioSetup{
		Theme:   "dracula",
		Notes:   demo.DefaultSetup().Notes,
		ShowFPS: true,
	},
	Steps: []demo.Step{
		demo.Wait(2 * time.Second),
		demo.Capture(),
		demo.Key("tab"),
		demo.Wait(1 * time.Second),
		demo.Capture(),
		demo.Resize(60, 20),
		demo.Annotate("Narrow terminal"),
		demo.Capture(),
	},
}

func steps(groups ...[]demo.Step) []demo.Step {
	var out []demo.Step
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// All returns all available scenarios.
func All() []*demo.Scenario {
	return []*demo.Scenario{
		Basic,
		Themes,
	}
}

// Get returns a scenario by name, or nil if not found.
func Get(name string) *demo.Scenario {
	for _, s := range All() {
		if s.Name == name {
			return s
		}
	}
	return nil
}
