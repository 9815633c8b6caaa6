package ui

import (
	"strings"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/zhubert/panes/internal/action"
	"github.com/zhubert/panes/internal/layout"
	"github.com/zhubert/panes/internal/mode"
)

const welcomeText = `## Welcome

Every pane on this screen is its own component. Each one keeps its own state,
reacts to the same stream of actions and draws only inside the rectangle it
is given.

### Getting around

- **Switch modes** with the key bound to _Switch_ to move between Home and Note.
- **Reload** the configuration file at any time; every pane picks it up.
- **Quit** whenever you like, the current frame always finishes first.
`

// Home is the landing panel: a welcome text and the bindings of Home mode.
type Home struct {
	panel
	welcome *markdown
}

// NewHome creates an unregistered Home panel.
func NewHome() *Home {
	return &Home{
		panel:   newPanel("home"),
		welcome: newMarkdown(welcomeText),
	}
}

// Mode returns Home.
func (h *Home) Mode() (mode.Mode, bool) {
	return mode.Home, true
}

// Update has nothing to react to yet; Tick and Render are accepted and ignored.
func (h *Home) Update(act action.Action) (action.Action, error) {
	return action.NoAction, nil
}

// Draw renders the tab strip, the welcome block and the key bindings block.
func (h *Home) Draw(scr uv.Screen, area uv.Rectangle) error {
	if !h.Ready() {
		return nil
	}
	if err := h.CheckArea(area); err != nil {
		return err
	}
	st := h.styles

	fill(scr, area, st.Root)
	drawString(scr, tabsArea(area), renderTabs(st, modeTitles(), 0))

	rows := layout.Rows(layout.Fill(9), layout.Min(KeyBindingsHeight)).Split(pageArea(area))
	top, bottom := rows[0], rows[1]

	text := drawBlock(scr, top, st, mode.Home.String(), Padding{Left: 2, Right: 2, Top: 1, Bottom: 1})
	if !text.Empty() {
		drawString(scr, text, h.welcome.Render(text.Dx(), st.Theme))
	}

	keysArea := drawBlock(scr, bottom, st, "Key Bindings", Padding{Left: 1, Right: 1, Top: 1})
	if !keysArea.Empty() {
		line := h.bindingsLine()
		drawString(scr, keysArea, center(wrap(line, keysArea.Dx()), keysArea.Dx()))
	}
	return nil
}

// bindingsLine lists every Home action followed by its chords.
func (h *Home) bindingsLine() string {
	st := h.styles
	var parts []string
	for _, g := range GroupBindings(h.Config().Bindings(mode.Home)) {
		parts = append(parts,
			st.BindingDesc.Render(" "+g.Action+" ")+st.BindingKey.Render(" "+g.Label()+" "))
	}
	return strings.Join(parts, "")
}

// tabsArea is the first row of area.
func tabsArea(area uv.Rectangle) uv.Rectangle {
	return layout.Rows(layout.Length(TabsHeight), layout.Fill(1)).Split(area)[0]
}

// pageArea is area without the tab strip and the vertical page margin.
func pageArea(area uv.Rectangle) uv.Rectangle {
	if area.Dy() <= 2*PageMarginY {
		return uv.Rectangle{}
	}
	return uv.Rect(area.Min.X, area.Min.Y+PageMarginY, area.Dx(), area.Dy()-2*PageMarginY)
}
