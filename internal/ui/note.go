package ui

import (
	"fmt"
	"strings"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/zhubert/panes/internal/action"
	"github.com/zhubert/panes/internal/clipboard"
	"github.com/zhubert/panes/internal/config"
	"github.com/zhubert/panes/internal/layout"
	"github.com/zhubert/panes/internal/mode"
)

// Note shows the in-memory notes list next to the selected note's text.
type Note struct {
	panel
	clip   clipboard.Writer
	notes  []string
	cursor int
}

// NewNote creates an unregistered Note panel that yanks into clip.
func NewNote(clip clipboard.Writer) *Note {
	return &Note{
		panel: newPanel("note"),
		clip:  clip,
	}
}

// RegisterConfigHandler seeds the notes from cfg. The cursor is kept when
// it still points at a note.
func (n *Note) RegisterConfigHandler(cfg *config.Config) error {
	if err := n.panel.RegisterConfigHandler(cfg); err != nil {
		return err
	}
	n.notes = append([]string(nil), cfg.Notes...)
	if n.cursor >= len(n.notes) {
		n.cursor = 0
	}
	return nil
}

// Mode returns Note.
func (n *Note) Mode() (mode.Mode, bool) {
	return mode.Note, true
}

// Selected returns the index and text of the selected note.
func (n *Note) Selected() (int, string, bool) {
	if len(n.notes) == 0 {
		return 0, "", false
	}
	return n.cursor, n.notes[n.cursor], true
}

// Update moves the cursor and copies the selected note.
func (n *Note) Update(act action.Action) (action.Action, error) {
	if !n.Ready() || len(n.notes) == 0 {
		return action.NoAction, nil
	}

	switch act.Type {
	case action.NextNote:
		n.cursor = (n.cursor + 1) % len(n.notes)
	case action.PrevNote:
		n.cursor = (n.cursor - 1 + len(n.notes)) % len(n.notes)
	case action.Yank:
		report := n.yank()
		if err := n.Emit(report); err != nil {
			// channel gone, hand it back to the dispatcher instead
			return report, nil
		}
	}
	return action.NoAction, nil
}

// yank copies the selected note and returns the message for the status bar.
// A clipboard failure is an Error message, not a panel fault.
func (n *Note) yank() action.Action {
	if n.clip == nil {
		return action.Failed("clipboard unavailable")
	}
	i, text, _ := n.Selected()
	if err := n.clip.WriteText(text); err != nil {
		return action.Failed(fmt.Sprintf("copy failed: %v", err))
	}
	return action.StatusText(fmt.Sprintf("copied note %d", i+1))
}

// Draw renders the tab strip, the notes list and the selected text.
func (n *Note) Draw(scr uv.Screen, area uv.Rectangle) error {
	if !n.Ready() {
		return nil
	}
	if err := n.CheckArea(area); err != nil {
		return err
	}
	st := n.styles

	fill(scr, area, st.Root)
	drawString(scr, tabsArea(area), renderTabs(st, modeTitles(), 1))

	cols := layout.Columns(layout.Fill(1), layout.Fill(2)).Split(pageArea(area))

	list := drawFocusedBlock(scr, cols[0], st, "Notes", Padding{Left: 1, Right: 1, Top: 1, Bottom: 1})
	if !list.Empty() {
		drawString(scr, list, n.renderList(list))
	}

	text := drawBlock(scr, cols[1], st, "Text", Padding{Left: 2, Right: 2, Top: 1, Bottom: 1})
	if !text.Empty() {
		if _, body, ok := n.Selected(); ok {
			drawString(scr, text, st.Content.Render(wrap(body, text.Dx())))
		}
	}
	return nil
}

// renderList renders one line per note, scrolled so the cursor stays visible.
func (n *Note) renderList(area uv.Rectangle) string {
	st := n.styles
	if len(n.notes) == 0 {
		return st.StatusDesc.Render("no notes")
	}

	start := 0
	if n.cursor >= area.Dy() {
		start = n.cursor - area.Dy() + 1
	}
	end := min(start+area.Dy(), len(n.notes))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		title := firstLine(n.notes[i])
		if i == n.cursor {
			lines = append(lines, st.ListSelected.Render("> "+title))
		} else {
			lines = append(lines, st.ListItem.Render(title))
		}
	}
	return strings.Join(lines, "\n")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
