package ui

import (
	"strings"

	"charm.land/bubbles/v2/help"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/panes/internal/action"
	"github.com/zhubert/panes/internal/config"
	"github.com/zhubert/panes/internal/mode"
)

// statusSeconds is how long a Status or Error message stays visible.
const statusSeconds = 5

// Keys is the status bar shown in every mode. It keeps its own copy of the
// current mode, advanced on Switch and corrected by ModeChanged, and never
// writes the authoritative one.
type Keys struct {
	panel
	mode    mode.Mode
	help    help.Model
	message string
	isError bool
	age     int // ticks since message was set
	ttl     int // ticks a message stays up
}

// NewKeys creates an unregistered status bar starting in Home.
func NewKeys() *Keys {
	k := &Keys{
		panel: newPanel("keys"),
		mode:  mode.Home,
		help:  help.New(),
		ttl:   int(config.DefaultTickRate * statusSeconds),
	}
	k.applyStyles()
	return k
}

// RegisterConfigHandler also restyles the help view and rescales the message
// lifetime to the tick rate.
func (k *Keys) RegisterConfigHandler(cfg *config.Config) error {
	if err := k.panel.RegisterConfigHandler(cfg); err != nil {
		return err
	}
	k.ttl = max(1, int(cfg.TickRate*statusSeconds))
	k.applyStyles()
	return nil
}

func (k *Keys) applyStyles() {
	k.help.Styles.ShortKey = k.styles.StatusKey
	k.help.Styles.ShortDesc = k.styles.StatusDesc
	k.help.Styles.ShortSeparator = k.styles.StatusDivider
}

// Mode reports that the status bar is active in every mode.
func (k *Keys) Mode() (mode.Mode, bool) {
	return 0, false
}

// CurrentMode returns the status bar's cached mode.
func (k *Keys) CurrentMode() mode.Mode {
	return k.mode
}

// Message returns the visible status message and whether it is an error.
func (k *Keys) Message() (string, bool) {
	return k.message, k.isError
}

// Update tracks mode changes and status messages.
func (k *Keys) Update(act action.Action) (action.Action, error) {
	if !k.Ready() {
		return action.NoAction, nil
	}

	switch act.Type {
	case action.Switch:
		k.mode = k.mode.Next()
	case action.ModeChanged:
		if m := mode.Mode(act.Mode); m.Valid() {
			k.mode = m
		}
	case action.Status:
		k.setMessage(act.Message, false)
	case action.Error:
		k.setMessage(act.Message, true)
	case action.Tick:
		if k.message != "" {
			k.age++
			if k.age >= k.ttl {
				k.setMessage("", false)
			}
		}
	}
	return action.NoAction, nil
}

func (k *Keys) setMessage(msg string, isError bool) {
	k.message = msg
	k.isError = isError
	k.age = 0
}

// Draw renders "Mode : <mode>", the short help for that mode and the latest
// message, centred on the first line of area.
func (k *Keys) Draw(scr uv.Screen, area uv.Rectangle) error {
	if !k.Ready() {
		return nil
	}
	if err := k.CheckArea(area); err != nil {
		return err
	}
	st := k.styles

	parts := []string{st.StatusMode.Render("Mode : " + k.mode.String())}
	if hv := k.help.ShortHelpView(HelpBindings(k.Config().Bindings(k.mode))); hv != "" {
		parts = append(parts, hv)
	}
	if k.message != "" {
		if k.isError {
			parts = append(parts, st.StatusError.Render(k.message))
		} else {
			parts = append(parts, st.StatusInfo.Render(k.message))
		}
	}

	line := strings.Join(parts, st.StatusDivider.Render(StatusSeparator))
	line = ansi.Truncate(line, area.Dx(), "…")
	drawString(scr, uv.Rect(area.Min.X, area.Min.Y, area.Dx(), StatusBarHeight), center(line, area.Dx()))
	return nil
}
