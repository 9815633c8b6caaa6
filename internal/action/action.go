// Package action defines the messages that drive every panel and the queue
// that carries them from producers to the dispatcher.
package action

import (
	"fmt"
	"strings"

	"github.com/zhubert/panes/internal/errors"
)

// Type identifies an Action variant.
type Type int

const (
	None Type = iota
	Tick
	Render
	Resize
	Suspend
	Resume
	Quit
	ClearScreen
	Error
	Switch
	ModeChanged
	ReloadConfig
	Status
	NextNote
	PrevNote
	Yank
)

var typeNames = [...]string{
	None:         "None",
	Tick:         "Tick",
	Render:       "Render",
	Resize:       "Resize",
	Suspend:      "Suspend",
	Resume:       "Resume",
	Quit:         "Quit",
	ClearScreen:  "ClearScreen",
	Error:        "Error",
	Switch:       "Switch",
	ModeChanged:  "ModeChanged",
	ReloadConfig: "ReloadConfig",
	Status:       "Status",
	NextNote:     "NextNote",
	PrevNote:     "PrevNote",
	Yank:         "Yank",
}

// String returns the variant name.
func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// Action is an immutable event value. Only the fields relevant to Type are set.
type Action struct {
	Type    Type
	Width   int    // Resize
	Height  int    // Resize
	Mode    int    // ModeChanged, as a mode.Mode value
	Message string // Error, Status
}

// NoAction is returned by Update when there is no follow-up.
var NoAction = Action{}

// New returns a payload-free Action of the given type.
func New(t Type) Action {
	return Action{Type: t}
}

// Resized returns a Resize action for a terminal of w×h cells.
func Resized(w, h int) Action {
	return Action{Type: Resize, Width: w, Height: h}
}

// Failed returns an Error action carrying a diagnostic message.
func Failed(msg string) Action {
	return Action{Type: Error, Message: msg}
}

// StatusText returns a Status action for the status bar.
func StatusText(msg string) Action {
	return Action{Type: Status, Message: msg}
}

// ModeChangedTo announces the new authoritative mode.
func ModeChangedTo(m int) Action {
	return Action{Type: ModeChanged, Mode: m}
}

// IsZero reports whether a is the NoAction marker.
func (a Action) IsZero() bool {
	return a == NoAction
}

// String renders the action with its payload, e.g. "Resize(80, 24)".
func (a Action) String() string {
	switch a.Type {
	case Resize:
		return fmt.Sprintf("Resize(%d, %d)", a.Width, a.Height)
	case Error, Status:
		return fmt.Sprintf("%s(%q)", a.Type, a.Message)
	case ModeChanged:
		return fmt.Sprintf("ModeChanged(%d)", a.Mode)
	default:
		return a.Type.String()
	}
}

// bindable lists the variants a key chord may produce. Variants with a payload
// or produced only by the dispatcher are excluded.
var bindable = map[Type]bool{
	Quit:         true,
	Suspend:      true,
	ClearScreen:  true,
	Switch:       true,
	ReloadConfig: true,
	NextNote:     true,
	PrevNote:     true,
	Yank:         true,
	Tick:         true,
	Render:       true,
}

// Parse converts a configured action name into an Action. Matching is
// case-insensitive; only bindable variants are accepted.
func Parse(name string) (Action, error) {
	trimmed := strings.TrimSpace(name)
	for t, n := range typeNames {
		if strings.EqualFold(n, trimmed) && bindable[Type(t)] {
			return New(Type(t)), nil
		}
	}
	return NoAction, errors.UnknownAction(name)
}
