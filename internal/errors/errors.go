// Package errors provides structured error types for the panes application.
// These errors record which operation failed, which panel was involved and
// how the dispatcher should treat the failure.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindIO
	KindConfig
	KindRegistration
	KindUpdate
	KindDraw
	KindChannel
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalid:
		return "invalid"
	case KindIO:
		return "I/O error"
	case KindConfig:
		return "configuration error"
	case KindRegistration:
		return "registration error"
	case KindUpdate:
		return "update error"
	case KindDraw:
		return "draw error"
	case KindChannel:
		return "channel error"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for panes.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...interface{}) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// ErrEmptyArea is returned by Draw when the assigned rectangle has no cells.
var ErrEmptyArea = errors.New("draw area is empty")

// Component errors
func RegistrationFailed(component string, err error) error {
	return E(Op("app.Register"), KindRegistration, fmt.Sprintf("failed to register %s", component), err)
}

func NilSender(component string) error {
	return E(Op("component.RegisterActionHandler"), KindRegistration, fmt.Sprintf("%s: nil action sender", component))
}

func NilConfig(component string) error {
	return E(Op("component.RegisterConfigHandler"), KindRegistration, fmt.Sprintf("%s: nil config", component))
}

func UpdateFailed(component string, err error) error {
	return E(Op("app.Update"), KindUpdate, fmt.Sprintf("%s failed to handle action", component), err)
}

func DrawFailed(component string, err error) error {
	return E(Op("app.Draw"), KindDraw, fmt.Sprintf("%s failed to draw", component), err)
}

func EmptyArea(component string) error {
	return E(Op("component.Draw"), KindDraw, component, ErrEmptyArea)
}

// Channel errors
func ChannelClosed() error {
	return E(Op("action.Send"), KindChannel, "action channel closed")
}

// Config errors
func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigSaveFailed(path string, err error) error {
	return E(Op("config.Save"), KindConfig, fmt.Sprintf("failed to save config to %s", path), err)
}

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindConfig, reason)
}

// Parse errors
func UnknownAction(name string) error {
	return E(Op("action.Parse"), KindNotFound, fmt.Sprintf("unknown action %q", name))
}

func UnknownMode(name string) error {
	return E(Op("mode.Parse"), KindNotFound, fmt.Sprintf("unknown mode %q", name))
}

func InvalidChord(chord string) error {
	return E(Op("keys.ParseChord"), KindInvalid, fmt.Sprintf("invalid key chord %q", chord))
}
