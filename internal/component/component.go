// Package component defines the contract every panel implements and the
// registration plumbing most panels share.
package component

import (
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/zhubert/panes/internal/action"
	"github.com/zhubert/panes/internal/config"
	"github.com/zhubert/panes/internal/errors"
	"github.com/zhubert/panes/internal/mode"
)

// Component is a self-contained panel driven by the dispatcher.
//
// A component is usable only after both registration calls succeed. Before
// that, Update and Draw must be harmless no-ops. Update handles exactly one
// Action and may return a follow-up (action.NoAction for none); follow-ups are
// delivered on the next cycle, never re-entrantly. Draw must only touch cells
// inside area.
type Component interface {
	RegisterActionHandler(tx *action.Sender) error
	RegisterConfigHandler(cfg *config.Config) error
	// Mode reports the mode the component belongs to. ok is false for
	// components that are active in every mode.
	Mode() (m mode.Mode, ok bool)
	Update(act action.Action) (action.Action, error)
	Draw(scr uv.Screen, area uv.Rectangle) error
}

// IsActive reports whether c takes part in a frame drawn in mode current.
func IsActive(c Component, current mode.Mode) bool {
	m, ok := c.Mode()
	return !ok || m == current
}

// Base stores the two registered handles. Embed it to get the registration
// half of Component.
type Base struct {
	name string
	tx   *action.Sender
	cfg  *config.Config
}

// NewBase returns an unregistered Base for the named component.
func NewBase(name string) Base {
	return Base{name: name}
}

// Name returns the component name used in errors and logs.
func (b *Base) Name() string {
	return b.name
}

// RegisterActionHandler stores tx. A later registration replaces the earlier
// one and releases the replaced handle.
func (b *Base) RegisterActionHandler(tx *action.Sender) error {
	if tx == nil {
		return errors.NilSender(b.name)
	}
	if b.tx != nil && b.tx != tx {
		b.tx.Close()
	}
	b.tx = tx
	return nil
}

// RegisterConfigHandler stores cfg. Reloads call it again with the new value.
func (b *Base) RegisterConfigHandler(cfg *config.Config) error {
	if cfg == nil {
		return errors.NilConfig(b.name)
	}
	b.cfg = cfg
	return nil
}

// Ready reports whether both handles are registered.
func (b *Base) Ready() bool {
	return b.tx != nil && b.cfg != nil
}

// Config returns the registered config, or nil.
func (b *Base) Config() *config.Config {
	return b.cfg
}

// Emit sends a out of band. Before registration it does nothing.
func (b *Base) Emit(a action.Action) error {
	if b.tx == nil {
		return nil
	}
	return b.tx.Send(a)
}

// Release closes the registered sender so the channel can reach end of stream.
func (b *Base) Release() {
	if b.tx != nil {
		b.tx.Close()
		b.tx = nil
	}
}

// CheckArea returns an EmptyArea error for a rectangle without cells.
func (b *Base) CheckArea(area uv.Rectangle) error {
	if area.Empty() {
		return errors.EmptyArea(b.name)
	}
	return nil
}
