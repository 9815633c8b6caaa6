package app

import (
	"fmt"
	"log/slog"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/zhubert/panes/internal/action"
	"github.com/zhubert/panes/internal/component"
	"github.com/zhubert/panes/internal/config"
	"github.com/zhubert/panes/internal/errors"
	"github.com/zhubert/panes/internal/layout"
	"github.com/zhubert/panes/internal/logger"
	"github.com/zhubert/panes/internal/mode"
	"github.com/zhubert/panes/internal/notification"
	"github.com/zhubert/panes/internal/ui"
)

// State is the dispatcher's phase within one cycle.
type State int

const (
	StateIdle State = iota
	StateUpdating
	StateDrawing
	StateShutDown
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateUpdating:
		return "Updating"
	case StateDrawing:
		return "Drawing"
	case StateShutDown:
		return "ShutDown"
	default:
		return "Unknown"
	}
}

// Slot is one registered component and the vertical space it asks for.
type Slot struct {
	Name      string
	Component component.Component
	Size      layout.Constraint

	// Visible decides whether an active slot gets screen space under cfg.
	// Nil means always. A hidden slot still receives every action.
	Visible func(cfg *config.Config) bool
}

type slot struct {
	Slot
	faulted bool
}

// releaser is implemented by components that hold a sender clone.
type releaser interface {
	Release()
}

// Dispatcher owns the action channel, the authoritative mode and the slots.
// All methods except Sender must be called from one goroutine.
type Dispatcher struct {
	src   *config.Source
	cfg   *config.Config
	mode  *mode.State
	tx    *action.Sender
	rx    *action.Receiver
	slots []*slot

	state    State
	quit     bool
	width    int
	height   int
	requests []action.Action

	log *slog.Logger
}

// NewDispatcher creates a dispatcher for slots, drawn top to bottom in the
// given order. Call Register before the first Cycle.
func NewDispatcher(src *config.Source, slots ...Slot) *Dispatcher {
	tx, rx := action.NewChannel()
	d := &Dispatcher{
		src:  src,
		cfg:  src.Current(),
		mode: mode.NewState(mode.Home),
		tx:   tx,
		rx:   rx,
		log:  logger.WithComponent("dispatcher"),
	}
	for _, s := range slots {
		d.slots = append(d.slots, &slot{Slot: s})
	}
	return d
}

// Register hands every slot its own sender and the current config. The first
// failure aborts.
func (d *Dispatcher) Register() error {
	for _, s := range d.slots {
		if err := s.Component.RegisterActionHandler(d.tx.Clone()); err != nil {
			return errors.RegistrationFailed(s.Name, err)
		}
		if err := s.Component.RegisterConfigHandler(d.cfg); err != nil {
			return errors.RegistrationFailed(s.Name, err)
		}
		d.log.Debug("registered panel", "panel", s.Name)
	}
	return nil
}

// Sender returns a new producer handle. The caller must Close it.
func (d *Dispatcher) Sender() *action.Sender {
	return d.tx.Clone()
}

// Receiver exposes the consuming end so a listener can wait for work.
func (d *Dispatcher) Receiver() *action.Receiver {
	return d.rx
}

// State returns the current phase.
func (d *Dispatcher) State() State {
	return d.state
}

// Mode returns the authoritative mode.
func (d *Dispatcher) Mode() mode.Mode {
	return d.mode.Current()
}

// Config returns the config most recently registered with the panels.
func (d *Dispatcher) Config() *config.Config {
	return d.cfg
}

// Size returns the last terminal size seen in a Resize action.
func (d *Dispatcher) Size() (width, height int) {
	return d.width, d.height
}

// Active returns the names of the slots that take part in the current mode.
func (d *Dispatcher) Active() []string {
	var names []string
	current := d.mode.Current()
	for _, s := range d.slots {
		if component.IsActive(s.Component, current) {
			names = append(names, s.Name)
		}
	}
	return names
}

// Faulted reports whether the named slot has been quarantined.
func (d *Dispatcher) Faulted(name string) bool {
	for _, s := range d.slots {
		if s.Name == name {
			return s.faulted
		}
	}
	return false
}

// TakeRequests returns the terminal-level actions (Suspend, ClearScreen) seen
// since the last call.
func (d *Dispatcher) TakeRequests() []action.Action {
	reqs := d.requests
	d.requests = nil
	return reqs
}

// Cycle runs one update and draw pass. Actions queued during the pass,
// follow-ups included, wait for the next cycle. It returns false once the
// dispatcher has shut down.
func (d *Dispatcher) Cycle(scr uv.Screen, area uv.Rectangle) bool {
	if d.state == StateShutDown {
		return false
	}

	d.setState(StateUpdating)
	var followUps []action.Action
	for _, act := range d.rx.Drain() {
		followUps = append(followUps, d.dispatch(act)...)
	}
	for _, f := range followUps {
		if err := d.tx.Send(f); err != nil {
			d.log.Warn("dropped follow-up", "action", f.String(), "error", err)
		}
	}

	d.setState(StateDrawing)
	if area.Empty() && d.width > 0 && d.height > 0 {
		area = uv.Rect(0, 0, d.width, d.height)
	}
	d.draw(scr, area)

	if d.quit || d.rx.Finished() {
		d.setState(StateShutDown)
		return false
	}
	d.setState(StateIdle)
	return true
}

// dispatch applies the dispatcher's own handling of act, then fans it out to
// every healthy slot. It returns the follow-ups in order.
func (d *Dispatcher) dispatch(act action.Action) []action.Action {
	var out []action.Action

	switch act.Type {
	case action.Switch:
		next := d.mode.Switch()
		d.log.Debug("mode switched", "mode", next.String())
		out = append(out, action.ModeChangedTo(int(next)))
	case action.Resize:
		d.width, d.height = act.Width, act.Height
	case action.Quit:
		d.quit = true
	case action.Suspend, action.ClearScreen:
		d.requests = append(d.requests, act)
	case action.ReloadConfig:
		out = append(out, d.reload()...)
	case action.Error:
		d.log.Warn("error action", "message", act.Message)
	}

	for _, s := range d.slots {
		if s.faulted {
			continue
		}
		follow, err := s.Component.Update(act)
		if err != nil {
			out = append(out, d.quarantine(s, errors.UpdateFailed(s.Name, err)))
			continue
		}
		if !follow.IsZero() {
			out = append(out, follow)
		}
	}
	return out
}

// reload re-reads the config and registers it with every healthy slot. On
// failure the previous config stays in place.
func (d *Dispatcher) reload() []action.Action {
	cfg, err := d.src.Reload()
	if err != nil {
		d.log.Warn("config reload failed", "error", err)
		return []action.Action{action.Failed(fmt.Sprintf("config reload failed: %v", err))}
	}
	d.cfg = cfg

	var out []action.Action
	for _, s := range d.slots {
		if s.faulted {
			continue
		}
		if err := s.Component.RegisterConfigHandler(cfg); err != nil {
			out = append(out, d.quarantine(s, errors.RegistrationFailed(s.Name, err)))
		}
	}
	d.log.Info("config reloaded", "path", d.src.Path())
	return append(out, action.StatusText("config reloaded"))
}

// quarantine stops delivering actions to s for the rest of the run and
// returns the Error action that reports it.
func (d *Dispatcher) quarantine(s *slot, err error) action.Action {
	s.faulted = true
	d.log.Error("panel quarantined", "panel", s.Name, "error", err)
	if d.cfg != nil && d.cfg.Notifications {
		if nerr := notification.PanelFaulted(s.Name, err); nerr != nil {
			d.log.Warn("desktop notification failed", "panel", s.Name, "error", nerr)
		}
	}
	return action.Failed(err.Error())
}

func (d *Dispatcher) draw(scr uv.Screen, area uv.Rectangle) {
	if area.Empty() {
		return
	}
	current := d.mode.Current()

	var visible []*slot
	var sizes []layout.Constraint
	for _, s := range d.slots {
		if !component.IsActive(s.Component, current) {
			continue
		}
		if s.Visible != nil && !s.Visible(d.cfg) {
			continue
		}
		visible = append(visible, s)
		sizes = append(sizes, s.Size)
	}

	rects := layout.Rows(sizes...).Split(area)
	for i, s := range visible {
		r := rects[i]
		if s.faulted {
			ui.DrawPlaceholder(scr, r, s.Name)
			continue
		}
		if err := s.Component.Draw(scr, r); err != nil {
			d.log.Debug("draw failed", "panel", s.Name, "error", errors.DrawFailed(s.Name, err))
			ui.DrawPlaceholder(scr, r, s.Name)
		}
	}
}

// Close releases the dispatcher's own sender and every panel's. Once all
// other senders are closed the next Cycle shuts down.
func (d *Dispatcher) Close() {
	for _, s := range d.slots {
		if r, ok := s.Component.(releaser); ok {
			r.Release()
		}
	}
	d.tx.Close()
}

func (d *Dispatcher) setState(s State) {
	// Idle/Updating/Drawing flip every frame; only shutdown is worth a line.
	if s == StateShutDown && d.state != s {
		d.log.Info("state transition", "from", d.state.String(), "to", s.String())
	}
	d.state = s
}
