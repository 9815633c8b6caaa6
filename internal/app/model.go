// Package app wires the panels to the terminal. The Dispatcher runs the
// update and draw cycle; Model adapts it to a Bubble Tea program.
package app

import (
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/google/uuid"

	"github.com/zhubert/panes/internal/action"
	"github.com/zhubert/panes/internal/config"
	"github.com/zhubert/panes/internal/keys"
	"github.com/zhubert/panes/internal/logger"
)

// TickMsg fires at the configured tick rate.
type TickMsg time.Time

// FrameMsg fires at the configured frame rate.
type FrameMsg time.Time

// ActionsReadyMsg means the action channel may hold work.
type ActionsReadyMsg struct{}

// StreamEndedMsg means every producer has closed its sender.
type StreamEndedMsg struct{}

// Model is the Bubble Tea adapter. It turns terminal events into Actions and
// never calls a panel directly.
type Model struct {
	disp    *Dispatcher
	src     *config.Source
	input   *action.Sender
	watchTx *action.Sender
	matcher keys.Matcher

	width   int
	height  int
	frame   string
	running bool

	runID string
	log   *slog.Logger
}

// New returns a Model driving disp. disp must already be registered.
func New(disp *Dispatcher) *Model {
	runID := uuid.New().String()
	m := &Model{
		disp:    disp,
		src:     disp.src,
		input:   disp.Sender(),
		running: true,
		runID:   runID,
		log:     logger.WithRun(runID),
	}
	m.log.Info("app started", "config", disp.src.Path())
	return m
}

// RunID identifies this run in the log.
func (m *Model) RunID() string {
	return m.runID
}

// Running reports whether the dispatcher is still live.
func (m *Model) Running() bool {
	return m.running
}

// WatchConfig enqueues ReloadConfig whenever the config file changes.
func (m *Model) WatchConfig() error {
	if m.src.Path() == "" {
		return nil
	}
	tx := m.disp.Sender()
	m.watchTx = tx
	return m.src.Watch(func() {
		if err := tx.Send(action.New(action.ReloadConfig)); err != nil {
			m.log.Debug("config change after shutdown", "error", err)
		}
	})
}

// Init starts the timers and the channel listener.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.tickCmd(),
		m.frameCmd(),
		listenForActions(m.disp.Receiver()),
	)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.running {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.send(action.Resized(msg.Width, msg.Height))

	case tea.KeyPressMsg:
		cfg := m.disp.Config()
		if act, ok := m.matcher.Feed(msg.String(), cfg.Bindings(m.disp.Mode())); ok {
			m.send(act)
		}

	case tea.ResumeMsg:
		m.send(action.New(action.Resume))

	case TickMsg:
		m.send(action.New(action.Tick))
		return m, m.tickCmd()

	case FrameMsg:
		m.send(action.New(action.Render))
		return m, m.frameCmd()

	case ActionsReadyMsg, StreamEndedMsg:
		return m, m.cycle()
	}

	return m, nil
}

// cycle runs one dispatcher pass and turns its outcome into commands.
func (m *Model) cycle() tea.Cmd {
	scr := uv.NewScreenBuffer(max(m.width, 0), max(m.height, 0))
	m.running = m.disp.Cycle(scr, uv.Rect(0, 0, m.width, m.height))
	if m.width > 0 && m.height > 0 {
		m.frame = scr.Render()
	}

	var cmds []tea.Cmd
	for _, req := range m.disp.TakeRequests() {
		switch req.Type {
		case action.Suspend:
			cmds = append(cmds, tea.Suspend)
		case action.ClearScreen:
			cmds = append(cmds, tea.ClearScreen)
		}
	}

	if !m.running {
		m.log.Info("app stopping")
		m.input.Close()
		m.watchTx.Close()
		m.disp.Close()
		return tea.Sequence(tea.Batch(cmds...), tea.Quit)
	}
	cmds = append(cmds, listenForActions(m.disp.Receiver()))
	return tea.Batch(cmds...)
}

func (m *Model) send(act action.Action) {
	if err := m.input.Send(act); err != nil {
		m.log.Warn("input dropped", "action", act.String(), "error", err)
	}
}

// Frame returns the last completed frame, empty before the first cycle with
// a known size.
func (m *Model) Frame() string {
	return m.frame
}

// View renders the last completed frame.
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true

	if m.frame == "" {
		v.SetContent("Loading...")
		return v
	}
	v.SetContent(m.frame)
	return v
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(interval(m.disp.Config().TickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m *Model) frameCmd() tea.Cmd {
	return tea.Tick(interval(m.disp.Config().FrameRate), func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// interval converts a per-second rate into a timer period.
func interval(rate float64) time.Duration {
	if rate <= 0 {
		rate = config.DefaultTickRate
	}
	return time.Duration(float64(time.Second) / rate)
}

// listenForActions waits until the channel has work or reaches end of stream.
func listenForActions(rx *action.Receiver) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-rx.Ready():
			return ActionsReadyMsg{}
		case <-rx.Done():
			return StreamEndedMsg{}
		}
	}
}
