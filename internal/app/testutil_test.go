package app

import (
	"os"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/panes/internal/action"
	"github.com/zhubert/panes/internal/component"
	"github.com/zhubert/panes/internal/config"
	"github.com/zhubert/panes/internal/keys"
	"github.com/zhubert/panes/internal/layout"
	"github.com/zhubert/panes/internal/logger"
	"github.com/zhubert/panes/internal/mode"
	"github.com/zhubert/panes/internal/notification"
)

// recorder is a panel that records what it is given. It can be told to reply
// with follow-ups or to fail.
type recorder struct {
	component.Base
	mode  mode.Mode
	bound bool

	seen    []action.Action
	draws   []uv.Rectangle
	configs []*config.Config

	reply     map[action.Type]action.Action
	failOn    action.Type
	updateErr error
	drawErr   error
	configErr error
}

func newRecorder(name string) *recorder {
	return &recorder{Base: component.NewBase(name), reply: map[action.Type]action.Action{}}
}

// inMode binds the recorder to m.
func (r *recorder) inMode(m mode.Mode) *recorder {
	r.mode, r.bound = m, true
	return r
}

func (r *recorder) RegisterConfigHandler(cfg *config.Config) error {
	if r.configErr != nil {
		return r.configErr
	}
	r.configs = append(r.configs, cfg)
	return r.Base.RegisterConfigHandler(cfg)
}

func (r *recorder) Mode() (mode.Mode, bool) {
	return r.mode, r.bound
}

func (r *recorder) Update(act action.Action) (action.Action, error) {
	r.seen = append(r.seen, act)
	if r.updateErr != nil && act.Type == r.failOn {
		return action.NoAction, r.updateErr
	}
	return r.reply[act.Type], nil
}

func (r *recorder) Draw(scr uv.Screen, area uv.Rectangle) error {
	r.draws = append(r.draws, area)
	if r.drawErr != nil {
		return r.drawErr
	}
	return r.CheckArea(area)
}

// types returns the action types r has seen.
func (r *recorder) types() []action.Type {
	out := make([]action.Type, len(r.seen))
	for i, a := range r.seen {
		out[i] = a.Type
	}
	return out
}

// setupTestLogger points the logger at a temp file for the test and returns
// its path.
func setupTestLogger(t *testing.T) string {
	t.Helper()
	logger.Reset()
	path := filepath.Join(t.TempDir(), "test.log")
	if err := logger.Init(path); err != nil {
		t.Fatalf("logger.Init() error = %v", err)
	}
	t.Cleanup(logger.Reset)
	return path
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	return string(data)
}

// mockNotifier records desktop notifications instead of sending them.
type mockNotifier struct {
	messages []string
	err      error
}

func (m *mockNotifier) notify(title, message string, icon any) error {
	m.messages = append(m.messages, message)
	return m.err
}

func installNotifier(t *testing.T) *mockNotifier {
	t.Helper()
	m := &mockNotifier{}
	notification.SetNotifier(m.notify)
	t.Cleanup(notification.ResetNotifier)
	return m
}

// testDispatcher registers slots under the default config.
func testDispatcher(t *testing.T, slots ...Slot) *Dispatcher {
	t.Helper()
	return testDispatcherWithConfig(t, config.Default(), slots...)
}

func testDispatcherWithConfig(t *testing.T, cfg *config.Config, slots ...Slot) *Dispatcher {
	t.Helper()
	setupTestLogger(t)
	installNotifier(t)
	d := NewDispatcher(config.StaticSource(cfg), slots...)
	if err := d.Register(); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	t.Cleanup(d.Close)
	return d
}

func fill(name string, c component.Component) Slot {
	return Slot{Name: name, Component: c, Size: layout.Fill(1)}
}

// send queues acts through a fresh producer handle.
func send(t *testing.T, d *Dispatcher, acts ...action.Action) {
	t.Helper()
	tx := d.Sender()
	defer tx.Close()
	for _, a := range acts {
		if err := tx.Send(a); err != nil {
			t.Fatalf("Send(%v) error = %v", a, err)
		}
	}
}

// cycle runs one dispatcher cycle on a w×h screen and returns the plain text.
func cycle(d *Dispatcher, w, h int) (string, bool) {
	scr := uv.NewScreenBuffer(w, h)
	running := d.Cycle(scr, uv.Rect(0, 0, w, h))
	return ansi.Strip(scr.Render()), running
}

// keyPress creates a tea.KeyPressMsg for the given key string.
// Examples: "q", "tab", "ctrl+c", "up", "down"
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case keys.Tab:
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case keys.Up:
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case keys.Down:
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case keys.Escape:
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case keys.CtrlC:
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case keys.CtrlL:
		return tea.KeyPressMsg{Code: 'l', Mod: tea.ModCtrl}
	case keys.CtrlZ:
		return tea.KeyPressMsg{Code: 'z', Mod: tea.ModCtrl}
	default:
		// Regular character - for single characters, set both Code and Text
		if len(key) == 1 {
			return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
		}
		return tea.KeyPressMsg{Text: key}
	}
}

// sendKey sends a key press to the model and returns the updated model.
func sendKey(m *Model, key string) *Model {
	result, _ := m.Update(keyPress(key))
	return result.(*Model)
}

// setSize sends a window size message to the model.
func setSize(m *Model, width, height int) *Model {
	result, _ := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return result.(*Model)
}

// flush runs the cycle a ready listener would trigger.
func flush(m *Model) (*Model, tea.Cmd) {
	result, cmd := m.Update(ActionsReadyMsg{})
	return result.(*Model), cmd
}
