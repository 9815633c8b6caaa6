package demo

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/panes/internal/app"
	"github.com/zhubert/panes/internal/clipboard"
	"github.com/zhubert/panes/internal/config"
	"github.com/zhubert/panes/internal/keys"
	"github.com/zhubert/panes/internal/logger"
)

// Frame represents a captured frame from the demo.
type Frame struct {
	Content    string        // ANSI-encoded terminal content
	Delay      time.Duration // Delay before this frame
	Annotation string        // Optional annotation/caption
	StepIndex  int           // Index of the step that produced this frame
}

// ExecutorConfig configures the demo executor.
type ExecutorConfig struct {
	// CaptureEveryStep captures a frame after every step (default: false)
	CaptureEveryStep bool

	// KeyDelay is the pause recorded after key presses (default: 400ms)
	KeyDelay time.Duration

	// InitialDelay is the delay of the first frame (default: 500ms)
	InitialDelay time.Duration
}

// DefaultExecutorConfig returns the default executor configuration.
func DefaultExecutorConfig() ExecutorConfig {
	return ExecutorConfig{
		CaptureEveryStep: false,
		KeyDelay:         400 * time.Millisecond,
		InitialDelay:     500 * time.Millisecond,
	}
}

// Executor runs demo scenarios and captures frames.
type Executor struct {
	config ExecutorConfig
	model  *app.Model
	disp   *app.Dispatcher
	clip   *clipboard.Memory
	frames []Frame

	// elapsed is the scripted time since the last captured frame.
	elapsed           time.Duration
	currentAnnotation string
}

// NewExecutor creates a new demo executor.
func NewExecutor(cfg ExecutorConfig) *Executor {
	return &Executor{
		config: cfg,
		frames: []Frame{},
	}
}

// Clipboard returns what the scenario yanked so far.
func (e *Executor) Clipboard() string {
	if e.clip == nil {
		return ""
	}
	return e.clip.Text()
}

// Run executes a scenario and returns the captured frames.
func (e *Executor) Run(scenario *Scenario) ([]Frame, error) {
	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	if err := e.setup(scenario); err != nil {
		return nil, fmt.Errorf("setup failed: %w", err)
	}
	defer e.disp.Close()

	log := logger.WithComponent("demo")
	log.Info("running scenario", "name", scenario.Name, "steps", len(scenario.Steps))

	// Capture initial frame
	e.elapsed = e.config.InitialDelay
	e.captureFrame(0)

	for i, step := range scenario.Steps {
		if err := e.executeStep(i, step); err != nil {
			return nil, fmt.Errorf("step %d failed: %w", i, err)
		}
		if !e.model.Running() {
			log.Info("scenario quit early", "step", i)
			break
		}
	}

	return e.frames, nil
}

// setup builds the panels, the dispatcher and the model for the scenario.
func (e *Executor) setup(scenario *Scenario) error {
	cfg := config.Default()
	if s := scenario.Setup; s != nil {
		if s.Theme != "" {
			cfg.Theme = s.Theme
		}
		if len(s.Notes) > 0 {
			cfg.Notes = s.Notes
		}
		cfg.ShowFPS = s.ShowFPS
	}
	// A failing panel in a demo should show up in the frames, not on the desktop.
	cfg.Notifications = false
	if err := cfg.Validate(); err != nil {
		return err
	}

	e.clip = clipboard.NewMemory(nil)
	e.disp = app.NewDispatcher(config.StaticSource(cfg), app.PanelSlots(e.clip)...)
	if err := e.disp.Register(); err != nil {
		e.disp.Close()
		return err
	}
	e.model = app.New(e.disp)

	e.update(tea.WindowSizeMsg{Width: scenario.Width, Height: scenario.Height})
	e.flush()
	return nil
}

// executeStep executes a single demo step.
func (e *Executor) executeStep(index int, step Step) error {
	switch step.Type {
	case StepWait:
		e.advance(step.Duration)
		if e.config.CaptureEveryStep {
			e.captureFrame(index)
		}

	case StepKey:
		e.update(keyPress(step.Key))
		e.flush()
		e.elapsed += e.config.KeyDelay
		if e.config.CaptureEveryStep {
			e.captureFrame(index)
		}

	case StepResize:
		e.update(tea.WindowSizeMsg{Width: step.Width, Height: step.Height})
		e.flush()

	case StepCapture:
		e.captureFrame(index)

	case StepAnnotate:
		e.currentAnnotation = step.Annotation

	default:
		return fmt.Errorf("unknown step type %d", step.Type)
	}
	return nil
}

// advance plays d worth of tick and frame timer messages.
func (e *Executor) advance(d time.Duration) {
	cfg := e.disp.Config()
	now := time.Now()
	ticks := int(d.Seconds() * cfg.TickRate)
	frames := int(d.Seconds() * cfg.FrameRate)
	for i := 0; i < max(ticks, frames); i++ {
		if i < ticks {
			e.update(app.TickMsg(now))
		}
		if i < frames {
			e.update(app.FrameMsg(now))
		}
	}
	e.flush()
	e.elapsed += d
}

// update delivers msg and drops the returned command: timers and the channel
// listener are driven by the executor instead.
func (e *Executor) update(msg tea.Msg) {
	result, _ := e.model.Update(msg)
	e.model = result.(*app.Model)
}

// flush runs the cycle a ready channel would trigger. Two passes so that
// follow-ups such as the Status after a yank are visible in the captured
// frame.
func (e *Executor) flush() {
	e.update(app.ActionsReadyMsg{})
	e.update(app.ActionsReadyMsg{})
}

// captureFrame captures the current view as a frame.
func (e *Executor) captureFrame(stepIndex int) {
	frame := Frame{
		Content:    e.model.Frame(),
		Delay:      e.elapsed,
		Annotation: e.currentAnnotation,
		StepIndex:  stepIndex,
	}
	e.frames = append(e.frames, frame)

	// Clear annotation after use
	e.currentAnnotation = ""
	e.elapsed = 0
}

// keyPress converts a key string to a tea.KeyPressMsg.
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case keys.Enter:
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case keys.Tab:
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case keys.Escape:
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case keys.Up:
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case keys.Down:
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case keys.Space:
		return tea.KeyPressMsg{Code: tea.KeySpace}
	case keys.CtrlC:
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case keys.CtrlL:
		return tea.KeyPressMsg{Code: 'l', Mod: tea.ModCtrl}
	case keys.CtrlR:
		return tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl}
	case keys.CtrlY:
		return tea.KeyPressMsg{Code: 'y', Mod: tea.ModCtrl}
	default:
		if len(key) == 1 {
			return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
		}
		return tea.KeyPressMsg{Text: key}
	}
}
