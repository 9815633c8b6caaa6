// Package demo runs scripted key sequences against the real panels without a
// terminal and captures the frames they produce. The output is deterministic,
// which makes it usable for documentation recordings and for smoke tests.
package demo

import (
	"time"
)

// StepType represents the type of action in a demo step.
type StepType int

const (
	// StepWait advances the tick and frame timers by Duration.
	StepWait StepType = iota
	// StepKey sends a single key press.
	StepKey
	// StepCapture captures the current frame.
	StepCapture
	// StepAnnotate attaches a caption to the next captured frame.
	StepAnnotate
	// StepResize changes the terminal size.
	StepResize
)

// Step represents a single action in a demo scenario.
type Step struct {
	Type        StepType
	Description string // Human-readable description of what this step does

	// For StepKey
	Key string

	// For StepWait
	Duration time.Duration

	// For StepAnnotate
	Annotation string

	// For StepResize
	Width  int
	Height int
}

// Scenario defines a complete demo scenario.
type Scenario struct {
	Name        string
	Description string
	Width       int // Terminal width (default 100)
	Height      int // Terminal height (default 30)
	Setup       *ScenarioSetup
	Steps       []Step
}

// ScenarioSetup defines the config the demo starts with. Empty fields keep
// the built-in defaults.
type ScenarioSetup struct {
	Theme   string
	Notes   []string
	ShowFPS bool
}

// DefaultSetup returns a minimal setup for demos.
func DefaultSetup() *ScenarioSetup {
	return &ScenarioSetup{
		Notes: []string{
			"Buy milk",
			"Call the plumber about the kitchen sink",
			"Read chapter 4",
		},
	}
}

// Validate checks that the scenario is valid and fills in defaults.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return &ValidationError{Field: "Name", Message: "scenario name is required"}
	}
	if s.Width <= 0 {
		s.Width = 100
	}
	if s.Height <= 0 {
		s.Height = 30
	}
	if s.Setup == nil {
		s.Setup = DefaultSetup()
	}
	for _, step := range s.Steps {
		if step.Type == StepKey && step.Key == "" {
			return &ValidationError{Field: "Steps", Message: "key step without a key"}
		}
		if step.Type == StepResize && (step.Width <= 0 || step.Height <= 0) {
			return &ValidationError{Field: "Steps", Message: "resize step needs a positive size"}
		}
	}
	return nil
}

// ValidationError represents a scenario validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Field + ": " + e.Message
}

// Step builder functions for fluent scenario construction

// Wait creates a wait step.
func Wait(d time.Duration) Step {
	return Step{
		Type:     StepWait,
		Duration: d,
	}
}

// Key creates a key press step.
func Key(key string) Step {
	return Step{
		Type: StepKey,
		Key:  key,
	}
}

// KeyWithDesc creates a key press step with a description.
func KeyWithDesc(key, description string) Step {
	return Step{
		Type:        StepKey,
		Key:         key,
		Description: description,
	}
}

// Keys creates one key step per key.
func Keys(keys ...string) []Step {
	steps := make([]Step, len(keys))
	for i, k := range keys {
		steps[i] = Key(k)
	}
	return steps
}

// Resize creates a terminal resize step.
func Resize(width, height int) Step {
	return Step{
		Type:   StepResize,
		Width:  width,
		Height: height,
	}
}

// Annotate creates an annotation step.
func Annotate(text string) Step {
	return Step{
		Type:       StepAnnotate,
		Annotation: text,
	}
}

// Capture creates a frame capture step.
func Capture() Step {
	return Step{
		Type: StepCapture,
	}
}
