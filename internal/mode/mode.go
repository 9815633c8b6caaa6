// Package mode defines the top-level view selector and the single
// authoritative copy of the current mode.
package mode

import (
	"strings"
	"sync"

	"github.com/zhubert/panes/internal/errors"
)

// Mode selects which panels are active.
type Mode int

const (
	Home Mode = iota
	Note
)

var names = [...]string{
	Home: "Home",
	Note: "Note",
}

// All returns every mode in cycle order.
func All() []Mode {
	return []Mode{Home, Note}
}

// Next returns the successor of m, wrapping from the last mode to the first.
// Out-of-range values restart the cycle at Home.
func (m Mode) Next() Mode {
	if !m.Valid() {
		return Home
	}
	return Mode((int(m) + 1) % len(names))
}

// Valid reports whether m is one of the declared modes.
func (m Mode) Valid() bool {
	return m >= 0 && int(m) < len(names)
}

// String returns the display name of the mode.
func (m Mode) String() string {
	if !m.Valid() {
		return "Unknown"
	}
	return names[m]
}

// Parse returns the mode with the given name, case-insensitively.
func Parse(name string) (Mode, error) {
	for i, n := range names {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Mode(i), nil
		}
	}
	return Home, errors.UnknownMode(name)
}

// State holds the current mode. The dispatcher owns the only State; panels
// keep their own cached copies.
type State struct {
	mu      sync.RWMutex
	current Mode
}

// NewState returns a State starting at initial.
func NewState(initial Mode) *State {
	if !initial.Valid() {
		initial = Home
	}
	return &State{current: initial}
}

// Current returns the active mode.
func (s *State) Current() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Switch advances to the next mode and returns it.
func (s *State) Switch() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = s.current.Next()
	return s.current
}
