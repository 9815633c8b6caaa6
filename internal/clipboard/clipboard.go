// Package clipboard writes text to the system clipboard.
package clipboard

import (
	"fmt"
	"sync"

	"golang.design/x/clipboard"

	"github.com/zhubert/panes/internal/logger"
)

// Writer puts text on the clipboard.
type Writer interface {
	WriteText(text string) error
}

// System writes to the operating system clipboard. The zero value is ready to
// use; the clipboard is initialised on first write.
type System struct {
	once    sync.Once
	initErr error
}

// Init initializes the clipboard. It is safe to call multiple times; only
// the first call does any work.
func (s *System) Init() error {
	s.once.Do(func() {
		if err := clipboard.Init(); err != nil {
			logger.WithComponent("clipboard").Warn("failed to initialize", "error", err)
			s.initErr = fmt.Errorf("failed to initialize clipboard: %w", err)
			return
		}
		logger.WithComponent("clipboard").Debug("initialized")
	})
	return s.initErr
}

// WriteText copies text to the clipboard.
func (s *System) WriteText(text string) error {
	if err := s.Init(); err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	logger.WithComponent("clipboard").Debug("wrote text", "bytes", len(text))
	return nil
}

// Memory is an in-process clipboard for tests and headless runs.
type Memory struct {
	mu   sync.Mutex
	text string
	err  error
}

// NewMemory returns an empty Memory clipboard. A non-nil err makes every
// write fail with it.
func NewMemory(err error) *Memory {
	return &Memory{err: err}
}

// WriteText stores text.
func (m *Memory) WriteText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.text = text
	return nil
}

// Text returns the last text written.
func (m *Memory) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}
