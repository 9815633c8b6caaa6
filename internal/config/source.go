package config

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/zhubert/panes/internal/logger"
)

// Source owns the current Config for a running application and reloads it
// from disk on request.
type Source struct {
	mu      sync.RWMutex
	path    string
	current *Config

	watcher *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewSource loads the config at path.
func NewSource(path string) (*Source, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Source{path: path, current: cfg}, nil
}

// StaticSource wraps an already loaded config. Reload returns it unchanged.
func StaticSource(cfg *Config) *Source {
	return &Source{current: cfg}
}

// Path returns the watched file, empty for a static source.
func (s *Source) Path() string {
	return s.path
}

// Current returns the most recently loaded config.
func (s *Source) Current() *Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Reload re-reads the file. On failure the previous config stays current.
func (s *Source) Reload() (*Config, error) {
	if s.path == "" {
		return s.Current(), nil
	}
	cfg, err := Load(s.path)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.current = cfg
	s.mu.Unlock()
	return cfg, nil
}

// Watch calls onChange whenever the config file changes on disk. The parent directory is watched so editors that replace
// the file are still seen. Watch may be called once; stop it with Close.
func (s *Source) Watch(onChange func()) error {
	if s.path == "" {
		return nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(s.path)); err != nil {
		w.Close()
		return err
	}

	s.watcher = w
	s.done = make(chan struct{})
	s.wg.Add(1)
	go s.watchLoop(onChange)
	return nil
}

func (s *Source) watchLoop(onChange func()) {
	defer s.wg.Done()
	log := logger.WithComponent("config")
	target := filepath.Clean(s.path)

	for {
		select {
		case <-s.done:
			return
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				log.Debug("config file changed", "op", ev.Op.String())
				onChange()
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			log.Warn("config watcher error", "error", err)
		}
	}
}

// Close stops the watcher, if any.
func (s *Source) Close() error {
	if s.watcher == nil {
		return nil
	}
	close(s.done)
	err := s.watcher.Close()
	s.wg.Wait()
	s.watcher = nil
	return err
}
