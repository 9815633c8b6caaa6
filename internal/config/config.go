// Package config loads the keybinding and display configuration shared by
// every panel. A loaded Config is read-only: reloads produce a new value.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/zhubert/panes/internal/action"
	"github.com/zhubert/panes/internal/errors"
	"github.com/zhubert/panes/internal/keys"
	"github.com/zhubert/panes/internal/mode"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "PANES_CONFIG"

// Config holds the application configuration
type Config struct {
	Keybindings   map[mode.Mode][]keys.Binding // ordered per mode
	Theme         string
	TickRate      float64 // ticks per second
	FrameRate     float64 // frames per second
	ShowFPS       bool
	Notifications bool     // desktop notification when a panel faults
	Notes         []string // Note panel seed content, never written back

	path string
}

// fileBinding is one keybinding as written in the config file.
type fileBinding struct {
	Chord  string `mapstructure:"chord" json:"chord"`
	Action string `mapstructure:"action" json:"action"`
}

// fileConfig is the on-disk shape. Keybindings are lists so declaration
// order and key case survive viper's case-insensitive keys.
type fileConfig struct {
	Theme         string                   `mapstructure:"theme" json:"theme"`
	TickRate      float64                  `mapstructure:"tick_rate" json:"tick_rate"`
	FrameRate     float64                  `mapstructure:"frame_rate" json:"frame_rate"`
	ShowFPS       bool                     `mapstructure:"show_fps" json:"show_fps"`
	Notifications bool                     `mapstructure:"notifications" json:"notifications"`
	Notes         []string                 `mapstructure:"notes" json:"notes"`
	Keybindings   map[string][]fileBinding `mapstructure:"keybindings" json:"keybindings"`
}

// Path returns the file this config was loaded from, if any.
func (c *Config) Path() string {
	return c.path
}

// Bindings returns the ordered bindings for m. The slice must not be modified.
func (c *Config) Bindings(m mode.Mode) []keys.Binding {
	if c == nil {
		return nil
	}
	return c.Keybindings[m]
}

// DefaultPath returns $PANES_CONFIG or <user config dir>/panes/config.json.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "panes", "config.json"), nil
}

func newViper(path string) *viper.Viper {
	// "::" keeps "<.>" chords from being split into nested keys.
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetEnvPrefix("PANES")
	v.AutomaticEnv()

	def := Default()
	v.SetDefault("theme", def.Theme)
	v.SetDefault("tick_rate", def.TickRate)
	v.SetDefault("frame_rate", def.FrameRate)
	v.SetDefault("show_fps", def.ShowFPS)
	v.SetDefault("notifications", def.Notifications)
	v.SetDefault("notes", def.Notes)
	return v
}

// Load reads the config at path over the built-in defaults. A missing file is
// not an error.
func Load(path string) (*Config, error) {
	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
			return nil, errors.ConfigLoadFailed(path, err)
		}
	}

	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return nil, errors.ConfigLoadFailed(path, err)
	}

	cfg, err := fromFile(fc)
	if err != nil {
		return nil, err
	}
	cfg.path = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// fromFile converts the on-disk form, layering user bindings over the
// defaults: a user chord replaces the default with the same chord, new chords
// are appended in file order.
func fromFile(fc fileConfig) (*Config, error) {
	def := Default()
	cfg := &Config{
		Keybindings:   def.Keybindings,
		Theme:         fc.Theme,
		TickRate:      fc.TickRate,
		FrameRate:     fc.FrameRate,
		ShowFPS:       fc.ShowFPS,
		Notifications: fc.Notifications,
		Notes:         fc.Notes,
	}

	for name, raw := range fc.Keybindings {
		m, err := mode.Parse(name)
		if err != nil {
			return nil, errors.ConfigInvalid(fmt.Sprintf("keybindings: %v", err))
		}
		merged := append([]keys.Binding(nil), cfg.Keybindings[m]...)
		for _, fb := range raw {
			seq, err := keys.ParseChord(fb.Chord)
			if err != nil {
				return nil, errors.ConfigInvalid(fmt.Sprintf("keybindings.%s: %v", m, err))
			}
			act, err := action.Parse(fb.Action)
			if err != nil {
				return nil, errors.ConfigInvalid(fmt.Sprintf("keybindings.%s %s: %v", m, fb.Chord, err))
			}
			merged = upsert(merged, keys.Binding{Keys: seq, Action: act})
		}
		cfg.Keybindings[m] = merged
	}
	return cfg, nil
}

func upsert(bindings []keys.Binding, b keys.Binding) []keys.Binding {
	chord := b.Chord()
	for i := range bindings {
		if bindings[i].Chord() == chord {
			bindings[i] = b
			return bindings
		}
	}
	return append(bindings, b)
}

// Validate checks that the config is internally consistent.
func (c *Config) Validate() error {
	if c.TickRate <= 0 {
		return errors.ConfigInvalid(fmt.Sprintf("tick_rate must be positive, got %v", c.TickRate))
	}
	if c.FrameRate <= 0 {
		return errors.ConfigInvalid(fmt.Sprintf("frame_rate must be positive, got %v", c.FrameRate))
	}
	if strings.TrimSpace(c.Theme) == "" {
		return errors.ConfigInvalid("theme must not be empty")
	}
	for m, bindings := range c.Keybindings {
		if !m.Valid() {
			return errors.ConfigInvalid(fmt.Sprintf("keybindings for unknown mode %d", int(m)))
		}
		seen := make(map[string]bool, len(bindings))
		for _, b := range bindings {
			if len(b.Keys) == 0 {
				return errors.ConfigInvalid(fmt.Sprintf("keybindings.%s: empty chord", m))
			}
			if seen[b.Chord()] {
				return errors.ConfigInvalid(fmt.Sprintf("keybindings.%s: duplicate chord %s", m, b.Chord()))
			}
			seen[b.Chord()] = true
		}
	}
	return nil
}

// toFile converts c to its on-disk form.
func (c *Config) toFile() fileConfig {
	fc := fileConfig{
		Theme:         c.Theme,
		TickRate:      c.TickRate,
		FrameRate:     c.FrameRate,
		ShowFPS:       c.ShowFPS,
		Notifications: c.Notifications,
		Notes:         c.Notes,
		Keybindings:   make(map[string][]fileBinding, len(c.Keybindings)),
	}
	for _, m := range mode.All() {
		for _, b := range c.Keybindings[m] {
			fc.Keybindings[m.String()] = append(fc.Keybindings[m.String()], fileBinding{
				Chord:  b.Chord(),
				Action: b.Action.Type.String(),
			})
		}
	}
	return fc
}

// JSON renders c in the same shape Save writes, indented for display.
// Chords keep their angle brackets unescaped.
func (c *Config) JSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c.toFile()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes c to path as JSON, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.ConfigSaveFailed(path, err)
	}
	data, err := c.JSON()
	if err != nil {
		return errors.ConfigSaveFailed(path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.ConfigSaveFailed(path, err)
	}
	return nil
}
