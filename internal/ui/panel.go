package ui

import (
	"github.com/zhubert/panes/internal/component"
	"github.com/zhubert/panes/internal/config"
	"github.com/zhubert/panes/internal/logger"
	"github.com/zhubert/panes/internal/mode"
)

// panel is the registration half shared by every panel in this package. It
// rebuilds the styles whenever a config is registered, so a reload that
// changes the theme takes effect on the next frame.
type panel struct {
	component.Base
	styles Styles
}

func newPanel(name string) panel {
	return panel{
		Base:   component.NewBase(name),
		styles: NewStyles(BuiltinThemes[DefaultTheme]),
	}
}

// RegisterConfigHandler stores cfg and derives the panel styles from its theme.
func (p *panel) RegisterConfigHandler(cfg *config.Config) error {
	if err := p.Base.RegisterConfigHandler(cfg); err != nil {
		return err
	}
	theme, ok := LookupTheme(cfg.Theme)
	if !ok {
		logger.WithComponent(p.Name()).Warn("unknown theme, using default", "theme", cfg.Theme)
		theme = BuiltinThemes[DefaultTheme]
	}
	p.styles = NewStyles(theme)
	return nil
}

// Styles returns the styles derived from the registered theme.
func (p *panel) Styles() Styles {
	return p.styles
}

// modeTitles lists the tab titles in cycle order.
func modeTitles() []string {
	all := mode.All()
	titles := make([]string, len(all))
	for i, m := range all {
		titles[i] = m.String()
	}
	return titles
}
