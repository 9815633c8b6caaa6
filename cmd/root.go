package cmd

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/zhubert/panes/internal/app"
	"github.com/zhubert/panes/internal/clipboard"
	"github.com/zhubert/panes/internal/config"
	"github.com/zhubert/panes/internal/logger"
)

var (
	debugMode             bool
	configPath            string
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "panes",
	Short: "Mode-switching terminal panels driven by key bindings",
	Long: heredoc.Doc(`
		panes is a terminal application built from independent panels.

		Key presses are turned into actions through configurable key bindings
		and every panel reacts to the same ordered stream of actions. Press
		tab to switch between the Home and Note modes and q to quit.

		Key bindings, theme and rates live in a JSON config file; edits to
		that file are picked up while the application is running.
	`),
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default $"+config.EnvConfigPath+" or the user config dir)")
}

func initConfig() {
	logger.SetDebug(debugMode)
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("panes %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("panes %s\n", version)
}

// resolveConfigPath returns --config when given, otherwise the default location.
func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.DefaultPath()
}

func newDispatcher(src *config.Source, clip clipboard.Writer) *app.Dispatcher {
	return app.NewDispatcher(src, app.PanelSlots(clip)...)
}

func runTUI(cmd *cobra.Command, args []string) error {
	path, err := resolveConfigPath()
	if err != nil {
		return fmt.Errorf("error locating config: %w", err)
	}

	src, err := config.NewSource(path)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	defer src.Close()

	// Ensure logger is closed on exit
	defer logger.Close()

	d := newDispatcher(src, &clipboard.System{})
	if err := d.Register(); err != nil {
		return fmt.Errorf("error starting panels: %w", err)
	}

	m := app.New(d)
	if err := m.WatchConfig(); err != nil {
		logger.Warn("config watch disabled: %v", err)
	}

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
