package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"

	huh "charm.land/huh/v2"
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/spf13/cobra"

	"github.com/zhubert/panes/internal/config"
	"github.com/zhubert/panes/internal/ui"
)

var plainOutput bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the config file",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective config",
	Long: heredoc.Doc(`
		Print the config in effect: the file's settings layered over the
		built-in defaults, in the same JSON shape the file uses.
	`),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow(cmd.OutOrStdout())
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file interactively",
	Long: heredoc.Doc(`
		Ask for the theme, rates and options, then write a config file
		containing them and the default key bindings. An existing file is
		used as the starting point.
	`),
	RunE: runConfigInit,
}

func init() {
	configShowCmd.Flags().BoolVar(&plainOutput, "plain", false, "Disable syntax highlighting")
	configCmd.AddCommand(configPathCmd, configShowCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(w io.Writer) error {
	path, err := resolveConfigPath()
	if err != nil {
		return err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	out, err := cfg.JSON()
	if err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	text := string(out)
	if !plainOutput {
		text = highlightJSON(text)
	}
	_, err = fmt.Fprintln(w, text)
	return err
}

// highlightJSON colours JSON for a 256 colour terminal, returning the input
// unchanged if highlighting fails.
func highlightJSON(code string) string {
	lexer := lexers.Get("json")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return buf.String()
}

// initValues holds the form fields of "config init" as the form edits them.
type initValues struct {
	theme         string
	tickRate      string
	frameRate     string
	showFPS       bool
	notifications bool
}

func newInitValues(cfg *config.Config) *initValues {
	return &initValues{
		theme:         cfg.Theme,
		tickRate:      strconv.FormatFloat(cfg.TickRate, 'f', -1, 64),
		frameRate:     strconv.FormatFloat(cfg.FrameRate, 'f', -1, 64),
		showFPS:       cfg.ShowFPS,
		notifications: cfg.Notifications,
	}
}

// apply copies the form values onto cfg and validates the result.
func (v *initValues) apply(cfg *config.Config) error {
	tick, err := parseRate(v.tickRate)
	if err != nil {
		return fmt.Errorf("tick rate: %w", err)
	}
	frame, err := parseRate(v.frameRate)
	if err != nil {
		return fmt.Errorf("frame rate: %w", err)
	}
	cfg.Theme = v.theme
	cfg.TickRate = tick
	cfg.FrameRate = frame
	cfg.ShowFPS = v.showFPS
	cfg.Notifications = v.notifications
	return cfg.Validate()
}

func parseRate(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if f <= 0 {
		return 0, fmt.Errorf("must be positive, got %v", f)
	}
	return f, nil
}

func validateRate(s string) error {
	_, err := parseRate(s)
	return err
}

func newInitForm(v *initValues) *huh.Form {
	names := ui.ThemeNames()
	themeOptions := make([]huh.Option[string], len(names))
	for i, n := range names {
		themeOptions[i] = huh.NewOption(string(n), string(n))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Options(themeOptions...).
				Value(&v.theme),
			huh.NewInput().
				Title("Tick rate").
				Description("Ticks per second").
				Validate(validateRate).
				Value(&v.tickRate),
			huh.NewInput().
				Title("Frame rate").
				Description("Frames per second").
				Validate(validateRate).
				Value(&v.frameRate),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Show the FPS counter?").
				Value(&v.showFPS),
			huh.NewConfirm().
				Title("Desktop notification when a panel fails?").
				Value(&v.notifications),
		),
	).WithTheme(ui.FormTheme(ui.GetTheme(v.theme)))
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := resolveConfigPath()
	if err != nil {
		return err
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: ignoring unreadable config: %v\n", err)
		cfg = config.Default()
	}

	values := newInitValues(cfg)
	if err := newInitForm(values).Run(); err != nil {
		return fmt.Errorf("config init cancelled: %w", err)
	}
	if err := values.apply(cfg); err != nil {
		return err
	}
	if err := cfg.Save(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
