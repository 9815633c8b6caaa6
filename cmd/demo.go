package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/zhubert/panes/internal/demo"
	"github.com/zhubert/panes/internal/demo/scenarios"
)

var (
	demoOutput     string
	demoWidth      int
	demoHeight     int
	demoCaptureAll bool
	demoPlain      bool
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Generate scripted demo recordings",
	Long: heredoc.Doc(`
		Play a built-in scenario against the real panels without a terminal
		and capture the frames it produces.

		Available subcommands:
		  list  - List available demo scenarios
		  run   - Run a scenario and print its frames
		  cast  - Write an asciinema cast file
	`),
}

var demoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available demo scenarios",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Available demo scenarios:")
		fmt.Fprintln(out)
		for _, s := range scenarios.All() {
			fmt.Fprintf(out, "  %-15s %s\n", s.Name, s.Description)
		}
	},
}

var demoRunCmd = &cobra.Command{
	Use:   "run <scenario>",
	Short: "Run a scenario and print its frames",
	Args:  cobra.ExactArgs(1),
	RunE:  runDemoRun,
}

var demoCastCmd = &cobra.Command{
	Use:   "cast <scenario>",
	Short: "Write an asciinema cast file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDemoCast,
}

func init() {
	for _, cmd := range []*cobra.Command{demoRunCmd, demoCastCmd} {
		cmd.Flags().StringVarP(&demoOutput, "output", "o", "", "Output file")
		cmd.Flags().IntVarP(&demoWidth, "width", "w", 0, "Terminal width (scenario default when 0)")
		cmd.Flags().IntVarP(&demoHeight, "height", "H", 0, "Terminal height (scenario default when 0)")
		cmd.Flags().BoolVar(&demoCaptureAll, "capture-all", false, "Capture frame after every step (for debugging)")
	}
	demoRunCmd.Flags().BoolVar(&demoPlain, "plain", false, "Strip colors from the printed frames")

	demoCmd.AddCommand(demoListCmd, demoRunCmd, demoCastCmd)
	rootCmd.AddCommand(demoCmd)
}

func getScenario(name string) (*demo.Scenario, error) {
	scenario := scenarios.Get(name)
	if scenario == nil {
		return nil, fmt.Errorf("unknown scenario %q\nRun 'panes demo list' to see available scenarios", name)
	}

	// Override dimensions if specified
	if demoWidth > 0 {
		scenario.Width = demoWidth
	}
	if demoHeight > 0 {
		scenario.Height = demoHeight
	}
	return scenario, nil
}

func executeScenario(scenario *demo.Scenario) ([]demo.Frame, error) {
	execCfg := demo.DefaultExecutorConfig()
	execCfg.CaptureEveryStep = demoCaptureAll
	return demo.NewExecutor(execCfg).Run(scenario)
}

// demoWriter returns the --output file, or stdout when none was given.
func demoWriter(stdout io.Writer) (io.Writer, func() error, error) {
	if demoOutput == "" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(demoOutput)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating output file: %w", err)
	}
	return f, f.Close, nil
}

func runDemoRun(cmd *cobra.Command, args []string) error {
	scenario, err := getScenario(args[0])
	if err != nil {
		return err
	}
	frames, err := executeScenario(scenario)
	if err != nil {
		return fmt.Errorf("error running scenario: %w", err)
	}

	w, closeFn, err := demoWriter(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closeFn()

	fmt.Fprintf(w, "Captured %d frames\n", len(frames))
	for i, f := range frames {
		fmt.Fprintf(w, "\n=== Frame %d (delay: %v) ===\n", i, f.Delay)
		if f.Annotation != "" {
			fmt.Fprintf(w, "Annotation: %s\n", f.Annotation)
		}
		content := f.Content
		if demoPlain {
			content = ansi.Strip(content)
		}
		fmt.Fprintln(w, content)
	}
	return nil
}

func runDemoCast(cmd *cobra.Command, args []string) error {
	scenarioName := args[0]
	scenario, err := getScenario(scenarioName)
	if err != nil {
		return err
	}
	frames, err := executeScenario(scenario)
	if err != nil {
		return fmt.Errorf("error running scenario: %w", err)
	}

	if demoOutput == "" {
		demoOutput = scenarioName + ".cast"
	}
	w, closeFn, err := demoWriter(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closeFn()

	if err := demo.GenerateASCIICast(w, frames, scenario.Width, scenario.Height, "panes: "+scenario.Description); err != nil {
		return fmt.Errorf("error generating cast file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generated %s (%d frames)\n", demoOutput, len(frames))
	fmt.Fprintf(cmd.OutOrStdout(), "Play with: asciinema play %s\n", demoOutput)
	return nil
}
