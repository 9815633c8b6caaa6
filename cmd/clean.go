package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/zhubert/panes/internal/logger"
)

var skipConfirm bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove panes debug logs",
	Long: heredoc.Doc(`
		Removes every panes log file from the temp directory.

		It will prompt for confirmation before proceeding unless the --yes
		flag is used.
	`),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCleanWithReader(os.Stdin, cmd.OutOrStdout())
	},
}

func init() {
	cleanCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(cleanCmd)
}

// runCleanWithReader allows injecting a reader for testing
func runCleanWithReader(input io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "This will remove all panes log files (active log: %s)\n", logger.Path())

	if !skipConfirm {
		if !confirm(input, out, "Continue?") {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	// The running log would be recreated on the next write
	logger.Close()
	n, err := logger.ClearLogs()
	if err != nil {
		return fmt.Errorf("error clearing logs: %w", err)
	}
	fmt.Fprintf(out, "Removed %d log file(s).\n", n)
	return nil
}

func confirm(input io.Reader, out io.Writer, prompt string) bool {
	reader := bufio.NewReader(input)
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
