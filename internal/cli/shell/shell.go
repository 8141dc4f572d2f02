package shell

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/shlex"
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/phaseboard/internal/cli"
)

const prompt = "phaseboard> "

// ShellCmd returns the interactive shell command. newRoot builds a fresh
// command tree for every line so flag state never leaks between lines.
func ShellCmd(newRoot func() *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Run commands against one board session",
		Long: `The board lives in memory, so each separate phaseboard invocation starts
from the seeded pipeline. The shell keeps one board alive and runs every
line as a phaseboard command against it.

Examples:
  phaseboard shell
  printf 'board stats\nnotification unread --user=tm1\n' | phaseboard shell --quiet
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, newRoot)
		},
	}

	cmd.Flags().Bool("quiet", false, "Do not print the prompt")

	return cmd
}

func run(cmd *cobra.Command, newRoot func() *cobra.Command) error {
	quietMode, _ := cmd.Flags().GetBool("quiet")
	out := cmd.OutOrStdout()

	cliInstance, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		formatter := &cli.OutputFormatter{}
		if fmtErr := formatter.Error("INITIALIZATION_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		return cli.Coded(err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("Error closing CLI", "error", err)
		}
	}()

	ctx := cli.WithApp(cmd.Context(), cliInstance.App)
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		if !quietMode {
			_, _ = fmt.Fprint(out, prompt)
		}
		if !scanner.Scan() {
			break
		}

		fields, err := SplitLine(scanner.Text())
		if err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "parse error: %v\n", err)
			continue
		}
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "exit" || fields[0] == "quit" {
			break
		}
		if fields[0] == "shell" {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "already in a shell")
			continue
		}

		root := newRoot()
		root.SetArgs(fields)
		root.SilenceUsage = true
		root.SilenceErrors = true
		if err := root.ExecuteContext(ctx); err != nil {
			slog.Debug("shell command failed", "line", scanner.Text(), "error", err)
			// Coded errors were already reported by the command
			var coded *cli.CodedError
			if !errors.As(err, &coded) {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
			}
		}
	}
	if !quietMode {
		_, _ = fmt.Fprintln(out)
	}
	return scanner.Err()
}

// SplitLine splits a shell line into arguments with POSIX quoting rules.
// Blank lines and # comments yield no arguments.
func SplitLine(line string) ([]string, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil, nil
	}
	return shlex.Split(line)
}
