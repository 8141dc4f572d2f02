package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/phaseboard/internal/cli"
	"github.com/thenoetrevino/phaseboard/internal/cli/board"
	"github.com/thenoetrevino/phaseboard/internal/cli/card"
	"github.com/thenoetrevino/phaseboard/internal/cli/notification"
	"github.com/thenoetrevino/phaseboard/internal/cli/report"
	"github.com/thenoetrevino/phaseboard/internal/cli/shell"
	"github.com/thenoetrevino/phaseboard/internal/cli/subtask"
)

// NewRootCmd builds the full command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "phaseboard",
		Short: "Phaseboard - a phase pipeline for creative testing",
		Long: `Phaseboard moves creative cards (scripts, hooks, scenes, ads) through a
fixed pipeline of testing phases, hands checklist work from one team
member to the next, classifies cards by their performance metrics and
aggregates each phase into a report.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(board.BoardCmd())
	rootCmd.AddCommand(card.CardCmd())
	rootCmd.AddCommand(subtask.SubtaskCmd())
	rootCmd.AddCommand(notification.NotificationCmd())
	rootCmd.AddCommand(report.ReportCmd())
	rootCmd.AddCommand(shell.ShellCmd(NewRootCmd))

	return rootCmd
}

// Execute runs the CLI and returns the process exit code. Command errors
// are already reported by the formatter; cobra's own errors are not.
// SIGINT and SIGTERM cancel the command context.
func Execute() int {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	err := NewRootCmd().ExecuteContext(ctx)
	var coded *cli.CodedError
	if err != nil && !errors.As(err, &coded) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return cli.ExitCode(err)
}
