package card

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/phaseboard/internal/cli"
)

// CardCmd returns the card parent command
func CardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Manage creative cards",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(MoveCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(StatusCmd())
	cmd.AddCommand(MetricsCmd())

	return cmd
}

// open resolves the CLI for a card subcommand and reports failures in the
// caller's output mode
func open(cmd *cobra.Command) (*cli.CLI, *cli.OutputFormatter, error) {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	cliInstance, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		if fmtErr := formatter.Error("INITIALIZATION_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		return nil, nil, cli.Coded(err)
	}
	return cliInstance, formatter, nil
}

func closeCLI(c *cli.CLI) {
	if err := c.Close(); err != nil {
		slog.Error("Error closing CLI", "error", err)
	}
}
