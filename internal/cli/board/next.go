package board

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/phaseboard/internal/cli"
	"github.com/thenoetrevino/phaseboard/internal/types"
)

// NextCmd returns the board next subcommand
func NextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next <column-id>",
		Short: "List cards that already advanced past a phase",
		Long: `List the cards sitting in the phase right after the given column.

Examples:
  phaseboard board next script-testing
  phaseboard board next hook-testing --json
`,
		Args: cobra.ExactArgs(1),
		RunE: runNext,
	}

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (card IDs only)")

	return cmd
}

func runNext(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
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

	columnID := types.ColumnID(args[0])
	cards, err := cliInstance.App.Board.NextPhaseCards(columnID)
	if err != nil {
		return formatter.Fail(err, "Run 'phaseboard board show' to see column IDs")
	}

	if quietMode {
		for _, card := range cards {
			fmt.Println(card.ID)
		}
		return nil
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"column":  columnID,
			"cards":   cards,
		})
	}

	if len(cards) == 0 {
		fmt.Printf("No cards have advanced past '%s'\n", columnID)
		return nil
	}
	fmt.Printf("Cards advanced past '%s':\n", columnID)
	for _, card := range cards {
		fmt.Printf("  • %s  %s (phase %d)\n", card.ID, card.Title, card.Phase.Current)
	}
	return nil
}
