package subtask

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/phaseboard/internal/cli"
	"github.com/thenoetrevino/phaseboard/internal/cli/styles"
	"github.com/thenoetrevino/phaseboard/internal/types"
)

// ListCmd returns the subtask list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <card-id>",
		Short: "List a card's checklist",
		Long: `List the checklist items of a card with their owners and hand-offs.

Examples:
  phaseboard subtask list $CARD_ID
  phaseboard subtask list $CARD_ID --quiet
`,
		Args: cobra.ExactArgs(1),
		RunE: runList,
	}

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (subtask IDs only)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
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

	card, _, err := cliInstance.App.Board.FindCard(types.CardID(args[0]))
	if err != nil {
		return formatter.Fail(err, "Run 'phaseboard board show' to see card IDs")
	}

	if quietMode {
		for _, st := range card.Subtasks {
			fmt.Println(st.ID)
		}
		return nil
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success":  true,
			"cardId":   card.ID,
			"subtasks": card.Subtasks,
		})
	}

	if len(card.Subtasks) == 0 {
		fmt.Printf("Card '%s' has no checklist\n", card.Title)
		return nil
	}
	fmt.Printf("Checklist for '%s':\n", card.Title)
	for _, st := range card.Subtasks {
		fmt.Printf("  %s  %s\n", styles.RenderSubtask(st), styles.SubtitleStyle.Render(st.ID.String()))
	}
	return nil
}
