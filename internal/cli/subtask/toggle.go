package subtask

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/phaseboard/internal/cli"
	"github.com/thenoetrevino/phaseboard/internal/types"
)

// ToggleCmd returns the subtask toggle subcommand
func ToggleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toggle <card-id> <subtask-id>",
		Short: "Flip a checklist item between done and not done",
		Long: `Flip a checklist item. Completing an item notifies the member it hands
off to; un-completing it notifies nobody.

Examples:
  phaseboard subtask toggle $CARD_ID <subtask-id>
  phaseboard subtask toggle $CARD_ID <subtask-id> --json
`,
		Args: cobra.ExactArgs(2),
		RunE: runToggle,
	}

	cmd.Flags().String("column", "", "Column holding the card (default: looked up)")

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (completed state only)")

	return cmd
}

func runToggle(cmd *cobra.Command, args []string) error {
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

	cardID := types.CardID(args[0])
	subtaskID := types.SubtaskID(args[1])

	column, _ := cmd.Flags().GetString("column")
	columnID := types.ColumnID(column)
	if columnID == "" {
		if _, columnID, err = cliInstance.App.Board.FindCard(cardID); err != nil {
			return formatter.Fail(err, "Run 'phaseboard board show' to see card IDs")
		}
	}

	published, err := cliInstance.App.ToggleSubtask(columnID, cardID, subtaskID)
	if err != nil {
		return formatter.Fail(err, "Run 'phaseboard subtask list "+cardID.String()+"' to see subtask IDs")
	}

	card, _, err := cliInstance.App.Board.FindCard(cardID)
	if err != nil {
		return formatter.Fail(err, "")
	}
	idx := card.SubtaskIndex(subtaskID)
	if idx < 0 {
		return formatter.Fail(fmt.Errorf("subtask %s vanished from card %s", subtaskID, cardID), "")
	}
	st := card.Subtasks[idx]

	if quietMode {
		fmt.Println(st.Completed)
		return nil
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success":       true,
			"subtask":       st,
			"notifications": published,
		})
	}

	state := "reopened"
	if st.Completed {
		state = "completed"
	}
	fmt.Printf("✓ '%s' %s\n", st.Title, state)
	for _, n := range published {
		fmt.Printf("  notified %s: %s\n", n.ForUser, n.Message)
	}
	return nil
}
