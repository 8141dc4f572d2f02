package board

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/phaseboard/internal/cli"
	"github.com/thenoetrevino/phaseboard/internal/cli/styles"
	"github.com/thenoetrevino/phaseboard/internal/models"
)

// ShowCmd returns the board show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show every phase and its cards",
		Long: `Show the pipeline in phase order with the cards in each column.

Examples:
  # Whole board
  phaseboard board show

  # Only cards carrying every listed tag
  phaseboard board show --tags=hook,phase-2

  # JSON output for agents
  phaseboard board show --json

  # Quiet mode (one card ID per line)
  phaseboard board show --quiet
`,
		RunE: runShow,
	}

	cmd.Flags().String("tags", "", "Comma separated tag IDs; keep cards carrying all of them")

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (card IDs only)")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	tagsRaw, _ := cmd.Flags().GetString("tags")

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

	columns := cliInstance.App.Board.FilterByTags(cli.ParseIDList(tagsRaw))

	if quietMode {
		for _, col := range columns {
			for _, card := range col.Cards {
				fmt.Println(card.ID)
			}
		}
		return nil
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"columns": columns,
		})
	}

	for _, col := range columns {
		fmt.Printf("%s %s\n",
			styles.TitleStyle.Render(fmt.Sprintf("Phase %d: %s", col.Phase, col.Title)),
			styles.SubtitleStyle.Render(fmt.Sprintf("(%s, %d cards)", col.ID, len(col.Cards))))
		if len(col.Cards) == 0 {
			fmt.Println("  (empty)")
			continue
		}
		for _, card := range col.Cards {
			fmt.Printf("  • %s  %s  %s  %s\n",
				card.ID, card.Title, styles.RenderStatus(card.Status), progress(card))
		}
	}
	return nil
}

// progress renders "done/total" for a card's checklist
func progress(card *models.Card) string {
	done := 0
	for _, st := range card.Subtasks {
		if st.Completed {
			done++
		}
	}
	return styles.SubtitleStyle.Render(fmt.Sprintf("%d/%d subtasks", done, len(card.Subtasks)))
}
