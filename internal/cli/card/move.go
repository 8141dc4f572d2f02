package card

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/phaseboard/internal/models"
	"github.com/thenoetrevino/phaseboard/internal/types"
)

// MoveCmd returns the card move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <card-id> <column-id>",
		Short: "Move a card to another phase",
		Long: `Move a card to another column. The card takes the destination's phase
number, gets a fresh checklist for that phase and every assignee is notified.

Examples:
  phaseboard card move $CARD_ID hook-testing
  phaseboard card move $CARD_ID hook-testing --from=script-testing --json
`,
		Args: cobra.ExactArgs(2),
		RunE: runMove,
	}

	cmd.Flags().String("from", "", "Source column ID (default: wherever the card is)")

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := open(cmd)
	if err != nil {
		return err
	}
	defer closeCLI(cliInstance)

	cardID := types.CardID(args[0])
	destID := types.ColumnID(args[1])
	from, _ := cmd.Flags().GetString("from")

	var (
		card      *models.Card
		published []models.Notification
	)
	if from != "" {
		card, published, err = cliInstance.App.MoveCard(cardID, types.ColumnID(from), destID)
	} else {
		card, published, err = cliInstance.App.MoveCardTo(cardID, destID)
	}
	if err != nil {
		return formatter.Fail(err, "Run 'phaseboard board show' to see card and column IDs")
	}

	if formatter.Quiet {
		return formatter.Success(card)
	}

	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success":       true,
			"card":          card,
			"notifications": published,
		})
	}

	fmt.Printf("✓ Card '%s' moved to %s (phase %d)\n", card.Title, destID, card.Phase.Current)
	for _, n := range published {
		fmt.Printf("  notified %s\n", n.ForUser)
	}
	return nil
}
