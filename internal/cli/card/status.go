package card

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/phaseboard/internal/cli"
	"github.com/thenoetrevino/phaseboard/internal/cli/styles"
	"github.com/thenoetrevino/phaseboard/internal/models"
	"github.com/thenoetrevino/phaseboard/internal/types"
)

// StatusCmd returns the card status subcommand
func StatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <card-id> <status>",
		Short: "Set a card's status by hand",
		Long: `Set a card's status without recording metrics.

Status values: in_progress, testing, winning, needs_improvement, complete

Examples:
  phaseboard card status $CARD_ID complete
`,
		Args: cobra.ExactArgs(2),
		RunE: runStatus,
	}

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runStatus(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := open(cmd)
	if err != nil {
		return err
	}
	defer closeCLI(cliInstance)

	status, err := models.ParseStatus(args[1])
	if err != nil {
		return formatter.Fail(err, cli.StatusList())
	}

	card, err := cliInstance.App.SetStatus(types.CardID(args[0]), status)
	if err != nil {
		return formatter.Fail(err, "Run 'phaseboard board show' to see card IDs")
	}

	if formatter.Quiet || formatter.JSON {
		return formatter.Success(card)
	}

	fmt.Printf("✓ Card '%s' is now %s\n", card.Title, styles.RenderStatus(card.Status))
	return nil
}
