package card

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/phaseboard/internal/cli"
	boardservice "github.com/thenoetrevino/phaseboard/internal/services/board"
	"github.com/thenoetrevino/phaseboard/internal/types"
)

// UpdateCmd returns the card update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <card-id>",
		Short: "Update a card's text fields and assignees",
		Long: `Update a card in place. Only the flags given are changed.

Examples:
  phaseboard card update $CARD_ID --title="Product Demo Script v2"
  phaseboard card update $CARD_ID --assign=tm1,tm3 --campaign="Spring Launch"
`,
		Args: cobra.ExactArgs(1),
		RunE: runUpdate,
	}

	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("description", "", "New description")
	cmd.Flags().String("assign", "", "Replace assignees (comma separated member IDs)")
	cmd.Flags().String("campaign", "", "Campaign name")

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := open(cmd)
	if err != nil {
		return err
	}
	defer closeCLI(cliInstance)

	if !cmd.Flags().Changed("title") && !cmd.Flags().Changed("description") &&
		!cmd.Flags().Changed("assign") && !cmd.Flags().Changed("campaign") {
		return formatter.Usage("nothing to update",
			"Pass at least one of --title, --description, --assign, --campaign")
	}

	card, columnID, err := cliInstance.App.Board.FindCard(types.CardID(args[0]))
	if err != nil {
		return formatter.Fail(err, "Run 'phaseboard board show' to see card IDs")
	}

	if cmd.Flags().Changed("title") {
		title, _ := cmd.Flags().GetString("title")
		if strings.TrimSpace(title) == "" {
			return formatter.Fail(boardservice.ErrEmptyTitle, "")
		}
		card.Title = title
	}
	if cmd.Flags().Changed("description") {
		card.Description, _ = cmd.Flags().GetString("description")
	}
	if cmd.Flags().Changed("campaign") {
		card.CampaignName, _ = cmd.Flags().GetString("campaign")
	}
	if cmd.Flags().Changed("assign") {
		raw, _ := cmd.Flags().GetString("assign")
		card.AssignedTo, err = cli.ResolveMembers(cliInstance.App.Directory, raw)
		if err != nil {
			return formatter.Fail(err, "See the team section of the pipeline file for member IDs")
		}
	}

	if err := cliInstance.App.UpdateCard(columnID, card); err != nil {
		return formatter.Fail(err, "")
	}

	if formatter.Quiet || formatter.JSON {
		return formatter.Success(card)
	}

	fmt.Printf("✓ Card '%s' updated\n", card.ID)
	return nil
}
