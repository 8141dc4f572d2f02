package card

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/phaseboard/internal/cli"
	"github.com/thenoetrevino/phaseboard/internal/models"
	boardservice "github.com/thenoetrevino/phaseboard/internal/services/board"
	"github.com/thenoetrevino/phaseboard/internal/types"
)

// CreateCmd returns the card create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new card",
		Long: `Create a card in a phase. The phase checklist is instantiated for the
assignees unless --no-checklist is given.

Examples:
  # Create a script variant
  phaseboard card create --title="Testimonial Script" --column=script-testing --assign=tm1,tm2

  # Part of a variant group
  phaseboard card create --title="Hook B" --column=hook-testing --variant=HK-2 --tags=hook,phase-2

  # Quiet mode for bash capture
  CARD_ID=$(phaseboard card create --title="Hook C" --column=hook-testing --quiet)
`,
		RunE: runCreate,
	}

	// Required flags
	cmd.Flags().String("title", "", "Card title (required)")
	if err := cmd.MarkFlagRequired("title"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}

	cmd.Flags().String("column", "", "Column ID (required)")
	if err := cmd.MarkFlagRequired("column"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}

	// Optional flags
	cmd.Flags().String("description", "", "Card description")
	cmd.Flags().String("status", "", "Initial status (default in_progress)")
	cmd.Flags().String("assign", "", "Comma separated team member IDs")
	cmd.Flags().String("tags", "", "Comma separated tag IDs from the pipeline catalog")
	cmd.Flags().String("variant", "", "Variant group ID")
	cmd.Flags().String("campaign", "", "Campaign name")
	cmd.Flags().Bool("no-checklist", false, "Create without the phase checklist")

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := open(cmd)
	if err != nil {
		return err
	}
	defer closeCLI(cliInstance)

	title, _ := cmd.Flags().GetString("title")
	columnID, _ := cmd.Flags().GetString("column")
	description, _ := cmd.Flags().GetString("description")
	statusRaw, _ := cmd.Flags().GetString("status")
	assignRaw, _ := cmd.Flags().GetString("assign")
	tagsRaw, _ := cmd.Flags().GetString("tags")
	variant, _ := cmd.Flags().GetString("variant")
	campaign, _ := cmd.Flags().GetString("campaign")
	noChecklist, _ := cmd.Flags().GetBool("no-checklist")

	draft := boardservice.CardDraft{
		Title:        title,
		Description:  description,
		UseTemplates: !noChecklist,
		VariantID:    variant,
		CampaignName: campaign,
	}

	if statusRaw != "" {
		status, err := models.ParseStatus(statusRaw)
		if err != nil {
			return formatter.Fail(err, cli.StatusList())
		}
		draft.Status = status
	}

	draft.AssignedTo, err = cli.ResolveMembers(cliInstance.App.Directory, assignRaw)
	if err != nil {
		return formatter.Fail(err, "See the team section of the pipeline file for member IDs")
	}

	for _, id := range cli.ParseIDList(tagsRaw) {
		tag, ok := cliInstance.App.Pipeline.Tag(id)
		if !ok {
			return formatter.Usage(fmt.Sprintf("unknown tag '%s'", id), "Use a tag ID from the pipeline catalog")
		}
		draft.Tags = append(draft.Tags, tag)
	}
	if variant != "" {
		draft.Tags = append(draft.Tags, models.VariantTag(variant))
	}

	card, err := cliInstance.App.CreateCard(types.ColumnID(columnID), draft)
	if err != nil {
		return formatter.Fail(err, "")
	}

	if formatter.Quiet || formatter.JSON {
		return formatter.Success(card)
	}

	fmt.Printf("✓ Card '%s' created in %s (ID: %s)\n", card.Title, columnID, card.ID)
	if len(card.Subtasks) > 0 {
		fmt.Printf("  %d checklist items\n", len(card.Subtasks))
	}
	return nil
}
