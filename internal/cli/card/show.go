package card

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/phaseboard/internal/cli/styles"
	"github.com/thenoetrevino/phaseboard/internal/models"
	"github.com/thenoetrevino/phaseboard/internal/types"
)

// ShowCmd returns the card show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <card-id>",
		Short: "Show card details",
		Long:  "Display a card with its phase, assignees, tags, checklist and latest metrics.",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := open(cmd)
	if err != nil {
		return err
	}
	defer closeCLI(cliInstance)

	card, columnID, err := cliInstance.App.Board.FindCard(types.CardID(args[0]))
	if err != nil {
		return formatter.Fail(err, "Run 'phaseboard board show' to see card IDs")
	}

	if formatter.Quiet || formatter.JSON {
		return formatter.Success(card)
	}

	fmt.Println(styles.RenderCard(renderCard(card, columnID)))
	return nil
}

func renderCard(card *models.Card, columnID types.ColumnID) string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(card.Title))
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render(card.ID.String()))
	b.WriteString("\n\n")

	field := func(label, value string) {
		b.WriteString(styles.LabelStyle.Render(label+":") + " " + styles.ValueStyle.Render(value) + "\n")
	}
	b.WriteString(styles.LabelStyle.Render("Status:") + " " + styles.RenderStatus(card.Status) + "\n")
	field("Phase", fmt.Sprintf("%d (%s, since %s)", card.Phase.Current, columnID, card.Phase.StartedAt.Format("2006-01-02 15:04")))
	if card.VariantID != "" {
		field("Variant", card.VariantID)
	}
	if card.CampaignName != "" {
		field("Campaign", card.CampaignName)
	}

	names := make([]string, 0, len(card.AssignedTo))
	for _, m := range card.AssignedTo {
		if m != nil {
			names = append(names, m.Name)
		}
	}
	if len(names) > 0 {
		field("Assigned", strings.Join(names, ", "))
	}

	if len(card.Tags) > 0 {
		chips := make([]string, len(card.Tags))
		for i, t := range card.Tags {
			chips[i] = styles.RenderTagChip(t)
		}
		b.WriteString(styles.LabelStyle.Render("Tags:") + " " + strings.Join(chips, " ") + "\n")
	}

	if card.Description != "" {
		b.WriteString(styles.SectionStyle.Render("Description"))
		b.WriteString("\n" + card.Description + "\n")
	}

	if len(card.Subtasks) > 0 {
		b.WriteString(styles.SectionStyle.Render("Subtasks"))
		b.WriteString("\n")
		for _, st := range card.Subtasks {
			b.WriteString(styles.RenderSubtask(st) + " " + styles.SubtitleStyle.Render(st.ID.String()) + "\n")
		}
	}

	if m := card.Metrics; m != nil {
		b.WriteString(styles.SectionStyle.Render("Metrics"))
		b.WriteString("\n")
		fmt.Fprintf(&b, "CTR %.2f%%  CVR %.2f%%  ROAS %.2f  EPC %.2f\n", m.CTR, m.ConversionRate, m.ROAS, m.EPC)
		fmt.Fprintf(&b, "%.0f views, %.0f clicks, %.0f conversions, %.2f revenue, %.2f cost\n",
			m.Views, m.Clicks, m.Conversions, m.Revenue, m.Cost)
		if m.UpdatedBy != nil {
			b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("updated by %s at %s", m.UpdatedBy.Name, m.UpdatedAt.Format("2006-01-02 15:04"))))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
