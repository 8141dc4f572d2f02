package card

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/phaseboard/internal/cli/styles"
	"github.com/thenoetrevino/phaseboard/internal/metrics"
	"github.com/thenoetrevino/phaseboard/internal/types"
)

// MetricsCmd returns the card metrics subcommand
func MetricsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metrics <card-id>",
		Short: "Record performance numbers for a card",
		Long: `Record views, clicks, conversions, revenue and cost. Counters not given
keep the card's current values. The derived rates are
computed, the card is classified as WINNING or NEEDS_IMPROVEMENT against
the configured thresholds, and every assignee is notified.

Examples:
  phaseboard card metrics $CARD_ID --by=tm4 --views=1000 --clicks=50 --conversions=5 --revenue=500 --cost=200
`,
		Args: cobra.ExactArgs(1),
		RunE: runMetrics,
	}

	cmd.Flags().String("by", "", "Team member recording the numbers (required)")
	if err := cmd.MarkFlagRequired("by"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}

	cmd.Flags().Float64("views", 0, "Impressions")
	cmd.Flags().Float64("clicks", 0, "Clicks")
	cmd.Flags().Float64("conversions", 0, "Conversions")
	cmd.Flags().Float64("revenue", 0, "Revenue")
	cmd.Flags().Float64("cost", 0, "Ad spend")

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runMetrics(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := open(cmd)
	if err != nil {
		return err
	}
	defer closeCLI(cliInstance)

	by, _ := cmd.Flags().GetString("by")
	cardID := types.CardID(args[0])

	// Flags left unset keep the card's current counters
	current, _, err := cliInstance.App.Board.FindCard(cardID)
	if err != nil {
		return formatter.Fail(err, "Run 'phaseboard board show' to see card IDs")
	}
	base := metrics.BaseOf(current.Metrics)
	for name, field := range map[string]*float64{
		"views":       &base.Views,
		"clicks":      &base.Clicks,
		"conversions": &base.Conversions,
		"revenue":     &base.Revenue,
		"cost":        &base.Cost,
	} {
		if cmd.Flags().Changed(name) {
			*field, _ = cmd.Flags().GetFloat64(name)
		}
	}

	card, published, err := cliInstance.App.RecordMetrics(cardID, base, types.MemberID(by))
	if err != nil {
		suggestion := ""
		if errors.Is(err, metrics.ErrInvalidMetricsInput) {
			suggestion = "All inputs must be zero or greater"
		}
		return formatter.Fail(err, suggestion)
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

	m := card.Metrics
	fmt.Printf("✓ Metrics recorded for '%s': %s\n", card.Title, styles.RenderStatus(card.Status))
	fmt.Printf("  CTR %.2f%%  CVR %.2f%%  ROAS %.2f  EPC %.2f\n", m.CTR, m.ConversionRate, m.ROAS, m.EPC)
	return nil
}
