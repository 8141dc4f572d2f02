package board

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/phaseboard/internal/cli"
	"github.com/thenoetrevino/phaseboard/internal/cli/styles"
)

// StatsCmd returns the board stats subcommand
func StatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Per-phase progress counts",
		Long: `Show how many cards each phase holds, how many have finished their
checklist and how many are part way through, followed by what this
session has changed. Inside 'phaseboard shell' the session counters
accumulate across commands.

Examples:
  phaseboard board stats
  phaseboard board stats --json
`,
		RunE: runStats,
	}

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (column ID and count)")

	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
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

	stats := cliInstance.App.Board.Stats()
	activity := cliInstance.App.Activity()

	if quietMode {
		for _, st := range stats {
			fmt.Printf("%s %d\n", st.ColumnID, st.Count)
		}
		return nil
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success":  true,
			"stats":    stats,
			"activity": activity,
		})
	}

	fmt.Println(styles.SectionStyle.Render("Pipeline progress"))
	for _, st := range stats {
		fmt.Printf("  %d. %-16s %3d cards  %3d complete  %3d in progress\n",
			st.Phase, st.Title, st.Count, st.CompletedCount, st.InProgressCount)
	}
	fmt.Println(styles.SectionStyle.Render("This session"))
	fmt.Printf("  %d created  %d moved  %d subtasks toggled  %d metrics recorded  %d notifications (up %s)\n",
		activity.CardsCreated, activity.CardsMoved, activity.SubtasksToggled,
		activity.MetricsRecorded, activity.NotificationsPublished, activity.Uptime)
	return nil
}
