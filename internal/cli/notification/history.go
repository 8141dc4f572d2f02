package notification

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/phaseboard/internal/cli"
)

// HistoryCmd returns the notification history subcommand
func HistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Read a member's notifications back from the persistent log",
		Long: `Read notifications from the sqlite or redis log configured under
notifications.log. Unlike 'list', this survives across runs and is not
capped by the ledger capacity.

Examples:
  phaseboard notification history --user=tm1 --limit=20
`,
		RunE: runHistory,
	}

	addUserFlag(cmd)
	cmd.Flags().Int("limit", 50, "Maximum entries (0 = all)")

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only)")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	limit, _ := cmd.Flags().GetInt("limit")

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

	member, err := resolveUser(cmd, cliInstance)
	if err != nil {
		return formatter.Fail(err, "See the team section of the pipeline file for member IDs")
	}

	list, err := cliInstance.NotificationHistory(member.ID, limit)
	if err != nil {
		return formatter.Fail(err, "Set notifications.log.driver in the config file")
	}

	if quietMode {
		for _, n := range list {
			fmt.Println(n.ID)
		}
		return nil
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success":       true,
			"user":          member.ID,
			"notifications": list,
		})
	}

	if len(list) == 0 {
		fmt.Printf("No logged notifications for %s\n", member.Name)
		return nil
	}
	fmt.Printf("Logged notifications for %s:\n", member.Name)
	printNotifications(list)
	return nil
}
