package notification

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/phaseboard/internal/cli"
	"github.com/thenoetrevino/phaseboard/internal/types"
)

// ReadCmd returns the notification read subcommand
func ReadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read [notification-id...]",
		Short: "Mark notifications as read",
		Long: `Mark notifications as read, either by ID or all of a member's at once.
Unknown IDs are ignored.

Examples:
  phaseboard notification read 0f9c...
  phaseboard notification read --all --user=tm1
`,
		RunE: runRead,
	}

	cmd.Flags().Bool("all", false, "Mark every notification for --user as read")
	addUserFlag(cmd)

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (no output on success)")

	return cmd
}

func runRead(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	all, _ := cmd.Flags().GetBool("all")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	if all == (len(args) > 0) {
		return formatter.Usage("give notification IDs or --all, not both",
			"Usage: phaseboard notification read <id>... or --all --user=<member-id>")
	}

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

	ids := make([]types.NotificationID, 0, len(args))
	for _, a := range args {
		ids = append(ids, types.NotificationID(a))
	}
	if all {
		member, err := resolveUser(cmd, cliInstance)
		if err != nil {
			return formatter.Fail(err, "Pass --user with --all")
		}
		for _, n := range cliInstance.App.Ledger.NotificationsFor(member.ID) {
			if !n.Read {
				ids = append(ids, n.ID)
			}
		}
	}

	for _, id := range ids {
		cliInstance.App.Ledger.MarkRead(id)
	}

	if quietMode {
		return nil
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"marked":  ids,
		})
	}

	fmt.Printf("✓ Marked %d notifications as read\n", len(ids))
	return nil
}
