package notification

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/phaseboard/internal/cli"
	"github.com/thenoetrevino/phaseboard/internal/models"
)

// ListCmd returns the notification list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a member's notifications, newest first",
		Long: `List the notifications held for a team member.

Examples:
  phaseboard notification list --user=tm1
  phaseboard notification list --user=tm1 --unread --json
`,
		RunE: runList,
	}

	addUserFlag(cmd)
	cmd.Flags().Bool("unread", false, "Only unread notifications")

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	unreadOnly, _ := cmd.Flags().GetBool("unread")

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

	list := cliInstance.App.Ledger.NotificationsFor(member.ID)
	if unreadOnly {
		unread := make([]models.Notification, 0, len(list))
		for _, n := range list {
			if !n.Read {
				unread = append(unread, n)
			}
		}
		list = unread
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
		fmt.Printf("No notifications for %s\n", member.Name)
		return nil
	}
	fmt.Printf("Notifications for %s:\n", member.Name)
	printNotifications(list)
	return nil
}
