package notification

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/phaseboard/internal/cli"
	"github.com/thenoetrevino/phaseboard/internal/models"
	"github.com/thenoetrevino/phaseboard/internal/types"
	"github.com/thenoetrevino/phaseboard/internal/user"
)

// NotificationCmd returns the notification parent command
func NotificationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notification",
		Aliases: []string{"notifications"},
		Short:   "Read a team member's notifications",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(UnreadCmd())
	cmd.AddCommand(ReadCmd())
	cmd.AddCommand(ClearCmd())
	cmd.AddCommand(HistoryCmd())
	cmd.AddCommand(WatchCmd())

	return cmd
}

// addUserFlag registers --user
func addUserFlag(cmd *cobra.Command) {
	cmd.Flags().String("user", "", "Team member ID (default: $"+user.EnvVar+" or your login name)")
}

// resolveUser validates --user against the team directory, falling
// back to user.DefaultMemberID when the flag is empty
func resolveUser(cmd *cobra.Command, cliInstance *cli.CLI) (*models.TeamMember, error) {
	raw, _ := cmd.Flags().GetString("user")
	if raw == "" {
		raw = user.DefaultMemberID()
	}
	return cliInstance.App.Directory.Lookup(types.MemberID(raw))
}

func printNotifications(list []models.Notification) {
	for _, n := range list {
		marker := "●"
		if n.Read {
			marker = " "
		}
		fmt.Printf("%s %s  %-17s %s  (%s)\n",
			marker, n.CreatedAt.Format(time.DateTime), n.Type, n.Message, n.ID)
	}
}
