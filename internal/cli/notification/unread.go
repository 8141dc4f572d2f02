package notification

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/phaseboard/internal/cli"
)

// UnreadCmd returns the notification unread subcommand
func UnreadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unread",
		Short: "Count a member's unread notifications",
		Long: `Print how many notifications the member has not read yet.

Examples:
  phaseboard notification unread --user=tm2
  UNREAD=$(phaseboard notification unread --user=tm2 --quiet)
`,
		RunE: runUnread,
	}

	addUserFlag(cmd)

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (count only)")

	return cmd
}

func runUnread(cmd *cobra.Command, args []string) error {
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

	member, err := resolveUser(cmd, cliInstance)
	if err != nil {
		return formatter.Fail(err, "See the team section of the pipeline file for member IDs")
	}

	count := cliInstance.App.Ledger.UnreadCountFor(member.ID)

	if quietMode {
		fmt.Println(count)
		return nil
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"user":    member.ID,
			"unread":  count,
		})
	}

	fmt.Printf("%s has %d unread notifications\n", member.Name, count)
	return nil
}
