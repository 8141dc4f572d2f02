package notification

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/phaseboard/internal/cli"
)

// ClearCmd returns the notification clear subcommand
func ClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Drop every notification held for a member",
		Long: `Remove a member's notifications from the in-memory ledger. The persistent
log, if enabled, keeps them.

Examples:
  phaseboard notification clear --user=tm1
`,
		RunE: runClear,
	}

	addUserFlag(cmd)

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (count only)")

	return cmd
}

func runClear(cmd *cobra.Command, args []string) error {
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

	removed := cliInstance.App.Ledger.ClearFor(member.ID)

	if quietMode {
		fmt.Println(removed)
		return nil
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"user":    member.ID,
			"removed": removed,
		})
	}

	fmt.Printf("✓ Cleared %d notifications for %s\n", removed, member.Name)
	return nil
}
