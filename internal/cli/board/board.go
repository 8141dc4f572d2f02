package board

import (
	"github.com/spf13/cobra"
)

// BoardCmd returns the board parent command
func BoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Inspect the phase pipeline",
	}

	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(StatsCmd())
	cmd.AddCommand(NextCmd())

	return cmd
}
