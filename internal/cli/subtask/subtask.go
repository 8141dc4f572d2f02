package subtask

import (
	"github.com/spf13/cobra"
)

// SubtaskCmd returns the subtask parent command
func SubtaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subtask",
		Short: "Work through a card's phase checklist",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ToggleCmd())

	return cmd
}
