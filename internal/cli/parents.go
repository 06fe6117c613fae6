package cli

import (
	"github.com/spf13/cobra"

	"github.com/mgrundel/timelane/pkg/schedule"
)

// parentsCommand creates the parents command for attaching parents to an
// existing schedule.
func (c *CLI) parentsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parents ID PARENT...",
		Short: "Attach parent schedules to an existing schedule",
		Long: `Attach one or more parents to an existing schedule.

Each new parent is validated the same way as at creation time: it must
exist, sit at a coarser level, and contain the child's time range.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withManager(cmd.Context(), func(m *schedule.Manager) (bool, error) {
				if err := m.AddParents(args[0], args[1:]); err != nil {
					return false, err
				}
				printSuccess("Attached %d parents to %s", len(args)-1, args[0])
				return true, nil
			})
		},
	}
}
