package cli

import (
	"github.com/spf13/cobra"

	"github.com/mgrundel/timelane/pkg/schedule"
)

// deleteCommand creates the delete command for removing schedules.
func (c *CLI) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a schedule",
		Long: `Delete a schedule by id.

Children of the deleted schedule are kept; only the links to them are
removed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withManager(cmd.Context(), func(m *schedule.Manager) (bool, error) {
				s, _ := m.Get(args[0])
				if err := m.Delete(args[0]); err != nil {
					return false, err
				}
				printSuccess("Deleted %s", args[0])
				if n := len(s.Children); n > 0 {
					printDetail("detached %d children", n)
				}
				return true, nil
			})
		},
	}
}
