package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mgrundel/timelane/pkg/schedule"
)

// browseCommand creates the browse command for the interactive TUI.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the stored schedules interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withManager(cmd.Context(), func(m *schedule.Manager) (bool, error) {
				model := NewScheduleListModel(m.All())
				p := tea.NewProgram(model)
				if _, err := p.Run(); err != nil {
					return false, err
				}
				return false, nil
			})
		},
	}
}
