package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgrundel/timelane/pkg/errors"
	"github.com/mgrundel/timelane/pkg/schedule"
)

// getCommand creates the get command for inspecting one schedule.
func (c *CLI) getCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show a schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withManager(cmd.Context(), func(m *schedule.Manager) (bool, error) {
				s, ok := m.Get(args[0])
				if !ok {
					return false, errors.New(errors.ErrCodeScheduleNotFound, "no schedule with id %s", args[0])
				}
				printSchedule(s)
				return false, nil
			})
		},
	}
}

func printSchedule(s schedule.Schedule) {
	printKeyValue("id", s.ID)
	printKeyValue("name", s.Name)
	printKeyValue("start", displayTime(s.Start))
	printKeyValue("end", displayTime(s.End))
	printKeyValue("level", strconv.Itoa(s.Level))
	printKeyValue("exclusive", strconv.FormatBool(s.Exclusive))
	if len(s.Parents) > 0 {
		printKeyValue("parents", strings.Join(s.Parents, ", "))
	}
	if len(s.Children) > 0 {
		printKeyValue("children", strings.Join(s.Children, ", "))
	}
}
