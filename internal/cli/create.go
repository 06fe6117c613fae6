package cli

import (
	"github.com/spf13/cobra"

	"github.com/mgrundel/timelane/pkg/schedule"
)

// createCommand creates the create command for adding schedules.
func (c *CLI) createCommand() *cobra.Command {
	var (
		id        string
		start     string
		end       string
		level     int
		exclusive bool
		parents   []string
	)

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a schedule",
		Long: `Create a schedule with a name, a half-open time range and a level.

The schedule is validated against the stored set before it is added:
its range must lie inside every declared parent, its level must be
finer than each parent's, and it must not collide with exclusive
schedules. The first violated rule is reported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			startT, err := parseTime(start)
			if err != nil {
				return err
			}
			endT, err := parseTime(end)
			if err != nil {
				return err
			}

			payload := schedule.Payload{
				Name:      args[0],
				Start:     startT,
				End:       endT,
				Level:     level,
				Exclusive: exclusive,
				Parents:   parents,
			}

			return c.withManager(cmd.Context(), func(m *schedule.Manager) (bool, error) {
				createdID := id
				if id != "" {
					if err := m.CreateWithID(id, payload); err != nil {
						return false, err
					}
				} else {
					createdID, err = m.Create(payload)
					if err != nil {
						return false, err
					}
				}
				printSuccess("Created %s", args[0])
				printDetail("id: %s", createdID)
				return true, nil
			})
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "start of the time range (inclusive)")
	cmd.Flags().StringVar(&end, "end", "", "end of the time range (exclusive)")
	cmd.Flags().IntVar(&level, "level", 0, "level tier (0 is coarsest)")
	cmd.Flags().BoolVar(&exclusive, "exclusive", false, "claim the range exclusively")
	cmd.Flags().StringSliceVar(&parents, "parent", nil, "parent schedule id (repeatable)")
	cmd.Flags().StringVar(&id, "id", "", "explicit schedule id (generated when omitted)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}
