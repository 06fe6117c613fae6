package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/mgrundel/timelane/pkg/schedule"
)

// queryCommand creates the query command for listing schedules.
func (c *CLI) queryCommand() *cobra.Command {
	var (
		name      string
		start     string
		stop      string
		level     int
		exclusive bool
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "List schedules matching filters",
		Long: `List schedules, optionally narrowed by filters.

All filters combine with AND. The name filter matches substrings
case-insensitively; the time window keeps schedules whose range
overlaps [--start, --stop). Results are ordered by start time, then
level, then name.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts schedule.QueryOptions
			if cmd.Flags().Changed("name") {
				opts.Name = &name
			}
			if cmd.Flags().Changed("start") {
				t, err := parseTime(start)
				if err != nil {
					return err
				}
				opts.Start = &t
			}
			if cmd.Flags().Changed("stop") {
				t, err := parseTime(stop)
				if err != nil {
					return err
				}
				opts.Stop = &t
			}
			if cmd.Flags().Changed("level") {
				opts.Level = &level
			}
			if cmd.Flags().Changed("exclusive") {
				opts.Exclusive = &exclusive
			}

			return c.withManager(cmd.Context(), func(m *schedule.Manager) (bool, error) {
				results := m.Query(opts)
				if len(results) == 0 {
					printInfo("No schedules match")
					return false, nil
				}
				printScheduleTable(results)
				printNewline()
				printDetail("%d of %d schedules", len(results), m.Len())
				return false, nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "substring to match in the name")
	cmd.Flags().StringVar(&start, "start", "", "window start (inclusive)")
	cmd.Flags().StringVar(&stop, "stop", "", "window end (exclusive)")
	cmd.Flags().IntVar(&level, "level", 0, "exact level tier")
	cmd.Flags().BoolVar(&exclusive, "exclusive", false, "exclusivity flag to match")

	return cmd
}

// printScheduleTable renders schedules as a bordered table.
func printScheduleTable(schedules []schedule.Schedule) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, 0, len(schedules))
	for _, s := range schedules {
		flag := ""
		if s.Exclusive {
			flag = "excl"
		}
		rows = append(rows, []string{
			s.ID,
			s.Name,
			displayTime(s.Start),
			displayTime(s.End),
			strconv.Itoa(s.Level),
			flag,
			strconv.Itoa(len(s.Parents)),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Name", "Start", "End", "Level", "", "Parents").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 5 {
				return StyleWarning
			}
			return lipgloss.NewStyle()
		})

	fmt.Println(t.Render())
}
