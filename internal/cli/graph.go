package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mgrundel/timelane/pkg/errors"
	"github.com/mgrundel/timelane/pkg/render"
	"github.com/mgrundel/timelane/pkg/schedule"
)

// graphCommand creates the graph command for rendering the hierarchy.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		format   string
		output   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Render the schedule hierarchy as DOT or SVG",
		Long: `Render the schedule hierarchy as a directed graph.

Schedules become nodes grouped by level and parent links become edges.
With --format dot the Graphviz source is emitted; with --format svg it
is rasterized first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withManager(cmd.Context(), func(m *schedule.Manager) (bool, error) {
				dot := render.ToDOT(m.All(), render.Options{Detailed: detailed})

				var data []byte
				switch format {
				case "dot":
					data = []byte(dot)
				case "svg":
					spinner := newSpinnerWithContext(cmd.Context(), "Rendering...")
					spinner.Start()
					svg, err := render.RenderSVG(dot)
					if err != nil {
						spinner.StopWithError("Render failed")
						return false, err
					}
					spinner.Stop()
					data = svg
				default:
					return false, errors.New(errors.ErrCodeInvalidInput,
						"unknown format %q (must be dot or svg)", format)
				}

				if output == "" {
					fmt.Print(string(data))
					return false, nil
				}
				if err := os.WriteFile(output, data, 0644); err != nil {
					return false, errors.Wrap(errors.ErrCodeInternal, err, "write output %s", output)
				}
				printSuccess("Rendered %d schedules", m.Len())
				printFile(output)
				return false, nil
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: dot, svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include time ranges and levels in labels")

	return cmd
}
