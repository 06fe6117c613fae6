package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mgrundel/timelane/pkg/cache"
	"github.com/mgrundel/timelane/pkg/errors"
	"github.com/mgrundel/timelane/pkg/layout"
	"github.com/mgrundel/timelane/pkg/schedule"
	"github.com/mgrundel/timelane/pkg/snapshot"
)

// layoutCommand creates the layout command for computing schedule layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		mode      string
		threshold int
		maxLanes  int
		output    string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute a renderable layout of the stored schedules",
		Long: `Compute a renderable layout of the stored schedules.

Each level is laid out independently with the selected strategy:

  cluster  fixed columns inside overlap clusters (default)
  segment  time-sliced widths that follow concurrency
  lanecap  a fixed number of lanes with an overflow listing

The result is written as JSON to --output, or stdout when omitted.
Results are cached locally for faster subsequent runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			lcfg := cfg.LayoutOptions()
			if cmd.Flags().Changed("mode") {
				lcfg.Mode = layout.Mode(mode)
			}
			if cmd.Flags().Changed("aggregate-threshold") {
				lcfg.AggregateThreshold = threshold
			}
			if cmd.Flags().Changed("max-lanes") {
				lcfg.MaxLanesPerLevel = maxLanes
			}
			if err := lcfg.Validate(); err != nil {
				return err
			}

			ctx := cmd.Context()
			lc, err := c.newCache(ctx, cfg, noCache)
			if err != nil {
				return err
			}
			defer lc.Close()

			return c.withManager(ctx, func(m *schedule.Manager) (bool, error) {
				key := cache.NewDefaultKeyer().LayoutKey(snapshot.StateHash(m), cache.LayoutKeyOpts{
					Mode:               string(lcfg.Mode),
					AggregateThreshold: lcfg.AggregateThreshold,
					MaxLanesPerLevel:   lcfg.MaxLanesPerLevel,
				})

				var levelCount int
				data, hit, err := lc.Get(ctx, key)
				if err != nil || !hit {
					prog := newProgress(loggerFromContext(ctx))
					spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", lcfg.Mode))
					spinner.Start()

					result, err := layout.Compute(layout.FromSchedules(m.All()), lcfg)
					if err != nil {
						spinner.StopWithError("Layout failed")
						return false, err
					}
					spinner.Stop()
					prog.done("layout computed")
					levelCount = len(result.Levels)

					data, err = json.MarshalIndent(result, "", "  ")
					if err != nil {
						return false, errors.Wrap(errors.ErrCodeInternal, err, "encode layout")
					}
					data = append(data, '\n')
					_ = lc.Set(ctx, key, data, cache.DefaultTTL)
				}

				if output == "" {
					fmt.Print(string(data))
					return false, nil
				}
				if err := os.WriteFile(output, data, 0644); err != nil {
					return false, errors.Wrap(errors.ErrCodeInternal, err, "write output %s", output)
				}
				printSuccess("Layout complete")
				printFile(output)
				printStats(m.Len(), levelCount, hit)
				return false, nil
			})
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "", "layout strategy: cluster (default), segment, lanecap")
	cmd.Flags().IntVar(&threshold, "aggregate-threshold", 0, "cluster size that triggers aggregation")
	cmd.Flags().IntVar(&maxLanes, "max-lanes", 0, "lane cap per level (lanecap)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
