package cli

import (
	"github.com/spf13/cobra"

	"github.com/mgrundel/timelane/pkg/schedule"
	"github.com/mgrundel/timelane/pkg/snapshot"
)

// snapshotCommand creates the snapshot command group.
func (c *CLI) snapshotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Export or import the full schedule set",
	}

	cmd.AddCommand(c.snapshotExportCommand())
	cmd.AddCommand(c.snapshotImportCommand())

	return cmd
}

// snapshotExportCommand creates the "snapshot export" subcommand.
func (c *CLI) snapshotExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Write the schedule set to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withManager(cmd.Context(), func(m *schedule.Manager) (bool, error) {
				if err := snapshot.Export(m, args[0]); err != nil {
					return false, err
				}
				printSuccess("Exported %d schedules", m.Len())
				printFile(args[0])
				return false, nil
			})
		},
	}
}

// snapshotImportCommand creates the "snapshot import" subcommand.
func (c *CLI) snapshotImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the schedule set with the contents of a JSON file",
		Long: `Replace the stored schedule set with the contents of a JSON file.

The snapshot is replayed through full validation before anything is
saved; if any schedule is rejected, the stored set stays untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			imported, err := snapshot.Import(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			st, err := c.openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			if err := st.Save(ctx, imported); err != nil {
				return err
			}
			printSuccess("Imported %d schedules", imported.Len())
			return nil
		},
	}
}
