package cli

import (
	"github.com/spf13/cobra"

	"github.com/mgrundel/timelane/internal/server"
	"github.com/mgrundel/timelane/pkg/config"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the HTTP API server.

The server exposes the schedule set over a JSON API: CRUD under
/api/schedules, layouts under /api/layout, and DOT or SVG renders
under /api/render. Mutations are persisted to the configured store.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			st, err := c.openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			m, err := st.Load(ctx)
			if err != nil {
				return err
			}

			sc, err := c.newCache(ctx, cfg, noCache)
			if err != nil {
				return err
			}
			defer sc.Close()

			srv := server.New(server.Options{
				Manager: m,
				Store:   st,
				Cache:   sc,
				Config:  cfg,
				Logger:  c.Logger,
			})

			c.Logger.Info("starting server", "addr", cfg.Server.Addr, "schedules", m.Len())
			return srv.Run(ctx, cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, "+config.DefaultServerAddr+")")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable response caching")

	return cmd
}
