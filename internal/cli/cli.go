// Package cli implements the timelane command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mgrundel/timelane/pkg/buildinfo"
	"github.com/mgrundel/timelane/pkg/cache"
	"github.com/mgrundel/timelane/pkg/config"
	"github.com/mgrundel/timelane/pkg/schedule"
	"github.com/mgrundel/timelane/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "timelane"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath overrides the config file location (--config).
	ConfigPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "timelane",
		Short:        "Timelane validates and lays out hierarchical schedules",
		Long:         `Timelane manages schedules across coarse-to-fine level tiers, rejects conflicting time ranges up front, and computes render-ready layouts for the ranges that remain.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default ~/.config/timelane/config.toml)")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}

	// Register all subcommands
	root.AddCommand(c.createCommand())
	root.AddCommand(c.getCommand())
	root.AddCommand(c.deleteCommand())
	root.AddCommand(c.queryCommand())
	root.AddCommand(c.parentsCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.snapshotCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Shared Setup
// =============================================================================

// loadConfig reads the configuration honoring the --config flag.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.ConfigPath)
}

// openStore builds the persistence backend selected by cfg.
func (c *CLI) openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case config.StoreMongo:
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:        cfg.Store.MongoURI,
			Database:   cfg.Store.MongoDatabase,
			Collection: cfg.Store.MongoCollection,
		})
	default:
		return store.NewFileStore(cfg.Store.Path)
	}
}

// withManager loads the schedule set, runs fn, and saves the set back
// when fn reports a mutation.
func (c *CLI) withManager(ctx context.Context, fn func(m *schedule.Manager) (mutated bool, err error)) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
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
	c.Logger.Debug("loaded schedules", "count", m.Len())

	mutated, err := fn(m)
	if err != nil {
		return err
	}
	if mutated {
		return st.Save(ctx, m)
	}
	return nil
}

// newCache builds the cache backend selected by cfg.
func (c *CLI) newCache(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache || cfg.Cache.Backend == config.CacheNone {
		return cache.NewNullCache(), nil
	}
	if cfg.Cache.Backend == config.CacheRedis {
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
	}
	dir := cfg.Cache.Dir
	if dir == "" {
		var err error
		dir, err = cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// resolveCacheDir returns the configured cache directory, falling back
// to the XDG default.
func (c *CLI) resolveCacheDir() (string, error) {
	cfg, err := c.loadConfig()
	if err == nil && cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/timelane/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
