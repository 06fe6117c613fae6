// Package config loads application configuration from a TOML file with
// environment overrides.
//
// The file lives at ~/.config/timelane/config.toml by default:
//
//	[layout]
//	mode = "cluster"
//	aggregate_threshold = 5
//	max_lanes_per_level = 3
//
//	[server]
//	addr = ":8423"
//
//	[store]
//	backend = "file"         # "file" or "mongo"
//	path = ""                # file backend, default ~/.config/timelane/schedules.json
//	mongo_uri = ""           # mongo backend
//	mongo_database = ""
//	mongo_collection = ""
//
//	[cache]
//	backend = "file"         # "none", "file" or "redis"
//	dir = ""                 # file backend, default ~/.cache/timelane
//	redis_addr = ""          # redis backend
//	redis_password = ""
//	redis_db = 0
//
// Every field has a working default; a missing file yields the default
// configuration. The TIMELANE_CONFIG environment variable overrides the
// file location; TIMELANE_MONGO_URI and TIMELANE_REDIS_PASSWORD override
// the corresponding secrets.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/mgrundel/timelane/pkg/errors"
	"github.com/mgrundel/timelane/pkg/layout"
)

// EnvConfigPath names the environment variable overriding the config
// file location.
const EnvConfigPath = "TIMELANE_CONFIG"

// Environment overrides for secrets, so they never have to live in the
// config file.
const (
	EnvMongoURI      = "TIMELANE_MONGO_URI"
	EnvRedisPassword = "TIMELANE_REDIS_PASSWORD"
)

// DefaultServerAddr is the address the HTTP server binds when none is
// configured.
const DefaultServerAddr = ":8423"

// Backend names for the store and cache sections.
const (
	StoreFile  = "file"
	StoreMongo = "mongo"

	CacheNone  = "none"
	CacheFile  = "file"
	CacheRedis = "redis"
)

// Config is the full application configuration.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Server ServerConfig `toml:"server"`
	Store  StoreConfig  `toml:"store"`
	Cache  CacheConfig  `toml:"cache"`
}

// LayoutConfig selects the default layout strategy and its tuning.
type LayoutConfig struct {
	Mode               string `toml:"mode"`
	AggregateThreshold int    `toml:"aggregate_threshold"`
	MaxLanesPerLevel   int    `toml:"max_lanes_per_level"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// StoreConfig selects and configures the persistence backend.
type StoreConfig struct {
	Backend         string `toml:"backend"`
	Path            string `toml:"path"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Layout: LayoutConfig{
			Mode:               string(layout.DefaultMode),
			AggregateThreshold: layout.DefaultAggregateThreshold,
			MaxLanesPerLevel:   layout.DefaultMaxLanesPerLevel,
		},
		Server: ServerConfig{Addr: DefaultServerAddr},
		Store:  StoreConfig{Backend: StoreFile},
		Cache:  CacheConfig{Backend: CacheFile},
	}
}

// DefaultPath returns the default config file location,
// ~/.config/timelane/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "get home dir")
	}
	return filepath.Join(home, ".config", "timelane", "config.toml"), nil
}

// Load reads the configuration from path. An empty path uses
// TIMELANE_CONFIG, falling back to [DefaultPath]. A missing file is not
// an error; defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}

	if uri := os.Getenv(EnvMongoURI); uri != "" {
		cfg.Store.MongoURI = uri
	}
	if pw := os.Getenv(EnvRedisPassword); pw != "" {
		cfg.Cache.RedisPassword = pw
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints that TOML decoding cannot.
func (c *Config) Validate() error {
	lc := layout.Config{
		Mode:               layout.Mode(c.Layout.Mode),
		AggregateThreshold: c.Layout.AggregateThreshold,
		MaxLanesPerLevel:   c.Layout.MaxLanesPerLevel,
	}
	if err := lc.Validate(); err != nil {
		return err
	}

	switch c.Store.Backend {
	case StoreFile, StoreMongo:
	default:
		return errors.New(errors.ErrCodeInvalidInput,
			"unknown store backend %q (must be file or mongo)", c.Store.Backend)
	}
	if c.Store.Backend == StoreMongo && c.Store.MongoURI == "" {
		return errors.New(errors.ErrCodeInvalidInput, "store.mongo_uri is required for the mongo backend")
	}

	switch c.Cache.Backend {
	case CacheNone, CacheFile, CacheRedis:
	default:
		return errors.New(errors.ErrCodeInvalidInput,
			"unknown cache backend %q (must be none, file or redis)", c.Cache.Backend)
	}
	if c.Cache.Backend == CacheRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "cache.redis_addr is required for the redis backend")
	}

	return nil
}

// LayoutOptions converts the layout section into engine options.
func (c *Config) LayoutOptions() layout.Config {
	return layout.Config{
		Mode:               layout.Mode(c.Layout.Mode),
		AggregateThreshold: c.Layout.AggregateThreshold,
		MaxLanesPerLevel:   c.Layout.MaxLanesPerLevel,
	}
}
