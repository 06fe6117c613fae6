package layout

import (
	"github.com/mgrundel/timelane/pkg/errors"
)

// Mode selects the layout strategy. The strategies evolved separately in
// earlier versions of this system; they are unified here behind a single
// configuration switch so callers pick one instead of re-deriving them.
type Mode string

const (
	// ModeClusterAggregate assigns one fixed column per item, groups
	// mutually overlapping items into clusters, and flags oversized
	// clusters for collapsed rendering.
	ModeClusterAggregate Mode = "cluster"

	// ModeContinuousSegment slices each item's duration into segments at
	// every concurrency change, so rendered width can vary over time.
	ModeContinuousSegment Mode = "segment"

	// ModeFixedLaneCap packs items into at most MaxLanesPerLevel lanes
	// per level and spills the rest into an overflow listing.
	ModeFixedLaneCap Mode = "lanecap"
)

// Default configuration values.
const (
	// DefaultAggregateThreshold is the cluster size above which a cluster
	// is collapsed to a summary marker.
	DefaultAggregateThreshold = 5

	// DefaultMaxLanesPerLevel is the lane cap for ModeFixedLaneCap.
	DefaultMaxLanesPerLevel = 3
)

// DefaultMode is the strategy used when none is configured.
const DefaultMode = ModeClusterAggregate

// ValidModes is the set of supported layout modes.
var ValidModes = map[Mode]bool{
	ModeClusterAggregate:  true,
	ModeContinuousSegment: true,
	ModeFixedLaneCap:      true,
}

// Config controls layout computation. The zero value is usable: Validate
// fills in defaults.
type Config struct {
	// Mode selects the layout strategy.
	Mode Mode `json:"mode,omitempty"`

	// AggregateThreshold is the cluster member count above which the
	// cluster is marked aggregate (ModeClusterAggregate only).
	AggregateThreshold int `json:"aggregate_threshold,omitempty"`

	// MaxLanesPerLevel caps the number of lanes per level
	// (ModeFixedLaneCap only).
	MaxLanesPerLevel int `json:"max_lanes_per_level,omitempty"`

	// Priorities optionally assigns placement priorities by item id for
	// ModeFixedLaneCap. Items without an entry default to priority 0.
	Priorities map[string]int `json:"priorities,omitempty"`
}

// Validate checks the configuration and applies defaults. This method is
// idempotent.
func (c *Config) Validate() error {
	if c.Mode == "" {
		c.Mode = DefaultMode
	}
	if !ValidModes[c.Mode] {
		return errors.New(errors.ErrCodeInvalidMode,
			"invalid layout mode %q (must be one of: cluster, segment, lanecap)", c.Mode)
	}
	if c.AggregateThreshold == 0 {
		c.AggregateThreshold = DefaultAggregateThreshold
	}
	if c.AggregateThreshold < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "aggregate threshold must be positive")
	}
	if c.MaxLanesPerLevel == 0 {
		c.MaxLanesPerLevel = DefaultMaxLanesPerLevel
	}
	if c.MaxLanesPerLevel < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "lane cap must be positive")
	}
	return nil
}
