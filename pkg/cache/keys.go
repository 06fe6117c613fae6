package cache

// Keyer derives cache keys for the artifacts this system computes.
// Using one keyer everywhere guarantees that identical inputs hit the
// same entry regardless of which component asked.
type Keyer interface {
	// SnapshotKey identifies a serialized schedule set by content hash.
	SnapshotKey(stateHash string) string

	// LayoutKey identifies a computed layout for a schedule state and
	// layout options.
	LayoutKey(stateHash string, opts LayoutKeyOpts) string

	// RenderKey identifies a rendered artifact for a layout and output
	// options.
	RenderKey(layoutHash string, opts RenderKeyOpts) string
}

// LayoutKeyOpts are the layout options that affect the computed result.
type LayoutKeyOpts struct {
	Mode               string `json:"mode"`
	AggregateThreshold int    `json:"aggregate_threshold"`
	MaxLanesPerLevel   int    `json:"max_lanes_per_level"`
	// PrioritiesHash is a hash of the priority map, or empty when no
	// priorities are set.
	PrioritiesHash string `json:"priorities_hash,omitempty"`
}

// RenderKeyOpts are the render options that affect the output bytes.
type RenderKeyOpts struct {
	Format string `json:"format"`
}

// DefaultKeyer is the standard key derivation.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

func (k *DefaultKeyer) SnapshotKey(stateHash string) string {
	return "snapshot:" + stateHash
}

func (k *DefaultKeyer) LayoutKey(stateHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", stateHash, opts)
}

func (k *DefaultKeyer) RenderKey(layoutHash string, opts RenderKeyOpts) string {
	return hashKey("render", layoutHash, opts)
}
