package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// Server deployments sharing one Redis instance give each workspace its
// own prefix so their entries never collide.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "workspace:abc123:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// SnapshotKey generates a prefixed key for schedule set snapshots.
func (k *ScopedKeyer) SnapshotKey(stateHash string) string {
	return k.prefix + k.inner.SnapshotKey(stateHash)
}

// LayoutKey generates a prefixed key for computed layouts.
func (k *ScopedKeyer) LayoutKey(stateHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(stateHash, opts)
}

// RenderKey generates a prefixed key for rendered artifacts.
func (k *ScopedKeyer) RenderKey(layoutHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(layoutHash, opts)
}
