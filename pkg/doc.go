// Package pkg provides the core libraries for Timelane schedule management.
//
// # Overview
//
// Timelane validates hierarchical schedules and computes render-ready
// layouts for them. Schedules live on level tiers, where level 0 is the
// coarsest; every parent link points to a strictly coarser level and
// every time range must fit inside its parents. The pkg directory is
// organized into four main areas:
//
//  1. [schedule] - Domain logic (validation, hierarchy, queries)
//  2. [layout] - Layout strategies (cluster, segment, lanecap)
//  3. [snapshot], [store], [cache] - Persistence and caching
//  4. [render] - Graphviz hierarchy rendering
//
// # Architecture
//
// The typical data flow through Timelane:
//
//	Create/Import requests
//	         ↓
//	    [schedule] package (validate + link)
//	         ↓
//	    [layout] package (per-level placement)
//	         ↓
//	    [render] package (DOT / SVG)
//	         ↓
//	    JSON/DOT/SVG output
//
// # Quick Start
//
// Create schedules and compute a layout:
//
//	import (
//	    "github.com/mgrundel/timelane/pkg/layout"
//	    "github.com/mgrundel/timelane/pkg/schedule"
//	)
//
//	// 1. Build the schedule set
//	m := schedule.NewManager()
//	id, _ := m.Create(schedule.Payload{
//	    Name:  "semester",
//	    Start: start,
//	    End:   end,
//	    Level: 0,
//	})
//
//	// 2. Compute a layout
//	cfg := layout.Config{Mode: layout.ModeCluster}
//	l, _ := layout.Compute(layout.FromSchedules(m.All()), cfg)
//
// # Main Packages
//
// ## Core Domain Logic
//
// [schedule] - Schedule validation and hierarchy management. Creation is
// fail-fast: structural checks, parent checks, then overlap checks, with
// the first violation reported. Deleting a schedule detaches its links
// and never cascades.
//
// [layout] - Per-level placement strategies. Cluster assigns fixed
// columns inside overlap clusters, segment slices time by concurrency,
// lanecap packs a bounded number of lanes and reports the overflow.
//
// [render] - Graphviz output. Levels become rank groups and parent
// links become edges; SVG rendering goes through goccy/go-graphviz.
//
// ## Infrastructure
//
// [snapshot] - Versioned JSON documents of the full schedule set, with
// deterministic output and validated replay on import.
//
// [store] - Persistence backends: FileStore for the CLI (atomic file
// replace) and MongoStore for server deployments.
//
// [cache] - Layout and render caching with file, Redis, and null
// backends, keyed by a hash of the schedule state and layout options.
//
// [config] - TOML configuration shared by the CLI and the server.
//
// [errors] - Coded errors that map to HTTP statuses and user messages.
//
// [observability] - Pluggable hooks for repository, layout, cache, and
// server events.
package pkg
