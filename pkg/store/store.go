// Package store persists schedule snapshots across process restarts.
//
// The repository itself is in-memory; a Store saves its captured state
// and loads it back on startup. Two backends are provided:
//
//   - file: a single JSON document on disk, suited to the CLI
//   - mongo: a MongoDB collection, suited to multi-instance servers
//
// Both backends persist the snapshot document whole and replace it on
// every save, so the stored state is always a consistent schedule set.
package store

import (
	"context"

	"github.com/mgrundel/timelane/pkg/schedule"
)

// Store loads and saves a complete schedule set.
type Store interface {
	// Load returns the persisted schedule set, or a fresh empty manager
	// if nothing has been saved yet.
	Load(ctx context.Context) (*schedule.Manager, error)

	// Save replaces the persisted state with the manager's current
	// state.
	Save(ctx context.Context, m *schedule.Manager) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
