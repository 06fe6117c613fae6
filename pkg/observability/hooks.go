// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about repository changes, layout computation, cache
// operations, and served HTTP requests.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRepositoryHooks(&myRepoHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Layout().OnLayoutStart(ctx, mode, itemCount)
//	// ... compute ...
//	observability.Layout().OnLayoutComplete(ctx, mode, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Repository Hooks
// =============================================================================

// RepositoryHooks receives events from schedule repository mutations.
type RepositoryHooks interface {
	// OnCreate records a successful schedule creation.
	OnCreate(ctx context.Context, id string, level int)

	// OnCreateRejected records a creation refused by validation.
	OnCreateRejected(ctx context.Context, reason string)

	// OnDelete records a schedule deletion.
	OnDelete(ctx context.Context, id string, detachedChildren int)
}

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from layout computation.
type LayoutHooks interface {
	// OnLayoutStart records the beginning of a layout computation.
	OnLayoutStart(ctx context.Context, mode string, itemCount int)

	// OnLayoutComplete records a finished layout computation.
	OnLayoutComplete(ctx context.Context, mode string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// Server Hooks
// =============================================================================

// ServerHooks receives events from served HTTP requests.
type ServerHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records a completed request.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopRepositoryHooks is a no-op implementation of RepositoryHooks.
type NoopRepositoryHooks struct{}

func (NoopRepositoryHooks) OnCreate(context.Context, string, int)    {}
func (NoopRepositoryHooks) OnCreateRejected(context.Context, string) {}
func (NoopRepositoryHooks) OnDelete(context.Context, string, int)    {}

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnLayoutStart(context.Context, string, int)                     {}
func (NoopLayoutHooks) OnLayoutComplete(context.Context, string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopServerHooks is a no-op implementation of ServerHooks.
type NoopServerHooks struct{}

func (NoopServerHooks) OnRequest(context.Context, string, string)                      {}
func (NoopServerHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Registry
// =============================================================================

var (
	hooksMu         sync.RWMutex
	repositoryHooks RepositoryHooks = NoopRepositoryHooks{}
	layoutHooks     LayoutHooks     = NoopLayoutHooks{}
	cacheHooks      CacheHooks      = NoopCacheHooks{}
	serverHooks     ServerHooks     = NoopServerHooks{}
)

// SetRepositoryHooks registers custom repository hooks.
// This should be called once at application startup before any repository operations.
func SetRepositoryHooks(h RepositoryHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		repositoryHooks = h
	}
}

// SetLayoutHooks registers custom layout hooks.
// This should be called once at application startup before any layout operations.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetServerHooks registers custom server hooks.
// This should be called once at application startup before serving requests.
func SetServerHooks(h ServerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		serverHooks = h
	}
}

// Repository returns the registered repository hooks.
func Repository() RepositoryHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return repositoryHooks
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Server returns the registered server hooks.
func Server() ServerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return serverHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	repositoryHooks = NoopRepositoryHooks{}
	layoutHooks = NoopLayoutHooks{}
	cacheHooks = NoopCacheHooks{}
	serverHooks = NoopServerHooks{}
}
