package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	r := NoopRepositoryHooks{}
	r.OnCreate(ctx, "abc", 2)
	r.OnCreateRejected(ctx, "time_range_overlaps")
	r.OnDelete(ctx, "abc", 3)

	l := NoopLayoutHooks{}
	l.OnLayoutStart(ctx, "cluster", 100)
	l.OnLayoutComplete(ctx, "cluster", time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "layout")
	c.OnCacheMiss(ctx, "layout")
	c.OnCacheSet(ctx, "render", 1024)

	s := NoopServerHooks{}
	s.OnRequest(ctx, "GET", "/api/layout")
	s.OnResponse(ctx, "GET", "/api/layout", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Repository().(NoopRepositoryHooks); !ok {
		t.Error("Repository() should return NoopRepositoryHooks by default")
	}
	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Error("Layout() should return NoopLayoutHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := Server().(NoopServerHooks); !ok {
		t.Error("Server() should return NoopServerHooks by default")
	}

	// Set custom hooks
	customRepo := &testRepositoryHooks{}
	SetRepositoryHooks(customRepo)
	if Repository() != customRepo {
		t.Error("SetRepositoryHooks should set custom hooks")
	}

	customLayout := &testLayoutHooks{}
	SetLayoutHooks(customLayout)
	if Layout() != customLayout {
		t.Error("SetLayoutHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customServer := &testServerHooks{}
	SetServerHooks(customServer)
	if Server() != customServer {
		t.Error("SetServerHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Repository().(NoopRepositoryHooks); !ok {
		t.Error("Reset() should restore NoopRepositoryHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testRepositoryHooks{}
	SetRepositoryHooks(custom)

	// Setting nil should be ignored
	SetRepositoryHooks(nil)

	if Repository() != custom {
		t.Error("SetRepositoryHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testRepositoryHooks struct{ NoopRepositoryHooks }
type testLayoutHooks struct{ NoopLayoutHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testServerHooks struct{ NoopServerHooks }
