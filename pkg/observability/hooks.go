// Package observability lets callers observe the export pipeline and its
// container cache without the pipeline depending on any metrics or tracing
// library.
//
// The registry starts with no-op hooks. The CLI installs debug-logging
// hooks; other embedders install their own before running exports:
//
//	observability.SetExportHooks(promHooks{})
//	observability.SetCacheHooks(promHooks{})
//
// The pipeline brackets each stage:
//
//	observability.Export().OnLoadStart(ctx, path, format)
//	d, err := io.Import(path, format)
//	observability.Export().OnLoadComplete(ctx, path, d.ModuleCount(), elapsed, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Export Hooks
// =============================================================================

// ExportHooks receives events from the export pipeline.
type ExportHooks interface {
	// Load events
	OnLoadStart(ctx context.Context, path, format string)
	OnLoadComplete(ctx context.Context, path string, modules int, duration time.Duration, err error)

	// Encode events
	OnExportStart(ctx context.Context, top string)
	OnExportComplete(ctx context.Context, top string, size int, duration time.Duration, err error)
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
// No-op Implementations
// =============================================================================

// NoopExportHooks is a no-op implementation of ExportHooks.
type NoopExportHooks struct{}

func (NoopExportHooks) OnLoadStart(context.Context, string, string)                         {}
func (NoopExportHooks) OnLoadComplete(context.Context, string, int, time.Duration, error)   {}
func (NoopExportHooks) OnExportStart(context.Context, string)                               {}
func (NoopExportHooks) OnExportComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Registry
// =============================================================================

var registry = struct {
	sync.RWMutex
	export ExportHooks
	cache  CacheHooks
}{
	export: NoopExportHooks{},
	cache:  NoopCacheHooks{},
}

// SetExportHooks installs h for every later export. A nil h is ignored.
func SetExportHooks(h ExportHooks) {
	if h == nil {
		return
	}
	registry.Lock()
	registry.export = h
	registry.Unlock()
}

// SetCacheHooks installs h for every later cache access. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h == nil {
		return
	}
	registry.Lock()
	registry.cache = h
	registry.Unlock()
}

// Export returns the installed export hooks.
func Export() ExportHooks {
	registry.RLock()
	defer registry.RUnlock()
	return registry.export
}

// Cache returns the installed cache hooks.
func Cache() CacheHooks {
	registry.RLock()
	defer registry.RUnlock()
	return registry.cache
}

// Reset restores the no-op hooks. Tests call it in cleanup.
func Reset() {
	registry.Lock()
	registry.export = NoopExportHooks{}
	registry.cache = NoopCacheHooks{}
	registry.Unlock()
}
