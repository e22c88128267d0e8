// Package observability provides hooks for metrics, tracing, and logging.
//
// The engine packages never log. The build pipeline reports what it does
// through hooks instead, and the CLI (or any embedding program) decides what
// to do with the events: print progress, count cache hits, export metrics.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Hook interfaces per event category
//   - No-op default implementations
//   - Registration of custom implementations at startup
//
// Hooks are registered by main, never by libraries, so there are no import
// cycles and no backend dependency in the engine.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&progress{})
//	    observability.SetCacheHooks(&cacheStats{})
//	    // ... run application
//	}
//
// The pipeline emits events around each stage:
//
//	observability.Pipeline().OnStageStart(ctx, "resolve")
//	// ... resolve PLC channels ...
//	observability.Pipeline().OnStageComplete(ctx, "resolve", len(rows), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the build pipeline.
type PipelineHooks interface {
	OnStageStart(ctx context.Context, stage string)
	// OnStageComplete reports the number of items the stage produced (rows,
	// wires, bytes rendered) and its error, if any.
	OnStageComplete(ctx context.Context, stage string, items int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// Resolve Hooks
// =============================================================================

// ResolveHooks receives PLC channel resolution events.
type ResolveHooks interface {
	// OnAssigned reports how many rows received a channel.
	OnAssigned(ctx context.Context, source string, rows int)
	// OnShortfall reports requests that could not be assigned.
	OnShortfall(ctx context.Context, kind, plcType string, count int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnStageStart(context.Context, string)                               {}
func (NoopPipelineHooks) OnStageComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopResolveHooks is a no-op implementation of ResolveHooks.
type NoopResolveHooks struct{}

func (NoopResolveHooks) OnAssigned(context.Context, string, int)          {}
func (NoopResolveHooks) OnShortfall(context.Context, string, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	resolveHooks  ResolveHooks  = NoopResolveHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetResolveHooks registers custom resolve hooks.
func SetResolveHooks(h ResolveHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		resolveHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Resolve returns the registered resolve hooks.
func Resolve() ResolveHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return resolveHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	resolveHooks = NoopResolveHooks{}
}
