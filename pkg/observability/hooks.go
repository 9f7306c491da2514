// Package observability lets the binary attach instrumentation to the
// conversion pipeline, the caches and the HTTP server without those packages
// knowing about any metrics or tracing backend.
//
// Libraries emit events through the accessors:
//
//	observability.Pipeline().OnLayoutComplete(ctx, engine, time.Since(start), err)
//	observability.Cache().OnCacheMiss(ctx, observability.EntryLayout)
//
// and main installs implementations once at startup:
//
//	observability.NewLogHooks(logger).Register()
//	defer observability.Reset()
//
// Until something is registered every event goes to a no-op.
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks receives events from the conversion pipeline.
type PipelineHooks interface {
	OnLayoutStart(ctx context.Context, engine string)
	OnLayoutComplete(ctx context.Context, engine string, d time.Duration, err error)
	// OnTranslateComplete reports the number of drawn states and transitions.
	OnTranslateComplete(ctx context.Context, nodes, edges int, d time.Duration, err error)
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, d time.Duration, err error)
	// OnAnimateComplete reports how many scenes were played in how many frames.
	OnAnimateComplete(ctx context.Context, scenes, frames int, d time.Duration, err error)
}

// Entry names the kind of a cached value.
type Entry string

const (
	EntryLayout   Entry = "layout"
	EntryArtifact Entry = "artifact"
)

// CacheHooks receives events from cache lookups in the pipeline.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, entry Entry)
	OnCacheMiss(ctx context.Context, entry Entry)
	OnCacheSet(ctx context.Context, entry Entry, size int)
}

// HTTPHooks receives events from the HTTP server.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, status int, d time.Duration)
}

// Noop implements every hook interface and ignores all events.
type Noop struct{}

func (Noop) OnLayoutStart(context.Context, string)                               {}
func (Noop) OnLayoutComplete(context.Context, string, time.Duration, error)      {}
func (Noop) OnTranslateComplete(context.Context, int, int, time.Duration, error) {}
func (Noop) OnRenderStart(context.Context, []string)                             {}
func (Noop) OnRenderComplete(context.Context, []string, time.Duration, error)    {}
func (Noop) OnAnimateComplete(context.Context, int, int, time.Duration, error)   {}
func (Noop) OnCacheHit(context.Context, Entry)                                   {}
func (Noop) OnCacheMiss(context.Context, Entry)                                  {}
func (Noop) OnCacheSet(context.Context, Entry, int)                              {}
func (Noop) OnRequest(context.Context, string, string)                           {}
func (Noop) OnResponse(context.Context, string, string, int, time.Duration)      {}

// registry holds one installed implementation per event category. Boxing
// the interface in a struct keeps atomic.Value's concrete type constant.
type registry[T any] struct{ v atomic.Value }

type box[T any] struct{ h T }

func (r *registry[T]) load(def T) T {
	if b, ok := r.v.Load().(box[T]); ok {
		return b.h
	}
	return def
}

func (r *registry[T]) store(h T) { r.v.Store(box[T]{h}) }

var (
	pipeline registry[PipelineHooks]
	cache    registry[CacheHooks]
	httpReg  registry[HTTPHooks]
)

// SetPipelineHooks installs h. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		pipeline.store(h)
	}
}

// SetCacheHooks installs h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cache.store(h)
	}
}

// SetHTTPHooks installs h. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		httpReg.store(h)
	}
}

// Pipeline returns the installed pipeline hooks.
func Pipeline() PipelineHooks { return pipeline.load(Noop{}) }

// Cache returns the installed cache hooks.
func Cache() CacheHooks { return cache.load(Noop{}) }

// HTTP returns the installed HTTP hooks.
func HTTP() HTTPHooks { return httpReg.load(Noop{}) }

// Reset reinstalls the no-op hooks.
func Reset() {
	pipeline.store(Noop{})
	cache.store(Noop{})
	httpReg.store(Noop{})
}
