package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event to a logger at debug level, and failures and
// 5xx responses at error level.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks writing to logger (log.Default() if nil).
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{Logger: logger}
}

// Register installs h for pipeline, cache and HTTP events.
func (h *LogHooks) Register() {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, engine string) {
	h.Logger.Debug("layout started", "engine", engine)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, engine string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Error("layout failed", "engine", engine, "duration", d, "err", err)
		return
	}
	h.Logger.Debug("layout complete", "engine", engine, "duration", d)
}

func (h *LogHooks) OnTranslateComplete(_ context.Context, nodes, edges int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Error("translate failed", "duration", d, "err", err)
		return
	}
	h.Logger.Debug("translate complete", "nodes", nodes, "edges", edges, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.Logger.Debug("render started", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Error("render failed", "formats", formats, "duration", d, "err", err)
		return
	}
	h.Logger.Debug("render complete", "formats", formats, "duration", d)
}

func (h *LogHooks) OnAnimateComplete(_ context.Context, scenes, frames int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Error("animation failed", "scenes", scenes, "duration", d, "err", err)
		return
	}
	h.Logger.Debug("animation complete", "scenes", scenes, "frames", frames, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, entry Entry) {
	h.Logger.Debug("cache hit", "entry", entry)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, entry Entry) {
	h.Logger.Debug("cache miss", "entry", entry)
}

func (h *LogHooks) OnCacheSet(_ context.Context, entry Entry, size int) {
	h.Logger.Debug("cache set", "entry", entry, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.Logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	if status >= 500 {
		h.Logger.Error("response", "method", method, "path", path, "status", status, "duration", d)
		return
	}
	h.Logger.Info("response", "method", method, "path", path, "status", status, "duration", d)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
