package pipeline

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/animaut/pkg/cache"
	"github.com/matzehuels/animaut/pkg/errors"
	"github.com/matzehuels/animaut/pkg/layout"
	"github.com/matzehuels/animaut/pkg/observability"
	"github.com/matzehuels/animaut/pkg/render/anim"
	"github.com/matzehuels/animaut/pkg/render/sink"
	"github.com/matzehuels/animaut/pkg/scene"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// Apart from the cache and logger, a Runner only keeps one snapshot counter
// per snapshot directory. Multiple goroutines can safely use the same Runner
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	mu          sync.Mutex
	snapshotter map[string]*layout.Snapshotter
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:       c,
		Keyer:       keyer,
		Logger:      logger,
		snapshotter: make(map[string]*layout.Snapshotter),
	}
}

// Execute runs the complete layout → translate → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, src []byte, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result, err := r.translate(ctx, src, opts)
	if err != nil {
		return nil, err
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result.LaidOut, result.Scene, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Scene runs layout and translate only.
func (r *Runner) Scene(ctx context.Context, src []byte, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return r.translate(ctx, src, opts)
}

func (r *Runner) translate(ctx context.Context, src []byte, opts Options) (*Result, error) {
	result := &Result{SourceHash: cache.Hash(src)}

	// Stage 1: Layout
	layoutStart := time.Now()
	laidOut, layoutHit, err := r.LayoutWithCacheInfo(ctx, src, opts)
	if err != nil {
		return nil, err
	}
	result.LaidOut = laidOut
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	opts.Logger.Info("computed layout",
		"engine", opts.Engine,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	if !opts.NoSnapshots {
		path, err := r.Snapshot(ctx, src, opts)
		if err != nil {
			// Snapshots are a debugging aid; never fail the conversion.
			opts.Logger.Warn("snapshot failed", "err", err)
		} else {
			result.Snapshot = path
			opts.Logger.Debug("wrote snapshot", "path", path)
		}
	}

	// Stage 2: Translate
	translateStart := time.Now()
	g, scn, err := Translate(ctx, laidOut, opts)
	if err != nil {
		return nil, err
	}
	result.Graph = g
	result.Scene = scn
	result.Stats.TranslateTime = time.Since(translateStart)
	result.Stats.NodeCount = len(scn.Nodes())
	result.Stats.EdgeCount = len(scn.Edges())

	opts.Logger.Info("translated scene",
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"ratio", scn.Ratio,
		"duration", result.Stats.TranslateTime)

	return result, nil
}

// LayoutWithCacheInfo lays out src with caching and returns cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, src []byte, opts Options) ([]byte, bool, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()
	if err := ValidateEngine(opts.Engine); err != nil {
		return nil, false, err
	}
	cacheKey := r.Keyer.LayoutKey(cache.Hash(src), opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, observability.EntryLayout)
			return data, true, nil
		} else if err != nil {
			opts.Logger.Warn("cache read failed", "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, observability.EntryLayout)
	}

	laidOut, err := Layout(ctx, src, opts)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, cacheKey, laidOut, cache.TTLLayout); err != nil {
		opts.Logger.Warn("cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, observability.EntryLayout, len(laidOut))
	}
	return laidOut, false, nil
}

// Snapshot writes an image of the raw layout of src. Each snapshot directory
// has its own counter, starting at 0 for a new Runner.
func (r *Runner) Snapshot(ctx context.Context, src []byte, opts Options) (string, error) {
	opts.SetDefaults()
	engine, err := layout.NewEngine(layout.Algorithm(opts.Engine))
	if err != nil {
		return "", err
	}

	key := strings.Join([]string{opts.SnapshotDir, opts.SnapshotFormat, opts.Engine}, "\x00")
	r.mu.Lock()
	s, ok := r.snapshotter[key]
	if !ok {
		s, err = layout.NewSnapshotter(engine, opts.SnapshotDir, opts.SnapshotFormat)
		if err == nil {
			r.snapshotter[key] = s
		}
	}
	r.mu.Unlock()
	if err != nil {
		return "", err
	}
	return s.Snapshot(ctx, src)
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit
// info. Artifacts are keyed by the laid-out DOT and the drawing options.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, laidOut []byte, scn *scene.Scene, opts Options) (map[sink.Format][]byte, bool, error) {
	opts.SetDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	layoutHash := cache.Hash(laidOut)
	formats := opts.SinkFormats()

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts := make(map[sink.Format][]byte, len(formats))
	allCached := true
	for _, f := range formats {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(f))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, observability.EntryArtifact)
				artifacts[f] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, observability.EntryArtifact)
		}
		allCached = false

		data, err := RenderFormat(scn, f, opts)
		if err != nil {
			observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, false, err
		}
		artifacts[f] = data
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, observability.EntryArtifact, len(data))
		}
	}

	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return artifacts, allCached, nil
}

// Animate converts each source and encodes the scenes as one GIF: the first
// is drawn progressively, the rest cross-fade in turn.
func (r *Runner) Animate(ctx context.Context, sources [][]byte, opts Options) ([]byte, error) {
	if len(sources) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no graphs to animate")
	}
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	scenes := make([]*scene.Scene, 0, len(sources))
	for i, src := range sources {
		res, err := r.translate(ctx, src, opts)
		if err != nil {
			code := errors.GetCode(err)
			if code == "" {
				code = errors.ErrCodeInternal
			}
			return nil, errors.Wrap(code, err, "graph %d", i+1)
		}
		scenes = append(scenes, res.Scene)
	}

	start := time.Now()
	frames := opts.Animation.Frames(len(scenes))
	gif, err := anim.Render(ctx, scenes, opts.Animation)
	observability.Pipeline().OnAnimateComplete(ctx, len(scenes), frames, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	opts.Logger.Info("encoded animation", "scenes", len(scenes), "frames", frames, "duration", time.Since(start))
	return gif, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
