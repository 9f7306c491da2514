// Package pipeline provides the DOT-to-scene conversion pipeline.
//
// This package implements the complete layout → translate → render pipeline
// used by the CLI and the HTTP server. By centralizing this logic, both entry
// points cache, log and validate the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Layout: run Graphviz on the DOT source (cached by source and engine)
//  2. Translate: parse the laid-out DOT and build the scene graph
//  3. Render: encode the scene as SVG, PNG or JSON (cached per format)
//
// Between layout and translate, an optional snapshot of the raw layout is
// written to disk for debugging.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Formats: []string{"svg"}}
//	result, err := runner.Execute(ctx, src, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts[sink.FormatSVG]
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/animaut/pkg/cache"
	"github.com/matzehuels/animaut/pkg/errors"
	"github.com/matzehuels/animaut/pkg/layout"
	"github.com/matzehuels/animaut/pkg/render/anim"
	"github.com/matzehuels/animaut/pkg/render/sink"
	"github.com/matzehuels/animaut/pkg/scene"
	"github.com/matzehuels/animaut/pkg/translate"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultEngine is the Graphviz layout program.
	DefaultEngine = string(layout.AlgorithmDot)

	// DefaultPolicy draws edges as cubic Bezier curves.
	DefaultPolicy = string(translate.PolicyBezier)

	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = sink.DefaultWidth

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = sink.DefaultHeight

	// DefaultSnapshotFormat is the image format of layout snapshots.
	DefaultSnapshotFormat = "png"
)

// DefaultBackground is the canvas color.
const DefaultBackground = string(scene.Black)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the conversion pipeline. It is read
// from the TOML config file and JSON request bodies, then overridden by
// flags.
type Options struct {
	// Layout options
	Engine string `toml:"engine" json:"engine,omitempty"`

	// Translate options, in frame units
	Policy      string  `toml:"policy" json:"policy,omitempty"`
	FrameWidth  float64 `toml:"frame_width" json:"frame_width,omitempty"`
	FrameHeight float64 `toml:"frame_height" json:"frame_height,omitempty"`
	NodeRadius  float64 `toml:"node_radius" json:"node_radius,omitempty"`
	LabelScale  float64 `toml:"label_scale" json:"label_scale,omitempty"`

	// Render options
	Formats    []string `toml:"formats" json:"formats,omitempty"`
	Width      int      `toml:"width" json:"width,omitempty"`
	Height     int      `toml:"height" json:"height,omitempty"`
	Background string   `toml:"background" json:"background,omitempty"`

	// Snapshot options
	NoSnapshots    bool   `toml:"no_snapshots" json:"-"`
	SnapshotDir    string `toml:"snapshot_dir" json:"-"`
	SnapshotFormat string `toml:"snapshot_format" json:"-"`

	// Animation options
	Animation anim.Options `toml:"animation" json:"-"`

	// Refresh skips cache reads (results are still written).
	Refresh bool `toml:"-" json:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `toml:"-" json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// LaidOut is the DOT text annotated by Graphviz.
	LaidOut []byte

	// SourceHash is the content hash of the DOT source.
	SourceHash string

	// Graph is the typed view of LaidOut.
	Graph *layout.Graph

	// Scene is the translated scene graph.
	Scene *scene.Scene

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[sink.Format][]byte

	// Snapshot is the path of the written layout snapshot, if any.
	Snapshot string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount     int
	EdgeCount     int
	LayoutTime    time.Duration
	TranslateTime time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateEngine checks that engine names a supported layout program.
func ValidateEngine(engine string) error {
	if !slices.Contains(layout.Algorithms, layout.Algorithm(engine)) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid engine: %q (must be one of: dot, neato, fdp, sfdp, circo, twopi)", engine)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if _, err := sink.ParseFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills every zero-valued option.
func (o *Options) SetDefaults() {
	if o.Engine == "" {
		o.Engine = DefaultEngine
	}
	if o.Policy == "" {
		o.Policy = DefaultPolicy
	}
	if o.FrameWidth == 0 {
		o.FrameWidth = translate.DefaultFrameWidth
	}
	if o.FrameHeight == 0 {
		o.FrameHeight = translate.DefaultFrameHeight
	}
	if o.NodeRadius == 0 {
		o.NodeRadius = translate.DefaultNodeRadius
	}
	if o.LabelScale == 0 {
		o.LabelScale = translate.DefaultLabelScale
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{string(sink.FormatSVG)}
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Background == "" {
		o.Background = DefaultBackground
	}
	if o.SnapshotDir == "" {
		o.SnapshotDir = layout.DefaultSnapshotDir
	}
	if o.SnapshotFormat == "" {
		o.SnapshotFormat = DefaultSnapshotFormat
	}
	if o.Animation.Width == 0 {
		o.Animation.Width = o.Width
	}
	if o.Animation.Height == 0 {
		o.Animation.Height = o.Height
	}
	if o.Animation.Background == "" {
		o.Animation.Background = scene.Color(o.Background)
	}
	o.Animation.SetDefaults()
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateAndSetDefaults applies defaults and checks every option.
// Calling it more than once has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	o.SetDefaults()
	if err := ValidateEngine(o.Engine); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "canvas %dx%d must be positive", o.Width, o.Height)
	}
	return o.TranslateOptions().Validate()
}

// TranslateOptions returns the translator configuration.
func (o *Options) TranslateOptions() translate.Options {
	return translate.Options{
		FrameWidth:  o.FrameWidth,
		FrameHeight: o.FrameHeight,
		NodeRadius:  o.NodeRadius,
		LabelScale:  o.LabelScale,
		StrokeWidth: scene.DefaultStrokeWidth,
		Policy:      translate.Policy(o.Policy),
	}
}

// SinkOptions returns the drawing options for SVG and PNG.
func (o *Options) SinkOptions() []sink.Option {
	return []sink.Option{
		sink.WithSize(o.Width, o.Height),
		sink.WithBackground(scene.Color(o.Background)),
	}
}

// SinkFormats returns the parsed output formats.
func (o *Options) SinkFormats() []sink.Format {
	out := make([]sink.Format, 0, len(o.Formats))
	for _, f := range o.Formats {
		if pf, err := sink.ParseFormat(f); err == nil && !slices.Contains(out, pf) {
			out = append(out, pf)
		}
	}
	return out
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{Engine: o.Engine}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format sink.Format) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:      string(format),
		Policy:      o.Policy,
		FrameWidth:  o.FrameWidth,
		FrameHeight: o.FrameHeight,
		NodeRadius:  o.NodeRadius,
		LabelScale:  o.LabelScale,
	}
	if format != sink.FormatJSON {
		k.Width, k.Height, k.Background = o.Width, o.Height, o.Background
	}
	return k
}
