// Package pkg provides the core libraries for animaut, which turns
// finite-automaton diagrams written in DOT into animatable scenes.
//
// # Overview
//
// A DOT description of an automaton is laid out by Graphviz, and the
// resulting coordinates are translated into a scene graph of shapes, curves,
// arrowheads and text placed in a fixed-size frame. Scenes are then written as
// SVG, PNG or JSON, or animated into a GIF.
//
// # Architecture
//
// The typical data flow:
//
//	DOT source
//	     ↓
//	[layout] package (Graphviz layout, laid-out DOT parsing)
//	     ↓
//	[translate] package (frame fitting, spline parsing, node and edge groups)
//	     ↓
//	[scene] package (the scene graph)
//	     ↓
//	[render/sink] / [render/anim] (SVG, PNG, JSON, GIF)
//
// [pipeline] orchestrates these steps with caching from [cache], and
// [observability] exposes hooks around them.
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/animaut/pkg/pipeline"
//	    "github.com/matzehuels/animaut/pkg/render/sink"
//	)
//
//	r := pipeline.NewRunner(nil, nil, logger)
//	res, err := r.Execute(context.Background(), src, pipeline.Options{
//	    Formats: []string{"svg"},
//	})
//	svg := res.Artifacts[sink.FormatSVG]
//
// # Supporting Packages
//
//   - [errors]: coded errors shared by every package
//   - [fonts]: the embedded label font
//   - [buildinfo]: version information set at build time
//
// [layout]: github.com/matzehuels/animaut/pkg/layout
// [translate]: github.com/matzehuels/animaut/pkg/translate
// [scene]: github.com/matzehuels/animaut/pkg/scene
// [render/sink]: github.com/matzehuels/animaut/pkg/render/sink
// [render/anim]: github.com/matzehuels/animaut/pkg/render/anim
// [pipeline]: github.com/matzehuels/animaut/pkg/pipeline
// [cache]: github.com/matzehuels/animaut/pkg/cache
// [observability]: github.com/matzehuels/animaut/pkg/observability
// [errors]: github.com/matzehuels/animaut/pkg/errors
// [fonts]: github.com/matzehuels/animaut/pkg/fonts
// [buildinfo]: github.com/matzehuels/animaut/pkg/buildinfo
package pkg
