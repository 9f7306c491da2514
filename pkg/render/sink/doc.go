// Package sink encodes translated scenes into output formats.
//
// # Overview
//
// A "sink" turns a [scene.Scene] into bytes. Three formats are supported:
//
//   - SVG: vector output, one <g> per node and edge group
//   - PNG: raster output drawn with fogleman/gg
//   - JSON: the scene graph itself, for external renderers
//
// SVG and PNG share the drawing [Option]s and map the scene's frame (y-up,
// origin at the center) onto a pixel canvas through a [Viewport]:
//
//	png, err := sink.RenderPNG(scn, sink.WithSize(1920, 1080))
//	svg, err := sink.RenderSVG(scn)
//
// # Progressive Drawing
//
// [Canvas] draws a scene at a [Stage] of creation: strokes are drawn up to a
// fraction of their length, circles sweep open, and arrowheads and labels fade
// in last. The animation package builds GIF frames on top of it.
//
// [scene.Scene]: github.com/matzehuels/animaut/pkg/scene.Scene
package sink
