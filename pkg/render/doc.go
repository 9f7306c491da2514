// Package render groups the output stages that turn translated scenes into
// files.
//
// # Overview
//
// Rendering is split into two subpackages:
//
//   - [sink]: encodes one scene as SVG, PNG or JSON
//   - [anim]: plays a sequence of scenes as an animated GIF
//
// Both consume a [scene.Scene] produced by the translate package and share
// the frame-to-pixel mapping of [sink.Viewport].
//
//	svg, err := sink.RenderSVG(scn, sink.WithSize(1280, 720))
//	gif, err := anim.Render(ctx, []*scene.Scene{a, b}, anim.DefaultOptions())
//
// # Animation
//
// An animation draws the first scene progressively, holds it, then
// cross-fades into each following scene. Frame counts and the per-frame
// delay come from [anim.Options].
//
// [sink]: github.com/matzehuels/animaut/pkg/render/sink
// [anim]: github.com/matzehuels/animaut/pkg/render/anim
// [scene.Scene]: github.com/matzehuels/animaut/pkg/scene.Scene
// [sink.Viewport]: github.com/matzehuels/animaut/pkg/render/sink.Viewport
// [anim.Options]: github.com/matzehuels/animaut/pkg/render/anim.Options
package render
