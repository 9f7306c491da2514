// Package layout drives the Graphviz layout engine and exposes its output as
// typed Go values.
//
// # Overview
//
// Graphviz computes node positions and edge splines; animaut never lays out
// anything itself. [Engine] runs a layout algorithm in-process through
// [github.com/goccy/go-graphviz] and returns the laid-out graph as DOT text,
// annotated with the attributes Graphviz adds (bb, pos, lp):
//
//	eng, _ := layout.NewEngine(layout.AlgorithmDot)
//	laidOut, err := eng.Layout(ctx, src)
//
// [Parse] reads that text once, using [github.com/awalterschulze/gographviz],
// into a [Graph] of typed [Node] and [Edge] records. Nothing downstream looks
// attributes up by string key.
//
// # Snapshots
//
// [Snapshotter] writes a numbered image of the raw layout for every
// conversion (0.png, 1.png, ...) so a rendered scene can be compared with
// what Graphviz produced. The counter belongs to the Snapshotter instance.
//
// # Coordinates
//
// Layout coordinates are Graphviz points (1/72 inch) with y growing upwards,
// which matches the orientation of scene frames.
package layout
