// Package translate converts a laid-out graph into a scene graph.
//
// # Overview
//
// The [Translator] takes a [layout.Graph] (positions and splines computed by
// Graphviz) and produces a [scene.Scene] that fits a fixed view frame:
//
//	tr, _ := translate.New(translate.DefaultOptions())
//	scn, err := tr.Translate(g)
//
// # Coordinates
//
// [Fit] computes one scale ratio and one shift per graph. Every coordinate in
// the scene is the layout coordinate times the ratio plus the shift, so the
// bounding box ends up centered on the frame's origin and as large as the
// frame allows without distortion. Node and edge renderers only apply the
// ratio; the shift is applied once, to the assembled root group.
//
// # Splines
//
// Graphviz edge splines use a small mini-language (see [ParseSpline]):
//
//	[s,x,y] [e,x,y] x,y x,y x,y x,y [x,y x,y x,y]...
//
// The optional s/e points are the tips of arrowheads at the start and end of
// the edge. The plain points chain cubic Bezier segments that share their
// boundary anchors.
//
// # Policies
//
// Edges are drawn as Bezier curves ([PolicyBezier]) or as straight segments
// through the control points ([PolicyPolyline]).
package translate
