// Package scene defines the scene graph handed to rendering engines.
//
// A [Scene] is a tree of [Drawable] primitives rooted at a [Group]:
//
//	root
//	├── node group  (Circle, Text)
//	├── node group  (Circle, Text)
//	└── edge group  (Path, ArrowTip..., Text?)
//
// Coordinates are frame units: the origin sits at the center of the view
// frame and y grows upwards. Sinks (SVG, PNG, GIF) map frame units to pixels;
// the JSON encoding is the frame-unit hand-off format for external engines.
//
// Primitives are mutable only through [Drawable.Shift], which is how a whole
// subtree is moved into place after it has been built.
package scene
