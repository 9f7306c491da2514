package layout

import (
	"strconv"
	"strings"

	"github.com/matzehuels/animaut/pkg/errors"
	"github.com/matzehuels/animaut/pkg/scene"
)

// Shape distinguishes drawable nodes from the point-shaped anchors Graphviz
// uses for initial and final state markers.
type Shape int

const (
	ShapeNormal Shape = iota
	ShapePoint
)

// DefaultColor is the color name assumed when a node or edge has none.
const DefaultColor = "white"

// Box is the graph bounding box in layout units.
type Box struct {
	LowerLeft  scene.Point
	UpperRight scene.Point
}

func (b Box) Width() float64      { return b.UpperRight.X - b.LowerLeft.X }
func (b Box) Height() float64     { return b.UpperRight.Y - b.LowerLeft.Y }
func (b Box) Center() scene.Point { return b.LowerLeft.Lerp(b.UpperRight, 0.5) }

// Graph is a laid-out graph. It is not modified after Parse returns.
type Graph struct {
	Name     string
	Directed bool
	Box      Box
	Nodes    []Node
	Edges    []Edge
}

// Node is a laid-out node.
type Node struct {
	ID        string
	Pos       scene.Point
	Shape     Shape
	ShapeName string
	FillColor string
}

// Edge is a laid-out edge. Spline holds the raw Graphviz control-point
// string; LabelPos is set only when the edge has a label.
type Edge struct {
	From     string
	To       string
	Spline   string
	Label    string
	LabelPos *scene.Point
	Color    string
}

// String identifies the edge in error messages.
func (e Edge) String() string {
	return strconv.Quote(e.From) + " -> " + strconv.Quote(e.To)
}

// Node returns the node with the given identifier.
func (g *Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// ParseBox parses a Graphviz "llx,lly,urx,ury" bounding box.
func ParseBox(s string) (Box, error) {
	fields := strings.Split(strings.TrimSpace(s), ",")
	if len(fields) != 4 {
		return Box{}, errors.New(errors.ErrCodeInvalidBoundingBox,
			"bounding box %q: want 4 comma-separated numbers, got %d fields", s, len(fields))
	}
	var v [4]float64
	for i, f := range fields {
		n, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return Box{}, errors.Wrap(errors.ErrCodeInvalidBoundingBox, err,
				"bounding box %q: field %d is not a number", s, i+1)
		}
		v[i] = n
	}
	return Box{LowerLeft: scene.Pt(v[0], v[1]), UpperRight: scene.Pt(v[2], v[3])}, nil
}

// ParsePoint parses an "x,y" token. A trailing "!" (pinned position) is
// accepted and ignored.
func ParsePoint(token string) (scene.Point, error) {
	parts := strings.Split(strings.TrimSuffix(token, "!"), ",")
	if len(parts) != 2 {
		return scene.Point{}, errors.New(errors.ErrCodeInvalidPoint,
			"point %q: want \"x,y\", got %d fields", token, len(parts))
	}
	x, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return scene.Point{}, errors.Wrap(errors.ErrCodeInvalidPoint, err, "point %q: bad x", token)
	}
	y, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return scene.Point{}, errors.Wrap(errors.ErrCodeInvalidPoint, err, "point %q: bad y", token)
	}
	return scene.Pt(x, y), nil
}
