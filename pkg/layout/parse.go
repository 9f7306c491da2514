package layout

import (
	"strings"

	"github.com/awalterschulze/gographviz"

	"github.com/matzehuels/animaut/pkg/errors"
)

// Parse reads laid-out DOT text, as produced by [Engine.Layout], into a
// typed Graph. It requires the graph bounding box, a position for every node
// and a spline for every edge.
func Parse(laidOut []byte) (*Graph, error) {
	src := joinContinuations(string(laidOut))

	tree, err := gographviz.ParseString(src)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDOT, err, "parse laid-out graph")
	}
	gv := gographviz.NewGraph()
	if err := gographviz.Analyse(tree, gv); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDOT, err, "analyse laid-out graph")
	}

	bb, ok := lookup(gv.Attrs, "bb")
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidBoundingBox, "graph has no bounding box (was it laid out?)")
	}
	box, err := ParseBox(bb)
	if err != nil {
		return nil, err
	}

	g := &Graph{
		Name:     unquote(gv.Name),
		Directed: gv.Directed,
		Box:      box,
		Nodes:    make([]Node, 0, len(gv.Nodes.Nodes)),
		Edges:    make([]Edge, 0, len(gv.Edges.Edges)),
	}

	for _, n := range gv.Nodes.Nodes {
		node, err := convertNode(n)
		if err != nil {
			return nil, err
		}
		g.Nodes = append(g.Nodes, node)
	}
	for _, e := range gv.Edges.Edges {
		edge, err := convertEdge(e)
		if err != nil {
			return nil, err
		}
		g.Edges = append(g.Edges, edge)
	}
	return g, nil
}

func convertNode(n *gographviz.Node) (Node, error) {
	id := unquote(n.Name)
	raw, ok := lookup(n.Attrs, "pos")
	if !ok {
		return Node{}, errors.New(errors.ErrCodeInvalidInput, "node %q has no position", id)
	}
	pos, err := ParsePoint(raw)
	if err != nil {
		return Node{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "node %q", id)
	}

	node := Node{
		ID:        id,
		Pos:       pos,
		ShapeName: "ellipse",
		FillColor: DefaultColor,
	}
	if shape, ok := lookup(n.Attrs, "shape"); ok {
		node.ShapeName = shape
	}
	if node.ShapeName == "point" {
		node.Shape = ShapePoint
	}
	if fill, ok := lookup(n.Attrs, "fillcolor"); ok {
		node.FillColor = fill
	}
	return node, nil
}

func convertEdge(e *gographviz.Edge) (Edge, error) {
	edge := Edge{
		From:  unquote(e.Src),
		To:    unquote(e.Dst),
		Color: DefaultColor,
	}
	spline, ok := lookup(e.Attrs, "pos")
	if !ok {
		return Edge{}, errors.New(errors.ErrCodeInvalidSpline, "edge %s has no spline", edge)
	}
	edge.Spline = spline
	if c, ok := lookup(e.Attrs, "color"); ok {
		edge.Color = c
	}
	if label, ok := lookup(e.Attrs, "label"); ok && label != "" {
		edge.Label = label
		if lp, ok := lookup(e.Attrs, "lp"); ok {
			p, err := ParsePoint(lp)
			if err != nil {
				return Edge{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "edge %s label position", edge)
			}
			edge.LabelPos = &p
		}
	}
	return edge, nil
}

func lookup(attrs gographviz.Attrs, key string) (string, bool) {
	v, ok := attrs[gographviz.Attr(key)]
	if !ok {
		return "", false
	}
	return unquote(v), true
}

// unquote strips DOT string quoting. DOT only escapes the double quote, so
// other backslash sequences (\N, \n, \l) are left as they are. HTML-like
// labels lose their angle brackets.
func unquote(s string) string {
	switch {
	case len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"':
		return strings.ReplaceAll(s[1:len(s)-1], `\"`, `"`)
	case len(s) >= 2 && s[0] == '<' && s[len(s)-1] == '>':
		return s[1 : len(s)-1]
	}
	return s
}

// joinContinuations removes the backslash-newline sequences Graphviz inserts
// to wrap long attribute values.
func joinContinuations(s string) string {
	s = strings.ReplaceAll(s, "\\\r\n", "")
	return strings.ReplaceAll(s, "\\\n", "")
}
