package translate

import (
	"fmt"

	"github.com/matzehuels/animaut/pkg/errors"
	"github.com/matzehuels/animaut/pkg/layout"
	"github.com/matzehuels/animaut/pkg/scene"
)

// Policy selects how edge splines are drawn.
type Policy string

const (
	// PolicyBezier draws one cubic segment per spline segment.
	PolicyBezier Policy = "bezier"
	// PolicyPolyline joins the control points with straight segments,
	// skipping the first one.
	PolicyPolyline Policy = "polyline"
)

// ParsePolicy validates a policy name.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(s); p {
	case PolicyBezier, PolicyPolyline:
		return p, nil
	}
	return "", errors.New(errors.ErrCodeInvalidPolicy, "unknown edge policy %q (want bezier or polyline)", s)
}

// Default frame and primitive sizes, in frame units.
const (
	DefaultFrameHeight = 8.0
	DefaultFrameWidth  = DefaultFrameHeight * 16 / 9
	DefaultNodeRadius  = 0.3
	DefaultLabelScale  = 0.65
)

// Options configures a Translator.
type Options struct {
	FrameWidth  float64
	FrameHeight float64
	NodeRadius  float64
	// LabelScale scales edge labels relative to node labels.
	LabelScale  float64
	StrokeWidth float64
	Policy      Policy
}

// DefaultOptions returns a 16:9 frame eight units high with Bezier edges.
func DefaultOptions() Options {
	return Options{
		FrameWidth:  DefaultFrameWidth,
		FrameHeight: DefaultFrameHeight,
		NodeRadius:  DefaultNodeRadius,
		LabelScale:  DefaultLabelScale,
		StrokeWidth: scene.DefaultStrokeWidth,
		Policy:      PolicyBezier,
	}
}

// Validate checks that all sizes are positive and the policy is known.
func (o Options) Validate() error {
	if !(o.FrameWidth > 0) || !(o.FrameHeight > 0) {
		return errors.New(errors.ErrCodeInvalidInput, "frame %vx%v must be positive", o.FrameWidth, o.FrameHeight)
	}
	if !(o.NodeRadius > 0) || !(o.LabelScale > 0) || !(o.StrokeWidth > 0) {
		return errors.New(errors.ErrCodeInvalidInput, "node radius, label scale and stroke width must be positive")
	}
	_, err := ParsePolicy(string(o.Policy))
	return err
}

// Translator turns laid-out graphs into scenes. It is immutable and safe for
// concurrent use.
type Translator struct {
	opts Options
}

// New returns a Translator for the given options.
func New(opts Options) (*Translator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Translator{opts: opts}, nil
}

// Options returns the translator's configuration.
func (t *Translator) Options() Options { return t.opts }

// Translate builds the scene for g. It fails without a partial result if the
// bounding box, any spline or any label position is malformed.
func (t *Translator) Translate(g *layout.Graph) (*scene.Scene, error) {
	fit, err := Fit(g.Box, t.opts.FrameWidth, t.opts.FrameHeight)
	if err != nil {
		return nil, err
	}

	root := scene.NewGroup(g.Name, scene.RoleRoot)
	for _, n := range g.Nodes {
		if n.Shape == layout.ShapePoint {
			continue
		}
		root.Add(t.renderNode(n, fit.Ratio))
	}

	seen := make(map[string]int)
	for _, e := range g.Edges {
		id := e.From + "->" + e.To
		if k := seen[id]; k > 0 {
			seen[id]++
			id = fmt.Sprintf("%s#%d", id, k)
		} else {
			seen[id] = 1
		}
		grp, err := t.renderEdge(id, e, fit.Ratio)
		if err != nil {
			return nil, err
		}
		root.Add(grp)
	}

	root.Shift(fit.Shift)

	return &scene.Scene{
		Root:        root,
		FrameWidth:  t.opts.FrameWidth,
		FrameHeight: t.opts.FrameHeight,
		Ratio:       fit.Ratio,
		Offset:      fit.Shift,
	}, nil
}

func (t *Translator) renderNode(n layout.Node, ratio float64) *scene.Group {
	pos := n.Pos.Scale(ratio)
	return scene.NewGroup(n.ID, scene.RoleNode,
		&scene.Circle{Center: pos, Radius: t.opts.NodeRadius, Color: Color(n.FillColor)},
		&scene.Text{
			Content:  n.ID,
			Markup:   EscapeMarkup(n.ID),
			Position: pos,
			Scale:    1,
			Color:    scene.White,
		},
	)
}

func (t *Translator) renderEdge(id string, e layout.Edge, ratio float64) (*scene.Group, error) {
	splines, err := ParseSplines(e.Spline, ratio)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSpline, err, "edge %s", e)
	}
	color := Color(e.Color)

	path := &scene.Path{Color: color, Width: t.opts.StrokeWidth}
	var arrows []scene.Drawable
	for _, sp := range splines {
		switch t.opts.Policy {
		case PolicyPolyline:
			path.Append(polylineSegments(sp)...)
		default:
			path.Append(bezierSegments(sp)...)
		}
		if sp.Start != nil {
			arrows = append(arrows, arrowTo(sp.FirstAnchor(), *sp.Start, color))
		}
		if sp.End != nil {
			arrows = append(arrows, arrowTo(sp.LastAnchor(), *sp.End, color))
		}
	}

	grp := scene.NewGroup(id, scene.RoleEdge, path)
	grp.Add(arrows...)

	if e.Label != "" {
		if e.LabelPos == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "edge %s has label %q but no label position", e, e.Label)
		}
		grp.Add(&scene.Text{
			Content:  e.Label,
			Markup:   EscapeMarkup(e.Label),
			Position: e.LabelPos.Scale(ratio),
			Scale:    t.opts.LabelScale,
			Color:    scene.White,
		})
	}
	return grp, nil
}

// bezierSegments draws the spline's cubic segments, joined to the arrow tips
// by lead-in and lead-out curves that leave the anchors along the curve's
// tangent.
func bezierSegments(sp Spline) []scene.Segment {
	var segs []scene.Segment
	if sp.Start != nil {
		segs = append(segs, smoothTo(sp.FirstAnchor(), sp.Handles[0], *sp.Start))
	}
	segs = append(segs, sp.Segments()...)
	if sp.End != nil {
		segs = append(segs, smoothTo(sp.LastAnchor(), sp.Handles[len(sp.Handles)-1], *sp.End))
	}
	return segs
}

// polylineSegments joins the control points after the first with straight
// lines. The first point is skipped because it closes a loop back onto the
// source node for self-edges.
func polylineSegments(sp Spline) []scene.Segment {
	pts := sp.Points[1:]
	var segs []scene.Segment
	if sp.Start != nil {
		segs = append(segs, scene.Line(pts[0], *sp.Start))
	}
	for i := 0; i+1 < len(pts); i++ {
		segs = append(segs, scene.Line(pts[i], pts[i+1]))
	}
	if sp.End != nil {
		segs = append(segs, scene.Line(pts[len(pts)-1], *sp.End))
	}
	return segs
}

// smoothTo builds a cubic from anchor to target whose first handle continues
// the direction handle -> anchor.
func smoothTo(anchor, handle, target scene.Point) scene.Segment {
	dir := anchor.Sub(handle).Unit()
	if dir == (scene.Point{}) {
		dir = target.Sub(anchor).Unit()
	}
	d := anchor.Dist(target)
	return scene.Cubic(anchor, anchor.Add(dir.Scale(d/3)), anchor.Lerp(target, 2.0/3), target)
}

// arrowTo places an arrow tip at tip, pointing along from -> tip. Graphviz
// leaves exactly the arrowhead's length between the anchor and the tip.
func arrowTo(from, tip scene.Point, color scene.Color) *scene.ArrowTip {
	length := from.Dist(tip)
	if length == 0 {
		length = scene.DefaultArrowLength
	}
	return &scene.ArrowTip{
		Tip:    tip,
		Angle:  tip.Sub(from).Angle(),
		Length: length,
		Color:  color,
	}
}
