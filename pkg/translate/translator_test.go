package translate

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/animaut/pkg/errors"
	"github.com/matzehuels/animaut/pkg/layout"
	"github.com/matzehuels/animaut/pkg/scene"
)

func mustNew(t *testing.T, opts Options) *Translator {
	t.Helper()
	tr, err := New(opts)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return tr
}

// twoStates is a 10x10 layout with one edge A -> B and no arrowheads.
func twoStates() *layout.Graph {
	return &layout.Graph{
		Name:     "fa",
		Directed: true,
		Box:      box(0, 0, 10, 10),
		Nodes: []layout.Node{
			{ID: "A", Pos: scene.Pt(1, 1), FillColor: "white"},
			{ID: "B", Pos: scene.Pt(9, 9), FillColor: "white"},
		},
		Edges: []layout.Edge{
			{From: "A", To: "B", Spline: "1,1 3,3 6,6 9,9", Color: "white"},
		},
	}
}

func TestTranslateTwoStates(t *testing.T) {
	scn, err := mustNew(t, DefaultOptions()).Translate(twoStates())
	if err != nil {
		t.Fatalf("Translate() error: %v", err)
	}

	if got := len(scn.Nodes()); got != 2 {
		t.Errorf("node groups = %d, want 2", got)
	}
	edges := scn.Edges()
	if len(edges) != 1 {
		t.Fatalf("edge groups = %d, want 1", len(edges))
	}

	paths := scene.Find[*scene.Path](edges[0])
	if len(paths) != 1 {
		t.Fatalf("paths = %d, want 1", len(paths))
	}
	if n := paths[0].Count(scene.SegmentCubic); n != 1 || len(paths[0].Segments) != 1 {
		t.Errorf("segments = %d (cubic %d), want exactly 1 cubic", len(paths[0].Segments), n)
	}
	if arrows := scene.Find[*scene.ArrowTip](edges[0]); len(arrows) != 0 {
		t.Errorf("arrows = %d, want 0", len(arrows))
	}
	if texts := scene.Find[*scene.Text](edges[0]); len(texts) != 0 {
		t.Errorf("labels = %d, want 0", len(texts))
	}

	if scn.Ratio != 0.8 {
		t.Errorf("Ratio = %v, want 0.8", scn.Ratio)
	}
	a, _ := scn.Node("A")
	b, _ := scn.Node("B")
	ca := scene.Find[*scene.Circle](a)[0]
	cb := scene.Find[*scene.Circle](b)[0]
	if !ca.Center.Near(scene.Pt(-3.2, -3.2), 1e-9) || !cb.Center.Near(scene.Pt(3.2, 3.2), 1e-9) {
		t.Errorf("node centers = %v, %v, want (-3.2,-3.2), (3.2,3.2)", ca.Center, cb.Center)
	}
	seg := paths[0].Segments[0]
	if !seg.Start.Near(ca.Center, 1e-9) || !seg.End.Near(cb.Center, 1e-9) {
		t.Errorf("edge runs %v -> %v, want node centers", seg.Start, seg.End)
	}
}

func TestTranslateNodeGroups(t *testing.T) {
	g := twoStates()
	g.Nodes[1].FillColor = "DimGray"
	scn, err := mustNew(t, DefaultOptions()).Translate(g)
	if err != nil {
		t.Fatalf("Translate() error: %v", err)
	}

	b, ok := scn.Node("B")
	if !ok {
		t.Fatal("node B missing")
	}
	circles := scene.Find[*scene.Circle](b)
	texts := scene.Find[*scene.Text](b)
	if len(circles) != 1 || len(texts) != 1 {
		t.Fatalf("node B has %d circles and %d texts, want 1 and 1", len(circles), len(texts))
	}
	if circles[0].Radius != DefaultNodeRadius {
		t.Errorf("Radius = %v, want %v", circles[0].Radius, DefaultNodeRadius)
	}
	if circles[0].Color != scene.LightGrey {
		t.Errorf("Color = %v, want %v", circles[0].Color, scene.LightGrey)
	}
	if texts[0].Content != "B" || texts[0].Position != circles[0].Center || texts[0].Scale != 1 {
		t.Errorf("label = %+v, want \"B\" at circle center with scale 1", texts[0])
	}
}

func TestTranslateSkipsPointNodes(t *testing.T) {
	g := twoStates()
	g.Nodes = append(g.Nodes, layout.Node{ID: "init", Pos: scene.Pt(0, 5), Shape: layout.ShapePoint, ShapeName: "point"})
	g.Edges = append(g.Edges, layout.Edge{From: "init", To: "A", Spline: "e,1,1 0,5 0,4 0,3 0.5,2"})

	scn, err := mustNew(t, DefaultOptions()).Translate(g)
	if err != nil {
		t.Fatalf("Translate() error: %v", err)
	}
	if got := len(scn.Nodes()); got != 2 {
		t.Errorf("node groups = %d, want 2", got)
	}
	if _, ok := scn.Node("init"); ok {
		t.Error("point node should not be drawn")
	}
	if got := len(scn.Edges()); got != 2 {
		t.Errorf("edge groups = %d, want 2 (edges from point nodes are kept)", got)
	}
}

func TestTranslateArrowheads(t *testing.T) {
	g := &layout.Graph{
		Box: box(-8, -8, 8, 8),
		Nodes: []layout.Node{
			{ID: "p", Pos: scene.Pt(-2, 0)},
			{ID: "q", Pos: scene.Pt(11, 0)},
		},
		Edges: []layout.Edge{
			{From: "p", To: "q", Spline: "s,-1,0 e,10,0 0,0 3,0 6,0 9,0"},
		},
	}
	opts := DefaultOptions()
	opts.FrameWidth, opts.FrameHeight = 16, 16
	scn, err := mustNew(t, opts).Translate(g)
	if err != nil {
		t.Fatalf("Translate() error: %v", err)
	}

	edge := scn.Edges()[0]
	arrows := scene.Find[*scene.ArrowTip](edge)
	if len(arrows) != 2 {
		t.Fatalf("arrows = %d, want 2", len(arrows))
	}
	start, end := arrows[0], arrows[1]
	if !start.Tip.Near(scene.Pt(-1, 0), 1e-9) || math.Abs(math.Abs(start.Angle)-math.Pi) > 1e-9 {
		t.Errorf("start arrow = %+v, want tip (-1,0) pointing -x", start)
	}
	if !end.Tip.Near(scene.Pt(10, 0), 1e-9) || math.Abs(end.Angle) > 1e-9 {
		t.Errorf("end arrow = %+v, want tip (10,0) pointing +x", end)
	}
	if math.Abs(end.Length-1) > 1e-9 {
		t.Errorf("end arrow length = %v, want 1", end.Length)
	}

	path := scene.Find[*scene.Path](edge)[0]
	if len(path.Segments) != 3 {
		t.Fatalf("segments = %d, want lead-in, body and lead-out", len(path.Segments))
	}
	lead := path.Segments[0]
	if !lead.Start.Near(scene.Pt(0, 0), 1e-9) || !lead.End.Near(scene.Pt(-1, 0), 1e-9) {
		t.Errorf("lead-in runs %v -> %v, want (0,0) -> (-1,0)", lead.Start, lead.End)
	}
	out := path.Segments[2]
	if !out.Control1.Near(scene.Pt(9+1.0/3, 0), 1e-9) {
		t.Errorf("lead-out handle = %v, want it to continue the curve's tangent", out.Control1)
	}
}

func TestTranslatePolyline(t *testing.T) {
	g := twoStates()
	g.Box = box(-4, -4, 4, 4)
	g.Edges[0].Spline = "e,4,4 0,0 1,1 2,2 3,3"
	opts := DefaultOptions()
	opts.FrameWidth, opts.FrameHeight = 8, 8
	opts.Policy = PolicyPolyline

	scn, err := mustNew(t, opts).Translate(g)
	if err != nil {
		t.Fatalf("Translate() error: %v", err)
	}
	path := scene.Find[*scene.Path](scn.Edges()[0])[0]
	if path.Count(scene.SegmentCubic) != 0 {
		t.Error("polyline policy should not emit cubic segments")
	}
	want := []scene.Segment{
		scene.Line(scene.Pt(1, 1), scene.Pt(2, 2)),
		scene.Line(scene.Pt(2, 2), scene.Pt(3, 3)),
		scene.Line(scene.Pt(3, 3), scene.Pt(4, 4)),
	}
	if !reflect.DeepEqual(path.Segments, want) {
		t.Errorf("segments = %v, want %v", path.Segments, want)
	}
}

func TestTranslateEdgeLabel(t *testing.T) {
	g := twoStates()
	g.Edges[0].Label = "a_b"
	g.Edges[0].LabelPos = &scene.Point{X: 5, Y: 5}

	scn, err := mustNew(t, DefaultOptions()).Translate(g)
	if err != nil {
		t.Fatalf("Translate() error: %v", err)
	}
	texts := scene.Find[*scene.Text](scn.Edges()[0])
	if len(texts) != 1 {
		t.Fatalf("labels = %d, want 1", len(texts))
	}
	lbl := texts[0]
	if lbl.Content != "a_b" || lbl.Markup != `a\_b` {
		t.Errorf("label = %q / %q", lbl.Content, lbl.Markup)
	}
	if lbl.Scale != DefaultLabelScale {
		t.Errorf("Scale = %v, want %v", lbl.Scale, DefaultLabelScale)
	}
	if !lbl.Position.Near(scene.Point{}, 1e-9) {
		t.Errorf("Position = %v, want origin", lbl.Position)
	}
}

func TestTranslateUnknownColor(t *testing.T) {
	g := twoStates()
	g.Nodes[0].FillColor = "chartreuse"
	g.Edges[0].Color = "chartreuse"

	scn, err := mustNew(t, DefaultOptions()).Translate(g)
	if err != nil {
		t.Fatalf("Translate() error: %v", err)
	}
	a, _ := scn.Node("A")
	if c := scene.Find[*scene.Circle](a)[0].Color; c != scene.White {
		t.Errorf("node color = %v, want white", c)
	}
	if c := scene.Find[*scene.Path](scn.Edges()[0])[0].Color; c != scene.White {
		t.Errorf("edge color = %v, want white", c)
	}
}

func TestTranslateDuplicateEdges(t *testing.T) {
	g := twoStates()
	g.Edges = append(g.Edges, layout.Edge{From: "A", To: "B", Spline: "1,1 4,2 8,6 9,9"})

	scn, err := mustNew(t, DefaultOptions()).Translate(g)
	if err != nil {
		t.Fatalf("Translate() error: %v", err)
	}
	edges := scn.Edges()
	if len(edges) != 2 || edges[0].ID != "A->B" || edges[1].ID != "A->B#1" {
		t.Errorf("edge IDs = %v", []string{edges[0].ID, edges[1].ID})
	}
}

func TestTranslateIsDeterministic(t *testing.T) {
	tr := mustNew(t, DefaultOptions())
	g := twoStates()
	g.Edges[0].Spline = "e,9.5,9.5 1,1 3,3 6,6 9,9"

	first, err := tr.Translate(g)
	if err != nil {
		t.Fatalf("Translate() error: %v", err)
	}
	second, err := tr.Translate(g)
	if err != nil {
		t.Fatalf("Translate() error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("translating the same graph twice produced different scenes")
	}
	if g.Nodes[0].Pos != scene.Pt(1, 1) {
		t.Error("Translate modified its input")
	}
}

func TestTranslateErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(g *layout.Graph)
		code    errors.Code
		mention string
	}{
		{
			name:   "degenerate box",
			mutate: func(g *layout.Graph) { g.Box = box(0, 0, 0, 10) },
			code:   errors.ErrCodeInvalidBoundingBox,
		},
		{
			name:    "bad control point count",
			mutate:  func(g *layout.Graph) { g.Edges[0].Spline = "1,1 3,3 6,6 9,9 10,10" },
			code:    errors.ErrCodeInvalidSpline,
			mention: `"A" -> "B"`,
		},
		{
			name:    "bad point",
			mutate:  func(g *layout.Graph) { g.Edges[0].Spline = "1,1 3,3 6,six 9,9" },
			code:    errors.ErrCodeInvalidPoint,
			mention: `"A" -> "B"`,
		},
		{
			name:   "label without position",
			mutate: func(g *layout.Graph) { g.Edges[0].Label = "x" },
			code:   errors.ErrCodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := twoStates()
			tt.mutate(g)
			scn, err := mustNew(t, DefaultOptions()).Translate(g)
			if err == nil {
				t.Fatal("Translate() should fail")
			}
			if scn != nil {
				t.Error("Translate() returned a partial scene")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
			if tt.mention != "" && !strings.Contains(err.Error(), tt.mention) {
				t.Errorf("error %q should name the edge", err)
			}
		})
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(o *Options)
		code   errors.Code
	}{
		{"defaults", func(o *Options) {}, ""},
		{"zero width", func(o *Options) { o.FrameWidth = 0 }, errors.ErrCodeInvalidInput},
		{"negative radius", func(o *Options) { o.NodeRadius = -1 }, errors.ErrCodeInvalidInput},
		{"unknown policy", func(o *Options) { o.Policy = "spline" }, errors.ErrCodeInvalidPolicy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := DefaultOptions()
			tt.mutate(&o)
			_, err := New(o)
			if tt.code == "" {
				if err != nil {
					t.Errorf("New() error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("New() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestParsePolicy(t *testing.T) {
	for _, s := range []string{"bezier", "polyline"} {
		if p, err := ParsePolicy(s); err != nil || string(p) != s {
			t.Errorf("ParsePolicy(%q) = %q, %v", s, p, err)
		}
	}
	if _, err := ParsePolicy("Bezier"); !errors.Is(err, errors.ErrCodeInvalidPolicy) {
		t.Errorf("ParsePolicy(Bezier) error = %v", err)
	}
}
