package scene

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

const eps = 1e-9

func TestSegmentAtEndpoints(t *testing.T) {
	s := Cubic(Pt(0, 0), Pt(1, 2), Pt(3, 2), Pt(4, 0))
	if got := s.At(0); !got.Near(s.Start, eps) {
		t.Errorf("At(0) = %v, want %v", got, s.Start)
	}
	if got := s.At(1); !got.Near(s.End, eps) {
		t.Errorf("At(1) = %v, want %v", got, s.End)
	}
	// symmetric control polygon puts the midpoint on the axis of symmetry
	if got := s.At(0.5); !got.Near(Pt(2, 1.5), eps) {
		t.Errorf("At(0.5) = %v, want (2, 1.5)", got)
	}
}

func TestSegmentSplit(t *testing.T) {
	s := Cubic(Pt(0, 0), Pt(1, 2), Pt(3, 2), Pt(4, 0))
	head, tail := s.Split(0.25)

	if !head.Start.Near(s.Start, eps) || !tail.End.Near(s.End, eps) {
		t.Fatalf("Split() moved the outer endpoints: %v %v", head, tail)
	}
	if !head.End.Near(s.At(0.25), eps) || !tail.Start.Near(s.At(0.25), eps) {
		t.Errorf("Split() cut point = %v / %v, want %v", head.End, tail.Start, s.At(0.25))
	}
	if got, want := head.At(0.5), s.At(0.125); !got.Near(want, 1e-9) {
		t.Errorf("head.At(0.5) = %v, want %v", got, want)
	}
}

func TestLineLength(t *testing.T) {
	if got := Line(Pt(0, 0), Pt(3, 4)).Length(); got != 5 {
		t.Errorf("Length() = %v, want 5", got)
	}
	// a straight cubic has the length of its chord
	c := Cubic(Pt(0, 0), Pt(1, 0), Pt(2, 0), Pt(3, 0))
	if got := c.Length(); math.Abs(got-3) > 1e-6 {
		t.Errorf("straight cubic Length() = %v, want 3", got)
	}
}

func TestPathPartial(t *testing.T) {
	p := &Path{Color: White}
	p.Append(Line(Pt(0, 0), Pt(1, 0)), Line(Pt(1, 0), Pt(1, 1)))

	tests := []struct {
		name     string
		fraction float64
		segments int
		end      Point
	}{
		{"nothing", 0, 0, Point{}},
		{"first half", 0.5, 1, Pt(1, 0)},
		{"into second", 0.75, 2, Pt(1, 0.5)},
		{"all", 1, 2, Pt(1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Partial(tt.fraction)
			if len(got.Segments) != tt.segments {
				t.Fatalf("Partial(%v) has %d segments, want %d", tt.fraction, len(got.Segments), tt.segments)
			}
			if tt.segments > 0 {
				if end := got.Segments[len(got.Segments)-1].End; !end.Near(tt.end, 1e-9) {
					t.Errorf("Partial(%v) ends at %v, want %v", tt.fraction, end, tt.end)
				}
			}
		})
	}
}

func TestArrowTipVertices(t *testing.T) {
	a := &ArrowTip{Tip: Pt(1, 1), Angle: 0, Length: 0.5}
	v := a.Vertices()
	if !v[0].Near(Pt(1, 1), eps) {
		t.Errorf("tip = %v", v[0])
	}
	if !v[1].Near(Pt(0.5, 1.25), eps) || !v[2].Near(Pt(0.5, 0.75), eps) {
		t.Errorf("base = %v %v, want (0.5,1.25) (0.5,0.75)", v[1], v[2])
	}
}

func TestGroupShift(t *testing.T) {
	edge := &Path{}
	edge.Append(Cubic(Pt(0, 0), Pt(1, 0), Pt(1, 1), Pt(0, 1)))
	root := NewGroup("", RoleRoot,
		NewGroup("a", RoleNode, &Circle{Center: Pt(1, 1), Radius: 0.3}, &Text{Content: "a", Position: Pt(1, 1), Scale: 1}),
		NewGroup("a->a", RoleEdge, edge, &ArrowTip{Tip: Pt(2, 2), Length: 0.1}),
	)

	root.Shift(Pt(-1, 2))

	c := Find[*Circle](root.Children[0].(*Group))[0]
	if !c.Center.Near(Pt(0, 3), eps) {
		t.Errorf("circle center = %v, want (0,3)", c.Center)
	}
	seg := edge.Segments[0]
	if !seg.Control2.Near(Pt(0, 3), eps) || !seg.End.Near(Pt(-1, 3), eps) {
		t.Errorf("segment = %+v", seg)
	}
	arrow := Find[*ArrowTip](root.Children[1].(*Group))[0]
	if !arrow.Tip.Near(Pt(1, 4), eps) {
		t.Errorf("arrow tip = %v, want (1,4)", arrow.Tip)
	}
}

func TestSceneAccessors(t *testing.T) {
	s := &Scene{
		Root: NewGroup("", RoleRoot,
			NewGroup("a", RoleNode),
			NewGroup("b", RoleNode),
			NewGroup("a->b", RoleEdge),
		),
		FrameWidth:  4,
		FrameHeight: 2,
	}
	if got := len(s.Nodes()); got != 2 {
		t.Errorf("Nodes() = %d, want 2", got)
	}
	if got := len(s.Edges()); got != 1 {
		t.Errorf("Edges() = %d, want 1", got)
	}
	if _, ok := s.Node("b"); !ok {
		t.Error("Node(b) not found")
	}
	if _, ok := s.Node("a->b"); ok {
		t.Error("Node() should not return edge groups")
	}
	if f := s.Frame(); f.Width() != 4 || f.Height() != 2 || !f.Center().Near(Point{}, eps) {
		t.Errorf("Frame() = %+v", f)
	}
}

func TestWalkOrder(t *testing.T) {
	root := NewGroup("", RoleRoot, NewGroup("a", RoleNode, &Circle{}, &Text{}))
	var kinds []string
	root.Walk(func(d Drawable) { kinds = append(kinds, string(d.Kind())) })
	if got := strings.Join(kinds, ","); got != "group,group,circle,text" {
		t.Errorf("Walk() order = %s", got)
	}
}

func TestMarshalJSONKinds(t *testing.T) {
	s := &Scene{
		Root:        NewGroup("", RoleRoot, NewGroup("q0", RoleNode, &Circle{Radius: 0.3, Color: White})),
		FrameWidth:  14,
		FrameHeight: 8,
		Ratio:       0.5,
	}
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var decoded struct {
		Root struct {
			Kind     string `json:"kind"`
			Children []struct {
				ID       string `json:"id"`
				Role     string `json:"role"`
				Children []struct {
					Kind   string  `json:"kind"`
					Radius float64 `json:"radius"`
				} `json:"children"`
			} `json:"children"`
		} `json:"root"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if decoded.Root.Kind != "group" {
		t.Errorf("root kind = %q", decoded.Root.Kind)
	}
	node := decoded.Root.Children[0]
	if node.ID != "q0" || node.Role != "node" {
		t.Errorf("node = %+v", node)
	}
	if node.Children[0].Kind != "circle" || node.Children[0].Radius != 0.3 {
		t.Errorf("circle = %+v", node.Children[0])
	}
}
