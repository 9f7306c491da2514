package scene

import "math"

// Color is a renderer color identifier in "#RRGGBB" form.
type Color string

// Palette used by the translator and the sinks.
const (
	White     Color = "#FFFFFF"
	LightGrey Color = "#BBBBBB"
	Black     Color = "#000000"
)

// Kind names the concrete type of a Drawable.
type Kind string

const (
	KindGroup  Kind = "group"
	KindCircle Kind = "circle"
	KindPath   Kind = "path"
	KindArrow  Kind = "arrow"
	KindText   Kind = "text"
)

// Drawable is a node of the scene graph.
type Drawable interface {
	Kind() Kind
	// Shift translates the drawable (and its children) by v.
	Shift(v Point)
	Bounds() Rect
}

// Defaults for primitive sizes, in frame units.
const (
	DefaultStrokeWidth = 0.04
	DefaultArrowLength = 0.35
	DefaultTextHeight  = 0.4
)

// Circle is an outlined circle.
type Circle struct {
	Center Point   `json:"center"`
	Radius float64 `json:"radius"`
	Color  Color   `json:"color"`
}

func (c *Circle) Kind() Kind    { return KindCircle }
func (c *Circle) Shift(v Point) { c.Center = c.Center.Add(v) }
func (c *Circle) Bounds() Rect {
	r := Pt(c.Radius, c.Radius)
	return Rect{Min: c.Center.Sub(r), Max: c.Center.Add(r)}
}

// SegmentKind distinguishes straight from curved path segments.
type SegmentKind string

const (
	SegmentCubic SegmentKind = "cubic"
	SegmentLine  SegmentKind = "line"
)

// Segment is one piece of a Path. Line segments leave the control points at
// their zero value.
type Segment struct {
	Kind     SegmentKind `json:"kind"`
	Start    Point       `json:"start"`
	Control1 Point       `json:"control1,omitzero"`
	Control2 Point       `json:"control2,omitzero"`
	End      Point       `json:"end"`
}

// Cubic builds a cubic Bezier segment from a to b shaped by handles h1, h2.
func Cubic(a, h1, h2, b Point) Segment {
	return Segment{Kind: SegmentCubic, Start: a, Control1: h1, Control2: h2, End: b}
}

// Line builds a straight segment from a to b.
func Line(a, b Point) Segment {
	return Segment{Kind: SegmentLine, Start: a, End: b}
}

// At evaluates the segment at parameter t in [0,1].
func (s Segment) At(t float64) Point {
	if s.Kind == SegmentLine {
		return s.Start.Lerp(s.End, t)
	}
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	c := 3 * mt * t * t
	d := t * t * t
	return Point{
		X: a*s.Start.X + b*s.Control1.X + c*s.Control2.X + d*s.End.X,
		Y: a*s.Start.Y + b*s.Control1.Y + c*s.Control2.Y + d*s.End.Y,
	}
}

// Split cuts the segment at t using de Casteljau's construction.
func (s Segment) Split(t float64) (Segment, Segment) {
	if s.Kind == SegmentLine {
		m := s.At(t)
		return Line(s.Start, m), Line(m, s.End)
	}
	p01 := s.Start.Lerp(s.Control1, t)
	p12 := s.Control1.Lerp(s.Control2, t)
	p23 := s.Control2.Lerp(s.End, t)
	p012 := p01.Lerp(p12, t)
	p123 := p12.Lerp(p23, t)
	m := p012.Lerp(p123, t)
	return Cubic(s.Start, p01, p012, m), Cubic(m, p123, p23, s.End)
}

// Length approximates the arc length by sampling.
func (s Segment) Length() float64 {
	if s.Kind == SegmentLine {
		return s.Start.Dist(s.End)
	}
	const samples = 32
	length := 0.0
	prev := s.Start
	for i := 1; i <= samples; i++ {
		cur := s.At(float64(i) / samples)
		length += prev.Dist(cur)
		prev = cur
	}
	return length
}

func (s *Segment) shift(v Point) {
	s.Start = s.Start.Add(v)
	s.End = s.End.Add(v)
	if s.Kind == SegmentCubic {
		s.Control1 = s.Control1.Add(v)
		s.Control2 = s.Control2.Add(v)
	}
}

func (s Segment) points() []Point {
	if s.Kind == SegmentLine {
		return []Point{s.Start, s.End}
	}
	return []Point{s.Start, s.Control1, s.Control2, s.End}
}

// Path is a stroked sequence of segments. Consecutive segments need not
// touch; a gap starts a new sub-path.
type Path struct {
	Segments []Segment `json:"segments"`
	Color    Color     `json:"color"`
	Width    float64   `json:"width"`
}

func (p *Path) Kind() Kind { return KindPath }

func (p *Path) Shift(v Point) {
	for i := range p.Segments {
		p.Segments[i].shift(v)
	}
}

// Bounds returns the hull of all segment points, control points included.
func (p *Path) Bounds() Rect {
	var pts []Point
	for _, s := range p.Segments {
		pts = append(pts, s.points()...)
	}
	return RectAround(pts...)
}

// Append adds segments to the path.
func (p *Path) Append(segs ...Segment) { p.Segments = append(p.Segments, segs...) }

// Count returns the number of segments of the given kind.
func (p *Path) Count(kind SegmentKind) int {
	n := 0
	for _, s := range p.Segments {
		if s.Kind == kind {
			n++
		}
	}
	return n
}

// Length approximates the total arc length of the path.
func (p *Path) Length() float64 {
	total := 0.0
	for _, s := range p.Segments {
		total += s.Length()
	}
	return total
}

// Partial returns a copy of the path truncated to the given fraction of its
// arc length. Used to draw a path progressively.
func (p *Path) Partial(fraction float64) *Path {
	out := &Path{Color: p.Color, Width: p.Width}
	if fraction <= 0 {
		return out
	}
	if fraction >= 1 {
		out.Segments = append(out.Segments, p.Segments...)
		return out
	}
	remaining := p.Length() * fraction
	for _, s := range p.Segments {
		if remaining <= 0 {
			break
		}
		l := s.Length()
		if l <= remaining {
			out.Segments = append(out.Segments, s)
			remaining -= l
			continue
		}
		if l > 0 {
			head, _ := s.Split(remaining / l)
			out.Segments = append(out.Segments, head)
		}
		break
	}
	return out
}

// ArrowTip is a filled triangle whose tip sits at Tip and points along Angle
// (radians, counter-clockwise from +x).
type ArrowTip struct {
	Tip    Point   `json:"tip"`
	Angle  float64 `json:"angle"`
	Length float64 `json:"length"`
	Color  Color   `json:"color"`
}

func (a *ArrowTip) Kind() Kind    { return KindArrow }
func (a *ArrowTip) Shift(v Point) { a.Tip = a.Tip.Add(v) }
func (a *ArrowTip) Bounds() Rect  { return RectAround(a.Vertices()...) }

// Vertices returns the triangle's tip followed by its two base corners.
func (a *ArrowTip) Vertices() []Point {
	dir := Pt(math.Cos(a.Angle), math.Sin(a.Angle))
	normal := Pt(-dir.Y, dir.X)
	base := a.Tip.Sub(dir.Scale(a.Length))
	half := normal.Scale(a.Length / 2)
	return []Point{a.Tip, base.Add(half), base.Sub(half)}
}

// Text is a label centered on Position. Content is the plain string; Markup
// is the same string escaped for TeX-based text layers.
type Text struct {
	Content  string  `json:"content"`
	Markup   string  `json:"markup"`
	Position Point   `json:"position"`
	Scale    float64 `json:"scale"`
	Color    Color   `json:"color"`
}

func (t *Text) Kind() Kind    { return KindText }
func (t *Text) Shift(v Point) { t.Position = t.Position.Add(v) }

// Height is the rendered glyph height in frame units.
func (t *Text) Height() float64 { return DefaultTextHeight * t.Scale }

// Bounds estimates the label box assuming glyphs roughly 0.6 em wide.
func (t *Text) Bounds() Rect {
	h := t.Height()
	w := 0.6 * h * float64(len([]rune(t.Content)))
	half := Pt(w/2, h/2)
	return Rect{Min: t.Position.Sub(half), Max: t.Position.Add(half)}
}
