package scene

import "math"

// Point is a 2D point or vector in frame units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point     { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point     { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Scale(f float64) Point { return Point{p.X * f, p.Y * f} }
func (p Point) Neg() Point            { return Point{-p.X, -p.Y} }
func (p Point) Len() float64          { return math.Hypot(p.X, p.Y) }
func (p Point) Dist(q Point) float64  { return q.Sub(p).Len() }
func (p Point) Angle() float64        { return math.Atan2(p.Y, p.X) }
func (p Point) Lerp(q Point, t float64) Point {
	return Point{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

// Unit returns p scaled to length 1, or the zero vector when p is zero.
func (p Point) Unit() Point {
	l := p.Len()
	if l == 0 {
		return Point{}
	}
	return p.Scale(1 / l)
}

// Near reports whether p and q are within eps of each other on both axes.
func (p Point) Near(q Point, eps float64) bool {
	return math.Abs(p.X-q.X) <= eps && math.Abs(p.Y-q.Y) <= eps
}

// Rect is an axis-aligned bounding box. The zero Rect is empty.
type Rect struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// RectAround returns the smallest Rect containing all pts.
func RectAround(pts ...Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	r := Rect{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		r.Min.X = math.Min(r.Min.X, p.X)
		r.Min.Y = math.Min(r.Min.Y, p.Y)
		r.Max.X = math.Max(r.Max.X, p.X)
		r.Max.Y = math.Max(r.Max.Y, p.Y)
	}
	return r
}

func (r Rect) Empty() bool        { return r == Rect{} }
func (r Rect) Width() float64     { return r.Max.X - r.Min.X }
func (r Rect) Height() float64    { return r.Max.Y - r.Min.Y }
func (r Rect) Center() Point      { return r.Min.Lerp(r.Max, 0.5) }
func (r Rect) Shift(v Point) Rect { return Rect{Min: r.Min.Add(v), Max: r.Max.Add(v)} }

// Union returns the smallest Rect containing both r and o.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	return RectAround(r.Min, r.Max, o.Min, o.Max)
}
