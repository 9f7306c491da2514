package scene

// Role tags what a Group represents.
type Role string

const (
	RoleRoot Role = "root"
	RoleNode Role = "node"
	RoleEdge Role = "edge"
)

// Group is an ordered container of drawables.
type Group struct {
	ID       string
	Role     Role
	Children []Drawable
}

// NewGroup creates a group holding the given children.
func NewGroup(id string, role Role, children ...Drawable) *Group {
	return &Group{ID: id, Role: role, Children: children}
}

func (g *Group) Kind() Kind { return KindGroup }

// Add appends children to the group.
func (g *Group) Add(children ...Drawable) { g.Children = append(g.Children, children...) }

// Shift moves every child by v.
func (g *Group) Shift(v Point) {
	for _, c := range g.Children {
		c.Shift(v)
	}
}

func (g *Group) Bounds() Rect {
	var r Rect
	for _, c := range g.Children {
		r = r.Union(c.Bounds())
	}
	return r
}

// Walk visits g and all its descendants depth-first, parents first.
func (g *Group) Walk(fn func(Drawable)) {
	fn(g)
	for _, c := range g.Children {
		if sub, ok := c.(*Group); ok {
			sub.Walk(fn)
			continue
		}
		fn(c)
	}
}

// Find returns the direct children of g with concrete type T.
func Find[T Drawable](g *Group) []T {
	var out []T
	for _, c := range g.Children {
		if v, ok := c.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// Scene is a translated diagram ready for rendering.
type Scene struct {
	Root *Group

	// FrameWidth and FrameHeight give the view rectangle, centered on the
	// origin, that the diagram was fitted into.
	FrameWidth  float64
	FrameHeight float64

	// Ratio and Offset record the layout-to-frame transform:
	// frame = layout*Ratio + Offset.
	Ratio  float64
	Offset Point
}

// Groups returns the root's child groups having the given role, in order.
func (s *Scene) Groups(role Role) []*Group {
	var out []*Group
	for _, g := range Find[*Group](s.Root) {
		if g.Role == role {
			out = append(out, g)
		}
	}
	return out
}

// Nodes returns the node groups in layout order.
func (s *Scene) Nodes() []*Group { return s.Groups(RoleNode) }

// Edges returns the edge groups in layout order.
func (s *Scene) Edges() []*Group { return s.Groups(RoleEdge) }

// Node looks up a node group by node identifier.
func (s *Scene) Node(id string) (*Group, bool) {
	for _, g := range s.Nodes() {
		if g.ID == id {
			return g, true
		}
	}
	return nil, false
}

// Frame returns the view rectangle.
func (s *Scene) Frame() Rect {
	half := Pt(s.FrameWidth/2, s.FrameHeight/2)
	return Rect{Min: half.Neg(), Max: half}
}
