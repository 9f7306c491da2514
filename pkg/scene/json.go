package scene

import "encoding/json"

// JSON encoding tags every drawable with its kind so consumers can decode the
// tree without knowing Go types:
//
//	{"kind":"circle","center":{"x":0,"y":0},"radius":0.3,"color":"#FFFFFF"}

func (c *Circle) MarshalJSON() ([]byte, error) {
	type alias Circle
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		*alias
	}{KindCircle, (*alias)(c)})
}

func (p *Path) MarshalJSON() ([]byte, error) {
	type alias Path
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		*alias
	}{KindPath, (*alias)(p)})
}

func (a *ArrowTip) MarshalJSON() ([]byte, error) {
	type alias ArrowTip
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		*alias
	}{KindArrow, (*alias)(a)})
}

func (t *Text) MarshalJSON() ([]byte, error) {
	type alias Text
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		*alias
	}{KindText, (*alias)(t)})
}

func (g *Group) MarshalJSON() ([]byte, error) {
	children := g.Children
	if children == nil {
		children = []Drawable{}
	}
	return json.Marshal(struct {
		Kind     Kind       `json:"kind"`
		ID       string     `json:"id,omitempty"`
		Role     Role       `json:"role,omitempty"`
		Children []Drawable `json:"children"`
	}{KindGroup, g.ID, g.Role, children})
}

func (s *Scene) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		FrameWidth  float64 `json:"frame_width"`
		FrameHeight float64 `json:"frame_height"`
		Ratio       float64 `json:"ratio"`
		Offset      Point   `json:"offset"`
		Root        *Group  `json:"root"`
	}{s.FrameWidth, s.FrameHeight, s.Ratio, s.Offset, s.Root})
}
