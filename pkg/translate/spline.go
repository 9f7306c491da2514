package translate

import (
	"strings"

	"github.com/matzehuels/animaut/pkg/errors"
	"github.com/matzehuels/animaut/pkg/layout"
	"github.com/matzehuels/animaut/pkg/scene"
)

// Spline is a parsed Graphviz edge spline, already scaled by the fitting
// ratio.
type Spline struct {
	// Start is the tip of an arrowhead pointing away from the first anchor,
	// or nil.
	Start *scene.Point
	// End is the tip of an arrowhead pointing away from the last anchor, or
	// nil.
	End *scene.Point
	// Anchors holds the points the curve passes through and Handles the
	// control points between them, two of each per segment: segment i runs
	// Anchors[2i], Handles[2i], Handles[2i+1], Anchors[2i+1]. Adjacent
	// segments repeat their shared anchor.
	Anchors []scene.Point
	Handles []scene.Point
	// Points is the plain control-point sequence as it appeared in the
	// input.
	Points []scene.Point
}

// Segments returns one cubic segment per anchor/handle/handle/anchor group.
func (s Spline) Segments() []scene.Segment {
	segs := make([]scene.Segment, 0, len(s.Anchors)/2)
	for i := 0; i+1 < len(s.Anchors); i += 2 {
		segs = append(segs, scene.Cubic(s.Anchors[i], s.Handles[i], s.Handles[i+1], s.Anchors[i+1]))
	}
	return segs
}

// FirstAnchor returns the point where the curve starts.
func (s Spline) FirstAnchor() scene.Point { return s.Anchors[0] }

// LastAnchor returns the point where the curve ends.
func (s Spline) LastAnchor() scene.Point { return s.Anchors[len(s.Anchors)-1] }

// ParseSpline parses one Graphviz spline and scales every point by ratio.
//
// Leading "s,x,y" and "e,x,y" tokens set Start and End; "s," is tested
// before "e," and each may appear once. The remaining tokens must be 4+3k
// plain "x,y" points. Any other count is an error: a trailing partial segment
// is never dropped silently.
func ParseSpline(s string, ratio float64) (Spline, error) {
	tokens := strings.Fields(s)
	var sp Spline

prefixes:
	for len(tokens) > 0 {
		tok := tokens[0]
		switch {
		case strings.HasPrefix(tok, "s,"):
			if sp.Start != nil {
				return Spline{}, errors.New(errors.ErrCodeInvalidSpline, "spline %q: repeated start point %q", s, tok)
			}
			p, err := parseScaled(tok[2:], ratio)
			if err != nil {
				return Spline{}, errors.Wrap(errors.ErrCodeInvalidSpline, err, "spline start point %q", tok)
			}
			sp.Start = &p
		case strings.HasPrefix(tok, "e,"):
			if sp.End != nil {
				return Spline{}, errors.New(errors.ErrCodeInvalidSpline, "spline %q: repeated end point %q", s, tok)
			}
			p, err := parseScaled(tok[2:], ratio)
			if err != nil {
				return Spline{}, errors.Wrap(errors.ErrCodeInvalidSpline, err, "spline end point %q", tok)
			}
			sp.End = &p
		default:
			break prefixes
		}
		tokens = tokens[1:]
	}

	if n := len(tokens); n < 4 || (n-4)%3 != 0 {
		return Spline{}, errors.New(errors.ErrCodeInvalidSpline,
			"spline %q: %d control points, want 4, 7, 10, ...", s, n)
	}

	sp.Points = make([]scene.Point, len(tokens))
	for i, tok := range tokens {
		p, err := parseScaled(tok, ratio)
		if err != nil {
			return Spline{}, errors.Wrap(errors.ErrCodeInvalidSpline, err, "spline control point %d", i+1)
		}
		sp.Points[i] = p
	}

	for i := 0; i+3 < len(sp.Points); i += 3 {
		sp.Anchors = append(sp.Anchors, sp.Points[i])
		sp.Handles = append(sp.Handles, sp.Points[i+1], sp.Points[i+2])
		sp.Anchors = append(sp.Anchors, sp.Points[i+3])
	}
	return sp, nil
}

// ParseSplines parses a ";"-separated list of splines, as Graphviz emits for
// edges routed through several pieces.
func ParseSplines(s string, ratio float64) ([]Spline, error) {
	var out []Spline
	for _, part := range strings.Split(s, ";") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		sp, err := ParseSpline(part, ratio)
		if err != nil {
			return nil, err
		}
		out = append(out, sp)
	}
	if len(out) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidSpline, "empty spline")
	}
	return out, nil
}

func parseScaled(token string, ratio float64) (scene.Point, error) {
	p, err := layout.ParsePoint(token)
	if err != nil {
		return scene.Point{}, err
	}
	return p.Scale(ratio), nil
}
