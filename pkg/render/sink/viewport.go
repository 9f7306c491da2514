package sink

import (
	"math"

	"github.com/matzehuels/animaut/pkg/scene"
)

// Viewport maps frame coordinates (y-up, origin at the center) to pixel
// coordinates (y-down, origin top-left). The frame is scaled uniformly and
// centered on the canvas.
type Viewport struct {
	Width, Height int
	// Scale is the number of pixels per frame unit.
	Scale float64
}

// NewViewport fits a frame of the given size into a width x height canvas.
func NewViewport(frameWidth, frameHeight float64, width, height int) Viewport {
	return Viewport{
		Width:  width,
		Height: height,
		Scale:  math.Min(float64(width)/frameWidth, float64(height)/frameHeight),
	}
}

// Pixel returns the canvas position of frame point p.
func (v Viewport) Pixel(p scene.Point) (x, y float64) {
	return float64(v.Width)/2 + p.X*v.Scale, float64(v.Height)/2 - p.Y*v.Scale
}

// Length converts a frame distance to pixels.
func (v Viewport) Length(d float64) float64 { return d * v.Scale }

// Angle converts a counter-clockwise frame angle to the clockwise pixel one.
func (v Viewport) Angle(a float64) float64 { return -a }
