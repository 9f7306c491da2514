package translate

import (
	"math"

	"github.com/matzehuels/animaut/pkg/errors"
	"github.com/matzehuels/animaut/pkg/layout"
	"github.com/matzehuels/animaut/pkg/scene"
)

// Fitting maps layout coordinates to frame coordinates:
// frame = layout*Ratio + Shift.
type Fitting struct {
	Ratio float64
	Shift scene.Point
}

// Apply maps a layout point into the frame.
func (f Fitting) Apply(p scene.Point) scene.Point {
	return p.Scale(f.Ratio).Add(f.Shift)
}

// Fit returns the largest uniform scale that fits box inside a frame of the
// given size, and the shift that centers the scaled box on the origin.
func Fit(box layout.Box, frameWidth, frameHeight float64) (Fitting, error) {
	if !(frameWidth > 0) || !(frameHeight > 0) {
		return Fitting{}, errors.New(errors.ErrCodeInvalidInput,
			"frame %vx%v must have positive width and height", frameWidth, frameHeight)
	}
	w, h := box.Width(), box.Height()
	if !(w > 0) || !(h > 0) || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return Fitting{}, errors.New(errors.ErrCodeInvalidBoundingBox,
			"bounding box %vx%v is degenerate", w, h)
	}

	ratio := math.Min(frameWidth/w, frameHeight/h)
	return Fitting{
		Ratio: ratio,
		Shift: box.Center().Scale(ratio).Neg(),
	}, nil
}
