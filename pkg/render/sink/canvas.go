package sink

import (
	"bytes"
	"image"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"

	"github.com/matzehuels/animaut/pkg/errors"
	"github.com/matzehuels/animaut/pkg/fonts"
	"github.com/matzehuels/animaut/pkg/scene"
)

// Stage describes how far a scene has been drawn.
type Stage struct {
	// Created is the fraction of every stroke already drawn, in [0,1].
	Created float64
	// Opacity fades the whole scene against the background, in [0,1].
	Opacity float64
}

// Complete draws the scene in full.
var Complete = Stage{Created: 1, Opacity: 1}

// Canvas is a raster surface for scenes sharing one frame size.
// It is not safe for concurrent use.
type Canvas struct {
	dc    *gg.Context
	vp    Viewport
	bg    colorful.Color
	faces map[int]font.Face
}

// NewCanvas creates a canvas of width x height pixels for scenes whose frame
// is frameWidth x frameHeight units.
func NewCanvas(frameWidth, frameHeight float64, opts ...Option) (*Canvas, error) {
	if !(frameWidth > 0) || !(frameHeight > 0) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "frame %vx%v must be positive", frameWidth, frameHeight)
	}
	c := newConfig(opts...)
	bg, err := parseColor(c.background)
	if err != nil {
		return nil, err
	}
	cv := &Canvas{
		dc:    gg.NewContext(c.width, c.height),
		vp:    NewViewport(frameWidth, frameHeight, c.width, c.height),
		bg:    bg,
		faces: make(map[int]font.Face),
	}
	cv.Clear()
	return cv, nil
}

// Viewport returns the frame-to-pixel mapping.
func (c *Canvas) Viewport() Viewport { return c.vp }

// Clear fills the canvas with the background color.
func (c *Canvas) Clear() {
	c.dc.SetColor(c.bg)
	c.dc.Clear()
}

// Image returns the canvas contents. The image is reused by later draws.
func (c *Canvas) Image() image.Image { return c.dc.Image() }

// EncodePNG writes the canvas as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	if err := c.dc.EncodePNG(w); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return nil
}

// Close releases the cached font faces.
func (c *Canvas) Close() error {
	for size, f := range c.faces {
		f.Close()
		delete(c.faces, size)
	}
	return nil
}

// Draw paints scn over the current contents at the given stage. Arrowheads
// and labels fade in during the second half of creation.
func (c *Canvas) Draw(scn *scene.Scene, st Stage) error {
	if err := checkScene(scn); err != nil {
		return err
	}
	if st.Created <= 0 || st.Opacity <= 0 {
		return nil
	}
	created := math.Min(st.Created, 1)
	late := clamp01((created - 0.5) * 2)

	var err error
	scn.Root.Walk(func(d scene.Drawable) {
		if err != nil {
			return
		}
		switch d := d.(type) {
		case *scene.Circle:
			err = c.drawCircle(d, created, st.Opacity)
		case *scene.Path:
			err = c.drawPath(d.Partial(created), st.Opacity)
		case *scene.ArrowTip:
			err = c.drawArrow(d, st.Opacity*late)
		case *scene.Text:
			err = c.drawText(d, st.Opacity*late)
		}
	})
	return err
}

func (c *Canvas) setColor(col scene.Color, opacity float64) error {
	fg, err := parseColor(col)
	if err != nil {
		return err
	}
	c.dc.SetColor(fg.BlendRgb(c.bg, 1-clamp01(opacity)).Clamped())
	return nil
}

func (c *Canvas) strokeWidth(w float64) float64 {
	return math.Max(1, c.vp.Length(w))
}

func (c *Canvas) drawCircle(ci *scene.Circle, created, opacity float64) error {
	if err := c.setColor(ci.Color, opacity); err != nil {
		return err
	}
	x, y := c.vp.Pixel(ci.Center)
	r := c.vp.Length(ci.Radius)
	c.dc.NewSubPath()
	if created >= 1 {
		c.dc.DrawCircle(x, y, r)
	} else {
		c.dc.DrawArc(x, y, r, 0, c.vp.Angle(2*math.Pi*created))
	}
	c.dc.SetLineWidth(c.strokeWidth(scene.DefaultStrokeWidth))
	c.dc.Stroke()
	return nil
}

func (c *Canvas) drawPath(p *scene.Path, opacity float64) error {
	if len(p.Segments) == 0 {
		return nil
	}
	if err := c.setColor(p.Color, opacity); err != nil {
		return err
	}
	var last scene.Point
	for i, s := range p.Segments {
		if i == 0 || !s.Start.Near(last, 1e-9) {
			c.dc.NewSubPath()
			c.dc.MoveTo(c.vp.Pixel(s.Start))
		}
		x3, y3 := c.vp.Pixel(s.End)
		if s.Kind == scene.SegmentCubic {
			x1, y1 := c.vp.Pixel(s.Control1)
			x2, y2 := c.vp.Pixel(s.Control2)
			c.dc.CubicTo(x1, y1, x2, y2, x3, y3)
		} else {
			c.dc.LineTo(x3, y3)
		}
		last = s.End
	}
	c.dc.SetLineCapRound()
	c.dc.SetLineWidth(c.strokeWidth(p.Width))
	c.dc.Stroke()
	return nil
}

func (c *Canvas) drawArrow(a *scene.ArrowTip, opacity float64) error {
	if opacity <= 0 {
		return nil
	}
	if err := c.setColor(a.Color, opacity); err != nil {
		return err
	}
	c.dc.NewSubPath()
	for i, p := range a.Vertices() {
		x, y := c.vp.Pixel(p)
		if i == 0 {
			c.dc.MoveTo(x, y)
			continue
		}
		c.dc.LineTo(x, y)
	}
	c.dc.ClosePath()
	c.dc.Fill()
	return nil
}

func (c *Canvas) drawText(t *scene.Text, opacity float64) error {
	if opacity <= 0 || t.Content == "" {
		return nil
	}
	size := int(math.Round(c.vp.Length(t.Height())))
	if size < 1 {
		return nil
	}
	face, ok := c.faces[size]
	if !ok {
		var err error
		if face, err = fonts.Face(float64(size)); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "load label font")
		}
		c.faces[size] = face
	}
	if err := c.setColor(t.Color, opacity); err != nil {
		return err
	}
	c.dc.SetFontFace(face)
	x, y := c.vp.Pixel(t.Position)
	c.dc.DrawStringAnchored(t.Content, x, y, 0.5, 0.5)
	return nil
}

// RenderPNG draws the complete scene and encodes it as PNG.
func RenderPNG(scn *scene.Scene, opts ...Option) ([]byte, error) {
	if err := checkScene(scn); err != nil {
		return nil, err
	}
	cv, err := NewCanvas(scn.FrameWidth, scn.FrameHeight, opts...)
	if err != nil {
		return nil, err
	}
	defer cv.Close()

	if err := cv.Draw(scn, Complete); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := cv.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func parseColor(col scene.Color) (colorful.Color, error) {
	c, err := colorful.Hex(string(col))
	if err != nil {
		return colorful.Color{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "color %q", col)
	}
	return c, nil
}

func clamp01(v float64) float64 { return math.Max(0, math.Min(1, v)) }
