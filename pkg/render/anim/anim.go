// Package anim turns a sequence of scenes into an animated GIF.
//
// The first scene is drawn progressively (strokes grow, circles sweep open,
// arrowheads and labels fade in), then held. Every following scene
// cross-fades in from the one before it and is held in turn:
//
//	gif, err := anim.Render(ctx, []*scene.Scene{before, after}, anim.DefaultOptions())
package anim

import (
	"bytes"
	"context"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"time"

	"github.com/matzehuels/animaut/pkg/errors"
	"github.com/matzehuels/animaut/pkg/render/sink"
	"github.com/matzehuels/animaut/pkg/scene"
)

// Defaults for Options.
const (
	DefaultCreateFrames = 30
	DefaultHoldFrames   = 15
	DefaultFadeFrames   = 15
	DefaultDelay        = 40 * time.Millisecond
)

// Options configures an animation. Zero values are replaced by SetDefaults.
type Options struct {
	Width        int           `toml:"width"`
	Height       int           `toml:"height"`
	CreateFrames int           `toml:"create_frames"`
	HoldFrames   int           `toml:"hold_frames"`
	FadeFrames   int           `toml:"fade_frames"`
	Delay        time.Duration `toml:"delay"`
	Background   scene.Color   `toml:"background"`
}

// DefaultOptions returns 1280x720 frames at 25 fps on black.
func DefaultOptions() Options {
	var o Options
	o.SetDefaults()
	return o
}

// SetDefaults fills zero fields.
func (o *Options) SetDefaults() {
	if o.Width <= 0 {
		o.Width = sink.DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = sink.DefaultHeight
	}
	if o.CreateFrames <= 0 {
		o.CreateFrames = DefaultCreateFrames
	}
	if o.HoldFrames <= 0 {
		o.HoldFrames = DefaultHoldFrames
	}
	if o.FadeFrames <= 0 {
		o.FadeFrames = DefaultFadeFrames
	}
	if o.Delay <= 0 {
		o.Delay = DefaultDelay
	}
	if o.Background == "" {
		o.Background = scene.Black
	}
}

// Frames returns the number of GIF frames Render emits for n scenes. Held
// frames are merged into a single frame with a longer delay.
func (o Options) Frames(n int) int {
	if n == 0 {
		return 0
	}
	return o.CreateFrames + 1 + (n-1)*(o.FadeFrames+1)
}

// Render encodes the scenes as a looping GIF. All scenes must share the same
// frame size.
func Render(ctx context.Context, scenes []*scene.Scene, opts Options) ([]byte, error) {
	opts.SetDefaults()
	if len(scenes) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no scenes to animate")
	}
	first := scenes[0]
	if first == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "scene 1 is empty")
	}
	for i, s := range scenes[1:] {
		if s == nil || s.FrameWidth != first.FrameWidth || s.FrameHeight != first.FrameHeight {
			return nil, errors.New(errors.ErrCodeInvalidInput, "scene %d does not share the first scene's frame", i+2)
		}
	}

	cv, err := sink.NewCanvas(first.FrameWidth, first.FrameHeight,
		sink.WithSize(opts.Width, opts.Height), sink.WithBackground(opts.Background))
	if err != nil {
		return nil, err
	}
	defer cv.Close()

	enc := &encoder{delay: centiseconds(opts.Delay)}
	frame := func(hold int, draw func() error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		cv.Clear()
		if err := draw(); err != nil {
			return err
		}
		enc.add(cv.Image(), hold)
		return nil
	}

	for i := 1; i <= opts.CreateFrames; i++ {
		st := sink.Stage{Created: float64(i) / float64(opts.CreateFrames), Opacity: 1}
		if err := frame(1, func() error { return cv.Draw(first, st) }); err != nil {
			return nil, err
		}
	}
	if err := frame(opts.HoldFrames, func() error { return cv.Draw(first, sink.Complete) }); err != nil {
		return nil, err
	}

	for i := 1; i < len(scenes); i++ {
		prev, next := scenes[i-1], scenes[i]
		for f := 1; f <= opts.FadeFrames; f++ {
			t := float64(f) / float64(opts.FadeFrames)
			err := frame(1, func() error {
				if err := cv.Draw(prev, sink.Stage{Created: 1, Opacity: 1 - t}); err != nil {
					return err
				}
				return cv.Draw(next, sink.Stage{Created: 1, Opacity: t})
			})
			if err != nil {
				return nil, err
			}
		}
		if err := frame(opts.HoldFrames, func() error { return cv.Draw(next, sink.Complete) }); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, &enc.g); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode gif")
	}
	return buf.Bytes(), nil
}

type encoder struct {
	g     gif.GIF
	delay int
}

// add quantizes img to the Plan 9 palette and appends it, shown for hold
// frame periods.
func (e *encoder) add(img image.Image, hold int) {
	b := img.Bounds()
	p := image.NewPaletted(b, palette.Plan9)
	draw.Draw(p, b, img, b.Min, draw.Src)
	e.g.Image = append(e.g.Image, p)
	e.g.Delay = append(e.g.Delay, e.delay*hold)
	e.g.Config = image.Config{ColorModel: p.Palette, Width: b.Dx(), Height: b.Dy()}
}

func centiseconds(d time.Duration) int {
	return max(1, int(d/(10*time.Millisecond)))
}
