package sink

import (
	"github.com/matzehuels/animaut/pkg/errors"
	"github.com/matzehuels/animaut/pkg/scene"
)

// Default canvas size in pixels.
const (
	DefaultWidth  = 1280
	DefaultHeight = 720
)

// Option configures SVG and PNG rendering.
type Option func(*config)

type config struct {
	width, height int
	background    scene.Color
}

// WithSize sets the canvas size in pixels. Non-positive values keep the
// default.
func WithSize(width, height int) Option {
	return func(c *config) {
		if width > 0 {
			c.width = width
		}
		if height > 0 {
			c.height = height
		}
	}
}

// WithBackground sets the canvas fill color (default black).
func WithBackground(col scene.Color) Option {
	return func(c *config) {
		if col != "" {
			c.background = col
		}
	}
}

func newConfig(opts ...Option) config {
	c := config{width: DefaultWidth, height: DefaultHeight, background: scene.Black}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func checkScene(scn *scene.Scene) error {
	if scn == nil || scn.Root == nil {
		return errors.New(errors.ErrCodeInvalidInput, "empty scene")
	}
	if !(scn.FrameWidth > 0) || !(scn.FrameHeight > 0) {
		return errors.New(errors.ErrCodeInvalidInput, "scene frame %vx%v must be positive", scn.FrameWidth, scn.FrameHeight)
	}
	return nil
}
