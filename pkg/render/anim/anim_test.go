package anim

import (
	"bytes"
	"context"
	"image/gif"
	"testing"
	"time"

	"github.com/matzehuels/animaut/pkg/errors"
	"github.com/matzehuels/animaut/pkg/scene"
)

func ring(x float64) *scene.Scene {
	root := scene.NewGroup("g", scene.RoleRoot,
		scene.NewGroup("q", scene.RoleNode,
			&scene.Circle{Center: scene.Pt(x, 0), Radius: 1, Color: scene.White},
		),
	)
	return &scene.Scene{Root: root, FrameWidth: 16, FrameHeight: 9, Ratio: 1}
}

func smallOptions() Options {
	return Options{Width: 160, Height: 90, CreateFrames: 4, HoldFrames: 3, FadeFrames: 2, Delay: 50 * time.Millisecond}
}

func TestSetDefaults(t *testing.T) {
	o := DefaultOptions()
	if o.Width != 1280 || o.Height != 720 {
		t.Errorf("size = %dx%d, want 1280x720", o.Width, o.Height)
	}
	if o.CreateFrames != DefaultCreateFrames || o.HoldFrames != DefaultHoldFrames || o.FadeFrames != DefaultFadeFrames {
		t.Errorf("frames = %d/%d/%d", o.CreateFrames, o.HoldFrames, o.FadeFrames)
	}
	if o.Delay != DefaultDelay || o.Background != scene.Black {
		t.Errorf("delay = %v background = %v", o.Delay, o.Background)
	}
}

func TestRender(t *testing.T) {
	opts := smallOptions()
	data, err := Render(context.Background(), []*scene.Scene{ring(-2), ring(2)}, opts)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("gif.DecodeAll() error: %v", err)
	}
	if want := opts.Frames(2); len(g.Image) != want {
		t.Fatalf("frames = %d, want %d", len(g.Image), want)
	}
	if g.Config.Width != 160 || g.Config.Height != 90 {
		t.Errorf("size = %dx%d, want 160x90", g.Config.Width, g.Config.Height)
	}

	wantDelays := []int{5, 5, 5, 5, 15, 5, 5, 15}
	for i, d := range g.Delay {
		if d != wantDelays[i] {
			t.Errorf("Delay[%d] = %d, want %d", i, d, wantDelays[i])
		}
	}
}

func TestRenderErrors(t *testing.T) {
	ctx := context.Background()
	if _, err := Render(ctx, nil, smallOptions()); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Render(nil) error = %v, want INVALID_INPUT", err)
	}

	other := ring(0)
	other.FrameWidth = 8
	if _, err := Render(ctx, []*scene.Scene{ring(0), other}, smallOptions()); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Render(mismatched frames) error = %v, want INVALID_INPUT", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := Render(cancelled, []*scene.Scene{ring(0)}, smallOptions()); err == nil {
		t.Error("Render() should stop on a cancelled context")
	}
}
