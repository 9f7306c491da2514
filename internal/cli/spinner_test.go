package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func quietSpinner(ctx context.Context, msg string) (*Spinner, *bytes.Buffer) {
	var buf bytes.Buffer
	s := newSpinner(ctx, msg)
	s.w = &buf
	s.tty = true
	return s, &buf
}

func TestSpinnerDraws(t *testing.T) {
	s, buf := quietSpinner(context.Background(), "Rendering...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	out := buf.String()
	if !strings.Contains(out, "Rendering...") {
		t.Errorf("spinner output %q does not contain message", out)
	}
	if s.Cancelled() {
		t.Error("Cancelled() = true after Stop")
	}
}

func TestSpinnerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s, _ := quietSpinner(ctx, "Rendering...")
	s.Start()
	cancel()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Cancelled() = false after parent context was cancelled")
	}
	s.Stop()
}

func TestSpinnerStopTwice(t *testing.T) {
	s, _ := quietSpinner(context.Background(), "Rendering...")
	s.Start()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithError(t *testing.T) {
	out := captureUI(t)
	s, _ := quietSpinner(context.Background(), "Rendering...")
	s.Start()
	s.StopWithError("Render failed")

	if !strings.Contains(out.String(), "Render failed") {
		t.Errorf("output %q does not contain error message", out.String())
	}
}

func TestSpinnerUpdate(t *testing.T) {
	s, buf := quietSpinner(context.Background(), "Laying out graph 1...")
	s.Start()
	time.Sleep(120 * time.Millisecond)
	s.Update("Laying out graph 2...")
	time.Sleep(120 * time.Millisecond)
	s.Stop()

	if !strings.Contains(buf.String(), "graph 2") {
		t.Errorf("spinner output %q does not show the updated message", buf.String())
	}
}

func TestSpinnerSilentWithoutTerminal(t *testing.T) {
	s, buf := quietSpinner(context.Background(), "Rendering...")
	s.tty = false
	s.Start()
	time.Sleep(120 * time.Millisecond)
	s.Stop()

	if buf.Len() != 0 {
		t.Errorf("spinner wrote %q to a non-terminal", buf.String())
	}
}
