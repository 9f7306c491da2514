package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"image/gif"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/animaut/pkg/cache"
	"github.com/matzehuels/animaut/pkg/errors"
	"github.com/matzehuels/animaut/pkg/render/anim"
	"github.com/matzehuels/animaut/pkg/render/sink"
	"github.com/matzehuels/animaut/pkg/scene"
)

const evenOnes = `digraph even {
	rankdir=LR;
	node [shape=circle];
	init [shape=point];
	init -> even;
	even [shape=doublecircle];
	even -> odd [label="1"];
	odd -> even [label="1"];
	even -> even [label="0"];
	odd -> odd [label="0"];
}`

const twoStates = `digraph g {
	a -> b;
}`

// memCache is an in-memory cache.Cache counting its hits.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	hits int
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[key]
	if ok {
		c.hits++
	}
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

func quietLogger() *log.Logger {
	return log.NewWithOptions(&bytes.Buffer{}, log.Options{})
}

func TestRunnerExecute(t *testing.T) {
	ctx := context.Background()
	mc := newMemCache()
	r := NewRunner(mc, nil, quietLogger())

	opts := Options{Formats: []string{"svg", "json"}, NoSnapshots: true}
	res, err := r.Execute(ctx, []byte(evenOnes), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if res.Stats.NodeCount != 2 {
		t.Errorf("NodeCount = %d, want 2 (point node excluded)", res.Stats.NodeCount)
	}
	if res.Stats.EdgeCount != 5 {
		t.Errorf("EdgeCount = %d, want 5", res.Stats.EdgeCount)
	}
	if res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Error("first run should miss the cache")
	}
	if !bytes.Contains(res.LaidOut, []byte("bb=")) {
		t.Error("laid-out DOT has no bounding box")
	}
	if !strings.HasPrefix(string(res.Artifacts[sink.FormatSVG]), "<svg") {
		t.Error("svg artifact missing")
	}
	if !json.Valid(res.Artifacts[sink.FormatJSON]) {
		t.Error("json artifact is not valid JSON")
	}

	// Every edge carries an arrowhead; all but the one from the initial
	// marker carry a label.
	labeled := 0
	for _, e := range res.Scene.Edges() {
		if len(scene.Find[*scene.ArrowTip](e)) != 1 {
			t.Errorf("edge %s should have one arrowhead", e.ID)
		}
		labeled += len(scene.Find[*scene.Text](e))
	}
	if labeled != 4 {
		t.Errorf("labeled edges = %d, want 4", labeled)
	}

	again, err := r.Execute(ctx, []byte(evenOnes), opts)
	if err != nil {
		t.Fatalf("second Execute() error: %v", err)
	}
	if !again.CacheInfo.LayoutHit || !again.CacheInfo.RenderHit {
		t.Errorf("second run cache info = %+v, want hits", again.CacheInfo)
	}
	if !bytes.Equal(again.Artifacts[sink.FormatSVG], res.Artifacts[sink.FormatSVG]) {
		t.Error("cached svg differs")
	}

	refreshed, err := r.Execute(ctx, []byte(evenOnes), Options{Formats: []string{"svg"}, NoSnapshots: true, Refresh: true})
	if err != nil {
		t.Fatalf("refresh Execute() error: %v", err)
	}
	if refreshed.CacheInfo.LayoutHit {
		t.Error("Refresh should skip the layout cache")
	}
}

func TestRunnerPolicyChangesArtifacts(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(newMemCache(), nil, quietLogger())

	bez, err := r.Execute(ctx, []byte(twoStates), Options{NoSnapshots: true})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	poly, err := r.Execute(ctx, []byte(twoStates), Options{NoSnapshots: true, Policy: "polyline"})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !poly.CacheInfo.LayoutHit {
		t.Error("policy should not affect the layout cache")
	}
	if poly.CacheInfo.RenderHit {
		t.Error("policy should affect the artifact cache")
	}
	if bytes.Equal(bez.Artifacts[sink.FormatSVG], poly.Artifacts[sink.FormatSVG]) {
		t.Error("bezier and polyline renderings should differ")
	}
}

func TestRunnerSnapshots(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "graphs")
	r := NewRunner(nil, nil, quietLogger())

	opts := Options{SnapshotDir: dir, SnapshotFormat: "svg"}
	for i := 0; i < 2; i++ {
		res, err := r.Scene(ctx, []byte(twoStates), opts)
		if err != nil {
			t.Fatalf("Scene() error: %v", err)
		}
		if want := filepath.Join(dir, []string{"0.svg", "1.svg"}[i]); res.Snapshot != want {
			t.Errorf("Snapshot = %q, want %q", res.Snapshot, want)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("snapshot dir has %d files, want 2", len(entries))
	}

	// A fresh runner restarts numbering.
	res, err := NewRunner(nil, nil, quietLogger()).Scene(ctx, []byte(twoStates), opts)
	if err != nil {
		t.Fatalf("Scene() error: %v", err)
	}
	if filepath.Base(res.Snapshot) != "0.svg" {
		t.Errorf("Snapshot = %q, want 0.svg", res.Snapshot)
	}
}

func TestRunnerErrors(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, quietLogger())

	tests := []struct {
		name string
		src  string
		opts Options
		code errors.Code
	}{
		{"empty source", "  ", Options{}, errors.ErrCodeInvalidDOT},
		{"malformed DOT", "digraph {", Options{}, errors.ErrCodeInvalidDOT},
		{"bad engine", twoStates, Options{Engine: "osage"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.NoSnapshots = true
			_, err := r.Execute(ctx, []byte(tt.src), tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("Execute() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestRunnerAnimate(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, quietLogger())

	opts := Options{
		NoSnapshots: true,
		Width:       160,
		Height:      90,
		Animation:   anim.Options{CreateFrames: 3, HoldFrames: 2, FadeFrames: 2},
	}
	data, err := r.Animate(ctx, [][]byte{[]byte(twoStates), []byte(evenOnes)}, opts)
	if err != nil {
		t.Fatalf("Animate() error: %v", err)
	}
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("gif.DecodeAll() error: %v", err)
	}
	if len(g.Image) != 3+1+2+1 {
		t.Errorf("frames = %d, want 7", len(g.Image))
	}
	if g.Config.Width != 160 {
		t.Errorf("width = %d, want 160", g.Config.Width)
	}

	_, err = r.Animate(ctx, [][]byte{[]byte(twoStates), []byte("graph {")}, opts)
	if !errors.Is(err, errors.ErrCodeInvalidDOT) || !strings.Contains(err.Error(), "graph 2") {
		t.Errorf("Animate() error = %v, want INVALID_DOT naming graph 2", err)
	}
}

func TestExampleGraphs(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "..", "examples", "*.dot"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Skip("no example graphs")
	}

	r := NewRunner(nil, nil, quietLogger())
	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			src, err := os.ReadFile(file)
			if err != nil {
				t.Fatal(err)
			}
			res, err := r.Execute(context.Background(), src, Options{Formats: []string{"svg"}, NoSnapshots: true})
			if err != nil {
				t.Fatalf("Execute() error: %v", err)
			}
			if res.Stats.NodeCount == 0 || res.Stats.EdgeCount == 0 {
				t.Errorf("stats = %+v, want states and transitions", res.Stats)
			}
		})
	}
}

var _ cache.Cache = (*memCache)(nil)
