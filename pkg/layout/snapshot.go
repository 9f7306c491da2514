package layout

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/animaut/pkg/errors"
)

// DefaultSnapshotDir is where snapshots go unless configured otherwise.
const DefaultSnapshotDir = "media/graphs"

var snapshotFormats = map[string]graphviz.Format{
	"png": graphviz.PNG,
	"jpg": graphviz.JPG,
	"svg": graphviz.SVG,
}

// Snapshotter writes a numbered image of each raw layout to a directory.
// Numbers start at 0 and increase by one per Snapshot call, whether or not
// the write succeeds.
type Snapshotter struct {
	engine *Engine
	dir    string
	format string

	mu   sync.Mutex
	next int
}

// NewSnapshotter returns a Snapshotter writing images in format (png, jpg or
// svg) under dir.
func NewSnapshotter(e *Engine, dir, format string) (*Snapshotter, error) {
	if _, ok := snapshotFormats[format]; !ok {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported snapshot format %q (want png, jpg or svg)", format)
	}
	if dir == "" {
		dir = DefaultSnapshotDir
	}
	return &Snapshotter{engine: e, dir: dir, format: format}, nil
}

// Dir returns the snapshot directory.
func (s *Snapshotter) Dir() string { return s.dir }

// Snapshot lays out src and writes it to <dir>/<n>.<format>, creating the
// directory if needed. It returns the written path.
func (s *Snapshotter) Snapshot(ctx context.Context, src []byte) (string, error) {
	s.mu.Lock()
	n := s.next
	s.next++
	s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "create snapshot dir")
	}
	path := filepath.Join(s.dir, fmt.Sprintf("%d.%s", n, s.format))
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "create snapshot")
	}
	if err := s.engine.Render(ctx, src, snapshotFormats[s.format], f); err != nil {
		f.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "write snapshot")
	}
	return path, nil
}
