package layout

import (
	"bytes"
	"context"
	"io"
	"slices"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/animaut/pkg/errors"
)

// Algorithm names a Graphviz layout program.
type Algorithm string

const (
	AlgorithmDot   Algorithm = "dot"
	AlgorithmNeato Algorithm = "neato"
	AlgorithmFdp   Algorithm = "fdp"
	AlgorithmSfdp  Algorithm = "sfdp"
	AlgorithmCirco Algorithm = "circo"
	AlgorithmTwopi Algorithm = "twopi"
)

// Algorithms lists the supported layout programs.
var Algorithms = []Algorithm{AlgorithmDot, AlgorithmNeato, AlgorithmFdp, AlgorithmSfdp, AlgorithmCirco, AlgorithmTwopi}

var graphvizLayouts = map[Algorithm]graphviz.Layout{
	AlgorithmDot:   graphviz.DOT,
	AlgorithmNeato: graphviz.NEATO,
	AlgorithmFdp:   graphviz.FDP,
	AlgorithmSfdp:  graphviz.SFDP,
	AlgorithmCirco: graphviz.CIRCO,
	AlgorithmTwopi: graphviz.TWOPI,
}

// Engine runs Graphviz layouts in-process. An Engine holds no Graphviz state
// between calls and is safe for concurrent use.
type Engine struct {
	algorithm Algorithm
}

// NewEngine returns an engine for the given algorithm.
func NewEngine(a Algorithm) (*Engine, error) {
	if !slices.Contains(Algorithms, a) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown layout algorithm %q", a)
	}
	return &Engine{algorithm: a}, nil
}

// Algorithm returns the layout program the engine runs.
func (e *Engine) Algorithm() Algorithm { return e.algorithm }

// Layout lays out the DOT source and returns it as DOT text annotated with
// the computed geometry (bb, pos, lp).
func (e *Engine) Layout(ctx context.Context, src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.Render(ctx, src, graphviz.XDOT, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Render lays out the DOT source and writes it to w in the given Graphviz
// output format.
func (e *Engine) Render(ctx context.Context, src []byte, format graphviz.Format, w io.Writer) error {
	if err := errors.ValidateSource(src); err != nil {
		return err
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return errors.Wrap(errors.ErrCodeLayoutFailed, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes(src)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDOT, err, "parse DOT")
	}
	defer g.Close()

	gv.SetLayout(graphvizLayouts[e.algorithm])
	if err := gv.Render(ctx, g, format, w); err != nil {
		return errors.Wrap(errors.ErrCodeLayoutFailed, err, "%s layout", e.algorithm)
	}
	return nil
}
