package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/animaut/pkg/layout"
	"github.com/matzehuels/animaut/pkg/observability"
)

// =============================================================================
// Layout
// =============================================================================

// Layout runs Graphviz on src without caching and returns the laid-out DOT.
func Layout(ctx context.Context, src []byte, opts Options) ([]byte, error) {
	engine, err := layout.NewEngine(layout.Algorithm(opts.Engine))
	if err != nil {
		return nil, err
	}

	observability.Pipeline().OnLayoutStart(ctx, opts.Engine)
	start := time.Now()
	laidOut, err := engine.Layout(ctx, src)
	observability.Pipeline().OnLayoutComplete(ctx, opts.Engine, time.Since(start), err)
	return laidOut, err
}
