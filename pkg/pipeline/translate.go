package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/animaut/pkg/layout"
	"github.com/matzehuels/animaut/pkg/observability"
	"github.com/matzehuels/animaut/pkg/scene"
	"github.com/matzehuels/animaut/pkg/translate"
)

// Translate parses laid-out DOT and builds its scene.
func Translate(ctx context.Context, laidOut []byte, opts Options) (*layout.Graph, *scene.Scene, error) {
	start := time.Now()
	g, scn, err := translateGraph(laidOut, opts)
	nodes, edges := 0, 0
	if scn != nil {
		nodes, edges = len(scn.Nodes()), len(scn.Edges())
	}
	observability.Pipeline().OnTranslateComplete(ctx, nodes, edges, time.Since(start), err)
	return g, scn, err
}

func translateGraph(laidOut []byte, opts Options) (*layout.Graph, *scene.Scene, error) {
	tr, err := translate.New(opts.TranslateOptions())
	if err != nil {
		return nil, nil, err
	}
	g, err := layout.Parse(laidOut)
	if err != nil {
		return nil, nil, err
	}
	scn, err := tr.Translate(g)
	if err != nil {
		return nil, nil, err
	}
	return g, scn, nil
}
