package sink

import (
	"encoding/json"

	"github.com/matzehuels/animaut/pkg/errors"
	"github.com/matzehuels/animaut/pkg/scene"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	indent bool
}

// WithIndent pretty-prints the output with two-space indentation.
func WithIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

// RenderJSON exports the scene graph. Every drawable carries a "kind" field
// (group, circle, path, arrow, text) so consumers can decode the tree without
// the Go types.
func RenderJSON(scn *scene.Scene, opts ...JSONOption) ([]byte, error) {
	if err := checkScene(scn); err != nil {
		return nil, err
	}
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}

	var (
		data []byte
		err  error
	)
	if r.indent {
		data, err = json.MarshalIndent(scn, "", "  ")
	} else {
		data, err = json.Marshal(scn)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode scene")
	}
	return append(data, '\n'), nil
}
