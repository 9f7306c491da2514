package pipeline

import (
	"github.com/matzehuels/animaut/pkg/errors"
	"github.com/matzehuels/animaut/pkg/render/sink"
	"github.com/matzehuels/animaut/pkg/scene"
)

// Render generates output artifacts in the requested formats.
func Render(scn *scene.Scene, opts Options) (map[sink.Format][]byte, error) {
	artifacts := make(map[sink.Format][]byte)
	for _, f := range opts.SinkFormats() {
		data, err := RenderFormat(scn, f, opts)
		if err != nil {
			return nil, err
		}
		artifacts[f] = data
	}
	return artifacts, nil
}

// RenderFormat encodes scn in a single format.
func RenderFormat(scn *scene.Scene, f sink.Format, opts Options) ([]byte, error) {
	data, err := sink.Render(scn, f, opts.SinkOptions()...)
	if err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", f)
	}
	return data, nil
}
