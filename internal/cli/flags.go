package cli

import (
	"github.com/spf13/pflag"

	"github.com/matzehuels/animaut/pkg/pipeline"
	"github.com/matzehuels/animaut/pkg/render/sink"
)

// pipelineFlags are the conversion flags shared by render, layout, animate
// and serve. Only flags the user set override the config file.
type pipelineFlags struct {
	formats     string
	policy      string
	engine      string
	width       int
	height      int
	background  string
	noSnapshots bool
	snapshotDir string
	refresh     bool
}

// register adds the flags to fs. withFormats controls whether --format is
// offered.
func (f *pipelineFlags) register(fs *pflag.FlagSet, withFormats bool) {
	if withFormats {
		fs.StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	}
	fs.StringVar(&f.policy, "policy", "", "edge drawing: bezier (default), polyline")
	fs.StringVar(&f.engine, "engine", "", "Graphviz layout program: dot (default), neato, fdp, sfdp, circo, twopi")
	fs.IntVar(&f.width, "width", 0, "canvas width in pixels (default 1280)")
	fs.IntVar(&f.height, "height", 0, "canvas height in pixels (default 720)")
	fs.StringVar(&f.background, "background", "", "canvas color as #RRGGBB (default #000000)")
	fs.BoolVar(&f.noSnapshots, "no-snapshots", false, "do not write layout snapshots")
	fs.StringVar(&f.snapshotDir, "snapshot-dir", "", "directory for layout snapshots (default media/graphs)")
	fs.BoolVar(&f.refresh, "refresh", false, "ignore cached results")
}

// apply copies the flags the user set onto opts and validates the result.
func (f *pipelineFlags) apply(fs *pflag.FlagSet, opts *pipeline.Options) error {
	if fs.Changed("format") {
		formats, err := sink.ParseFormats(f.formats)
		if err != nil {
			return err
		}
		opts.Formats = make([]string, 0, len(formats))
		for _, format := range formats {
			opts.Formats = append(opts.Formats, string(format))
		}
	}
	if fs.Changed("policy") {
		opts.Policy = f.policy
	}
	if fs.Changed("engine") {
		opts.Engine = f.engine
	}
	if fs.Changed("width") {
		opts.Width = f.width
	}
	if fs.Changed("height") {
		opts.Height = f.height
	}
	if fs.Changed("background") {
		opts.Background = f.background
	}
	if fs.Changed("no-snapshots") {
		opts.NoSnapshots = f.noSnapshots
	}
	if fs.Changed("snapshot-dir") {
		opts.SnapshotDir = f.snapshotDir
	}
	opts.Refresh = f.refresh
	return opts.ValidateAndSetDefaults()
}
