package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/animaut/pkg/errors"
	"github.com/matzehuels/animaut/pkg/pipeline"
	"github.com/matzehuels/animaut/pkg/render/sink"
)

// stdinName is the argument that selects standard input or output.
const stdinName = "-"

// renderCommand creates the render command: DOT in, SVG/PNG/JSON out.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags   pipelineFlags
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "render [file.dot|-]",
		Short: "Convert an automaton diagram to SVG, PNG or JSON",
		Long: `Convert an automaton diagram to SVG, PNG or JSON.

The DOT file is laid out with Graphviz, translated into a scene of state
circles, transition curves, arrowheads and labels, and encoded in each
requested format. Use "-" to read from standard input. Without an argument,
an interactive picker lists the .dot files in the current directory.

Layouts and rendered outputs are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options()
			if err := flags.apply(cmd.Flags(), &opts); err != nil {
				return err
			}

			input, err := resolveInput(cmd.Context(), args, cmd.InOrStdin())
			if err != nil || input == "" {
				return err
			}
			src, err := readSource(input, cmd.InOrStdin())
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), input, src, opts, output, noCache, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format), base path (multiple), or - for stdout")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	flags.register(cmd.Flags(), true)

	return cmd
}

// runRender converts src and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input string, src []byte, opts pipeline.Options, output string, noCache bool, stdout io.Writer) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	spinner := newSpinner(ctx, fmt.Sprintf("Rendering %s...", displayName(input)))
	spinner.Start()

	result, err := runner.Execute(ctx, src, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	formats := opts.SinkFormats()
	if output == stdinName {
		if len(formats) != 1 {
			return errors.New(errors.ErrCodeInvalidInput, "cannot write %d formats to stdout", len(formats))
		}
		_, err := stdout.Write(result.Artifacts[formats[0]])
		return err
	}

	paths, err := outputPaths(input, output, formats)
	if err != nil {
		return err
	}
	for _, f := range formats {
		if err := os.WriteFile(paths[f], result.Artifacts[f], 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write %s", paths[f])
		}
	}
	prog.done("rendered", "states", result.Stats.NodeCount, "transitions", result.Stats.EdgeCount)

	printSuccess("Render complete")
	for _, f := range formats {
		printFile(paths[f])
	}
	if result.Snapshot != "" {
		printDetail("layout snapshot: %s", result.Snapshot)
	}
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	return nil
}

// resolveInput returns the DOT file to read. With no argument it reads
// standard input when piped, and otherwise asks the user to pick a file. An
// empty result means the user cancelled.
func resolveInput(ctx context.Context, args []string, stdin io.Reader) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if !isTerminal(stdin) {
		return stdinName, nil
	}
	return pickDOTFile(ctx, ".")
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// readSource reads the DOT text named by input, "-" meaning stdin.
func readSource(input string, stdin io.Reader) ([]byte, error) {
	if input == stdinName {
		src, err := io.ReadAll(stdin)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "read stdin")
		}
		return src, nil
	}
	if err := errors.ValidatePath(input); err != nil {
		return nil, err
	}
	src, err := os.ReadFile(input)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "%s: no such file", input)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", input)
	}
	return src, nil
}

// outputPaths maps each format to the file it is written to.
//
// A single format goes to output as given. Several formats share output as a
// base path with the format as extension. Without output, the input's base
// name is used ("graph" when reading stdin).
func outputPaths(input, output string, formats []sink.Format) (map[sink.Format]string, error) {
	paths := make(map[sink.Format]string, len(formats))
	if output != "" {
		if err := errors.ValidatePath(output); err != nil {
			return nil, err
		}
		if len(formats) == 1 {
			paths[formats[0]] = output
			return paths, nil
		}
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + string(f)
	}
	return paths, nil
}

// basePath strips a known format extension from output, or derives the base
// from input when output is empty.
func basePath(output, input string) string {
	if output == "" {
		if input == stdinName {
			return "graph"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if _, err := sink.ParseFormat(strings.TrimPrefix(ext, ".")); err == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func displayName(input string) string {
	if input == stdinName {
		return "stdin"
	}
	return filepath.Base(input)
}
