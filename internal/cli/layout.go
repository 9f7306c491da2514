package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/animaut/pkg/errors"
	"github.com/matzehuels/animaut/pkg/layout"
)

// layoutCommand creates the layout command, which prints the Graphviz
// layout that the translator consumes.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags   pipelineFlags
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "layout <file.dot|->",
		Short: "Print the Graphviz layout of an automaton diagram",
		Long: `Print the Graphviz layout of an automaton diagram.

The output is DOT text annotated with the bounding box, node positions, edge
splines and label positions that render converts into a scene. It is useful
for inspecting why a transition is drawn the way it is.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts := c.options()
			if err := flags.apply(cmd.Flags(), &opts); err != nil {
				return err
			}
			src, err := readSource(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			laidOut, cacheHit, err := runner.LayoutWithCacheInfo(ctx, src, opts)
			if err != nil {
				return err
			}
			g, err := layout.Parse(laidOut)
			if err != nil {
				return err
			}
			loggerFromContext(ctx).Debug("laid out graph",
				"nodes", len(g.Nodes),
				"edges", len(g.Edges),
				"cached", cacheHit)

			if output == "" || output == stdinName {
				_, err = cmd.OutOrStdout().Write(laidOut)
				return err
			}
			if err := errors.ValidatePath(output); err != nil {
				return err
			}
			if err := os.WriteFile(output, laidOut, 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "write %s", output)
			}
			printSuccess("Layout complete")
			printFile(output)
			printStats(len(g.Nodes), len(g.Edges), cacheHit)
			printNewline()
			printNextStep("Render", appName+" render "+args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&flags.engine, "engine", "", "Graphviz layout program: dot (default), neato, fdp, sfdp, circo, twopi")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "ignore cached results")

	return cmd
}
