package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/animaut/pkg/errors"
)

// defaultAnimationOutput is written when -o is not given.
const defaultAnimationOutput = "animation.gif"

// animateCommand creates the animate command: one or more DOT files in, one
// animated GIF out.
func (c *CLI) animateCommand() *cobra.Command {
	var (
		flags   pipelineFlags
		output  string
		noCache bool
		create  int
		hold    int
		fade    int
		delay   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "animate <a.dot> [b.dot ...]",
		Short: "Animate one or more automaton diagrams as a GIF",
		Long: `Animate one or more automaton diagrams as a GIF.

The first diagram is drawn progressively: transitions trace along their
curves while states sweep in, then arrowheads and labels fade in. Each
following diagram cross-fades from the one before it, which shows how an
automaton changes between construction steps.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts := c.options()
			fs := cmd.Flags()
			if fs.Changed("create-frames") {
				opts.Animation.CreateFrames = create
			}
			if fs.Changed("hold-frames") {
				opts.Animation.HoldFrames = hold
			}
			if fs.Changed("fade-frames") {
				opts.Animation.FadeFrames = fade
			}
			if fs.Changed("delay") {
				opts.Animation.Delay = delay
			}
			if fs.Changed("width") {
				opts.Animation.Width = flags.width
			}
			if fs.Changed("height") {
				opts.Animation.Height = flags.height
			}
			if err := flags.apply(fs, &opts); err != nil {
				return err
			}
			if err := errors.ValidatePath(output); err != nil {
				return err
			}

			sources := make([][]byte, len(args))
			for i, input := range args {
				src, err := readSource(input, cmd.InOrStdin())
				if err != nil {
					return err
				}
				sources[i] = src
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			prog := newProgress(loggerFromContext(ctx))
			spinner := newSpinner(ctx, fmt.Sprintf("Animating %d diagrams...", len(args)))
			spinner.Start()
			gif, err := runner.Animate(ctx, sources, opts)
			if err != nil {
				spinner.StopWithError("Animation failed")
				return err
			}
			spinner.Update(fmt.Sprintf("Writing %s...", output))
			if err := os.WriteFile(output, gif, 0o644); err != nil {
				spinner.StopWithError("Animation failed")
				return errors.Wrap(errors.ErrCodeInternal, err, "write %s", output)
			}
			spinner.Stop()
			prog.done("animated", "diagrams", len(args), "frames", opts.Animation.Frames(len(args)))

			printSuccess("Animation complete")
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", defaultAnimationOutput, "output GIF file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().IntVar(&create, "create-frames", 0, "frames spent drawing the first diagram (default 30)")
	cmd.Flags().IntVar(&hold, "hold-frames", 0, "frames each diagram stays on screen (default 15)")
	cmd.Flags().IntVar(&fade, "fade-frames", 0, "frames of each cross-fade (default 15)")
	cmd.Flags().DurationVar(&delay, "delay", 0, "delay per frame (default 40ms)")
	flags.register(cmd.Flags(), false)

	return cmd
}
