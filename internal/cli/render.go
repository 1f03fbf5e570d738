package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blockflow/blockflow/pkg/pipeline"
	"github.com/blockflow/blockflow/pkg/render"
)

// renderCommand creates the render command for producing diagram artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output  string
		sink    string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a diagram to text, DOT, or SVG",
		Long: `Render a diagram to text, DOT, or SVG.

The render command reads a diagram file (JSON or TOML, detected from the
file extension) and writes the rendered artifact to stdout, or to a file
with --output. Pass "-" to read the diagram from stdin instead.

The default artifact is the text rendering itself. Use --format dot for a
Graphviz DOT export, or --format svg to render that DOT through Graphviz.
SVG results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			opts.Sink = sink
			opts.Output = output
			opts.NoCache = noCache
			if err := pipeline.ValidateSink(opts.Sink); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), opts)
		},
	}

	// Output flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&sink, "format", "f", pipeline.DefaultSink, "output format: text (default), dot, svg")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	// Render flags
	cmd.Flags().StringVar(&opts.Render.Style, "style", render.DefaultStyle, "glyph style: ascii (default), unicode")
	cmd.Flags().IntVar(&opts.Render.HMargin, "hmargin", render.DefaultHMargin, "gutter width in cells between grid columns")
	cmd.Flags().IntVar(&opts.Render.VMargin, "vmargin", render.DefaultVMargin, "gutter height in cells between grid rows")
	cmd.Flags().IntVar(&opts.Render.Padding, "padding", 0, "blank cells between block text and border")
	cmd.Flags().IntVar(&opts.Render.MaxWidth, "max-width", render.DefaultMaxWidth, "maximum canvas width in cells")
	cmd.Flags().IntVar(&opts.Render.MaxHeight, "max-height", render.DefaultMaxHeight, "maximum canvas height in cells")

	return cmd
}

// runRender executes the pipeline and presents the artifact.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options) error {
	runner, err := c.newRunner(opts.NoCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	// Only the SVG sink is slow enough to warrant a spinner.
	var spinner *Spinner
	if opts.Sink == pipeline.SinkSVG {
		spinner = newSpinnerWithContext(ctx, "Rendering SVG...")
		spinner.Start()
	}

	res, err := runner.Execute(ctx, opts)
	if err != nil {
		if spinner != nil {
			spinner.StopWithError("Render failed")
		}
		return fmt.Errorf("render: %w", err)
	}
	if spinner != nil {
		spinner.Stop()
	}

	// Stdout mode keeps the artifact pipeable; warnings go to the stderr
	// logger instead of decorated stdout lines.
	if opts.Output == "" || opts.Output == "-" {
		for _, w := range res.Render.Warnings {
			c.Logger.Warn("fallback route", "edge", w.From+" -> "+w.To, "reason", w.Reason)
		}
		_, err := os.Stdout.Write(res.Artifact)
		return err
	}

	printSuccess("Render complete")
	printFile(opts.Output)
	printStats(res.Stats.BlockCount, res.Stats.EdgeCount, res.CacheInfo.ArtifactHit)
	for _, w := range res.Render.Warnings {
		printWarning("%s", w)
	}
	return nil
}
