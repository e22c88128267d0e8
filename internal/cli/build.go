package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/schemaforge/pkg/errors"
	"github.com/matzehuels/schemaforge/pkg/pipeline"
	"github.com/matzehuels/schemaforge/pkg/plc"
)

// buildOpts holds the command-line flags shared by commands that run the
// pipeline.
type buildOpts struct {
	formats         string  // graph formats, comma-separated
	output          string  // output directory override
	detailed        bool    // label graph edges with ports
	showUnconnected bool    // keep unconnected terminal pins in the graph
	pngScale        float64 // rsvg-convert zoom
	fresh           bool    // ignore the snapshot
	noSnapshot      bool    // do not write the snapshot
	noCache         bool    // bypass the render cache
	refresh         bool    // re-render even on a cache hit
}

func (o *buildOpts) pipelineOptions(path string) (pipeline.Options, error) {
	opts := pipeline.Options{
		ProjectPath:     path,
		Formats:         parseFormats(o.formats),
		Detailed:        o.detailed,
		ShowUnconnected: o.showUnconnected,
		PNGScale:        o.pngScale,
		Refresh:         o.refresh,
		Fresh:           o.fresh,
	}
	if o.output != "" {
		if err := errors.ValidatePath(o.output); err != nil {
			return opts, err
		}
	}
	return opts, opts.ValidateAndSetDefaults()
}

// buildCommand creates the build command.
func (c *CLI) buildCommand() *cobra.Command {
	var opts buildOpts

	cmd := &cobra.Command{
		Use:   "build [project]",
		Short: "Run the whole pipeline and write every report",
		Long: `Build loads a project file, numbers terminals, expands field devices,
assigns PLC channels, traces the drawing and writes the reports to the
project's output directory. The allocation state is saved to the project's
snapshot so the next build continues the numbering.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeProjectFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(cmd.Context(), projectArg(args), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "graph format(s): svg, png, pdf, dot (comma-separated, default none)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory (default from project)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label graph edges with port ids")
	cmd.Flags().BoolVar(&opts.showUnconnected, "show-unconnected", false, "keep unconnected terminal pins in the graph")
	cmd.Flags().Float64Var(&opts.pngScale, "png-scale", pipeline.DefaultPNGScale, "PNG zoom factor")
	cmd.Flags().BoolVar(&opts.fresh, "fresh", false, "ignore the snapshot and start numbering from the seeds")
	cmd.Flags().BoolVar(&opts.noSnapshot, "no-snapshot", false, "do not update the snapshot")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render graphs even when cached")

	return cmd
}

func (c *CLI) runBuild(ctx context.Context, path string, opts *buildOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	popts, err := opts.pipelineOptions(path)
	if err != nil {
		return err
	}
	res, err := c.execute(ctx, popts, opts.noCache)
	if err != nil {
		return err
	}

	written, err := pipeline.Write(res, pipeline.WriteOptions{Dir: opts.output, SkipSnapshot: opts.noSnapshot})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Built %s", res.Project.Name))

	printSuccess("Built %s", StyleHighlight.Render(res.Project.Name))
	printStats(res.Stats.Connections, res.Stats.Terminals, res.Stats.Wires, res.CacheInfo.GraphHit && len(res.Graph) > 0)
	if res.Resumed {
		printDetail("Resumed numbering from %s", res.Project.Snapshot)
	}
	printWarnings(res.Warnings)
	for _, p := range written {
		printFile(p)
	}
	if len(res.Rack) > 0 {
		printNewline()
		printNextStep("Inspect PLC channels", appName+" plc report -i "+path)
	}
	return nil
}

// execute runs the pipeline behind a stage spinner.
func (c *CLI) execute(ctx context.Context, opts pipeline.Options, noCache bool) (*pipeline.Result, error) {
	scope, err := filepath.Abs(opts.ProjectPath)
	if err != nil {
		return nil, err
	}
	runner, err := c.newRunner(noCache, scope)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	var res *pipeline.Result
	err = withStageSpinner(ctx, func() error {
		var err error
		res, err = runner.Execute(ctx, opts)
		return err
	})
	return res, err
}

// printWarnings lists resolution shortfalls.
func printWarnings(warnings []plc.Warning) {
	for _, w := range warnings {
		printWarning("%s", w)
	}
}
