package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/schemaforge/pkg/errors"
	sfio "github.com/matzehuels/schemaforge/pkg/io"
	"github.com/matzehuels/schemaforge/pkg/netlist"
	"github.com/matzehuels/schemaforge/pkg/pipeline"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	output          string  // output base path
	formats         string  // comma-separated formats
	tolerance       float64 // node merge distance
	detailed        bool    // label edges with ports
	showUnconnected bool    // keep unconnected pins
	pngScale        float64 // rsvg-convert zoom
	noCache         bool
	refresh         bool
}

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "graph <drawing.json>",
		Short: "Render the traced wiring of a drawing with Graphviz",
		Args:  cobra.ExactArgs(1),

		ValidArgsFunction: completeDrawings,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.formats == "" {
				opts.formats = pipeline.FormatSVG
			}
			return c.runGraph(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path (default: input without extension)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf, dot (comma-separated)")
	cmd.Flags().Float64Var(&opts.tolerance, "tolerance", netlist.DefaultTolerance, "node merge distance in drawing units")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label edges with port ids")
	cmd.Flags().BoolVar(&opts.showUnconnected, "show-unconnected", false, "keep unconnected terminal pins")
	cmd.Flags().Float64Var(&opts.pngScale, "png-scale", pipeline.DefaultPNGScale, "PNG zoom factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")

	return cmd
}

func (c *CLI) runGraph(cmd *cobra.Command, input string, opts *graphOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	elems, err := sfio.ImportJSON(input)
	if err != nil {
		return err
	}
	wires := netlist.Build(elems, netlist.Options{Tolerance: opts.tolerance}).Wires()
	if len(wires) == 0 {
		printWarning("%s has no terminals to trace", input)
		return nil
	}
	logger.Debug("traced drawing", "wires", len(wires))

	dot := netlist.ToDOT(wires, netlist.DOTOptions{
		Detailed:        opts.detailed,
		ShowUnconnected: opts.showUnconnected,
	})

	runner, err := c.newRunner(opts.noCache, "")
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering graph...")
	spinner.Start()
	graphs, hit, err := runner.RenderGraph(ctx, dot, pipeline.Options{
		Formats:         parseFormats(opts.formats),
		Detailed:        opts.detailed,
		ShowUnconnected: opts.showUnconnected,
		PNGScale:        opts.pngScale,
		Refresh:         opts.refresh,
	})
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	base := basePath(opts.output, input)
	if err := errors.ValidatePath(base); err != nil {
		return err
	}
	printSuccess("Rendered %d wires", len(wires))
	printStats(0, 0, len(wires), hit)
	for _, format := range parseFormats(opts.formats) {
		path := base + "." + format
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		if err := os.WriteFile(path, graphs[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

// basePath derives the output base path. If output is empty, it strips the
// extension from input; if output ends in a graph format extension, that
// extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
