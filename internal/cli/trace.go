package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/schemaforge/pkg/errors"
	sfio "github.com/matzehuels/schemaforge/pkg/io"
	"github.com/matzehuels/schemaforge/pkg/netlist"
	"github.com/matzehuels/schemaforge/pkg/registry"
	"github.com/matzehuels/schemaforge/pkg/report"
)

// traceCommand creates the trace command.
func (c *CLI) traceCommand() *cobra.Command {
	var (
		output     string
		tolerance  float64
		components bool
	)

	cmd := &cobra.Command{
		Use:   "trace <drawing.json>",
		Short: "Trace the wiring of a drawing through its terminals",
		Args:  cobra.ExactArgs(1),

		ValidArgsFunction: completeDrawings,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)

			elems, err := sfio.ImportJSON(args[0])
			if err != nil {
				return err
			}
			g := netlist.Build(elems, netlist.Options{Tolerance: tolerance})
			wires := g.Wires()
			prog.done("Traced " + args[0])

			if components {
				syms := netlist.Components(elems)
				records := make([][]string, 0, len(syms))
				for _, s := range syms {
					records = append(records, []string{s.Label, string(s.Kind), s.Description, s.MPN})
				}
				printTable([]string{"Tag", "Kind", "Description", "MPN"}, records)
				return nil
			}

			records := make([][]string, len(wires))
			open := 0
			for i, w := range wires {
				records[i] = w.Row().Record()
				if !w.From.Connected() || !w.To.Connected() {
					open++
				}
			}

			if output != "" {
				if err := errors.ValidatePath(output); err != nil {
					return err
				}
				if err := report.ExportRecords(output, registry.RowHeader, records); err != nil {
					return err
				}
				printSuccess("Wrote %d wires", len(wires))
				printFile(output)
			} else {
				printTable(registry.RowHeader, records)
			}
			if open > 0 {
				printWarning("%d terminal channel(s) with an unconnected side", open)
			}
			printDetail("%d nodes, tolerance %g", g.NodeCount(), g.Tolerance())
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the wiring list as CSV instead of printing it")
	cmd.Flags().Float64Var(&tolerance, "tolerance", netlist.DefaultTolerance, "node merge distance in drawing units")
	cmd.Flags().BoolVar(&components, "components", false, "list the drawing's components instead of its wiring")

	return cmd
}
