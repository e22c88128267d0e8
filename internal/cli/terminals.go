package cli

import (
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/schemaforge/pkg/errors"
	"github.com/matzehuels/schemaforge/pkg/report"
)

// terminalsCommand creates the terminals command.
func (c *CLI) terminalsCommand() *cobra.Command {
	var (
		output string
		strips []string
		fresh  bool
	)

	cmd := &cobra.Command{
		Use:   "terminals [project]",
		Short: "Print or export the terminal strip report",
		Args:  cobra.MaximumNArgs(1),

		ValidArgsFunction: completeProjectFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := buildOpts{fresh: fresh}
			popts, err := opts.pipelineOptions(projectArg(args))
			if err != nil {
				return err
			}
			res, err := c.execute(cmd.Context(), popts, true)
			if err != nil {
				return err
			}

			rows := res.Terminals
			if len(strips) > 0 {
				rows = slices.DeleteFunc(slices.Clone(rows), func(r report.Row) bool {
					return !slices.Contains(strips, r.Terminal)
				})
			}
			printWarnings(res.Warnings)

			if output != "" {
				if err := errors.ValidatePath(output); err != nil {
					return err
				}
				if err := report.ExportCSV(output, rows, res.HasBridges); err != nil {
					return err
				}
				printSuccess("Wrote %d terminal rows", len(rows))
				printFile(output)
				return nil
			}

			records := make([][]string, len(rows))
			for i, r := range rows {
				records[i] = r.Record(res.HasBridges)
			}
			printTable(report.Header(res.HasBridges), records)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the report as CSV instead of printing it")
	cmd.Flags().StringSliceVarP(&strips, "terminal", "t", nil, "only show these terminal strips")
	cmd.Flags().BoolVar(&fresh, "fresh", false, "ignore the snapshot and start numbering from the seeds")

	return cmd
}
