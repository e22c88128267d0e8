package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/schemaforge/pkg/errors"
	"github.com/matzehuels/schemaforge/pkg/plc"
	"github.com/matzehuels/schemaforge/pkg/project"
	"github.com/matzehuels/schemaforge/pkg/registry"
	"github.com/matzehuels/schemaforge/pkg/report"
)

// plcCommand creates the plc command group.
func (c *CLI) plcCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plc",
		Short: "Assign and inspect PLC channels",
	}

	cmd.AddCommand(c.plcResolveCommand())
	cmd.AddCommand(c.plcReportCommand())

	return cmd
}

// plcResolveCommand creates the "plc resolve" subcommand.
func (c *CLI) plcResolveCommand() *cobra.Command {
	var projectPath, output string

	cmd := &cobra.Command{
		Use:   "resolve <connections.csv>",
		Short: "Assign PLC channels to the generic references of a connection CSV",
		Long: `Resolve reads six-column connection rows and replaces every generic PLC
reference such as "PLC:DI" with a concrete channel of the project's rack.
Rows that already name a module keep their channel.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := project.Load(projectPath)
			if err != nil {
				return err
			}
			rack, err := p.BuildRack()
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			read, err := report.ReadCSV(f)
			f.Close()
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", args[0])
			}
			var rows []registry.Row
			for _, r := range read {
				if !r.IsBlank() {
					rows = append(rows, r.Row)
				}
			}

			res := plc.Resolve(rows, rack)
			records := make([][]string, len(res.Rows))
			for i, r := range res.Rows {
				records[i] = r.Record()
			}
			if output == "" {
				printTable(registry.RowHeader, records)
			} else {
				if err := report.ExportRecords(output, registry.RowHeader, records); err != nil {
					return err
				}
				printSuccess("Resolved %d rows", len(res.Rows))
				printFile(output)
			}
			printWarnings(res.Warnings)
			if n := res.Dropped(); n > 0 {
				return fmt.Errorf("%d request(s) could not be assigned", n)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectPath, "project", "p", defaultProject, "project file with the rack")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the resolved rows as CSV instead of printing them")

	return cmd
}

// plcReportCommand creates the "plc report" subcommand.
func (c *CLI) plcReportCommand() *cobra.Command {
	var (
		interactive bool
		fresh       bool
	)

	cmd := &cobra.Command{
		Use:   "report [project]",
		Short: "Show the PLC rack occupancy and channel assignment",
		Args:  cobra.MaximumNArgs(1),
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
			if len(res.Rack) == 0 {
				printInfo("Project has no PLC rack")
				return nil
			}
			usage := plc.Occupancy(res.Connections, res.Rack)

			if interactive {
				m := newRackModel(usage, res.PLC)
				_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
				return err
			}

			printTable([]string{"Slot", "MPN", "Type", "Channels", "Used", "Free"}, usageRecords(usage))
			records := make([][]string, len(res.PLC))
			for i, r := range res.PLC {
				records[i] = r.Record()
			}
			printTable(plc.ReportHeader, records)
			printWarnings(res.Warnings)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse the rack interactively")
	cmd.Flags().BoolVar(&fresh, "fresh", false, "ignore the snapshot and start numbering from the seeds")

	return cmd
}

func usageRecords(usage []plc.SlotUsage) [][]string {
	out := make([][]string, len(usage))
	for i, u := range usage {
		out[i] = []string{
			u.Slot.Designation,
			u.Slot.Module.MPN,
			u.Slot.Module.SignalType,
			fmt.Sprint(u.Slot.Module.Channels),
			fmt.Sprint(u.Used),
			fmt.Sprint(u.Free()),
		}
	}
	return out
}
