package cli

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/schemaforge/pkg/alloc"
	"github.com/matzehuels/schemaforge/pkg/errors"
	"github.com/matzehuels/schemaforge/pkg/project"
	"github.com/matzehuels/schemaforge/pkg/snapshot"
)

// stateCommand creates the state command group.
func (c *CLI) stateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Create or inspect allocation snapshots",
	}

	cmd.AddCommand(c.stateNewCommand())
	cmd.AddCommand(c.stateShowCommand())

	return cmd
}

// stateNewCommand creates the "state new" subcommand.
func (c *CLI) stateNewCommand() *cobra.Command {
	var projectPath string
	var force bool

	cmd := &cobra.Command{
		Use:   "new <snapshot>",
		Short: "Write an empty snapshot, optionally seeded from a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if err := errors.ValidatePath(path); err != nil {
				return err
			}
			if !force {
				if _, err := os.Stat(path); err == nil {
					return errors.New(errors.ErrCodeInvalidInput, "%s already exists (use --force to replace it)", path)
				}
			}

			s := alloc.New()
			if projectPath != "" {
				p, err := project.Load(projectPath)
				if err != nil {
					return err
				}
				s = p.Seed(s)
			}
			sn, err := snapshot.Save(path, s)
			if err != nil {
				return err
			}
			printSuccess("Created snapshot %s", StyleHighlight.Render(sn.ID))
			printFile(path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectPath, "project", "p", "", "seed counters from this project")
	cmd.Flags().BoolVar(&force, "force", false, "replace an existing snapshot")

	return cmd
}

// stateShowCommand creates the "state show" subcommand.
func (c *CLI) stateShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <snapshot>",
		Short: "Print the counters of a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sn, err := snapshot.Load(args[0])
			if err != nil {
				return err
			}
			printKeyValue("Snapshot", sn.ID)
			printKeyValue("Lineage", sn.Lineage)
			printKeyValue("Created", sn.CreatedAt.Local().Format(time.DateTime))
			printKeyValue("Connections", fmt.Sprint(len(sn.Connections)))
			printNewline()
			printTable([]string{"Counter", "Key", "Value"}, counterRecords(sn.Counters))
			return nil
		},
	}
}

// counterRecords flattens counters into sorted table rows.
func counterRecords(c alloc.Counters) [][]string {
	var out [][]string
	add := func(kind string, m map[string]int) {
		for _, k := range slices.Sorted(maps.Keys(m)) {
			out = append(out, []string{kind, k, fmt.Sprint(m[k])})
		}
	}
	add("tag", c.Tags)
	add("terminal", c.Terminals)
	for _, t := range slices.Sorted(maps.Keys(c.TerminalPrefixes)) {
		add("prefix "+t, c.TerminalPrefixes[t])
	}
	add("floor", c.Floors)
	add("contacts", c.ContactChannels)
	return out
}
