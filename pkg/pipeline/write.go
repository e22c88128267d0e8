package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/matzehuels/schemaforge/pkg/plc"
	"github.com/matzehuels/schemaforge/pkg/registry"
	"github.com/matzehuels/schemaforge/pkg/report"
	"github.com/matzehuels/schemaforge/pkg/snapshot"
)

// Report file names inside the output directory.
const (
	FileTerminals    = "terminals.csv"
	FileTerminalList = "terminal_list.csv"
	FileConnections  = "connections.csv"
	FilePLC          = "plc.csv"
	FileWiring       = "wiring.csv"
	FileComponents   = "components.csv"
	FileGraph        = "wiring"
)

// WriteOptions configures which outputs Write produces.
type WriteOptions struct {
	// Dir overrides the project's output directory.
	Dir string
	// SkipSnapshot leaves the project's snapshot file untouched.
	SkipSnapshot bool
}

// Write writes every report of res and returns the paths written, in order.
// The terminal report is always written, even when it has no rows.
func Write(res *Result, opts WriteOptions) ([]string, error) {
	p := res.Project
	dir := opts.Dir
	if dir == "" {
		dir = p.Path(p.Output.Dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	var written []string
	out := func(name string, write func(path string) error) error {
		path := filepath.Join(dir, name)
		if err := write(path); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
		return nil
	}

	if err := out(FileTerminals, func(path string) error {
		return report.ExportCSV(path, res.Terminals, res.HasBridges)
	}); err != nil {
		return written, err
	}

	var tags []string
	for _, r := range res.Terminals {
		tags = append(tags, r.Terminal)
	}
	if err := out(FileTerminalList, func(path string) error {
		return report.ExportTerminalListCSV(path, tags, p.Descriptions())
	}); err != nil {
		return written, err
	}

	if err := out(FileConnections, func(path string) error {
		return report.ExportRecords(path, registry.RowHeader, rowRecords(res.Connections))
	}); err != nil {
		return written, err
	}

	if len(res.Rack) > 0 {
		records := make([][]string, len(res.PLC))
		for i, r := range res.PLC {
			records[i] = r.Record()
		}
		if err := out(FilePLC, func(path string) error {
			return report.ExportRecords(path, plc.ReportHeader, records)
		}); err != nil {
			return written, err
		}
	}

	if len(res.Wires) > 0 {
		rows := make([]registry.Row, len(res.Wires))
		for i, w := range res.Wires {
			rows[i] = w.Row()
		}
		if err := out(FileWiring, func(path string) error {
			return report.ExportRecords(path, registry.RowHeader, rowRecords(rows))
		}); err != nil {
			return written, err
		}
	}

	if len(res.Components) > 0 {
		if err := out(FileComponents, func(path string) error {
			return report.ExportComponentsCSV(path, res.Components)
		}); err != nil {
			return written, err
		}
	}

	for _, format := range sortedKeys(res.Graph) {
		data := res.Graph[format]
		if err := out(FileGraph+"."+format, func(path string) error {
			return os.WriteFile(path, data, 0o644)
		}); err != nil {
			return written, err
		}
	}

	if p.Snapshot != "" && !opts.SkipSnapshot {
		path := p.Path(p.Snapshot)
		if _, err := snapshot.Save(path, res.State); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func rowRecords(rows []registry.Row) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = r.Record()
	}
	return out
}
