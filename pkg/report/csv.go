package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/schemaforge/pkg/registry"
)

// BridgeHeader is the optional seventh column of a terminal report.
const BridgeHeader = "Internal Bridge"

// Header returns the terminal report header.
func Header(withBridge bool) []string {
	h := slices.Clone(registry.RowHeader)
	if withBridge {
		h = append(h, BridgeHeader)
	}
	return h
}

// WriteCSV writes rows with a header line. The header is written even when
// rows is empty.
func WriteCSV(w io.Writer, rows []Row, withBridge bool) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header(withBridge)); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.Record(withBridge)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV writes rows to path, creating parent directories.
func ExportCSV(path string, rows []Row, withBridge bool) error {
	return writeFile(path, func(w io.Writer) error { return WriteCSV(w, rows, withBridge) })
}

// ReadCSV reads a terminal report or any connection row CSV with a header.
// A seventh column, if present, is read as the bridge group.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	rows := make([]Row, 0, len(records)-1)
	for i, rec := range records[1:] {
		row, err := registry.RowFromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		out := Row{Row: row}
		if len(rec) > 6 {
			out.Bridge = rec[6]
		}
		rows = append(rows, out)
	}
	return rows, nil
}

// Component is one entry of the component list.
type Component struct {
	Tag         string
	Description string
	MPN         string
}

// WriteComponentsCSV writes the component list sorted by tag.
func WriteComponentsCSV(w io.Writer, comps []Component) error {
	sorted := slices.Clone(comps)
	slices.SortStableFunc(sorted, func(a, b Component) int { return strings.Compare(a.Tag, b.Tag) })

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Component Tag", "Component Description", "MPN"}); err != nil {
		return err
	}
	for _, c := range sorted {
		if err := cw.Write([]string{c.Tag, c.Description, c.MPN}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// UnknownTerminal is the description used for terminals without one.
const UnknownTerminal = "Unknown Terminal"

// WriteTerminalListCSV writes the distinct terminal tags in sorted order with
// their descriptions.
func WriteTerminalListCSV(w io.Writer, tags []string, descriptions map[string]string) error {
	unique := slices.Clone(tags)
	slices.Sort(unique)
	unique = slices.Compact(unique)

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Terminal", "Description"}); err != nil {
		return err
	}
	for _, tag := range unique {
		desc, ok := descriptions[tag]
		if !ok {
			desc = UnknownTerminal
		}
		if err := cw.Write([]string{tag, desc}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeFile(path string, write func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteRecords writes a header followed by pre-formatted records. It backs
// the PLC report and the wiring list, whose rows carry their own Record
// methods.
func WriteRecords(w io.Writer, header []string, records [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(records); err != nil {
		return err
	}
	return cw.Error()
}

// ExportRecords writes records to path, creating parent directories.
func ExportRecords(path string, header []string, records [][]string) error {
	return writeFile(path, func(w io.Writer) error { return WriteRecords(w, header, records) })
}

// ExportComponentsCSV writes the component list to path.
func ExportComponentsCSV(path string, comps []Component) error {
	return writeFile(path, func(w io.Writer) error { return WriteComponentsCSV(w, comps) })
}

// ExportTerminalListCSV writes the terminal list to path.
func ExportTerminalListCSV(path string, tags []string, descriptions map[string]string) error {
	return writeFile(path, func(w io.Writer) error { return WriteTerminalListCSV(w, tags, descriptions) })
}
