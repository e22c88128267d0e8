package registry

import "fmt"

// RowHeader is the column header of a connection row CSV.
var RowHeader = []string{"Component From", "Pin From", "Terminal Tag", "Terminal Pin", "Component To", "Pin To"}

// Row is the six-column connection record exchanged between the registry,
// external field wiring, the PLC resolver and the report writers.
type Row struct {
	ComponentFrom string `json:"component_from" yaml:"component_from" toml:"component_from"`
	PinFrom       string `json:"pin_from" yaml:"pin_from" toml:"pin_from"`
	Terminal      string `json:"terminal" yaml:"terminal" toml:"terminal"`
	TerminalPin   string `json:"terminal_pin" yaml:"terminal_pin" toml:"terminal_pin"`
	ComponentTo   string `json:"component_to" yaml:"component_to" toml:"component_to"`
	PinTo         string `json:"pin_to" yaml:"pin_to" toml:"pin_to"`
}

// Record returns the row as six CSV fields in header order.
func (r Row) Record() []string {
	return []string{r.ComponentFrom, r.PinFrom, r.Terminal, r.TerminalPin, r.ComponentTo, r.PinTo}
}

// RowFromRecord parses a CSV record with at least six fields.
func RowFromRecord(rec []string) (Row, error) {
	if len(rec) < 6 {
		return Row{}, fmt.Errorf("connection row needs 6 fields, got %d", len(rec))
	}
	return Row{
		ComponentFrom: rec[0],
		PinFrom:       rec[1],
		Terminal:      rec[2],
		TerminalPin:   rec[3],
		ComponentTo:   rec[4],
		PinTo:         rec[5],
	}, nil
}

// IsBlank reports whether the row has no component on either side.
func (r Row) IsBlank() bool {
	return r.ComponentFrom == "" && r.ComponentTo == ""
}
