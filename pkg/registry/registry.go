package registry

import "slices"

// Side is the face of a terminal strip a connection enters from.
type Side string

const (
	// SideTop is the cabinet-internal side of a terminal.
	SideTop Side = "top"
	// SideBottom is the field side of a terminal.
	SideBottom Side = "bottom"
)

// Standard three-phase component pins (IEC 60445 numbering).
var (
	ThreePhaseInputPins  = []string{"1", "3", "5"}
	ThreePhaseOutputPins = []string{"2", "4", "6"}
)

// Connection ties one terminal pin to one component pin.
type Connection struct {
	TerminalTag  string `json:"terminal_tag" msgpack:"terminal_tag"`
	TerminalPin  string `json:"terminal_pin" msgpack:"terminal_pin"`
	ComponentTag string `json:"component_tag" msgpack:"component_tag"`
	ComponentPin string `json:"component_pin" msgpack:"component_pin"`
	Side         Side   `json:"side" msgpack:"side"`
}

// Registry is an append-only list of connections. The zero value is an empty
// registry ready to use.
type Registry struct {
	conns []Connection
}

// New returns a registry holding a copy of conns.
func New(conns ...Connection) Registry {
	return Registry{conns: slices.Clone(conns)}
}

// Add returns a registry with one more connection.
func (r Registry) Add(terminalTag, terminalPin, componentTag, componentPin string, side Side) Registry {
	return r.AddAll([]Connection{{
		TerminalTag:  terminalTag,
		TerminalPin:  terminalPin,
		ComponentTag: componentTag,
		ComponentPin: componentPin,
		Side:         side,
	}})
}

// AddAll returns a registry with conns appended in order.
func (r Registry) AddAll(conns []Connection) Registry {
	if len(conns) == 0 {
		return r
	}
	next := make([]Connection, 0, len(r.conns)+len(conns))
	next = append(next, r.conns...)
	next = append(next, conns...)
	return Registry{conns: next}
}

// Add3Phase pairs terminal pins with component pins positionally, up to three
// pairs. Extra pins on either side are ignored.
func (r Registry) Add3Phase(terminalTag string, terminalPins []string, componentTag string, componentPins []string, side Side) Registry {
	n := min(3, len(terminalPins), len(componentPins))
	conns := make([]Connection, 0, n)
	for i := range n {
		conns = append(conns, Connection{
			TerminalTag:  terminalTag,
			TerminalPin:  terminalPins[i],
			ComponentTag: componentTag,
			ComponentPin: componentPins[i],
			Side:         side,
		})
	}
	return r.AddAll(conns)
}

// Add3PhaseInput registers a component's 1/3/5 input pins on the bottom side.
func (r Registry) Add3PhaseInput(terminalTag string, terminalPins []string, componentTag string) Registry {
	return r.Add3Phase(terminalTag, terminalPins, componentTag, ThreePhaseInputPins, SideBottom)
}

// Add3PhaseOutput registers a component's 2/4/6 output pins on the top side.
func (r Registry) Add3PhaseOutput(terminalTag string, terminalPins []string, componentTag string) Registry {
	return r.Add3Phase(terminalTag, terminalPins, componentTag, ThreePhaseOutputPins, SideTop)
}

// Connections returns a copy of the recorded connections in insertion order.
func (r Registry) Connections() []Connection {
	return slices.Clone(r.conns)
}

// Len returns the number of recorded connections.
func (r Registry) Len() int { return len(r.conns) }

// Terminals returns the distinct terminal tags in first-appearance order.
func (r Registry) Terminals() []string {
	seen := make(map[string]bool)
	var tags []string
	for _, c := range r.conns {
		if !seen[c.TerminalTag] {
			seen[c.TerminalTag] = true
			tags = append(tags, c.TerminalTag)
		}
	}
	return tags
}

// Filter returns a registry holding only the connections keep accepts.
func (r Registry) Filter(keep func(Connection) bool) Registry {
	var out []Connection
	for _, c := range r.conns {
		if keep(c) {
			out = append(out, c)
		}
	}
	return Registry{conns: out}
}

// Rows projects every connection into a Row: top-side connections fill the
// From columns, bottom-side connections the To columns.
func (r Registry) Rows() []Row {
	rows := make([]Row, 0, len(r.conns))
	for _, c := range r.conns {
		rows = append(rows, c.Row())
	}
	return rows
}

// Row projects a single connection, see [Registry.Rows].
func (c Connection) Row() Row {
	row := Row{Terminal: c.TerminalTag, TerminalPin: c.TerminalPin}
	if c.Side == SideTop {
		row.ComponentFrom, row.PinFrom = c.ComponentTag, c.ComponentPin
	} else {
		row.ComponentTo, row.PinTo = c.ComponentTag, c.ComponentPin
	}
	return row
}
