package netlist

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/matzehuels/schemaforge/pkg/geom"
	"github.com/matzehuels/schemaforge/pkg/registry"
)

// Channel is one pass-through path of a terminal: a pin with an input port
// and an output port.
type Channel struct {
	Pin      string
	FromPort string
	ToPort   string
}

// Channels lists the channels of a terminal symbol. A single terminal has one
// channel, ports "1" to "2", numbered by its terminal number. A terminal block
// pairs its numeric port ids in ascending order, odd in and even out, with no
// pin number of its own. Other symbols have no channels.
func Channels(sym geom.Symbol) []Channel {
	switch sym.Kind {
	case geom.KindTerminal:
		return []Channel{{Pin: sym.TerminalNumber, FromPort: "1", ToPort: "2"}}
	case geom.KindTerminalBlock:
		var nums []int
		for id := range sym.Ports {
			if n, err := strconv.Atoi(id); err == nil && n >= 0 && strconv.Itoa(n) == id {
				nums = append(nums, n)
			}
		}
		slices.Sort(nums)
		var chs []Channel
		for i := 0; i+1 < len(nums); i += 2 {
			chs = append(chs, Channel{FromPort: strconv.Itoa(nums[i]), ToPort: strconv.Itoa(nums[i+1])})
		}
		return chs
	}
	return nil
}

// Wire is the traced result of one terminal channel.
type Wire struct {
	Terminal string
	Pin      string
	From     Endpoint
	To       Endpoint
}

// Row converts the wire to a connection row. Unconnected sides are blank.
func (w Wire) Row() registry.Row {
	return registry.Row{
		ComponentFrom: w.From.Label,
		PinFrom:       w.From.Port,
		Terminal:      w.Terminal,
		TerminalPin:   w.Pin,
		ComponentTo:   w.To.Label,
		PinTo:         w.To.Port,
	}
}

// Wires traces every channel of every terminal in the graph. Terminals are
// ordered by label; channels keep their terminal's order.
func (g *Graph) Wires() []Wire {
	var terms []int
	for i, sym := range g.symbols {
		if sym.IsTerminal() {
			terms = append(terms, i)
		}
	}
	slices.SortStableFunc(terms, func(a, b int) int {
		return cmp.Compare(g.symbols[a].Label, g.symbols[b].Label)
	})

	var wires []Wire
	for _, t := range terms {
		sym := g.symbols[t]
		for _, ch := range Channels(sym) {
			wires = append(wires, Wire{
				Terminal: sym.Label,
				Pin:      ch.Pin,
				From:     g.TracePort(t, ch.FromPort),
				To:       g.TracePort(t, ch.ToPort),
			})
		}
	}
	return wires
}

// TerminalRows builds the graph of elems and returns one connection row per
// terminal channel.
func TerminalRows(elems []geom.Element, opts Options) []registry.Row {
	wires := Build(elems, opts).Wires()
	rows := make([]registry.Row, len(wires))
	for i, w := range wires {
		rows[i] = w.Row()
	}
	return rows
}

// Components returns the labelled symbols of elems, one per label, sorted by
// label. The first symbol seen for a label wins.
func Components(elems []geom.Element) []geom.Symbol {
	seen := make(map[string]bool)
	var out []geom.Symbol
	for _, e := range geom.Flatten(elems) {
		sym, ok := e.(geom.Symbol)
		if !ok || sym.Label == "" || seen[sym.Label] {
			continue
		}
		seen[sym.Label] = true
		out = append(out, sym)
	}
	slices.SortStableFunc(out, func(a, b geom.Symbol) int { return cmp.Compare(a.Label, b.Label) })
	return out
}
