package plc_test

import (
	"fmt"

	"github.com/matzehuels/schemaforge/pkg/plc"
	"github.com/matzehuels/schemaforge/pkg/registry"
)

func ExampleResolve() {
	rack := plc.Rack{
		{Designation: "DI1", Module: plc.ModuleType{MPN: "DI-8", SignalType: "DI", Channels: 8}},
	}
	rows := []registry.Row{
		{ComponentFrom: "S2", PinFrom: "13", Terminal: "X2", TerminalPin: "3", ComponentTo: "PLC:DI"},
		{ComponentFrom: "M1", PinFrom: "U", Terminal: "X3", TerminalPin: "1"},
		{ComponentFrom: "S1", PinFrom: "13", Terminal: "X2", TerminalPin: "1", ComponentTo: "PLC:DI"},
		{ComponentFrom: "TT1", PinFrom: "1", Terminal: "X4", TerminalPin: "1", ComponentTo: "PLC:AI"},
	}

	res := plc.Resolve(rows, rack)
	for _, r := range res.Rows {
		fmt.Printf("%s/%s -> %q %q\n", r.ComponentFrom, r.PinFrom, r.ComponentTo, r.PinTo)
	}
	for _, w := range res.Warnings {
		fmt.Println(w)
	}
	// Output:
	// M1/U -> "" ""
	// S1/13 -> "PLC:DI1" "1"
	// S2/13 -> "PLC:DI1" "2"
	// TT1/1 -> "PLC:AI" ""
	// PLC:AI: no module in rack, 1 request(s) unresolved
}
