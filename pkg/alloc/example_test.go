package alloc_test

import (
	"fmt"

	"github.com/matzehuels/schemaforge/pkg/alloc"
	"github.com/matzehuels/schemaforge/pkg/registry"
)

func ExampleState_NextTerminalPins() {
	s := alloc.New()
	s, feeder := s.NextTerminalPins("X1", 3, "L1", "L2", "L3")
	s, second := s.NextTerminalPins("X1", 3, "L1", "L2", "L3")
	_, control := s.NextTerminalPins("X2", 2)

	fmt.Println(feeder)
	fmt.Println(second)
	fmt.Println(control)
	// Output:
	// [L1:1 L2:1 L3:1]
	// [L1:2 L2:2 L3:2]
	// [1 2]
}

func ExampleState_Connect3Phase() {
	s := alloc.New()
	s, tag := s.NextTag("Q")
	s, pins := s.NextTerminalPins("X1", 3, "L1", "L2", "L3")
	s = s.Connect3Phase("X1", pins, tag, []string{"2", "4", "6"}, registry.SideTop)

	for _, c := range s.Registry().Connections() {
		fmt.Printf("%s:%s %s:%s\n", c.TerminalTag, c.TerminalPin, c.ComponentTag, c.ComponentPin)
	}
	// Output:
	// X1:L1:1 Q1:2
	// X1:L2:1 Q1:4
	// X1:L3:1 Q1:6
}
