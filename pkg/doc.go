// Package pkg provides the core libraries for schemaforge.
//
// # Overview
//
// Schemaforge documents the wiring of a control cabinet. Components are
// connected to terminal strips, terminal pins and component tags are numbered
// as connections are recorded, generic PLC references are assigned to concrete
// channels of a rack, and the wiring of a schematic drawing is traced through
// its terminals. The pkg directory is organized into four areas:
//
//  1. Numbering and identity: [alloc], [registry], [natsort]
//  2. Resolution and reports: [plc], [field], [report]
//  3. Drawings: [geom], [circuit], [netlist], [io]
//  4. Orchestration: [project], [snapshot], [pipeline], [cache], [render]
//
// # Architecture
//
// The typical data flow through a build:
//
//	project file (TOML/YAML)
//	         ↓
//	    [alloc] State (numbering) + [registry] (connections)
//	         ↓
//	    [field] devices + external CSV rows
//	         ↓
//	    [plc] channel assignment
//	         ↓
//	    [report] terminal report, PLC report, component list
//	         ↓
//	    [netlist] wiring trace → DOT → SVG/PDF/PNG
//
// # Quick Start
//
// Number a three-phase feeder and report its terminals:
//
//	s := alloc.New()
//	s, tag := s.NextTag("F")                          // "F1"
//	s, pins := s.NextTerminalPins("X1", 3, "L1", "L2", "L3")
//	s = s.Connect3Phase("X1", pins, tag, []string{"2", "4", "6"}, registry.SideTop)
//	rows := report.Terminals(s.Registry(), s)
//
// Assign generic PLC references to a rack:
//
//	res := plc.Resolve(connectionRows, rack)
//	for _, w := range res.Warnings {
//	    fmt.Println(w)
//	}
//
// Trace a drawing:
//
//	elems, _ := io.ImportJSON("drawing.json")
//	wires := netlist.Build(elems, netlist.Options{}).Wires()
//
// # Main Packages
//
// [alloc] - Immutable allocation State: tag counters, sequential and
// prefix-grouped terminal pins, contact pin series and the connection
// registry. Every operation returns a new State.
//
// [plc] - Rack model and channel resolution. Single-pin requests are packed
// by natural terminal order; multi-pin requests take one channel per device.
// Shortfalls are returned as warnings, never as errors.
//
// [netlist] - Connectivity graph of a drawing with tolerance-based node
// merging, port-direction-aware tracing through terminals and Graphviz output.
//
// [pipeline] - The complete build (load → allocate → resolve → report →
// trace → render) used by every CLI command.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/plc/...                # Specific package
//	go test -run Example                 # Examples only
package pkg
