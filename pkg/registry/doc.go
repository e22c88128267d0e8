// Package registry records pin-level connections between terminal strips and
// the components wired to them.
//
// # Overview
//
// A [Registry] is an append-only log of [Connection] values. Every circuit
// builder that lands a wire on a terminal pin records which component pin sits
// on the other end, and on which side of the strip it enters:
//
//   - [SideTop]: the cabinet-internal side, reported in the "From" columns
//   - [SideBottom]: the field side, reported in the "To" columns
//
// Registries are values. [Registry.Add] and friends return a new Registry and
// never touch the receiver, so two branches built from the same registry can
// grow independently:
//
//	r := registry.New()
//	r = r.Add("X001", "1", "F1", "1", registry.SideBottom)
//	r = r.Add3PhaseOutput("X201", []string{"1", "2", "3"}, "Q1")
//
// # Connection Rows
//
// [Row] is the six-column interchange record shared by the registry, external
// field-wiring data, the PLC resolver and the report writers:
//
//	Component From, Pin From, Terminal, Terminal Pin, Component To, Pin To
//
// Use [Registry.Rows] to project connections into rows.
package registry
