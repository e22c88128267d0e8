// Package alloc hands out collision-free component tags and terminal pin
// numbers across independently built sub-circuits.
//
// # Overview
//
// A [State] holds every counter a schematic needs: one per tag prefix ("K",
// "F", "Q"), one shared pin counter per terminal strip, per-prefix group
// counters for strips with named pins ("L1", "N", "PE"), and relay contact
// channels. State is a value: every method returns a new State and leaves the
// receiver untouched, so two branches forked from the same State never see
// each other's allocations.
//
//	s := alloc.New()
//	s, k1 := s.NextTag("K")                       // "K1"
//	s, pins := s.NextTerminalPins("X001", 3)      // "1", "2", "3"
//	s, grp := s.NextTerminalPins("X002", 2, "L1", "N") // "L1:1", "N:1"
//
// # Pin Allocation Modes
//
// [State.NextTerminalPins] runs in one of two modes:
//
//   - Sequential: without enough prefixes for every pole, pins continue the
//     strip's shared counter. Each call returns one contiguous block.
//   - Prefixed-group: with at least as many prefixes as poles, the first
//     poles prefixes each receive pin "prefix:group". The group is one past
//     the highest counter among the requested prefixes (and the strip's
//     floor). Prefixes that were not requested keep their counters.
//
// [State.SetTerminalCounter] seeds a strip when numbering must continue from
// an earlier document. It sets the shared counter and the floor, and pulls
// every known prefix counter of that strip to the same value.
//
// # Lineage
//
// Each State carries a lineage id created by [New]. Every State derived from
// it shares the id. Tags are never reused within one lineage; mixing States
// from different lineages is a caller error the id helps diagnose.
//
// # Connections
//
// A State also carries the [registry.Registry] of terminal connections built
// so far. [State.Connect] and [State.Connect3Phase] append to it.
package alloc
