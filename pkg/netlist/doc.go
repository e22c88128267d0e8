// Package netlist recovers electrical connectivity from drawn geometry.
//
// # Overview
//
// Most wires in a generated schematic are placed by geometric auto-routing
// and carry no record of what they join. This package rebuilds that
// knowledge from the drawing alone: which component sits at the far end of
// the wire leaving a given terminal pin.
//
// [Build] turns an element list into a [Graph]. Every line registers both of
// its endpoints as nodes; every symbol registers each port position as a node
// carrying the (component, port) pair found there. Groups are flattened.
// Positions are merged into one node when they agree after quantising to
// [Options.Tolerance] (0.1 drawing units by default). The tolerance must be
// coarse relative to the drawing grid so that node identity stays transitive.
//
// # Tracing
//
// [Graph.Trace] walks outward from a node, depth first:
//
//  1. A node holding a port of some component other than the excluded one
//     ends the walk.
//  2. Otherwise every line at the node that this walk has not yet crossed is
//     followed to its far end. On the first hop only, segments that do not
//     point along the starting port's direction are skipped, so the walk
//     cannot run back into the port's own stub.
//  3. A walk that finds nothing returns [Unconnected].
//
// Lines, not nodes, are marked as crossed, so several wires may share a node
// without cutting each other off. Each call owns its crossed set; tracing the
// same graph twice yields the same answer.
//
// # Wiring Report
//
// [TerminalRows] traces both sides of every terminal channel and returns one
// connection row per channel. [ToDOT] and [RenderSVG] draw the same result as
// a Graphviz diagram.
package netlist
