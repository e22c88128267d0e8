// Package io provides JSON import and export for schematic drawings.
//
// # Overview
//
// A drawing is an ordered list of [geom.Element] values: wires, shapes,
// labels, groups and placed symbols with their ports. This package
// serialises such lists so that drawings can be produced by external tools,
// traced later without rebuilding, or kept next to the generated reports.
//
// # JSON Format
//
// The format has one required top-level array. Each element names its type:
//
//	{
//	  "elements": [
//	    {"type": "line", "start": [0, 0], "end": [0, 10]},
//	    {
//	      "type": "symbol",
//	      "label": "X1",
//	      "kind": "terminal",
//	      "terminal_number": "1",
//	      "ports": [
//	        {"id": "1", "position": [0, 10], "direction": [0, -1]},
//	        {"id": "2", "position": [0, 20], "direction": [0, 1]}
//	      ]
//	    }
//	  ]
//	}
//
// # Element Types
//
//   - point: at
//   - line: start, end
//   - circle: center, radius, filled
//   - text: at, content, size, anchor
//   - polygon: points
//   - group: elements
//   - symbol: label, kind, terminal_number, description, mpn, elements, ports
//
// Vectors are [x, y] arrays. Symbol ports are written sorted by id so the
// output is stable across runs.
//
// # Import
//
// Use [ImportJSON] to read a drawing from a file path, or [ReadJSON] to read
// from any io.Reader. Unknown element types are rejected with an
// INVALID_DRAWING error naming the offending element index.
//
// # Export
//
// Use [ExportJSON] to write a drawing to a file, or [WriteJSON] to write to
// any io.Writer. Import, export and re-import yields identical elements.
package io
