// Package render converts rendered SVG into other output formats.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). The wiring graph produced by
// the netlist package is the main input:
//
//	svg, err := netlist.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// Conversion fails with an install hint when rsvg-convert is not on PATH;
// SVG output never needs it.
package render
