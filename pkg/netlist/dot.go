package netlist

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"
)

// DOTOptions configures wiring diagram rendering.
type DOTOptions struct {
	// Detailed labels edges with component pin names.
	Detailed bool
	// ShowUnconnected draws terminal channels that trace to nothing.
	ShowUnconnected bool
}

// ToDOT converts traced wires to Graphviz DOT. Components are boxes, terminal
// pins are ellipses, and each wire side becomes an edge through its pin.
// The resulting DOT string can be rendered with [RenderSVG].
func ToDOT(wires []Wire, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.8;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	var comps []string
	seen := make(map[string]bool)
	addComp := func(label string) {
		if label != "" && !seen[label] {
			seen[label] = true
			comps = append(comps, label)
		}
	}

	var pins, edges []string
	for _, w := range wires {
		if !opts.ShowUnconnected && !w.From.Connected() && !w.To.Connected() {
			continue
		}
		pinID := pinNode(w)
		pins = append(pins, fmt.Sprintf("  %q [label=%q, shape=ellipse, fillcolor=lightyellow];", pinID, pinLabel(w)))

		if w.From.Connected() {
			addComp(w.From.Label)
			edges = append(edges, fmt.Sprintf("  %q -> %q%s;", w.From.Label, pinID, edgeAttrs(w.From.Port, opts.Detailed)))
		}
		if w.To.Connected() {
			addComp(w.To.Label)
			edges = append(edges, fmt.Sprintf("  %q -> %q%s;", pinID, w.To.Label, edgeAttrs(w.To.Port, opts.Detailed)))
		}
	}

	slices.Sort(comps)
	for _, c := range comps {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", c, c)
	}
	buf.WriteString(strings.Join(pins, "\n"))
	buf.WriteString("\n\n")
	buf.WriteString(strings.Join(edges, "\n"))
	buf.WriteString("\n}\n")
	return buf.String()
}

// pinNode returns a unique node id for a terminal channel. Terminal block
// channels have no pin number, so their ports stand in.
func pinNode(w Wire) string {
	if w.Pin != "" {
		return w.Terminal + ":" + w.Pin
	}
	return w.Terminal + ":" + w.From.Port + "/" + w.To.Port + "#" + strconv.Itoa(w.From.Component) + "," + strconv.Itoa(w.To.Component)
}

func pinLabel(w Wire) string {
	if w.Pin == "" {
		return w.Terminal
	}
	return w.Terminal + ":" + w.Pin
}

func edgeAttrs(port string, detailed bool) string {
	if !detailed || port == "" {
		return ""
	}
	return fmt.Sprintf(" [label=%q]", port)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
