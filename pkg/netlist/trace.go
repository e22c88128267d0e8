package netlist

import "github.com/matzehuels/schemaforge/pkg/geom"

// Endpoint is the result of a trace: the component port found at the far end
// of a wire, or [Unconnected].
type Endpoint struct {
	Component int // index into Graph.Symbols, -1 when unconnected
	Label     string
	Port      string
}

// Unconnected is returned when a trace reaches no other component.
var Unconnected = Endpoint{Component: -1}

// Connected reports whether the endpoint names a component.
func (e Endpoint) Connected() bool { return e.Component >= 0 }

// Trace walks from node n to the nearest port of a component other than
// exclude. A non-nil dir restricts the first hop to segments leaving along
// dir. Pass exclude -1 to accept any component, including one at n itself.
func (g *Graph) Trace(n *Node, exclude int, dir *geom.Vec) Endpoint {
	if n == nil {
		return Unconnected
	}
	return g.trace(n, exclude, dir, make(map[int]bool))
}

func (g *Graph) trace(n *Node, exclude int, dir *geom.Vec, crossed map[int]bool) Endpoint {
	for _, ref := range n.Ports {
		if ref.Component != exclude {
			return g.endpoint(ref)
		}
	}

	for _, id := range n.Lines {
		if crossed[id] {
			continue
		}
		l := g.lines[id]
		far := l.Start
		if g.Key(l.Start) == n.Key {
			far = l.End
		}
		if dir != nil && far.Sub(n.At).Dot(*dir) <= directionEps {
			continue
		}
		crossed[id] = true

		next, ok := g.nodes[g.Key(far)]
		if !ok {
			continue
		}
		if ep := g.trace(next, exclude, nil, crossed); ep.Connected() {
			return ep
		}
	}
	return Unconnected
}

func (g *Graph) endpoint(ref PortRef) Endpoint {
	return Endpoint{Component: ref.Component, Label: g.symbols[ref.Component].Label, Port: ref.Port}
}

// TracePort traces outward from port portID of component comp, leaving in
// the port's direction and skipping the component itself.
func (g *Graph) TracePort(comp int, portID string) Endpoint {
	if comp < 0 || comp >= len(g.symbols) {
		return Unconnected
	}
	p, ok := g.symbols[comp].Ports[portID]
	if !ok {
		return Unconnected
	}
	n, ok := g.NodeAt(p.Position)
	if !ok {
		return Unconnected
	}
	dir := p.Direction
	return g.Trace(n, comp, &dir)
}
