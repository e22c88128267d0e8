package netlist

import (
	"math"
	"slices"

	"github.com/matzehuels/schemaforge/pkg/geom"
)

// DefaultTolerance is the node merge distance in drawing units.
const DefaultTolerance = 0.1

// directionEps is the minimum dot product for a first-hop segment to count
// as leaving in the port's direction.
const directionEps = 0.001

// Options configures graph construction.
type Options struct {
	// Tolerance is the quantisation step for node identity. Zero means
	// DefaultTolerance.
	Tolerance float64
}

func (o Options) tolerance() float64 {
	if o.Tolerance <= 0 {
		return DefaultTolerance
	}
	return o.Tolerance
}

// Key is a quantised position.
type Key struct{ X, Y int64 }

// PortRef names one port of one placed component. Component is the index of
// the symbol in [Graph.Symbols].
type PortRef struct {
	Component int
	Port      string
}

// Node is a point where lines and ports meet.
type Node struct {
	Key   Key
	At    geom.Vec // first position registered at this key
	Lines []int    // indexes into Graph.Lines, in registration order
	Ports []PortRef
}

// Graph is the connectivity graph of one element list. It is read-only after
// Build and safe for concurrent traces.
type Graph struct {
	tol     float64
	nodes   map[Key]*Node
	lines   []geom.Line
	symbols []geom.Symbol
}

// Build constructs the connectivity graph of elems.
func Build(elems []geom.Element, opts Options) *Graph {
	g := &Graph{tol: opts.tolerance(), nodes: make(map[Key]*Node)}

	for _, e := range geom.Flatten(elems) {
		switch el := e.(type) {
		case geom.Line:
			id := len(g.lines)
			g.lines = append(g.lines, el)
			a := g.node(el.Start)
			a.Lines = append(a.Lines, id)
			b := g.node(el.End)
			b.Lines = append(b.Lines, id)
		case geom.Symbol:
			comp := len(g.symbols)
			g.symbols = append(g.symbols, el)
			ids := el.PortIDs()
			slices.Sort(ids)
			for _, pid := range ids {
				n := g.node(el.Ports[pid].Position)
				n.Ports = append(n.Ports, PortRef{Component: comp, Port: pid})
			}
		}
	}
	return g
}

// Key quantises a position to the graph tolerance.
func (g *Graph) Key(p geom.Vec) Key {
	return Key{int64(math.Round(p.X / g.tol)), int64(math.Round(p.Y / g.tol))}
}

func (g *Graph) node(p geom.Vec) *Node {
	k := g.Key(p)
	n, ok := g.nodes[k]
	if !ok {
		n = &Node{Key: k, At: p}
		g.nodes[k] = n
	}
	return n
}

// NodeAt returns the node at p, if any.
func (g *Graph) NodeAt(p geom.Vec) (*Node, bool) {
	n, ok := g.nodes[g.Key(p)]
	return n, ok
}

// Symbols returns the placed symbols in element order.
func (g *Graph) Symbols() []geom.Symbol { return g.symbols }

// Lines returns the line segments in element order.
func (g *Graph) Lines() []geom.Line { return g.lines }

// NodeCount returns the number of distinct nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// Tolerance returns the quantisation step in use.
func (g *Graph) Tolerance() float64 { return g.tol }
