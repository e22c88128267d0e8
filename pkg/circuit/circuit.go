// Package circuit assembles placed symbols and the wires between them.
//
// A [Circuit] is an ordered element list that grows while a sub-circuit is
// built and is handed to the netlist tracer when finished. Components are
// addressed by the index [Circuit.Place] or [Circuit.Add] returned.
package circuit

import (
	"fmt"
	"math"
	"slices"

	"github.com/matzehuels/schemaforge/pkg/errors"
	"github.com/matzehuels/schemaforge/pkg/geom"
)

// AlignmentTolerance is how far apart (in drawing units) two ports may sit
// horizontally and still be joined by a straight vertical wire.
const AlignmentTolerance = 0.1

// Circuit is an ordered list of elements. The zero value is empty and ready
// to use. A Circuit is not safe for concurrent use.
type Circuit struct {
	elems []geom.Element
	skip  map[int]bool
}

// Add appends an element and returns its index.
func (c *Circuit) Add(e geom.Element) int {
	c.elems = append(c.elems, e)
	return len(c.elems) - 1
}

// Place translates sym to (x, y) and appends it.
func (c *Circuit) Place(sym geom.Symbol, x, y float64) int {
	return c.Add(geom.Translate(sym, x, y))
}

// PlaceDetached is Place for a symbol that [Circuit.AutoConnect] must skip.
func (c *Circuit) PlaceDetached(sym geom.Symbol, x, y float64) int {
	i := c.Place(sym, x, y)
	if c.skip == nil {
		c.skip = make(map[int]bool)
	}
	c.skip[i] = true
	return i
}

// Len returns the number of elements.
func (c *Circuit) Len() int { return len(c.elems) }

// Elements returns a copy of the element list.
func (c *Circuit) Elements() []geom.Element { return slices.Clone(c.elems) }

// Symbol returns the symbol at index i.
func (c *Circuit) Symbol(i int) (geom.Symbol, error) {
	if i < 0 || i >= len(c.elems) {
		return geom.Symbol{}, &errors.IndexOutOfRangeError{Index: i, Len: len(c.elems)}
	}
	sym, ok := c.elems[i].(geom.Symbol)
	if !ok {
		return geom.Symbol{}, errors.New(errors.ErrCodeInvalidInput, "element %d is a %T, not a symbol", i, c.elems[i])
	}
	return sym, nil
}

// Lookup returns the index of the first symbol labelled tag.
func (c *Circuit) Lookup(tag string) (int, bool) {
	for i, e := range c.elems {
		if sym, ok := e.(geom.Symbol); ok && sym.Label == tag {
			return i, true
		}
	}
	return -1, false
}

// Port returns a port of the symbol at index i.
func (c *Circuit) Port(i int, id string) (geom.Port, error) {
	sym, err := c.Symbol(i)
	if err != nil {
		return geom.Port{}, err
	}
	p, ok := sym.Ports[id]
	if !ok {
		avail := sym.PortIDs()
		slices.Sort(avail)
		name := sym.Label
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		return geom.Port{}, &errors.PortNotFoundError{Component: name, Port: id, Available: avail}
	}
	return p, nil
}

// Connect draws a wire from port portA of component a to port portB of
// component b. Aligned ports get one segment; others get two segments meeting
// at a corner, leaving a along its port direction first.
func (c *Circuit) Connect(a int, portA string, b int, portB string) error {
	pa, err := c.Port(a, portA)
	if err != nil {
		return err
	}
	pb, err := c.Port(b, portB)
	if err != nil {
		return err
	}
	for _, l := range Route(pa, pb) {
		c.Add(l)
	}
	return nil
}

// Route returns the orthogonal segments joining two ports.
func Route(from, to geom.Port) []geom.Line {
	s, e := from.Position, to.Position
	if s.Near(e, 1e-9) {
		return nil
	}
	if math.Abs(s.X-e.X) < AlignmentTolerance || math.Abs(s.Y-e.Y) < AlignmentTolerance {
		return []geom.Line{{Start: s, End: e}}
	}
	corner := geom.Vec{X: e.X, Y: s.Y}
	if math.Abs(from.Direction.Y) > math.Abs(from.Direction.X) {
		corner = geom.Vec{X: s.X, Y: e.Y}
	}
	return []geom.Line{{Start: s, End: corner}, {Start: corner, End: e}}
}

// AutoConnect joins each symbol to the next one in placement order: every
// downward port of the upper symbol is wired to each upward port of the lower
// symbol that sits directly below it. Symbols placed with PlaceDetached are
// skipped. It returns the number of wires added.
func (c *Circuit) AutoConnect() int {
	var chain []geom.Symbol
	for i, e := range c.elems {
		if sym, ok := e.(geom.Symbol); ok && !c.skip[i] {
			chain = append(chain, sym)
		}
	}

	added := 0
	for i := 0; i+1 < len(chain); i++ {
		for _, l := range Between(chain[i], chain[i+1]) {
			c.Add(l)
			added++
		}
	}
	return added
}

// Between returns the vertical wires joining the downward ports of upper to
// the aligned upward ports of lower, ordered left to right.
func Between(upper, lower geom.Symbol) []geom.Line {
	down := PortsFacing(upper, geom.Down)
	up := PortsFacing(lower, geom.Up)
	slices.SortStableFunc(down, func(a, b geom.Port) int {
		switch {
		case a.Position.X < b.Position.X:
			return -1
		case a.Position.X > b.Position.X:
			return 1
		}
		return 0
	})

	var lines []geom.Line
	for _, dp := range down {
		for _, upp := range up {
			if math.Abs(dp.Position.X-upp.Position.X) < AlignmentTolerance {
				lines = append(lines, geom.Line{Start: dp.Position, End: upp.Position})
			}
		}
	}
	return lines
}

// PortsFacing returns the ports of sym pointing in dir, dropping ports that
// share a position with one already returned. Ports are visited in id order.
func PortsFacing(sym geom.Symbol, dir geom.Vec) []geom.Port {
	ids := sym.PortIDs()
	slices.Sort(ids)

	var out []geom.Port
	for _, id := range ids {
		p := sym.Ports[id]
		if !p.Direction.Near(dir, 1e-6) {
			continue
		}
		dup := false
		for _, q := range out {
			if q.Position.Near(p.Position, 1e-4) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, p)
		}
	}
	return out
}

// Translate returns a copy of the circuit moved by (dx, dy).
func (c *Circuit) Translate(dx, dy float64) *Circuit {
	return &Circuit{elems: geom.TranslateAll(c.elems, dx, dy), skip: c.cloneSkip()}
}

// Rotate returns a copy of the circuit turned by deg degrees around center.
func (c *Circuit) Rotate(deg float64, center geom.Vec) *Circuit {
	return &Circuit{elems: geom.RotateAll(c.elems, deg, center), skip: c.cloneSkip()}
}

func (c *Circuit) cloneSkip() map[int]bool {
	if c.skip == nil {
		return nil
	}
	out := make(map[int]bool, len(c.skip))
	for k, v := range c.skip {
		out[k] = v
	}
	return out
}
