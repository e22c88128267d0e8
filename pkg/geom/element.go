package geom

// Element is one piece of placed geometry. The set of implementations is
// closed; see the package documentation.
type Element interface {
	accept(v Visitor) Element
}

// Visitor maps each element type to a new element.
type Visitor interface {
	VisitPoint(Point) Element
	VisitLine(Line) Element
	VisitCircle(Circle) Element
	VisitText(Text) Element
	VisitPolygon(Polygon) Element
	VisitGroup(Group) Element
	VisitSymbol(Symbol) Element
	VisitPort(Port) Element
}

// Apply dispatches e to the matching Visitor method.
func Apply(e Element, v Visitor) Element { return e.accept(v) }

// Point is a junction dot.
type Point struct {
	At Vec
}

// Line is a straight segment.
type Line struct {
	Start, End Vec
}

// Circle is a circle, optionally filled.
type Circle struct {
	Center Vec
	Radius float64
	Filled bool
}

// Text is a label anchored at a position.
type Text struct {
	At      Vec
	Content string
	Size    float64
	Anchor  string
}

// Polygon is a closed outline.
type Polygon struct {
	Points []Vec
}

// Group bundles elements that move together.
type Group struct {
	Elements []Element
}

// SymbolKind tells the wiring report how to read a symbol's ports.
type SymbolKind string

const (
	// KindComponent is an ordinary component.
	KindComponent SymbolKind = ""
	// KindTerminal is a single terminal clamp with ports "1" (in) and "2" (out).
	KindTerminal SymbolKind = "terminal"
	// KindTerminalBlock is a multi-pole terminal whose numeric ports pair up
	// odd in, even out.
	KindTerminalBlock SymbolKind = "terminal_block"
)

// Symbol is a placed component.
type Symbol struct {
	Label          string
	Kind           SymbolKind
	TerminalNumber string // pin of a single terminal clamp
	Description    string
	MPN            string
	Elements       []Element
	Ports          map[string]Port
}

// Port is a named connection point. Direction points away from the symbol
// body, toward where a wire attaches.
type Port struct {
	ID        string
	Position  Vec
	Direction Vec
}

func (e Point) accept(v Visitor) Element   { return v.VisitPoint(e) }
func (e Line) accept(v Visitor) Element    { return v.VisitLine(e) }
func (e Circle) accept(v Visitor) Element  { return v.VisitCircle(e) }
func (e Text) accept(v Visitor) Element    { return v.VisitText(e) }
func (e Polygon) accept(v Visitor) Element { return v.VisitPolygon(e) }
func (e Group) accept(v Visitor) Element   { return v.VisitGroup(e) }
func (e Symbol) accept(v Visitor) Element  { return v.VisitSymbol(e) }
func (e Port) accept(v Visitor) Element    { return v.VisitPort(e) }

// IsTerminal reports whether the symbol is a terminal clamp or block.
func (s Symbol) IsTerminal() bool {
	return s.Kind == KindTerminal || s.Kind == KindTerminalBlock
}

// PortIDs returns the symbol's port ids in no particular order.
func (s Symbol) PortIDs() []string {
	ids := make([]string, 0, len(s.Ports))
	for id := range s.Ports {
		ids = append(ids, id)
	}
	return ids
}

// Flatten expands groups recursively and returns the remaining elements in
// order. Symbols are not opened.
func Flatten(elems []Element) []Element {
	out := make([]Element, 0, len(elems))
	for _, e := range elems {
		if g, ok := e.(Group); ok {
			out = append(out, Flatten(g.Elements)...)
			continue
		}
		out = append(out, e)
	}
	return out
}
