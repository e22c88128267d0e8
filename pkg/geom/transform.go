package geom

// mapper is a Visitor that moves every position through fn and every
// direction through dir.
type mapper struct {
	fn  func(Vec) Vec
	dir func(Vec) Vec
}

func (m mapper) VisitPoint(e Point) Element { return Point{At: m.fn(e.At)} }

func (m mapper) VisitLine(e Line) Element {
	return Line{Start: m.fn(e.Start), End: m.fn(e.End)}
}

func (m mapper) VisitCircle(e Circle) Element {
	e.Center = m.fn(e.Center)
	return e
}

func (m mapper) VisitText(e Text) Element {
	e.At = m.fn(e.At)
	return e
}

func (m mapper) VisitPolygon(e Polygon) Element {
	pts := make([]Vec, len(e.Points))
	for i, p := range e.Points {
		pts[i] = m.fn(p)
	}
	return Polygon{Points: pts}
}

func (m mapper) VisitGroup(e Group) Element {
	return Group{Elements: m.all(e.Elements)}
}

func (m mapper) VisitSymbol(e Symbol) Element {
	e.Elements = m.all(e.Elements)
	if e.Ports != nil {
		ports := make(map[string]Port, len(e.Ports))
		for id, p := range e.Ports {
			ports[id] = m.VisitPort(p).(Port)
		}
		e.Ports = ports
	}
	return e
}

func (m mapper) VisitPort(e Port) Element {
	e.Position = m.fn(e.Position)
	e.Direction = m.dir(e.Direction)
	return e
}

func (m mapper) all(elems []Element) []Element {
	if elems == nil {
		return nil
	}
	out := make([]Element, len(elems))
	for i, e := range elems {
		out[i] = Apply(e, m)
	}
	return out
}

func identity(v Vec) Vec { return v }

// Translate returns e moved by (dx, dy). Directions are unchanged.
func Translate(e Element, dx, dy float64) Element {
	d := Vec{dx, dy}
	return Apply(e, mapper{fn: func(v Vec) Vec { return v.Add(d) }, dir: identity})
}

// Rotate returns e turned by deg degrees around center. Port directions
// turn with it.
func Rotate(e Element, deg float64, center Vec) Element {
	return Apply(e, mapper{
		fn:  func(v Vec) Vec { return v.Rotate(deg, center) },
		dir: func(v Vec) Vec { return v.Rotate(deg, Vec{}) },
	})
}

// TranslateAll moves every element of elems.
func TranslateAll(elems []Element, dx, dy float64) []Element {
	out := make([]Element, len(elems))
	for i, e := range elems {
		out[i] = Translate(e, dx, dy)
	}
	return out
}

// RotateAll turns every element of elems around center.
func RotateAll(elems []Element, deg float64, center Vec) []Element {
	out := make([]Element, len(elems))
	for i, e := range elems {
		out[i] = Rotate(e, deg, center)
	}
	return out
}
