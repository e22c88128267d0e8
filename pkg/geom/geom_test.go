package geom

import (
	"testing"
)

const eps = 1e-9

func terminal(label string, at Vec) Symbol {
	return Symbol{
		Label: label,
		Kind:  KindTerminal,
		Elements: []Element{
			Circle{Center: at, Radius: 2},
			Text{At: at.Add(Vec{-5, 0}), Content: label},
		},
		Ports: map[string]Port{
			"1": {ID: "1", Position: at.Add(Vec{0, -5}), Direction: Up},
			"2": {ID: "2", Position: at.Add(Vec{0, 5}), Direction: Down},
		},
	}
}

func TestTranslate_Symbol(t *testing.T) {
	sym := terminal("X1", Vec{0, 0})
	moved := Translate(sym, 10, 20).(Symbol)

	if p := moved.Ports["1"].Position; !p.Near(Vec{10, 15}, eps) {
		t.Errorf("port 1 = %v, want {10 15}", p)
	}
	if d := moved.Ports["1"].Direction; d != Up {
		t.Errorf("direction changed by translate: %v", d)
	}
	if c := moved.Elements[0].(Circle).Center; !c.Near(Vec{10, 20}, eps) {
		t.Errorf("circle center = %v", c)
	}
	if p := sym.Ports["1"].Position; !p.Near(Vec{0, -5}, eps) {
		t.Errorf("original symbol mutated: %v", p)
	}
}

func TestRotate_PortDirection(t *testing.T) {
	sym := terminal("X1", Vec{0, 0})
	turned := Rotate(sym, 90, Vec{}).(Symbol)

	p := turned.Ports["2"]
	if !p.Position.Near(Vec{-5, 0}, eps) {
		t.Errorf("port 2 position = %v, want {-5 0}", p.Position)
	}
	if !p.Direction.Near(Left, eps) {
		t.Errorf("port 2 direction = %v, want %v", p.Direction, Left)
	}
}

func TestRotate_AroundCenter(t *testing.T) {
	l := Line{Start: Vec{10, 0}, End: Vec{20, 0}}
	got := Rotate(l, 180, Vec{10, 0}).(Line)
	if !got.Start.Near(Vec{10, 0}, eps) || !got.End.Near(Vec{0, 0}, eps) {
		t.Errorf("Rotate() = %+v", got)
	}
}

func TestTranslate_AllKinds(t *testing.T) {
	elems := []Element{
		Point{At: Vec{1, 1}},
		Line{Start: Vec{0, 0}, End: Vec{1, 0}},
		Circle{Center: Vec{0, 0}, Radius: 1},
		Text{At: Vec{0, 0}, Content: "K1"},
		Polygon{Points: []Vec{{0, 0}, {1, 0}, {0, 1}}},
		Group{Elements: []Element{Point{At: Vec{0, 0}}}},
		Port{ID: "A1", Position: Vec{0, 0}, Direction: Up},
	}
	moved := TranslateAll(elems, 1, 2)

	if got := moved[0].(Point).At; !got.Near(Vec{2, 3}, eps) {
		t.Errorf("point = %v", got)
	}
	if got := moved[1].(Line).End; !got.Near(Vec{2, 2}, eps) {
		t.Errorf("line end = %v", got)
	}
	if got := moved[4].(Polygon).Points[2]; !got.Near(Vec{1, 3}, eps) {
		t.Errorf("polygon point = %v", got)
	}
	if got := moved[5].(Group).Elements[0].(Point).At; !got.Near(Vec{1, 2}, eps) {
		t.Errorf("group child = %v", got)
	}
	if got := moved[6].(Port).Position; !got.Near(Vec{1, 2}, eps) {
		t.Errorf("port = %v", got)
	}
}

func TestFlatten(t *testing.T) {
	elems := []Element{
		Line{},
		Group{Elements: []Element{
			Point{},
			Group{Elements: []Element{Line{}, terminal("X1", Vec{})}},
		}},
	}
	flat := Flatten(elems)
	if len(flat) != 4 {
		t.Fatalf("len = %d, want 4", len(flat))
	}
	if _, ok := flat[3].(Symbol); !ok {
		t.Errorf("last element = %T, want Symbol", flat[3])
	}
}
