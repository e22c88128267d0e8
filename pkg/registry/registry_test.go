package registry

import (
	"slices"
	"testing"
)

func TestAdd_DoesNotAliasReceiver(t *testing.T) {
	base := New().Add("X1", "1", "F1", "1", SideBottom)

	a := base.Add("X1", "2", "F2", "1", SideBottom)
	b := base.Add("X1", "2", "F3", "1", SideBottom)

	if base.Len() != 1 {
		t.Fatalf("base.Len() = %d, want 1", base.Len())
	}
	if got := a.Connections()[1].ComponentTag; got != "F2" {
		t.Errorf("branch a second connection = %s, want F2", got)
	}
	if got := b.Connections()[1].ComponentTag; got != "F3" {
		t.Errorf("branch b second connection = %s, want F3", got)
	}
}

func TestConnections_ReturnsCopy(t *testing.T) {
	r := New().Add("X1", "1", "F1", "1", SideTop)
	conns := r.Connections()
	conns[0].ComponentTag = "mutated"

	if got := r.Connections()[0].ComponentTag; got != "F1" {
		t.Errorf("registry changed through returned slice: %s", got)
	}
}

func TestAdd3Phase(t *testing.T) {
	tests := []struct {
		name         string
		terminalPins []string
		compPins     []string
		want         int
	}{
		{"three each", []string{"1", "2", "3"}, []string{"1", "3", "5"}, 3},
		{"more terminal pins", []string{"1", "2", "3", "4"}, []string{"1", "3", "5"}, 3},
		{"fewer component pins", []string{"1", "2", "3"}, []string{"1"}, 1},
		{"none", nil, []string{"1"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New().Add3Phase("X001", tt.terminalPins, "F1", tt.compPins, SideBottom)
			if r.Len() != tt.want {
				t.Errorf("Len() = %d, want %d", r.Len(), tt.want)
			}
		})
	}
}

func TestAdd3PhaseSugar(t *testing.T) {
	r := New().
		Add3PhaseInput("X001", []string{"1", "2", "3"}, "F1").
		Add3PhaseOutput("X201", []string{"4", "5", "6"}, "Q1")

	conns := r.Connections()
	var inPins, outPins []string
	for _, c := range conns {
		if c.Side == SideBottom {
			inPins = append(inPins, c.ComponentPin)
		} else {
			outPins = append(outPins, c.ComponentPin)
		}
	}
	if !slices.Equal(inPins, []string{"1", "3", "5"}) {
		t.Errorf("input pins = %v, want [1 3 5]", inPins)
	}
	if !slices.Equal(outPins, []string{"2", "4", "6"}) {
		t.Errorf("output pins = %v, want [2 4 6]", outPins)
	}
}

func TestRows(t *testing.T) {
	r := New().
		Add("X1", "1", "K1", "A1", SideTop).
		Add("X1", "2", "M1", "U", SideBottom)

	rows := r.Rows()
	want := []Row{
		{ComponentFrom: "K1", PinFrom: "A1", Terminal: "X1", TerminalPin: "1"},
		{Terminal: "X1", TerminalPin: "2", ComponentTo: "M1", PinTo: "U"},
	}
	if !slices.Equal(rows, want) {
		t.Errorf("Rows() = %+v, want %+v", rows, want)
	}
}

func TestTerminalsAndFilter(t *testing.T) {
	r := New().
		Add("X2", "1", "K1", "1", SideTop).
		Add("PLC:DI", "", "S1", "13", SideBottom).
		Add("X1", "1", "K2", "1", SideTop).
		Add("X2", "2", "K3", "1", SideTop)

	if got := r.Terminals(); !slices.Equal(got, []string{"X2", "PLC:DI", "X1"}) {
		t.Errorf("Terminals() = %v", got)
	}

	onlyX2 := r.Filter(func(c Connection) bool { return c.TerminalTag == "X2" })
	if onlyX2.Len() != 2 {
		t.Errorf("Filter Len() = %d, want 2", onlyX2.Len())
	}
}

func TestRowFromRecord(t *testing.T) {
	row, err := RowFromRecord([]string{"S1", "13", "X100", "1", "PLC:DI", ""})
	if err != nil {
		t.Fatalf("RowFromRecord: %v", err)
	}
	if row.ComponentTo != "PLC:DI" || row.TerminalPin != "1" {
		t.Errorf("unexpected row %+v", row)
	}
	if _, err := RowFromRecord([]string{"a", "b"}); err == nil {
		t.Error("expected error for short record")
	}
}
