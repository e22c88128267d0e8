package report

import (
	"slices"
	"testing"

	"github.com/matzehuels/schemaforge/pkg/registry"
)

func row(from, fromPin, tag, pin, to, toPin string) Row {
	return Row{Row: registry.Row{
		ComponentFrom: from, PinFrom: fromPin,
		Terminal: tag, TerminalPin: pin,
		ComponentTo: to, PinTo: toPin,
	}}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name string
		in   []Row
		want Row
	}{
		{
			name: "registry row plus appended field device",
			in: []Row{
				row("K1", "13", "X1", "1", "", ""),
				row("S1", "1", "X1", "1", "", ""),
			},
			want: row("S1", "1", "X1", "1", "K1", "13"),
		},
		{
			name: "two to entries",
			in: []Row{
				row("", "", "X1", "1", "M1", "U"),
				row("", "", "X1", "1", "M2", "U"),
			},
			want: row("M1", "U", "X1", "1", "M2", "U"),
		},
		{
			name: "one each side",
			in: []Row{
				row("K1", "A1", "X1", "1", "", ""),
				row("", "", "X1", "1", "M1", "U"),
			},
			want: row("K1", "A1", "X1", "1", "M1", "U"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.in)
			if len(got) != 1 {
				t.Fatalf("got %d rows, want 1", len(got))
			}
			if got[0] != tt.want {
				t.Errorf("Merge() = %+v, want %+v", got[0], tt.want)
			}
		})
	}
}

func TestMerge_KeepsBridge(t *testing.T) {
	in := []Row{row("K1", "1", "X1", "1", "", ""), row("", "", "X1", "1", "M1", "U")}
	in[1].Bridge = "2"
	if got := Merge(in)[0].Bridge; got != "2" {
		t.Errorf("bridge = %q, want 2", got)
	}
}

func TestFillGaps(t *testing.T) {
	in := []Row{
		row("A", "1", "X1", "3", "", ""),
		row("B", "1", "X1", "L1:2", "", ""),
		row("C", "1", "X1", "PE", "", ""),
	}
	got := FillGaps(in)
	SortNatural(got)

	want := []string{"X1/1", "X1/2", "X1/3", "X1/L1:1", "X1/L1:2", "X1/PE"}
	if !slices.Equal(pins(got), want) {
		t.Errorf("FillGaps() = %v, want %v", pins(got), want)
	}
}

func TestParseBridge(t *testing.T) {
	tests := []struct {
		in      string
		want    Bridge
		wantErr bool
	}{
		{"all", Bridge{Mode: BridgeAll}, false},
		{"per_prefix", Bridge{Mode: BridgePerPrefix}, false},
		{"", Bridge{}, false},
		{"1-3, 5-6", Bridge{Mode: BridgeRanges, Ranges: []PinSpan{{1, 3}, {5, 6}}}, false},
		{"3-1", Bridge{}, true},
		{"1", Bridge{}, true},
		{"a-b", Bridge{}, true},
	}

	for _, tt := range tests {
		got, err := ParseBridge(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseBridge(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && (got.Mode != tt.want.Mode || !slices.Equal(got.Ranges, tt.want.Ranges)) {
			t.Errorf("ParseBridge(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestFinalize(t *testing.T) {
	rows := []Row{
		row("K1", "13", "X1", "1", "", ""),
		row("", "", "X2", "L1:1", "F1", "1"),
		row("", "", "X2", "N:1", "F1", "N"),
		row("", "", "X3", "1", "Q1", "1"),
		row("", "", "X3", "4", "Q1", "4"),
	}
	external := []registry.Row{
		{ComponentFrom: "S1", PinFrom: "1", Terminal: "X1", TerminalPin: "1"},
		{ComponentTo: "S2", PinTo: "1", Terminal: "X1", TerminalPin: "3"},
	}
	bridges := map[string]Bridge{
		"X1": {Mode: BridgeAll},
		"X2": {Mode: BridgePerPrefix},
		"X3": {Mode: BridgeRanges, Ranges: []PinSpan{{1, 2}, {3, 4}}},
	}

	got := Finalize(rows, external, bridges)

	want := []struct{ key, from, to, bridge string }{
		{"X1/1", "S1", "K1", "1"},
		{"X1/2", "", "", ""},
		{"X1/3", "", "S2", "1"},
		{"X2/L1:1", "", "F1", "1"},
		{"X2/N:1", "", "F1", "2"},
		{"X3/1", "", "Q1", "1"},
		{"X3/2", "", "", ""},
		{"X3/3", "", "", ""},
		{"X3/4", "", "Q1", "2"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d rows %v, want %d", len(got), pins(got), len(want))
	}
	for i, w := range want {
		g := got[i]
		if g.Terminal+"/"+g.TerminalPin != w.key || g.ComponentFrom != w.from || g.ComponentTo != w.to || g.Bridge != w.bridge {
			t.Errorf("row %d = %+v, want %+v", i, g, w)
		}
	}
}
