package report

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/schemaforge/pkg/alloc"
	"github.com/matzehuels/schemaforge/pkg/registry"
)

// Separator joins several components landing on the same side of one pin.
const Separator = " / "

// Row is one terminal pin in a report: a connection row plus an optional
// internal bridge group.
type Row struct {
	registry.Row
	Bridge string
}

// Record returns the row as CSV fields, with the bridge column if withBridge.
func (r Row) Record(withBridge bool) []string {
	rec := r.Row.Record()
	if withBridge {
		rec = append(rec, r.Bridge)
	}
	return rec
}

type pinKey struct {
	tag, pin string
}

type pinSides struct {
	top, bottom []registry.Connection
}

// Terminals builds the gap-filled, sorted terminal report for reg using the
// counters of the final State s. Pass s.Registry() or a filtered copy of it.
func Terminals(reg registry.Registry, s alloc.State) []Row {
	grouped := make(map[pinKey]*pinSides)
	for _, c := range reg.Connections() {
		k := pinKey{c.TerminalTag, c.TerminalPin}
		g := grouped[k]
		if g == nil {
			g = &pinSides{}
			grouped[k] = g
		}
		if c.Side == registry.SideTop {
			g.top = append(g.top, c)
		} else {
			g.bottom = append(g.bottom, c)
		}
	}

	keys := make(map[pinKey]struct{}, len(grouped))
	wired := make(map[string]struct{})
	for k := range grouped {
		keys[k] = struct{}{}
		wired[k.tag] = struct{}{}
	}
	for tag := range wired {
		for _, pin := range allocatedPins(s, tag) {
			keys[pinKey{tag, pin}] = struct{}{}
		}
	}

	sorted := make([]pinKey, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	slices.SortFunc(sorted, func(a, b pinKey) int {
		if c := strings.Compare(a.tag, b.tag); c != 0 {
			return c
		}
		return ComparePins(a.pin, b.pin)
	})

	rows := make([]Row, 0, len(sorted))
	for _, k := range sorted {
		row := Row{Row: registry.Row{Terminal: k.tag, TerminalPin: k.pin}}
		if g := grouped[k]; g != nil {
			row.ComponentFrom, row.PinFrom = join(g.top)
			row.ComponentTo, row.PinTo = join(g.bottom)
		}
		rows = append(rows, row)
	}
	return rows
}

// allocatedPins lists every pin slot the State implies for a terminal.
// Prefixed terminals enumerate prefix:1..n per known prefix, others 1..n.
func allocatedPins(s alloc.State, tag string) []string {
	var pins []string
	if prefixes := s.PrefixCounters(tag); len(prefixes) > 0 {
		for p, n := range prefixes {
			for i := 1; i <= n; i++ {
				pins = append(pins, p+":"+strconv.Itoa(i))
			}
		}
		return pins
	}
	for i := 1; i <= s.TerminalCounter(tag); i++ {
		pins = append(pins, strconv.Itoa(i))
	}
	return pins
}

func join(conns []registry.Connection) (tags, pins string) {
	if len(conns) == 0 {
		return "", ""
	}
	t := make([]string, len(conns))
	p := make([]string, len(conns))
	for i, c := range conns {
		t[i], p[i] = c.ComponentTag, c.ComponentPin
	}
	return strings.Join(t, Separator), strings.Join(p, Separator)
}

// pinClass ranks pin kinds: prefix:number, then number, then anything else.
func pinClass(pin string) (class int, prefix string, n int) {
	if i := strings.LastIndexByte(pin, ':'); i >= 0 {
		if v, err := strconv.Atoi(pin[i+1:]); err == nil {
			return 0, pin[:i], v
		}
	}
	if v, err := strconv.Atoi(pin); err == nil {
		return 1, "", v
	}
	return 2, "", 0
}

// ComparePins orders terminal pins for the registry export.
func ComparePins(a, b string) int {
	ca, pa, na := pinClass(a)
	cb, pb, nb := pinClass(b)
	if c := cmp.Compare(ca, cb); c != 0 {
		return c
	}
	if c := strings.Compare(pa, pb); c != 0 {
		return c
	}
	if c := cmp.Compare(na, nb); c != 0 {
		return c
	}
	// "01" and "1" rank alike; keep the order total.
	return strings.Compare(a, b)
}
