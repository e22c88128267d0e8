package report

import (
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/schemaforge/pkg/natsort"
	"github.com/matzehuels/schemaforge/pkg/registry"
)

// Merge collapses rows sharing a (terminal, pin) into one row per pin, in
// first-appearance order.
//
// All (component, pin) pairs of a duplicate group are collected from both
// sides. A side with several entries donates to an empty opposite side, then
// the last From entry and the first To entry are kept. This matches how
// field wiring appended after the registry export lands on a strip: the
// appended device ends up last on the From side. Any non-empty bridge of the
// group is kept.
func Merge(rows []Row) []Row {
	var order []pinKey
	groups := make(map[pinKey][]Row)
	for _, r := range rows {
		k := pinKey{r.Terminal, r.TerminalPin}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], r)
	}

	out := make([]Row, 0, len(order))
	for _, k := range order {
		g := groups[k]
		if len(g) == 1 {
			out = append(out, g[0])
			continue
		}
		out = append(out, mergeGroup(g))
	}
	return out
}

type endpoint struct{ comp, pin string }

func mergeGroup(g []Row) Row {
	var from, to []endpoint
	var bridge string
	for _, r := range g {
		if r.ComponentFrom != "" {
			from = append(from, endpoint{r.ComponentFrom, r.PinFrom})
		}
		if r.ComponentTo != "" {
			to = append(to, endpoint{r.ComponentTo, r.PinTo})
		}
		if r.Bridge != "" {
			bridge = r.Bridge
		}
	}

	for len(from) > 1 && len(to) < 1 {
		to = append(to, from[0])
		from = from[1:]
	}
	for len(to) > 1 && len(from) < 1 {
		from = append(from, to[0])
		to = to[1:]
	}

	merged := Row{
		Row:    registry.Row{Terminal: g[0].Terminal, TerminalPin: g[0].TerminalPin},
		Bridge: bridge,
	}
	if len(from) > 0 {
		last := from[len(from)-1]
		merged.ComponentFrom, merged.PinFrom = last.comp, last.pin
	}
	if len(to) > 0 {
		merged.ComponentTo, merged.PinTo = to[0].comp, to[0].pin
	}
	return merged
}

// FillGaps returns rows plus blank placeholders for every missing slot below
// the highest number seen per (terminal, prefix). Plain numeric pins count as
// the empty prefix. Rows with pins that carry no number are left alone.
func FillGaps(rows []Row) []Row {
	type slot struct{ tag, prefix string }

	var order []slot
	highest := make(map[slot]int)
	existing := make(map[pinKey]bool, len(rows))
	for _, r := range rows {
		existing[pinKey{r.Terminal, r.TerminalPin}] = true

		prefix, num, ok := splitPin(r.TerminalPin)
		if !ok {
			continue
		}
		s := slot{r.Terminal, prefix}
		if _, seen := highest[s]; !seen {
			order = append(order, s)
		}
		highest[s] = max(highest[s], num)
	}

	out := slices.Clone(rows)
	for _, s := range order {
		for n := 1; n <= highest[s]; n++ {
			pin := strconv.Itoa(n)
			if s.prefix != "" {
				pin = s.prefix + ":" + pin
			}
			k := pinKey{s.tag, pin}
			if existing[k] {
				continue
			}
			existing[k] = true
			out = append(out, Row{Row: registry.Row{Terminal: s.tag, TerminalPin: pin}})
		}
	}
	return out
}

// splitPin parses "prefix:n" or "n".
func splitPin(pin string) (prefix string, n int, ok bool) {
	if i := strings.LastIndexByte(pin, ':'); i >= 0 {
		v, err := strconv.Atoi(pin[i+1:])
		return pin[:i], v, err == nil
	}
	v, err := strconv.Atoi(pin)
	return "", v, err == nil
}

// SortNatural orders rows by terminal tag, then pin, both in natural order.
// The sort is stable so rows with equal keys keep their relative order.
func SortNatural(rows []Row) {
	slices.SortStableFunc(rows, func(a, b Row) int {
		return natsort.ComparePair(a.Terminal, a.TerminalPin, b.Terminal, b.TerminalPin)
	})
}

// MergeAndSort runs [Merge], [FillGaps] and [SortNatural].
func MergeAndSort(rows []Row) []Row {
	if len(rows) == 0 {
		return rows
	}
	out := FillGaps(Merge(rows))
	SortNatural(out)
	return out
}
