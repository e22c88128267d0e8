package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/schemaforge/pkg/registry"
)

// BridgeMode selects how internal bridges are laid on a terminal strip.
type BridgeMode string

const (
	// BridgeNone leaves the strip unbridged.
	BridgeNone BridgeMode = ""
	// BridgeAll connects every pin of the strip as group "1".
	BridgeAll BridgeMode = "all"
	// BridgeRanges connects numeric pin ranges, one group per range.
	BridgeRanges BridgeMode = "ranges"
	// BridgePerPrefix connects all pins sharing a prefix, one group per
	// prefix in order of appearance after sorting.
	BridgePerPrefix BridgeMode = "per_prefix"
)

// PinSpan is an inclusive numeric pin range.
type PinSpan struct {
	From int `toml:"from" yaml:"from" json:"from"`
	To   int `toml:"to" yaml:"to" json:"to"`
}

// Bridge describes the internal bridges of one terminal strip.
type Bridge struct {
	Mode   BridgeMode
	Ranges []PinSpan
}

// ParseBridge parses "all", "per_prefix" or a range list such as "1-4,7-9".
func ParseBridge(s string) (Bridge, error) {
	switch strings.TrimSpace(s) {
	case "", "none":
		return Bridge{}, nil
	case string(BridgeAll):
		return Bridge{Mode: BridgeAll}, nil
	case string(BridgePerPrefix):
		return Bridge{Mode: BridgePerPrefix}, nil
	}

	var spans []PinSpan
	for _, part := range strings.Split(s, ",") {
		lo, hi, found := strings.Cut(strings.TrimSpace(part), "-")
		if !found {
			return Bridge{}, fmt.Errorf("bridge range %q: want from-to", part)
		}
		from, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return Bridge{}, fmt.Errorf("bridge range %q: %w", part, err)
		}
		to, err := strconv.Atoi(strings.TrimSpace(hi))
		if err != nil {
			return Bridge{}, fmt.Errorf("bridge range %q: %w", part, err)
		}
		if to < from {
			return Bridge{}, fmt.Errorf("bridge range %q: end before start", part)
		}
		spans = append(spans, PinSpan{From: from, To: to})
	}
	return Bridge{Mode: BridgeRanges, Ranges: spans}, nil
}

// ApplyBridges sets the bridge group of every row whose terminal has an
// "all" or range bridge. Per-prefix bridges are skipped here because their
// numbering depends on sorted order; see [ApplyPrefixBridges].
func ApplyBridges(rows []Row, bridges map[string]Bridge) {
	for i := range rows {
		b, ok := bridges[rows[i].Terminal]
		if !ok {
			continue
		}
		switch b.Mode {
		case BridgeAll:
			rows[i].Bridge = "1"
		case BridgeRanges:
			n, err := strconv.Atoi(rows[i].TerminalPin)
			if err != nil {
				continue
			}
			for g, span := range b.Ranges {
				if n >= span.From && n <= span.To {
					rows[i].Bridge = strconv.Itoa(g + 1)
					break
				}
			}
		}
	}
}

// ApplyPrefixBridges numbers the prefixes of each per-prefix terminal in
// order of appearance and writes the group to every "prefix:n" row.
func ApplyPrefixBridges(rows []Row, bridges map[string]Bridge) {
	groups := make(map[string]map[string]string)
	for i := range rows {
		r := &rows[i]
		if bridges[r.Terminal].Mode != BridgePerPrefix {
			continue
		}
		j := strings.LastIndexByte(r.TerminalPin, ':')
		if j < 0 {
			continue
		}
		prefix := r.TerminalPin[:j]
		tg := groups[r.Terminal]
		if tg == nil {
			tg = make(map[string]string)
			groups[r.Terminal] = tg
		}
		if _, ok := tg[prefix]; !ok {
			tg[prefix] = strconv.Itoa(len(tg) + 1)
		}
		r.Bridge = tg[prefix]
	}
}

// Finalize appends external field wiring to a terminal report, applies
// bridges, merges duplicates, fills gaps and sorts.
func Finalize(rows []Row, external []registry.Row, bridges map[string]Bridge) []Row {
	out := make([]Row, 0, len(rows)+len(external))
	out = append(out, rows...)
	for _, e := range external {
		out = append(out, Row{Row: e})
	}
	ApplyBridges(out, bridges)
	out = MergeAndSort(out)
	ApplyPrefixBridges(out, bridges)
	return out
}
