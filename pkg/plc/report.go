package plc

import (
	"fmt"
	"strings"

	"github.com/matzehuels/schemaforge/pkg/registry"
)

// ReportHeader is the column header of the PLC report.
var ReportHeader = []string{"Module", "MPN", "Pin", "Component", "Component Pin", "Terminal"}

// ReportRow describes one physical pin of a rack.
type ReportRow struct {
	Module       string `json:"module"`
	MPN          string `json:"mpn"`
	Pin          string `json:"pin"`
	Component    string `json:"component"`
	ComponentPin string `json:"component_pin"`
	Terminal     string `json:"terminal"` // "X1:3", or empty without a terminal
}

// Record returns the row in ReportHeader column order.
func (r ReportRow) Record() []string {
	return []string{r.Module, r.MPN, r.Pin, r.Component, r.ComponentPin, r.Terminal}
}

// Wired reports whether a component is connected to the pin.
func (r ReportRow) Wired() bool { return r.Component != "" }

// ReportRows lists every physical pin of the rack, slot by slot, channel by
// channel, then by pin suffix, filled in from the resolved rows pointing at
// it. When two rows claim one pin the later one wins.
func ReportRows(rows []registry.Row, rack Rack) []ReportRow {
	type pinKey struct{ module, pin string }
	byPin := make(map[pinKey]registry.Row)
	for _, row := range rows {
		des, ok := strings.CutPrefix(row.ComponentTo, Prefix)
		if !ok {
			continue
		}
		byPin[pinKey{des, row.PinTo}] = row
	}

	var out []ReportRow
	for _, s := range rack {
		for ch := 1; ch <= s.Module.Channels; ch++ {
			for _, suffix := range s.Module.suffixes() {
				pin := fmt.Sprintf("%s%d", suffix, ch)
				rr := ReportRow{Module: s.Designation, MPN: s.Module.MPN, Pin: pin}
				if row, ok := byPin[pinKey{s.Designation, pin}]; ok {
					rr.Component = row.ComponentFrom
					rr.ComponentPin = row.PinFrom
					if row.Terminal != "" {
						rr.Terminal = row.Terminal + ":" + row.TerminalPin
					}
				}
				out = append(out, rr)
			}
		}
	}
	return out
}

// SlotUsage summarises channel occupancy of one slot.
type SlotUsage struct {
	Slot Slot
	Used int // Channels with at least one wired pin
}

// Free returns the number of unoccupied channels.
func (u SlotUsage) Free() int { return u.Slot.Module.Channels - u.Used }

// Occupancy returns per-slot channel usage, in rack order.
func Occupancy(rows []registry.Row, rack Rack) []SlotUsage {
	used := make(map[channelKey]bool)
	for _, row := range rows {
		markUsed(used, row)
	}
	out := make([]SlotUsage, 0, len(rack))
	for _, s := range rack {
		u := SlotUsage{Slot: s}
		for ch := 1; ch <= s.Module.Channels; ch++ {
			if used[channelKey{s.Designation, ch}] {
				u.Used++
			}
		}
		out = append(out, u)
	}
	return out
}
