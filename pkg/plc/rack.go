package plc

import (
	"fmt"
	"slices"
	"strings"
)

// ModuleType is the hardware definition of an I/O module.
type ModuleType struct {
	MPN        string   `toml:"mpn" yaml:"mpn" json:"mpn"`
	SignalType string   `toml:"signal_type" yaml:"signal_type" json:"signal_type"`
	Channels   int      `toml:"channels" yaml:"channels" json:"channels"`
	// PinSuffixes names each wire of a channel. Pin labels are suffix plus
	// channel number: RTD ("+R", "RL", "-R"), 4-20mA ("Sig", "GND"), DI ("").
	PinSuffixes []string `toml:"pins_per_channel" yaml:"pins_per_channel" json:"pins_per_channel"`
}

// suffixes returns the module's pin suffixes, defaulting to a single empty
// suffix.
func (m ModuleType) suffixes() []string {
	if len(m.PinSuffixes) == 0 {
		return []string{""}
	}
	return m.PinSuffixes
}

// Offers reports whether every suffix in want is a pin suffix of m.
func (m ModuleType) Offers(want []string) bool {
	have := m.suffixes()
	for _, s := range want {
		if !slices.Contains(have, s) {
			return false
		}
	}
	return true
}

// Slot is one module mounted in a rack.
type Slot struct {
	Designation string
	Module      ModuleType
}

// Rack is an ordered list of slots.
type Rack []Slot

// Validate checks designations are unique and channel counts positive.
func (r Rack) Validate() error {
	seen := make(map[string]bool, len(r))
	for i, s := range r {
		if s.Designation == "" {
			return fmt.Errorf("rack slot %d: empty designation", i)
		}
		if seen[s.Designation] {
			return fmt.Errorf("rack slot %d: duplicate designation %q", i, s.Designation)
		}
		seen[s.Designation] = true
		if s.Module.Channels <= 0 {
			return fmt.Errorf("rack slot %q: channel count must be positive", s.Designation)
		}
	}
	return nil
}

// baseName strips trailing digits from a designation: "DI12" -> "DI".
func baseName(designation string) string {
	return strings.TrimRight(designation, "0123456789")
}

// Candidates returns the slots serving a type: by designation prefix, else by
// signal type.
func (r Rack) Candidates(typ string) []Slot {
	var out []Slot
	for _, s := range r {
		if baseName(s.Designation) == typ {
			out = append(out, s)
		}
	}
	if len(out) > 0 {
		return out
	}
	for _, s := range r {
		if s.Module.SignalType == typ {
			out = append(out, s)
		}
	}
	return out
}

// Capacity returns the total channel count of the slots serving typ.
func (r Rack) Capacity(typ string) int {
	n := 0
	for _, s := range r.Candidates(typ) {
		n += s.Module.Channels
	}
	return n
}

// channelKey identifies one channel of one slot.
type channelKey struct {
	designation string
	channel     int
}

type freeSlot struct {
	slot    Slot
	channel int
}

// freeChannels lists every channel of slots not in used, in rack order.
func freeChannels(slots []Slot, used map[channelKey]bool) []freeSlot {
	var out []freeSlot
	for _, s := range slots {
		for ch := 1; ch <= s.Module.Channels; ch++ {
			if !used[channelKey{s.Designation, ch}] {
				out = append(out, freeSlot{s, ch})
			}
		}
	}
	return out
}
