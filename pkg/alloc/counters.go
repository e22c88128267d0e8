package alloc

import (
	"maps"

	"github.com/matzehuels/schemaforge/pkg/registry"
)

// Counters is a plain, serialisable copy of every counter in a State.
type Counters struct {
	Tags             map[string]int            `msgpack:"tags" json:"tags"`
	Terminals        map[string]int            `msgpack:"terminals" json:"terminals"`
	TerminalPrefixes map[string]map[string]int `msgpack:"terminal_prefixes" json:"terminal_prefixes"`
	Floors           map[string]int            `msgpack:"floors" json:"floors"`
	ContactChannels  map[string]int            `msgpack:"contact_channels" json:"contact_channels"`
}

// Counters returns a deep copy of the State's counters.
func (s State) Counters() Counters {
	prefixes := make(map[string]map[string]int, len(s.prefixes))
	for t, m := range s.prefixes {
		prefixes[t] = maps.Clone(m)
	}
	return Counters{
		Tags:             cloneOrEmpty(s.tags),
		Terminals:        cloneOrEmpty(s.terminals),
		TerminalPrefixes: prefixes,
		Floors:           cloneOrEmpty(s.floors),
		ContactChannels:  cloneOrEmpty(s.contacts),
	}
}

// Restore rebuilds a State from saved counters and connections. The lineage
// id is kept so restored States can be matched to their origin.
func Restore(lineage string, c Counters, r registry.Registry) State {
	prefixes := make(map[string]map[string]int, len(c.TerminalPrefixes))
	for t, m := range c.TerminalPrefixes {
		prefixes[t] = maps.Clone(m)
	}
	return State{
		lineage:   lineage,
		tags:      maps.Clone(c.Tags),
		terminals: maps.Clone(c.Terminals),
		prefixes:  prefixes,
		floors:    maps.Clone(c.Floors),
		contacts:  maps.Clone(c.ContactChannels),
		reg:       r,
	}
}

func cloneOrEmpty(m map[string]int) map[string]int {
	if m == nil {
		return map[string]int{}
	}
	return maps.Clone(m)
}
