package alloc

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/google/uuid"

	"github.com/matzehuels/schemaforge/pkg/registry"
)

// State is an immutable set of allocation counters plus the connection
// registry. The zero value is usable but has no lineage id; prefer [New].
type State struct {
	lineage   string
	tags      map[string]int
	terminals map[string]int
	prefixes  map[string]map[string]int
	floors    map[string]int
	contacts  map[string]int
	reg       registry.Registry
}

// New returns an empty State with a fresh lineage id.
func New() State {
	return State{lineage: uuid.NewString()}
}

// Lineage returns the id shared by every State derived from the same [New].
func (s State) Lineage() string { return s.lineage }

// TagCounter returns the last number handed out for prefix (0 if none).
func (s State) TagCounter(prefix string) int { return s.tags[prefix] }

// TerminalCounter returns the shared sequential counter of a terminal.
func (s State) TerminalCounter(terminal string) int { return s.terminals[terminal] }

// Floor returns the minimum group bound seeded for a terminal.
func (s State) Floor(terminal string) int { return s.floors[terminal] }

// PrefixCounters returns a copy of the per-prefix group counters of a terminal.
func (s State) PrefixCounters(terminal string) map[string]int {
	return maps.Clone(s.prefixes[terminal])
}

// NextTag allocates the next tag for prefix, e.g. "K1", "K2".
func (s State) NextTag(prefix string) (State, string) {
	n := s.tags[prefix] + 1
	s.tags = withKey(s.tags, prefix, n)
	return s, prefix + strconv.Itoa(n)
}

// NextTerminalPins allocates poles pins on terminal.
//
// With at least poles prefixes the call is a prefixed-group allocation over
// prefixes[:poles]; otherwise it is sequential. A non-positive pole count
// returns no pins and the unchanged State.
func (s State) NextTerminalPins(terminal string, poles int, prefixes ...string) (State, []string) {
	if poles <= 0 {
		return s, []string{}
	}
	if len(prefixes) >= poles {
		return s.nextGroup(terminal, prefixes[:poles])
	}

	start := s.terminals[terminal]
	pins := make([]string, poles)
	for i := range pins {
		pins[i] = strconv.Itoa(start + i + 1)
	}
	s.terminals = withKey(s.terminals, terminal, start+poles)
	return s, pins
}

func (s State) nextGroup(terminal string, requested []string) (State, []string) {
	current := s.prefixes[terminal]
	group := s.floors[terminal]
	for _, p := range requested {
		group = max(group, current[p])
	}
	group++

	next := maps.Clone(current)
	if next == nil {
		next = make(map[string]int, len(requested))
	}
	pins := make([]string, len(requested))
	for i, p := range requested {
		pins[i] = fmt.Sprintf("%s:%d", p, group)
		next[p] = group
	}
	s.prefixes = withKey(s.prefixes, terminal, next)
	return s, pins
}

// NextContactPins allocates the next changeover contact channel of a relay
// tag and returns its common, normally-closed and normally-open pins:
// ("11", "12", "14"), then ("21", "22", "24"), and so on.
func (s State) NextContactPins(tag string) (State, []string) {
	ch := s.contacts[tag] + 1
	s.contacts = withKey(s.contacts, tag, ch)
	return s, []string{
		fmt.Sprintf("%d1", ch),
		fmt.Sprintf("%d2", ch),
		fmt.Sprintf("%d4", ch),
	}
}

// SetTagCounter overwrites the counter of prefix. The next tag is value+1.
func (s State) SetTagCounter(prefix string, value int) State {
	s.tags = withKey(s.tags, prefix, value)
	return s
}

// SetTerminalCounter overwrites the shared counter of terminal, sets its floor
// to the same value and resets every known prefix counter of that terminal.
func (s State) SetTerminalCounter(terminal string, value int) State {
	s.terminals = withKey(s.terminals, terminal, value)
	s.floors = withKey(s.floors, terminal, value)
	if current, ok := s.prefixes[terminal]; ok {
		reset := make(map[string]int, len(current))
		for p := range current {
			reset[p] = value
		}
		s.prefixes = withKey(s.prefixes, terminal, reset)
	}
	return s
}

// Registry returns the connection registry carried by the State.
func (s State) Registry() registry.Registry { return s.reg }

// WithRegistry returns a State carrying r.
func (s State) WithRegistry(r registry.Registry) State {
	s.reg = r
	return s
}

// Connect records one terminal connection.
func (s State) Connect(terminal, pin, componentTag, componentPin string, side registry.Side) State {
	s.reg = s.reg.Add(terminal, pin, componentTag, componentPin, side)
	return s
}

// Connect3Phase records up to three positional terminal connections.
func (s State) Connect3Phase(terminal string, pins []string, componentTag string, componentPins []string, side registry.Side) State {
	s.reg = s.reg.Add3Phase(terminal, pins, componentTag, componentPins, side)
	return s
}

// Terminals returns every terminal with a sequential or prefixed counter,
// sorted.
func (s State) Terminals() []string {
	set := make(map[string]struct{}, len(s.terminals)+len(s.prefixes))
	for t := range s.terminals {
		set[t] = struct{}{}
	}
	for t := range s.prefixes {
		set[t] = struct{}{}
	}
	return slices.Sorted(maps.Keys(set))
}

// withKey returns a copy of m with k set to v. The input map is never written.
func withKey[V any](m map[string]V, k string, v V) map[string]V {
	out := make(map[string]V, len(m)+1)
	maps.Copy(out, m)
	out[k] = v
	return out
}
