package plc

import (
	"strconv"
	"strings"
)

// Prefix marks a PLC reference tag.
const Prefix = "PLC:"

// Designation is a parsed PLC reference tag.
type Designation struct {
	Type        string
	Instance    int
	HasInstance bool
	Signal      string
}

// ParseDesignation parses "PLC:<type>[instance][:signal]". It returns false
// for tags without the PLC prefix. Trailing digits of the head are the
// instance, the same split [Rack.Candidates] applies to slot designations, so
// "PLC:4-20mA1:Sig" names slot "4-20mA1" while "PLC:4-20mA" is generic. A
// head made only of digits is kept whole as the type.
func ParseDesignation(tag string) (Designation, bool) {
	rest, ok := strings.CutPrefix(tag, Prefix)
	if !ok {
		return Designation{}, false
	}
	head, signal, _ := strings.Cut(rest, ":")

	d := Designation{Type: head, Signal: signal}
	typ := baseName(head)
	if typ == "" || typ == head {
		return d, true
	}
	if n, err := strconv.Atoi(head[len(typ):]); err == nil {
		d.Type, d.Instance, d.HasInstance = typ, n, true
	}
	return d, true
}

// moduleOf returns the module part of a PLC tag as written, e.g. "DI01" for
// "PLC:DI01:x". Used channels are keyed by it so they match the rack
// designation text.
func moduleOf(tag string) string {
	head, _, _ := strings.Cut(strings.TrimPrefix(tag, Prefix), ":")
	return head
}

// Generic reports whether the reference still needs a module assigned.
func (d Designation) Generic() bool { return !d.HasInstance }

// Module returns the module designation, e.g. "DI2", or the bare type for a
// generic reference.
func (d Designation) Module() string {
	if !d.HasInstance {
		return d.Type
	}
	return d.Type + strconv.Itoa(d.Instance)
}

// String returns the canonical tag without the signal, e.g. "PLC:DI2".
func (d Designation) String() string { return Prefix + d.Module() }

// channelOf returns the digits of a pin label as a channel number.
func channelOf(label string) (int, bool) {
	var b strings.Builder
	for _, r := range label {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(b.String())
	return n, err == nil
}
