// Package field expands field device declarations into connection rows.
//
// A [Template] lists the pins of a device type. Each [PinDef] lands on a
// terminal in one of three numbering modes:
//
//   - Sequential: the next free pin of the terminal, or the next pin of a
//     reuse source when one is given for the terminal.
//   - Prefixed: "<prefix>:<group>". All prefixed pins of one device on one
//     terminal share a group, computed from the counters of just the
//     prefixes that device uses. A device wired to N only never advances L1.
//   - Fixed: a literal pin such as "PE".
//
// Numbering state lives in an [alloc.State], so field devices continue the
// numbering of cabinet circuits built from the same state. A pin may also
// carry a PLC reference tag ("PLC:AI") that the plc package resolves later.
package field

import (
	"slices"

	"github.com/matzehuels/schemaforge/pkg/alloc"
	"github.com/matzehuels/schemaforge/pkg/errors"
	"github.com/matzehuels/schemaforge/pkg/registry"
)

// Mode is the numbering mode of a pin.
type Mode int

const (
	Sequential Mode = iota
	Prefixed
	Fixed
)

func (m Mode) String() string {
	switch m {
	case Prefixed:
		return "prefixed"
	case Fixed:
		return "fixed"
	}
	return "sequential"
}

// PinDef defines one pin of a device template.
type PinDef struct {
	DevicePin string `toml:"pin" yaml:"pin" json:"pin"`
	Terminal  string `toml:"terminal" yaml:"terminal" json:"terminal,omitempty"`
	PLC       string `toml:"plc" yaml:"plc" json:"plc,omitempty"`
	Fixed     string `toml:"terminal_pin" yaml:"terminal_pin" json:"terminal_pin,omitempty"`
	Prefix    string `toml:"prefix" yaml:"prefix" json:"prefix,omitempty"`
}

// Mode returns the numbering mode implied by the set fields.
func (p PinDef) Mode() Mode {
	switch {
	case p.Fixed != "":
		return Fixed
	case p.Prefix != "":
		return Prefixed
	}
	return Sequential
}

// Validate rejects pins that mix numbering modes.
func (p PinDef) Validate() error {
	if p.DevicePin == "" {
		return errors.New(errors.ErrCodeInvalidInput, "pin definition without device pin")
	}
	if p.Fixed != "" && p.Prefix != "" {
		return errors.New(errors.ErrCodeInvalidInput,
			"pin %q: terminal_pin and prefix are mutually exclusive", p.DevicePin)
	}
	if p.Terminal != "" {
		if err := errors.ValidateTerminalID(p.Terminal); err != nil {
			return err
		}
	}
	return nil
}

// Template is a reusable connection pattern for a device type.
type Template struct {
	MPN  string   `toml:"mpn" yaml:"mpn" json:"mpn"`
	Pins []PinDef `toml:"pins" yaml:"pins" json:"pins"`
}

// Device is one field device instance.
type Device struct {
	Tag         string
	Description string
	Template    Template
	// Terminal is used for pins whose definition names no terminal.
	Terminal string
}

func (d Device) terminalFor(p PinDef) string {
	if p.Terminal != "" {
		return p.Terminal
	}
	return d.Terminal
}

// Reuse maps a terminal to pins consumed, in order, by its sequential pins
// instead of allocating new ones.
type Reuse map[string][]string

// PinMap lists the pins each terminal of reg uses, in first-appearance order.
// It is the usual reuse source when field wiring lands on pins a cabinet
// build already allocated.
func PinMap(reg registry.Registry) Reuse {
	out := make(Reuse)
	for _, c := range reg.Connections() {
		if !slices.Contains(out[c.TerminalTag], c.TerminalPin) {
			out[c.TerminalTag] = append(out[c.TerminalTag], c.TerminalPin)
		}
	}
	return out
}

// Generate expands devices into connection rows, one per template pin, in
// declaration order. The returned State carries the advanced counters. On
// error the State passed in is returned unchanged.
func Generate(in alloc.State, devices []Device, reuse Reuse) (alloc.State, []registry.Row, error) {
	s := in
	consumed := make(map[string]int, len(reuse))
	var rows []registry.Row

	for _, d := range devices {
		// Prefixes each terminal of this device uses, in template order.
		used := make(map[string][]string)
		for _, p := range d.Template.Pins {
			if err := p.Validate(); err != nil {
				return in, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "device %q", d.Tag)
			}
			t := d.terminalFor(p)
			if p.Mode() == Prefixed && t != "" && !slices.Contains(used[t], p.Prefix) {
				used[t] = append(used[t], p.Prefix)
			}
		}

		groups := make(map[string]map[string]string)
		for _, p := range d.Template.Pins {
			t := d.terminalFor(p)
			if t == "" {
				return in, nil, errors.New(errors.ErrCodeInvalidInput,
					"device %q pin %q: no terminal in template and no device terminal", d.Tag, p.DevicePin)
			}

			var pin string
			switch p.Mode() {
			case Fixed:
				pin = p.Fixed
			case Prefixed:
				if groups[t] == nil {
					var pins []string
					s, pins = s.NextTerminalPins(t, len(used[t]), used[t]...)
					groups[t] = make(map[string]string, len(pins))
					for i, prefix := range used[t] {
						groups[t][prefix] = pins[i]
					}
				}
				pin = groups[t][p.Prefix]
			default:
				if src, ok := reuse[t]; ok {
					i := consumed[t]
					if i >= len(src) {
						return in, nil, &errors.ExhaustedError{Source: t, Consumed: slices.Clone(src)}
					}
					consumed[t] = i + 1
					pin = src[i]
					break
				}
				var pins []string
				s, pins = s.NextTerminalPins(t, 1)
				pin = pins[0]
			}

			rows = append(rows, registry.Row{
				ComponentFrom: d.Tag,
				PinFrom:       p.DevicePin,
				Terminal:      t,
				TerminalPin:   pin,
				ComponentTo:   p.PLC,
			})
		}
	}
	return s, rows, nil
}
