package project

import (
	"github.com/matzehuels/schemaforge/pkg/alloc"
	"github.com/matzehuels/schemaforge/pkg/errors"
	"github.com/matzehuels/schemaforge/pkg/field"
	"github.com/matzehuels/schemaforge/pkg/registry"
	"github.com/matzehuels/schemaforge/pkg/report"
)

// Device is a field device instance.
type Device struct {
	Tag         string `toml:"tag" yaml:"tag"`
	Template    string `toml:"template" yaml:"template"`
	Terminal    string `toml:"terminal" yaml:"terminal"`
	Description string `toml:"description" yaml:"description"`
}

// Connection is a cabinet-side connection. Empty pins are allocated from the
// terminal's counters and an empty component is allocated from TagPrefix.
//
//	[[connections]]
//	terminal = "X1"
//	prefixes = ["L1", "L2", "L3"]
//	tag_prefix = "F"
//	component_pins = ["2", "4", "6"]
type Connection struct {
	Terminal      string   `toml:"terminal" yaml:"terminal"`
	Pins          []string `toml:"pins" yaml:"pins"`
	Prefixes      []string `toml:"prefixes" yaml:"prefixes"`
	Component     string   `toml:"component" yaml:"component"`
	TagPrefix     string   `toml:"tag_prefix" yaml:"tag_prefix"`
	ComponentPins []string `toml:"component_pins" yaml:"component_pins"`
	Side          string   `toml:"side" yaml:"side"`
}

// Apply allocates whatever the connection leaves open and records it. A
// connection that fails validation leaves s untouched.
func (c Connection) Apply(s alloc.State) (alloc.State, error) {
	if err := c.validate(); err != nil {
		return s, errors.Wrap(errors.ErrCodeInvalidProject, err, "connection on %q", c.Terminal)
	}
	tag := c.Component
	if tag == "" {
		s, tag = s.NextTag(c.TagPrefix)
	}
	pins := c.Pins
	if len(pins) == 0 {
		s, pins = s.NextTerminalPins(c.Terminal, len(c.ComponentPins), c.Prefixes...)
	}
	side := registry.Side(c.Side)
	for i, cp := range c.ComponentPins {
		s = s.Connect(c.Terminal, pins[i], tag, cp, side)
	}
	return s, nil
}

// Seed applies the counter seeds of the project to s.
func (p *Project) Seed(s alloc.State) alloc.State {
	for prefix, v := range p.Counters.Tags {
		s = s.SetTagCounter(prefix, v)
	}
	for terminal, v := range p.Counters.Terminals {
		s = s.SetTerminalCounter(terminal, v)
	}
	return s
}

// FieldDevices resolves device instances against the templates.
func (p *Project) FieldDevices() ([]field.Device, error) {
	out := make([]field.Device, 0, len(p.Devices))
	for _, d := range p.Devices {
		tpl, ok := p.Templates[d.Template]
		if !ok {
			return nil, errors.New(errors.ErrCodeTemplateNotFound,
				"device %q: unknown template %q", d.Tag, d.Template)
		}
		out = append(out, field.Device{
			Tag:         d.Tag,
			Description: d.Description,
			Template:    tpl,
			Terminal:    d.Terminal,
		})
	}
	return out, nil
}

// ReuseSource returns the configured reuse pins, or nil.
func (p *Project) ReuseSource() field.Reuse {
	if len(p.Reuse) == 0 {
		return nil
	}
	return field.Reuse(p.Reuse)
}

// Bridges parses the bridge setting of every terminal that has one.
func (p *Project) Bridges() (map[string]report.Bridge, error) {
	out := make(map[string]report.Bridge)
	for _, t := range p.Terminals {
		if t.Bridge == "" {
			continue
		}
		b, err := report.ParseBridge(t.Bridge)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidProject, err, "terminal %q bridge", t.ID)
		}
		out[t.ID] = b
	}
	return out, nil
}
