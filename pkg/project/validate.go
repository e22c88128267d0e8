package project

import (
	"slices"

	"github.com/matzehuels/schemaforge/pkg/errors"
)

// Validate checks identifiers and cross references. It returns the first
// problem found.
func (p *Project) Validate() error {
	if p.Tolerance < 0 {
		return errors.New(errors.ErrCodeInvalidProject, "tolerance must not be negative")
	}

	seen := make(map[string]bool, len(p.Terminals))
	for _, t := range p.Terminals {
		if err := errors.ValidateTerminalID(t.ID); err != nil {
			return err
		}
		if seen[t.ID] {
			return errors.New(errors.ErrCodeInvalidProject, "terminal %q declared twice", t.ID)
		}
		seen[t.ID] = true
	}
	if _, err := p.Bridges(); err != nil {
		return err
	}

	for prefix, v := range p.Counters.Tags {
		if err := errors.ValidateTagPrefix(prefix); err != nil {
			return err
		}
		if v < 0 {
			return errors.New(errors.ErrCodeInvalidProject, "tag counter %q must not be negative", prefix)
		}
	}
	for id, v := range p.Counters.Terminals {
		if err := errors.ValidateTerminalID(id); err != nil {
			return err
		}
		if v < 0 {
			return errors.New(errors.ErrCodeInvalidProject, "terminal counter %q must not be negative", id)
		}
	}

	if _, err := p.BuildRack(); err != nil {
		return err
	}

	for name, tpl := range p.Templates {
		for _, pin := range tpl.Pins {
			if err := pin.Validate(); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidProject, err, "template %q", name)
			}
		}
	}
	tags := make(map[string]bool, len(p.Devices))
	for _, d := range p.Devices {
		if d.Tag == "" {
			return errors.New(errors.ErrCodeInvalidProject, "device without tag")
		}
		if tags[d.Tag] {
			return errors.New(errors.ErrCodeInvalidProject, "device %q declared twice", d.Tag)
		}
		tags[d.Tag] = true
	}
	if _, err := p.FieldDevices(); err != nil {
		return err
	}

	for i, c := range p.Connections {
		if err := c.validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidProject, err, "connection %d", i+1)
		}
	}
	return nil
}

func (c Connection) validate() error {
	if err := errors.ValidateTerminalID(c.Terminal); err != nil {
		return err
	}
	if !slices.Contains([]string{"top", "bottom"}, c.Side) {
		return errors.New(errors.ErrCodeInvalidInput, "side %q: want top or bottom", c.Side)
	}
	if len(c.ComponentPins) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no component pins")
	}
	if c.Component == "" {
		if err := errors.ValidateTagPrefix(c.TagPrefix); err != nil {
			return err
		}
	}
	if len(c.Pins) > 0 && len(c.Pins) != len(c.ComponentPins) {
		return errors.New(errors.ErrCodeInvalidInput,
			"%d terminal pins for %d component pins", len(c.Pins), len(c.ComponentPins))
	}
	return nil
}
