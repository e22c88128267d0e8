// Package project loads schemaforge project files.
//
// A project file describes one control cabinet: its terminal strips, the PLC
// rack, field device templates and instances, cabinet-side connections, and
// where to write the generated reports. Files are TOML or YAML, chosen by
// extension:
//
//	name = "pump-station"
//
//	[[terminals]]
//	id = "X1"
//	description = "Mains distribution"
//	bridge = "per_prefix"
//
//	[modules.DI8]
//	mpn = "750-430"
//	signal_type = "24VDC"
//	channels = 8
//
//	[[rack]]
//	designation = "DI1"
//	module = "DI8"
//
// Relative paths inside a project file are resolved against the directory
// of the file.
package project

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/schemaforge/pkg/errors"
	"github.com/matzehuels/schemaforge/pkg/field"
	"github.com/matzehuels/schemaforge/pkg/plc"
)

// Format is a project file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatOf picks the encoding from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported project file %q (want .toml, .yaml or .yml)", path)
}

// Project is a parsed project file.
type Project struct {
	Name      string  `toml:"name" yaml:"name"`
	Tolerance float64 `toml:"tolerance" yaml:"tolerance"`
	// Drawing is an optional JSON drawing to trace for the wiring list.
	Drawing string `toml:"drawing" yaml:"drawing"`
	// Snapshot, when set, is loaded before the build (if it exists) and
	// written after it.
	Snapshot string `toml:"snapshot" yaml:"snapshot"`
	// External lists CSV files of connection rows produced elsewhere. Their
	// PLC references are resolved and they join the terminal report.
	External []string `toml:"external" yaml:"external"`

	Output      Output                    `toml:"output" yaml:"output"`
	Counters    Counters                  `toml:"counters" yaml:"counters"`
	Terminals   []Terminal                `toml:"terminals" yaml:"terminals"`
	Modules     map[string]plc.ModuleType `toml:"modules" yaml:"modules"`
	Rack        []RackSlot                `toml:"rack" yaml:"rack"`
	Templates   map[string]field.Template `toml:"templates" yaml:"templates"`
	Devices     []Device                  `toml:"devices" yaml:"devices"`
	Reuse       map[string][]string       `toml:"reuse" yaml:"reuse"`
	Connections []Connection              `toml:"connections" yaml:"connections"`

	dir string
}

// Output configures where reports are written.
type Output struct {
	Dir string `toml:"dir" yaml:"dir"`
}

// Counters seeds allocation counters before anything is built.
type Counters struct {
	Tags      map[string]int `toml:"tags" yaml:"tags"`
	Terminals map[string]int `toml:"terminals" yaml:"terminals"`
}

// Terminal describes a terminal strip.
type Terminal struct {
	ID          string `toml:"id" yaml:"id"`
	Description string `toml:"description" yaml:"description"`
	// Bridge is "all", "per_prefix", or ranges such as "1-4,7-9".
	Bridge string `toml:"bridge" yaml:"bridge"`
	// Reference terminals ("PLC:DI") are logical and never printed.
	Reference bool `toml:"reference" yaml:"reference"`
}

// RackSlot places a module type in the rack.
type RackSlot struct {
	Designation string `toml:"designation" yaml:"designation"`
	Module      string `toml:"module" yaml:"module"`
}

// Load reads and validates the project file at path.
func Load(path string) (*Project, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "project %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	p, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	abs, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	p.dir = abs
	return p, nil
}

// Parse decodes and validates a project. Relative paths resolve against the
// working directory.
func Parse(data []byte, format Format) (*Project, error) {
	var p Project
	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&p); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidProject, err, "parse TOML")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidProject, err, "parse YAML")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown project format %q", format)
	}
	applyDefaults(&p)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func applyDefaults(p *Project) {
	if p.Name == "" {
		p.Name = "schematic"
	}
	if p.Output.Dir == "" {
		p.Output.Dir = "out"
	}
	for i := range p.Connections {
		if p.Connections[i].Side == "" {
			p.Connections[i].Side = "top"
		}
	}
}

// Path resolves a path from the project file against the project directory.
func (p *Project) Path(rel string) string {
	if rel == "" || filepath.IsAbs(rel) || p.dir == "" {
		return rel
	}
	return filepath.Join(p.dir, rel)
}

// OutputPath returns the path of a named report inside the output directory.
func (p *Project) OutputPath(name string) string {
	return filepath.Join(p.Path(p.Output.Dir), name)
}

// Descriptions maps terminal ids to their descriptions.
func (p *Project) Descriptions() map[string]string {
	out := make(map[string]string, len(p.Terminals))
	for _, t := range p.Terminals {
		if t.Description != "" {
			out[t.ID] = t.Description
		}
	}
	return out
}

// IsReference reports whether a terminal is logical. PLC references always
// are.
func (p *Project) IsReference(id string) bool {
	if strings.HasPrefix(id, plc.Prefix) {
		return true
	}
	for _, t := range p.Terminals {
		if t.ID == id {
			return t.Reference
		}
	}
	return false
}

// BuildRack resolves rack slots against the module types.
func (p *Project) BuildRack() (plc.Rack, error) {
	rack := make(plc.Rack, 0, len(p.Rack))
	for _, s := range p.Rack {
		m, ok := p.Modules[s.Module]
		if !ok {
			return nil, errors.New(errors.ErrCodeModuleNotFound,
				"rack slot %q: unknown module type %q", s.Designation, s.Module)
		}
		rack = append(rack, plc.Slot{Designation: s.Designation, Module: m})
	}
	if err := rack.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidProject, err, "rack")
	}
	return rack, nil
}
