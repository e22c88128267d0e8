package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/schemaforge/pkg/alloc"
	"github.com/matzehuels/schemaforge/pkg/errors"
	"github.com/matzehuels/schemaforge/pkg/registry"
	"github.com/matzehuels/schemaforge/pkg/report"
)

const sampleTOML = `
name = "pump-station"
tolerance = 0.2
drawing = "drawing.json"
external = ["field.csv"]

[output]
dir = "build"

[counters.tags]
F = 10

[counters.terminals]
X2 = 4

[[terminals]]
id = "X1"
description = "Mains distribution"
bridge = "per_prefix"

[[terminals]]
id = "X2"
description = "Signals"
bridge = "1-4,7-9"

[modules.DI8]
mpn = "750-430"
signal_type = "24VDC"
channels = 8

[modules.RTD4]
mpn = "750-460"
signal_type = "RTD"
channels = 4
pins_per_channel = ["+R", "RL", "-R"]

[[rack]]
designation = "DI1"
module = "DI8"

[[rack]]
designation = "RTD1"
module = "RTD4"

[templates.switch]
mpn = "XCK"
pins = [
  { pin = "13", terminal = "X2", plc = "PLC:DI" },
  { pin = "14", terminal = "X2" },
]

[[devices]]
tag = "LS-01"
template = "switch"
description = "Level switch"

[reuse]
X3 = ["5", "6"]

[[connections]]
terminal = "X1"
prefixes = ["L1", "L2", "L3"]
tag_prefix = "F"
component_pins = ["2", "4", "6"]
side = "top"
`

const sampleYAML = `
name: pump-station
terminals:
  - id: X1
    description: Mains distribution
modules:
  DI8:
    mpn: "750-430"
    channels: 8
rack:
  - designation: DI1
    module: DI8
templates:
  switch:
    mpn: XCK
    pins:
      - pin: "13"
        terminal: X2
        plc: "PLC:DI"
devices:
  - tag: LS-01
    template: switch
connections:
  - terminal: X1
    pins: ["1"]
    component: F1
    component_pins: ["2"]
`

func TestParseTOML(t *testing.T) {
	p, err := Parse([]byte(sampleTOML), FormatTOML)
	require.NoError(t, err)

	assert.Equal(t, "pump-station", p.Name)
	assert.Equal(t, 0.2, p.Tolerance)
	assert.Equal(t, "build", p.Output.Dir)
	assert.Equal(t, map[string]string{"X1": "Mains distribution", "X2": "Signals"}, p.Descriptions())

	rack, err := p.BuildRack()
	require.NoError(t, err)
	require.Len(t, rack, 2)
	assert.Equal(t, "RTD1", rack[1].Designation)
	assert.Equal(t, []string{"+R", "RL", "-R"}, rack[1].Module.PinSuffixes)

	devices, err := p.FieldDevices()
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, "XCK", devices[0].Template.MPN)
	assert.Equal(t, "PLC:DI", devices[0].Template.Pins[0].PLC)

	bridges, err := p.Bridges()
	require.NoError(t, err)
	assert.Equal(t, report.BridgePerPrefix, bridges["X1"].Mode)
	assert.Equal(t, []report.PinSpan{{From: 1, To: 4}, {From: 7, To: 9}}, bridges["X2"].Ranges)

	assert.Equal(t, []string{"5", "6"}, p.ReuseSource()["X3"])
}

func TestParseYAML(t *testing.T) {
	p, err := Parse([]byte(sampleYAML), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "out", p.Output.Dir, "default output dir")
	assert.Equal(t, "top", p.Connections[0].Side, "default side")
	assert.Nil(t, p.ReuseSource())

	rack, err := p.BuildRack()
	require.NoError(t, err)
	assert.Equal(t, 8, rack.Capacity("DI"))
}

func TestSeedAndApply(t *testing.T) {
	p, err := Parse([]byte(sampleTOML), FormatTOML)
	require.NoError(t, err)

	s := p.Seed(alloc.New())
	assert.Equal(t, 10, s.TagCounter("F"))
	assert.Equal(t, 4, s.TerminalCounter("X2"))

	s, err = p.Connections[0].Apply(s)
	require.NoError(t, err)
	conns := s.Registry().Connections()
	require.Len(t, conns, 3)
	assert.Equal(t, registry.Connection{
		TerminalTag: "X1", TerminalPin: "L1:1", ComponentTag: "F11", ComponentPin: "2", Side: registry.SideTop,
	}, conns[0])
	assert.Equal(t, "L3:1", conns[2].TerminalPin)
}

func TestApplyRejectsShortPinList(t *testing.T) {
	c := Connection{Terminal: "X1", Pins: []string{"1"}, Component: "K1", ComponentPins: []string{"A1", "A2"}, Side: "top"}
	s := alloc.New()

	got, err := c.Apply(s)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidProject))
	assert.Equal(t, 0, got.Registry().Len(), "nothing recorded")
	assert.Equal(t, s.Lineage(), got.Lineage())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code errors.Code
	}{
		{"bad bridge", "[[terminals]]\nid = \"X1\"\nbridge = \"4-1\"\n", errors.ErrCodeInvalidProject},
		{"duplicate terminal", "[[terminals]]\nid = \"X1\"\n[[terminals]]\nid = \"X1\"\n", errors.ErrCodeInvalidProject},
		{"bad terminal id", "[[terminals]]\nid = \"X 1\"\n", errors.ErrCodeInvalidTerminal},
		{"unknown module", "[[rack]]\ndesignation = \"DI1\"\nmodule = \"nope\"\n", errors.ErrCodeModuleNotFound},
		{"unknown template", "[[devices]]\ntag = \"B1\"\ntemplate = \"nope\"\n", errors.ErrCodeTemplateNotFound},
		{"bad side", "[[connections]]\nterminal = \"X1\"\ncomponent = \"F1\"\ncomponent_pins = [\"1\"]\nside = \"left\"\n", errors.ErrCodeInvalidProject},
		{"pin count", "[[connections]]\nterminal = \"X1\"\npins = [\"1\", \"2\"]\ncomponent = \"F1\"\ncomponent_pins = [\"1\"]\n", errors.ErrCodeInvalidProject},
		{"bad tag prefix", "[counters.tags]\n\"1F\" = 3\n", errors.ErrCodeInvalidTag},
		{"malformed", "name = ", errors.ErrCodeInvalidProject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), FormatTOML)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err), "error: %v", err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "project.yml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out", "terminals.csv"), p.OutputPath("terminals.csv"))
	assert.Equal(t, filepath.Join(dir, "field.csv"), p.Path("field.csv"))
	assert.Equal(t, "/abs/field.csv", p.Path("/abs/field.csv"))

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))

	_, err = Load(filepath.Join(dir, "project.json"))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
}

func TestIsReference(t *testing.T) {
	p := &Project{Terminals: []Terminal{{ID: "PE"}, {ID: "SHIELD", Reference: true}}}
	assert.True(t, p.IsReference("PLC:DI"))
	assert.True(t, p.IsReference("SHIELD"))
	assert.False(t, p.IsReference("PE"))
	assert.False(t, p.IsReference("X9"))
}
