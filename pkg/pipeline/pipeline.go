// Package pipeline provides the build pipeline for schemaforge.
//
// This package runs a project file through every engine package and writes
// the reports. The CLI commands are thin wrappers around it, so `build`,
// `terminals` and `plc report` all see the same numbering and resolution.
//
// # Stages
//
//  1. load: parse the project file
//  2. state: resume from the snapshot, or seed a fresh allocation State
//  3. connect: record cabinet-side connections
//  4. field: expand field devices into connection rows
//  5. external: read connection rows produced elsewhere
//  6. resolve: assign PLC channels to the field and external rows
//  7. extract: turn registry PLC references into rows, on the channels left free
//  8. terminals: build the gap-filled, bridged terminal report
//  9. plc: lay the resolved rows out over the rack
//  10. trace: trace the wiring of a drawing, if the project has one
//  11. graph: render the traced wiring with Graphviz (cached)
//
// Each stage reports to [observability.Pipeline] hooks and logs one line.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    ProjectPath: "project.toml",
//	    Formats:     []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = pipeline.Write(result, pipeline.WriteOptions{})
package pipeline

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/matzehuels/schemaforge/pkg/alloc"
	"github.com/matzehuels/schemaforge/pkg/cache"
	"github.com/matzehuels/schemaforge/pkg/netlist"
	"github.com/matzehuels/schemaforge/pkg/plc"
	"github.com/matzehuels/schemaforge/pkg/project"
	"github.com/matzehuels/schemaforge/pkg/registry"
	"github.com/matzehuels/schemaforge/pkg/report"
)

// Format constants for graph output.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
	FormatDOT = "dot"
)

// ValidFormats is the set of supported graph formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
	FormatDOT: true,
}

// TTLGraph is how long a rendered graph stays cached.
const TTLGraph = 7 * 24 * time.Hour

// DefaultPNGScale is the rsvg-convert zoom for PNG output.
const DefaultPNGScale = 2.0

// Options configures a pipeline run.
type Options struct {
	// ProjectPath is the project file to load. Ignored if Project is set.
	ProjectPath string
	Project     *project.Project

	// Formats of the wiring graph. Empty renders no graph.
	Formats         []string
	Detailed        bool
	ShowUnconnected bool
	PNGScale        float64
	// Refresh ignores cached graph renders.
	Refresh bool

	// Fresh ignores the project's snapshot and starts from the seeds.
	Fresh bool

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Project *project.Project
	// State is the final allocation State, registry included.
	State alloc.State
	// Resumed is true when State continued from a snapshot.
	Resumed bool

	Rack      plc.Rack
	FieldRows []registry.Row
	External  []registry.Row
	// Connections are the field and external rows with PLC references
	// resolved, followed by rows extracted from the registry.
	Connections []registry.Row
	Warnings    []plc.Warning

	Terminals  []report.Row
	HasBridges bool
	PLC        []plc.ReportRow

	Wires      []netlist.Wire
	Components []report.Component
	DOT        string
	// Graph holds rendered wiring graphs keyed by format.
	Graph map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Connections int
	Terminals   int
	Wires       int
	Durations   map[string]time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	GraphHit bool // Whether every graph format came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, pdf, dot)", format)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Project == nil && o.ProjectPath == "" {
		return fmt.Errorf("project path is required")
	}
	if err := o.setRenderDefaults(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// setRenderDefaults validates the graph formats and applies render defaults.
// It is all RenderGraph needs, so graphs can be rendered without a project.
func (o *Options) setRenderDefaults() error {
	for _, f := range o.Formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	o.Formats = slices.Compact(slices.Sorted(slices.Values(o.Formats)))
	if o.PNGScale <= 0 {
		o.PNGScale = DefaultPNGScale
	}
	return nil
}

// GraphKeyOpts returns cache key options for a graph format.
func (o *Options) GraphKeyOpts(format string) cache.GraphKeyOpts {
	opts := cache.GraphKeyOpts{
		Format:          format,
		Detailed:        o.Detailed,
		ShowUnconnected: o.ShowUnconnected,
	}
	if format == FormatPNG {
		opts.Scale = o.PNGScale
	}
	return opts
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
