package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/schemaforge/pkg/alloc"
	"github.com/matzehuels/schemaforge/pkg/cache"
	"github.com/matzehuels/schemaforge/pkg/errors"
	"github.com/matzehuels/schemaforge/pkg/field"
	"github.com/matzehuels/schemaforge/pkg/geom"
	sfio "github.com/matzehuels/schemaforge/pkg/io"
	"github.com/matzehuels/schemaforge/pkg/netlist"
	"github.com/matzehuels/schemaforge/pkg/observability"
	"github.com/matzehuels/schemaforge/pkg/plc"
	"github.com/matzehuels/schemaforge/pkg/project"
	"github.com/matzehuels/schemaforge/pkg/registry"
	"github.com/matzehuels/schemaforge/pkg/render"
	"github.com/matzehuels/schemaforge/pkg/report"
	"github.com/matzehuels/schemaforge/pkg/snapshot"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// stage runs fn between stage hooks, records its duration and logs it.
func (r *Runner) stage(ctx context.Context, res *Result, name string, fn func() (int, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	observability.Pipeline().OnStageStart(ctx, name)
	start := time.Now()
	n, err := fn()
	d := time.Since(start)
	res.Stats.Durations[name] = d
	observability.Pipeline().OnStageComplete(ctx, name, n, d, err)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	r.Logger.Debug("stage complete", "stage", name, "items", n, "duration", d)
	return nil
}

// Execute runs every stage on the project.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	res := &Result{
		Graph: make(map[string][]byte),
		Stats: Stats{Durations: make(map[string]time.Duration)},
	}
	p := opts.Project

	stages := []struct {
		name string
		fn   func() (int, error)
	}{
		{"load", func() (int, error) {
			if p == nil {
				loaded, err := project.Load(opts.ProjectPath)
				if err != nil {
					return 0, err
				}
				p = loaded
			} else if err := p.Validate(); err != nil {
				return 0, err
			}
			res.Project = p
			rack, err := p.BuildRack()
			res.Rack = rack
			return len(p.Devices), err
		}},
		{"state", func() (int, error) {
			s, resumed, err := r.initialState(p, opts.Fresh)
			res.State, res.Resumed = s, resumed
			return s.Registry().Len(), err
		}},
		{"connect", func() (int, error) {
			for _, c := range p.Connections {
				s, err := c.Apply(res.State)
				if err != nil {
					return 0, err
				}
				res.State = s
			}
			return len(p.Connections), nil
		}},
		{"field", func() (int, error) {
			devices, err := p.FieldDevices()
			if err != nil {
				return 0, err
			}
			s, rows, err := field.Generate(res.State, devices, p.ReuseSource())
			if err != nil {
				return 0, err
			}
			res.State, res.FieldRows = s, rows
			return len(rows), nil
		}},
		{"external", func() (int, error) {
			rows, err := readExternal(p)
			res.External = rows
			return len(rows), err
		}},
		{"resolve", func() (int, error) {
			rows := append(append([]registry.Row{}, res.FieldRows...), res.External...)
			out := plc.Resolve(rows, res.Rack)
			r.warn(ctx, out.Warnings)
			observability.Resolve().OnAssigned(ctx, "rows", len(out.Rows))
			res.Warnings = append(res.Warnings, out.Warnings...)
			res.Connections = out.Rows
			return len(out.Rows), nil
		}},
		{"extract", func() (int, error) {
			out := plc.ExtractFromRegistry(res.State, res.Rack, res.Connections)
			r.warn(ctx, out.Warnings)
			observability.Resolve().OnAssigned(ctx, "registry", len(out.Rows))
			res.Warnings = append(res.Warnings, out.Warnings...)
			res.Connections = append(res.Connections, out.Rows...)
			res.Stats.Connections = len(res.Connections)
			return len(out.Rows), nil
		}},
		{"terminals", func() (int, error) {
			bridges, err := p.Bridges()
			if err != nil {
				return 0, err
			}
			reg := res.State.Registry().Filter(func(c registry.Connection) bool {
				return !p.IsReference(c.TerminalTag)
			})
			var external []registry.Row
			for _, row := range res.Connections {
				if row.Terminal != "" && !p.IsReference(row.Terminal) {
					external = append(external, row)
				}
			}
			res.Terminals = report.Finalize(report.Terminals(reg, res.State), external, bridges)
			res.HasBridges = len(bridges) > 0
			res.Stats.Terminals = len(res.Terminals)
			return len(res.Terminals), nil
		}},
		{"plc", func() (int, error) {
			res.PLC = plc.ReportRows(res.Connections, res.Rack)
			return len(res.PLC), nil
		}},
		{"trace", func() (int, error) {
			res.Components = fieldComponents(p)
			if p.Drawing == "" {
				return 0, nil
			}
			elems, err := sfio.ImportJSON(p.Path(p.Drawing))
			if err != nil {
				return 0, err
			}
			g := netlist.Build(elems, netlist.Options{Tolerance: p.Tolerance})
			res.Wires = g.Wires()
			res.Components = mergeComponents(drawingComponents(elems), res.Components)
			res.Stats.Wires = len(res.Wires)
			return len(res.Wires), nil
		}},
		{"graph", func() (int, error) {
			if len(opts.Formats) == 0 || len(res.Wires) == 0 {
				return 0, nil
			}
			res.DOT = netlist.ToDOT(res.Wires, netlist.DOTOptions{
				Detailed:        opts.Detailed,
				ShowUnconnected: opts.ShowUnconnected,
			})
			graphs, hit, err := r.RenderGraph(ctx, res.DOT, opts)
			res.Graph, res.CacheInfo.GraphHit = graphs, hit
			return len(graphs), err
		}},
	}

	for _, st := range stages {
		if err := r.stage(ctx, res, st.name, st.fn); err != nil {
			return nil, err
		}
	}

	r.Logger.Info("built project",
		"project", p.Name,
		"connections", res.Stats.Connections,
		"terminal_rows", res.Stats.Terminals,
		"wires", res.Stats.Wires,
		"warnings", len(res.Warnings))
	return res, nil
}

func (r *Runner) initialState(p *project.Project, fresh bool) (alloc.State, bool, error) {
	if p.Snapshot != "" && !fresh {
		sn, err := snapshot.Load(p.Path(p.Snapshot))
		switch {
		case err == nil:
			r.Logger.Info("resuming from snapshot", "id", sn.ID, "lineage", sn.Lineage, "taken", sn.CreatedAt)
			return sn.State(), true, nil
		case !errors.Is(err, errors.ErrCodeFileNotFound):
			return alloc.State{}, false, err
		}
	}
	return p.Seed(alloc.New()), false, nil
}

func (r *Runner) warn(ctx context.Context, warnings []plc.Warning) {
	for _, w := range warnings {
		observability.Resolve().OnShortfall(ctx, string(w.Kind), w.Type, w.Count)
		r.Logger.Warn(w.String())
	}
}

// RenderGraph renders the wiring graph in every requested format, consulting
// the cache first unless opts.Refresh is set. The bool reports whether every
// format came from cache.
func (r *Runner) RenderGraph(ctx context.Context, dot string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.setRenderDefaults(); err != nil {
		return nil, false, err
	}
	dotHash := cache.Hash([]byte(dot))
	out := make(map[string][]byte, len(opts.Formats))
	allHit := true

	var svg []byte
	svgOnce := func() ([]byte, error) {
		if svg != nil {
			return svg, nil
		}
		var err error
		svg, err = netlist.RenderSVG(ctx, dot)
		return svg, err
	}

	for _, format := range opts.Formats {
		if format == FormatDOT {
			out[format] = []byte(dot)
			continue
		}
		build := func() ([]byte, error) {
			data, err := svgOnce()
			if err != nil {
				return nil, err
			}
			switch format {
			case FormatPDF:
				return render.ToPDF(ctx, data)
			case FormatPNG:
				return render.ToPNG(ctx, data, opts.PNGScale)
			}
			return data, nil
		}

		key := r.Keyer.GraphKey(dotHash, opts.GraphKeyOpts(format))
		var (
			data []byte
			hit  bool
			err  error
		)
		if opts.Refresh {
			if data, err = build(); err == nil {
				err = r.Cache.Set(ctx, key, data, TTLGraph)
			}
		} else {
			data, hit, err = cache.Fetch(ctx, r.Cache, key, TTLGraph, build)
		}
		if data == nil && err != nil {
			return nil, false, err
		}
		if err != nil {
			r.Logger.Warn("graph not cached", "format", format, "err", err)
		}

		if hit {
			observability.Cache().OnCacheHit(ctx, "graph")
		} else {
			observability.Cache().OnCacheMiss(ctx, "graph")
			if err == nil {
				observability.Cache().OnCacheSet(ctx, "graph", len(data))
			}
			allHit = false
		}
		out[format] = data
	}
	return out, allHit, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func readExternal(p *project.Project) ([]registry.Row, error) {
	var rows []registry.Row
	for _, rel := range p.External {
		path := p.Path(rel)
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		read, err := report.ReadCSV(f)
		f.Close()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
		}
		for _, row := range read {
			if !row.IsBlank() {
				rows = append(rows, row.Row)
			}
		}
	}
	return rows, nil
}

func fieldComponents(p *project.Project) []report.Component {
	out := make([]report.Component, 0, len(p.Devices))
	for _, d := range p.Devices {
		c := report.Component{Tag: d.Tag, Description: d.Description}
		if tpl, ok := p.Templates[d.Template]; ok {
			c.MPN = tpl.MPN
		}
		out = append(out, c)
	}
	return out
}

// drawingComponents lists the non-terminal symbols of a drawing.
func drawingComponents(elems []geom.Element) []report.Component {
	var out []report.Component
	for _, sym := range netlist.Components(elems) {
		if sym.IsTerminal() {
			continue
		}
		out = append(out, report.Component{Tag: sym.Label, Description: sym.Description, MPN: sym.MPN})
	}
	return out
}

// mergeComponents appends extra components whose tags are not in base.
func mergeComponents(base, extra []report.Component) []report.Component {
	seen := make(map[string]bool, len(base))
	for _, c := range base {
		seen[c.Tag] = true
	}
	for _, c := range extra {
		if !seen[c.Tag] {
			base = append(base, c)
			seen[c.Tag] = true
		}
	}
	return base
}
