package plc

import (
	"fmt"
	"slices"

	"github.com/matzehuels/schemaforge/pkg/alloc"
	"github.com/matzehuels/schemaforge/pkg/natsort"
	"github.com/matzehuels/schemaforge/pkg/registry"
)

// WarningKind classifies a resolution shortfall.
type WarningKind string

const (
	// WarnOverflow means requests were dropped because no channel was free.
	WarnOverflow WarningKind = "overflow"
	// WarnUnmapped means no module in the rack serves the requested type.
	WarnUnmapped WarningKind = "unmapped"
	// WarnMixed means a bucket mixed suffixed and plain requests and was
	// dropped as a whole.
	WarnMixed WarningKind = "mixed"
)

// Warning records requests that could not be assigned.
type Warning struct {
	Kind  WarningKind
	Type  string // Requested PLC type, e.g. "DI"
	Count int    // Number of requests affected
}

func (w Warning) String() string {
	switch w.Kind {
	case WarnOverflow:
		return fmt.Sprintf("PLC:%s: %d request(s) dropped, no free channel", w.Type, w.Count)
	case WarnUnmapped:
		return fmt.Sprintf("PLC:%s: no module in rack, %d request(s) unresolved", w.Type, w.Count)
	case WarnMixed:
		return fmt.Sprintf("PLC:%s: %d request(s) mix suffixed and plain pins, bucket dropped", w.Type, w.Count)
	}
	return fmt.Sprintf("PLC:%s: %s (%d)", w.Type, w.Kind, w.Count)
}

// Result is the outcome of a resolution pass.
type Result struct {
	Rows     []registry.Row
	Warnings []Warning
}

// Dropped returns the number of requests lost to overflow or mixed buckets.
func (r Result) Dropped() int {
	n := 0
	for _, w := range r.Warnings {
		if w.Kind != WarnUnmapped {
			n += w.Count
		}
	}
	return n
}

// request is one generic PLC reference awaiting a channel.
type request struct {
	row    registry.Row
	des    Designation
	keyA   string // primary natural sort key
	keyB   string // secondary natural sort key
	device string // owning device for multi-pin grouping
}

func compareRequests(a, b request) int {
	return natsort.ComparePair(a.keyA, a.keyB, b.keyA, b.keyB)
}

// bucket collects generic requests of one type in first-appearance order.
type buckets struct {
	order []string
	byTyp map[string][]request
}

func (b *buckets) add(r request) {
	if b.byTyp == nil {
		b.byTyp = make(map[string][]request)
	}
	if _, ok := b.byTyp[r.des.Type]; !ok {
		b.order = append(b.order, r.des.Type)
	}
	b.byTyp[r.des.Type] = append(b.byTyp[r.des.Type], r)
}

// markUsed records the channel a resolved row occupies.
func markUsed(used map[channelKey]bool, row registry.Row) {
	d, ok := ParseDesignation(row.ComponentTo)
	if !ok || d.Generic() {
		return
	}
	if ch, ok := channelOf(row.PinTo); ok {
		used[channelKey{moduleOf(row.ComponentTo), ch}] = true
	}
}

// Resolve assigns every generic PLC reference in rows to a free channel of
// rack. Non-PLC rows and rows already naming a module are passed through in
// their original order, followed by the resolved rows of each type in the
// order the type first appeared. Requests for a type no module serves are
// passed through unresolved.
func Resolve(rows []registry.Row, rack Rack) Result {
	var (
		res  Result
		bkts buckets
		used = make(map[channelKey]bool)
	)
	for _, row := range rows {
		d, ok := ParseDesignation(row.ComponentTo)
		if !ok || !d.Generic() {
			res.Rows = append(res.Rows, row)
			markUsed(used, row)
			continue
		}
		bkts.add(request{
			row:    row,
			des:    d,
			keyA:   row.Terminal,
			keyB:   row.TerminalPin,
			device: row.ComponentFrom,
		})
	}

	for _, typ := range bkts.order {
		reqs := bkts.byTyp[typ]
		slots := rack.Candidates(typ)
		if len(slots) == 0 {
			for _, r := range reqs {
				res.Rows = append(res.Rows, r.row)
			}
			res.Warnings = append(res.Warnings, Warning{Kind: WarnUnmapped, Type: typ, Count: len(reqs)})
			continue
		}
		rows, warn := pack(typ, reqs, slots, used)
		res.Rows = append(res.Rows, rows...)
		if warn != nil {
			res.Warnings = append(res.Warnings, *warn)
		}
	}
	return res
}

// ExtractFromRegistry turns the PLC references recorded in a State's registry
// into resolved rows. Channels held by existing rows are skipped. Registry
// entries that already name a module are emitted as they are. Types no module
// serves are left out and reported as unmapped.
func ExtractFromRegistry(s alloc.State, rack Rack, existing []registry.Row) Result {
	used := make(map[channelKey]bool)
	for _, row := range existing {
		markUsed(used, row)
	}

	var (
		res  Result
		bkts buckets
	)
	for _, c := range s.Registry().Connections() {
		d, ok := ParseDesignation(c.TerminalTag)
		if !ok {
			continue
		}
		row := registry.Row{
			ComponentFrom: c.ComponentTag,
			PinFrom:       c.ComponentPin,
			ComponentTo:   c.TerminalTag,
		}
		if !d.Generic() {
			row.ComponentTo = Prefix + moduleOf(c.TerminalTag)
			row.PinTo = c.TerminalPin
			res.Rows = append(res.Rows, row)
			markUsed(used, row)
			continue
		}
		bkts.add(request{row: row, des: d, keyA: c.ComponentTag, device: c.ComponentTag})
	}

	for _, typ := range bkts.order {
		reqs := bkts.byTyp[typ]
		slots := rack.Candidates(typ)
		if len(slots) == 0 {
			res.Warnings = append(res.Warnings, Warning{Kind: WarnUnmapped, Type: typ, Count: len(reqs)})
			continue
		}
		rows, warn := pack(typ, reqs, slots, used)
		res.Rows = append(res.Rows, rows...)
		if warn != nil {
			res.Warnings = append(res.Warnings, *warn)
		}
	}
	return res
}

// pack assigns channels of slots to the requests of one type, marking every
// assigned channel in used.
func pack(typ string, reqs []request, slots []Slot, used map[channelKey]bool) ([]registry.Row, *Warning) {
	suffixed := 0
	for _, r := range reqs {
		if r.des.Signal != "" {
			suffixed++
		}
	}
	switch {
	case suffixed == 0:
		return packSingle(typ, reqs, slots, used)
	case suffixed == len(reqs):
		return packMulti(typ, reqs, slots, used)
	default:
		return nil, &Warning{Kind: WarnMixed, Type: typ, Count: len(reqs)}
	}
}

func assign(r request, f freeSlot, label string) registry.Row {
	row := r.row
	row.ComponentTo = Prefix + f.slot.Designation
	row.PinTo = label
	return row
}

func packSingle(typ string, reqs []request, slots []Slot, used map[channelKey]bool) ([]registry.Row, *Warning) {
	reqs = slices.Clone(reqs)
	slices.SortStableFunc(reqs, compareRequests)

	free := freeChannels(slots, used)
	var out []registry.Row
	for i, r := range reqs {
		if i >= len(free) {
			return out, &Warning{Kind: WarnOverflow, Type: typ, Count: len(reqs) - i}
		}
		f := free[i]
		used[channelKey{f.slot.Designation, f.channel}] = true
		out = append(out, assign(r, f, fmt.Sprintf("%s%d", f.slot.Module.suffixes()[0], f.channel)))
	}
	return out, nil
}

type device struct {
	name string
	reqs []request
	min  request
}

func packMulti(typ string, reqs []request, slots []Slot, used map[channelKey]bool) ([]registry.Row, *Warning) {
	var want []string
	for _, r := range reqs {
		if !slices.Contains(want, r.des.Signal) {
			want = append(want, r.des.Signal)
		}
	}
	var fit []Slot
	for _, s := range slots {
		if s.Module.Offers(want) {
			fit = append(fit, s)
		}
	}

	var devices []*device
	index := make(map[string]*device)
	for _, r := range reqs {
		d, ok := index[r.device]
		if !ok {
			d = &device{name: r.device, min: r}
			index[r.device] = d
			devices = append(devices, d)
		}
		d.reqs = append(d.reqs, r)
		if compareRequests(r, d.min) < 0 {
			d.min = r
		}
	}
	slices.SortStableFunc(devices, func(a, b *device) int {
		return compareRequests(a.min, b.min)
	})

	free := freeChannels(fit, used)
	var out []registry.Row
	for i, d := range devices {
		if i >= len(free) {
			dropped := 0
			for _, rest := range devices[i:] {
				dropped += len(rest.reqs)
			}
			return out, &Warning{Kind: WarnOverflow, Type: typ, Count: dropped}
		}
		f := free[i]
		used[channelKey{f.slot.Designation, f.channel}] = true
		for _, r := range d.reqs {
			out = append(out, assign(r, f, fmt.Sprintf("%s%d", r.des.Signal, f.channel)))
		}
	}
	return out, nil
}
