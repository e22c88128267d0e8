package alloc

import (
	"slices"
	"testing"

	"github.com/matzehuels/schemaforge/pkg/registry"
)

func TestNextTag_Succession(t *testing.T) {
	s := New()
	s, k1 := s.NextTag("K")
	s, f1 := s.NextTag("F")
	s, k2 := s.NextTag("K")

	if k1 != "K1" || k2 != "K2" {
		t.Errorf("K tags = %s, %s, want K1, K2", k1, k2)
	}
	if f1 != "F1" {
		t.Errorf("F tag = %s, want F1", f1)
	}
	if s.TagCounter("F") != 1 {
		t.Errorf("F counter = %d, want 1 (unaffected by K)", s.TagCounter("F"))
	}
}

func TestNextTag_Immutable(t *testing.T) {
	base := New()
	a, tagA := base.NextTag("Q")
	b, tagB := base.NextTag("Q")

	if tagA != "Q1" || tagB != "Q1" {
		t.Errorf("forked tags = %s, %s, want Q1, Q1", tagA, tagB)
	}
	if base.TagCounter("Q") != 0 {
		t.Errorf("base counter = %d, want 0", base.TagCounter("Q"))
	}
	a, _ = a.NextTag("Q")
	if b.TagCounter("Q") != 1 {
		t.Errorf("branch b counter = %d, want 1 after advancing branch a", b.TagCounter("Q"))
	}
	if a.Lineage() != base.Lineage() || a.Lineage() == "" {
		t.Errorf("lineage not shared: base=%q a=%q", base.Lineage(), a.Lineage())
	}
}

func TestNextTerminalPins_Sequential(t *testing.T) {
	s := New()
	s, first := s.NextTerminalPins("X1", 3)
	s, second := s.NextTerminalPins("X1", 3)
	s, other := s.NextTerminalPins("X2", 2)

	if !slices.Equal(first, []string{"1", "2", "3"}) {
		t.Errorf("first = %v, want [1 2 3]", first)
	}
	if !slices.Equal(second, []string{"4", "5", "6"}) {
		t.Errorf("second = %v, want [4 5 6]", second)
	}
	if !slices.Equal(other, []string{"1", "2"}) {
		t.Errorf("X2 = %v, want [1 2]", other)
	}
	if s.TerminalCounter("X1") != 6 {
		t.Errorf("X1 counter = %d, want 6", s.TerminalCounter("X1"))
	}
}

func TestNextTerminalPins_FewerPrefixesThanPoles(t *testing.T) {
	s, pins := New().NextTerminalPins("X1", 3, "L1", "N")
	if !slices.Equal(pins, []string{"1", "2", "3"}) {
		t.Errorf("pins = %v, want sequential [1 2 3]", pins)
	}
	if len(s.PrefixCounters("X1")) != 0 {
		t.Errorf("prefix counters touched: %v", s.PrefixCounters("X1"))
	}
}

func TestNextTerminalPins_ZeroPoles(t *testing.T) {
	s := New()
	next, pins := s.NextTerminalPins("X1", 0)
	if len(pins) != 0 {
		t.Errorf("pins = %v, want empty", pins)
	}
	if next.TerminalCounter("X1") != 0 {
		t.Errorf("counter advanced to %d", next.TerminalCounter("X1"))
	}
	_, pins = s.NextTerminalPins("X1", -2, "L1")
	if len(pins) != 0 {
		t.Errorf("negative poles pins = %v, want empty", pins)
	}
}

func TestNextTerminalPins_PrefixedIsolation(t *testing.T) {
	s := New()
	s, first := s.NextTerminalPins("X001", 1, "L1")
	s, second := s.NextTerminalPins("X001", 4, "L1", "L2", "L3", "N")

	if !slices.Equal(first, []string{"L1:1"}) {
		t.Errorf("first = %v, want [L1:1]", first)
	}
	want := []string{"L1:2", "L2:2", "L3:2", "N:2"}
	if !slices.Equal(second, want) {
		t.Errorf("second = %v, want %v", second, want)
	}

	// Start over, only the requested prefix may move.
	s2, _ := New().NextTerminalPins("X001", 1, "L1")
	counters := s2.PrefixCounters("X001")
	for _, p := range []string{"L2", "L3", "N"} {
		if counters[p] != 0 {
			t.Errorf("%s counter = %d, want untouched", p, counters[p])
		}
	}
}

func TestNextTerminalPins_PrefixScenario(t *testing.T) {
	s := New()
	s, full := s.NextTerminalPins("X001", 4, "L1", "L2", "L3", "N")
	s, partial := s.NextTerminalPins("X001", 2, "N", "L1")

	if !slices.Equal(full, []string{"L1:1", "L2:1", "L3:1", "N:1"}) {
		t.Errorf("full = %v", full)
	}
	if !slices.Equal(partial, []string{"N:2", "L1:2"}) {
		t.Errorf("partial = %v, want [N:2 L1:2]", partial)
	}
	if got := s.PrefixCounters("X001")["L2"]; got != 1 {
		t.Errorf("L2 counter = %d, want 1", got)
	}
}

func TestNextTerminalPins_OnlyFirstPolesPrefixesUsed(t *testing.T) {
	s, pins := New().NextTerminalPins("X001", 2, "L1", "L2", "L3", "N")
	if !slices.Equal(pins, []string{"L1:1", "L2:1"}) {
		t.Errorf("pins = %v, want [L1:1 L2:1]", pins)
	}
	if _, ok := s.PrefixCounters("X001")["N"]; ok {
		t.Error("N counter created by a call that did not request it")
	}
}

func TestSetTerminalCounter_SeedsFloor(t *testing.T) {
	s := New()
	s, _ = s.NextTerminalPins("X001", 2, "L1", "N")
	s = s.SetTerminalCounter("X001", 10)

	if got := s.PrefixCounters("X001"); got["L1"] != 10 || got["N"] != 10 {
		t.Errorf("prefix counters after seed = %v, want all 10", got)
	}

	s, pins := s.NextTerminalPins("X001", 1, "PE")
	if !slices.Equal(pins, []string{"PE:11"}) {
		t.Errorf("unknown prefix after seed = %v, want [PE:11]", pins)
	}
	if s.Floor("X001") != 10 {
		t.Errorf("floor advanced to %d", s.Floor("X001"))
	}

	s, seq := s.NextTerminalPins("X001", 2)
	if !slices.Equal(seq, []string{"11", "12"}) {
		t.Errorf("sequential after seed = %v, want [11 12]", seq)
	}
}

func TestSetTagCounter(t *testing.T) {
	s := New().SetTagCounter("K", 40)
	_, tag := s.NextTag("K")
	if tag != "K41" {
		t.Errorf("tag = %s, want K41", tag)
	}
}

func TestNextContactPins(t *testing.T) {
	s := New()
	s, first := s.NextContactPins("K1")
	s, second := s.NextContactPins("K1")
	_, other := s.NextContactPins("K2")

	if !slices.Equal(first, []string{"11", "12", "14"}) {
		t.Errorf("first = %v", first)
	}
	if !slices.Equal(second, []string{"21", "22", "24"}) {
		t.Errorf("second = %v", second)
	}
	if !slices.Equal(other, []string{"11", "12", "14"}) {
		t.Errorf("K2 = %v", other)
	}
}

func TestConnect(t *testing.T) {
	s := New()
	s, pins := s.NextTerminalPins("X001", 3)
	s = s.Connect3Phase("X001", pins, "F1", registry.ThreePhaseInputPins, registry.SideBottom)
	s = s.Connect("X001", "1", "K1", "A1", registry.SideTop)

	if s.Registry().Len() != 4 {
		t.Errorf("registry Len() = %d, want 4", s.Registry().Len())
	}
}

func TestCountersRestore(t *testing.T) {
	s := New()
	s, _ = s.NextTag("K")
	s, _ = s.NextTerminalPins("X1", 3)
	s, _ = s.NextTerminalPins("X2", 2, "L", "N")
	s, _ = s.NextContactPins("K1")

	c := s.Counters()
	c.Tags["K"] = 99 // must not leak back
	if s.TagCounter("K") != 1 {
		t.Fatalf("Counters() is not a deep copy")
	}

	r := Restore(s.Lineage(), s.Counters(), s.Registry())
	_, tag := r.NextTag("K")
	if tag != "K2" {
		t.Errorf("restored tag = %s, want K2", tag)
	}
	_, pins := r.NextTerminalPins("X2", 1, "N")
	if !slices.Equal(pins, []string{"N:2"}) {
		t.Errorf("restored prefixed pins = %v, want [N:2]", pins)
	}
	if !slices.Equal(r.Terminals(), []string{"X1", "X2"}) {
		t.Errorf("Terminals() = %v", r.Terminals())
	}
}
