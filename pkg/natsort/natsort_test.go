package natsort

import (
	"slices"
	"testing"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"2", "10", -1},
		{"10", "2", 1},
		{"X2", "X10", -1},
		{"L1:1", "L1:10", -1},
		{"L1:9", "L2:1", -1},
		{"K3", "K3", 0},
		{"K", "K1", -1},
		{"", "1", -1},
		{"1", "A", -1},
		{"007", "7", 0},
		{"99999999999999999999999", "100000000000000000000000", -1},
		{"+R1", "+R2", -1},
		{"GND1", "Sig1", -1},
	}

	for _, tt := range tests {
		if got := Compare(tt.a, tt.b); got != tt.want {
			t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSortTags(t *testing.T) {
	tags := []string{"K10", "K2", "F1", "K1", "X100", "X20"}
	slices.SortFunc(tags, Compare)

	want := []string{"F1", "K1", "K2", "K10", "X20", "X100"}
	if !slices.Equal(tags, want) {
		t.Errorf("sorted = %v, want %v", tags, want)
	}
}

func TestComparePair(t *testing.T) {
	if got := ComparePair("X1", "10", "X1", "9"); got != 1 {
		t.Errorf("ComparePair pin order = %d, want 1", got)
	}
	if got := ComparePair("X1", "10", "X2", "1"); got != -1 {
		t.Errorf("ComparePair terminal order = %d, want -1", got)
	}
	if !Less("X2", "X10") {
		t.Error("Less(X2, X10) = false, want true")
	}
}
