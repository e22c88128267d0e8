// Package natsort orders strings the way an electrician reads them: runs of
// digits compare as numbers, everything else compares as text.
//
// "X2" sorts before "X10", "L1:9" before "L1:10", and "K3" before "K12".
// Keys are split into alternating text and number chunks, starting with a
// (possibly empty) text chunk, so two keys always compare chunk-for-chunk
// with matching kinds.
package natsort

import (
	"cmp"
	"strings"
)

// Compare returns -1, 0 or +1 depending on whether a sorts before, equal to,
// or after b in natural order.
func Compare(a, b string) int {
	ca, cb := chunks(a), chunks(b)
	for i := 0; i < len(ca) && i < len(cb); i++ {
		var c int
		if i%2 == 1 {
			c = compareDigits(ca[i], cb[i])
		} else {
			c = strings.Compare(ca[i], cb[i])
		}
		if c != 0 {
			return c
		}
	}
	return cmp.Compare(len(ca), len(cb))
}

// Less reports whether a sorts before b in natural order.
func Less(a, b string) bool { return Compare(a, b) < 0 }

// ComparePair compares (a1, a2) with (b1, b2) lexicographically, each element
// in natural order. Used for (terminal, pin) keys.
func ComparePair(a1, a2, b1, b2 string) int {
	if c := Compare(a1, b1); c != 0 {
		return c
	}
	return Compare(a2, b2)
}

// chunks splits s into text, number, text, number, ... Even indices hold text
// (possibly empty), odd indices hold digit runs.
func chunks(s string) []string {
	out := make([]string, 0, 4)
	start := 0
	inDigits := false
	for i := 0; i < len(s); i++ {
		d := isDigit(s[i])
		if d != inDigits {
			out = append(out, s[start:i])
			start = i
			inDigits = d
		}
	}
	out = append(out, s[start:])
	if inDigits {
		out = append(out, "")
	}
	return out
}

// compareDigits compares two decimal digit runs by value without converting,
// so arbitrarily long runs never overflow.
func compareDigits(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		return cmp.Compare(len(a), len(b))
	}
	return strings.Compare(a, b)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
