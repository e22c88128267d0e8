package alloc

import "strconv"

// PinRange returns count consecutive pin numbers from start. With skipOdd,
// odd numbers are replaced by empty strings.
func PinRange(start, count int, skipOdd bool) []string {
	if count <= 0 {
		return []string{}
	}
	pins := make([]string, count)
	for i := range pins {
		n := start + i
		if skipOdd && n%2 != 0 {
			continue
		}
		pins[i] = strconv.Itoa(n)
	}
	return pins
}

// CoilPins returns the IEC coil pin pair.
func CoilPins() []string { return []string{"A1", "A2"} }

// ContactPins returns two pins per pole starting at start.
func ContactPins(start, poles int) []string { return PinRange(start, poles*2, false) }

// ThermalPins returns the skip-odd pin pattern of a thermal overload relay,
// two slots per pole.
func ThermalPins(start, poles int) []string { return PinRange(start-1, poles*2, true) }
